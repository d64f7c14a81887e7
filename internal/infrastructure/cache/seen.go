// Package cache хранит в Redis множество уже отправленных лотов и распределённую блокировку циклов.
package cache

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const seenItemsKey = "deal_radar:seen_items"

// SeenStore: множество id лотов, по которым уже отправлено уведомление.
// Множество только растёт, поэтому положительные ответы кэшируются локально без срока жизни.
type SeenStore struct {
	rdb   *redis.Client
	local *cache.Cache
}

// NewSeenStore без клиента Redis работает только в памяти процесса.
func NewSeenStore(rdb *redis.Client) *SeenStore {
	return &SeenStore{
		rdb:   rdb,
		local: cache.New(cache.NoExpiration, 0),
	}
}

func (s *SeenStore) IsSeen(ctx context.Context, itemID string) (bool, error) {
	if _, ok := s.local.Get(itemID); ok {
		return true, nil
	}

	if s.rdb == nil {
		return false, nil
	}

	seen, err := s.rdb.SIsMember(ctx, seenItemsKey, itemID).Result()
	if err != nil {
		return false, fmt.Errorf("redis SISMEMBER: %w", err)
	}

	if seen {
		s.local.SetDefault(itemID, struct{}{})
	}

	return seen, nil
}

func (s *SeenStore) MarkSeen(ctx context.Context, itemID string) error {
	if s.rdb != nil {
		if err := s.rdb.SAdd(ctx, seenItemsKey, itemID).Err(); err != nil {
			return fmt.Errorf("redis SADD: %w", err)
		}
	}

	s.local.SetDefault(itemID, struct{}{})

	return nil
}

// Count: размер множества, для /status.
func (s *SeenStore) Count(ctx context.Context) (int64, error) {
	if s.rdb == nil {
		return int64(s.local.ItemCount()), nil
	}

	n, err := s.rdb.SCard(ctx, seenItemsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis SCARD: %w", err)
	}

	return n, nil
}
