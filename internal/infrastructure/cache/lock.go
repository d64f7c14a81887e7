package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"

	"deal_radar/internal/domain"
	"deal_radar/pkg/errcodes"
)

var ErrLockHeld = domain.NewError(errcodes.CycleInProgress, "lock is held by another instance") //nolint:gochecknoglobals

const (
	lockKeyPrefix = "deal_radar:lock:"
	unlockTimeout = 5 * time.Second
)

// Удаляет ключ только если значение совпадает с токеном владельца.
const unlockLua = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`

// LockManager: блокировка на SET NX с TTL, чтобы циклы одного вида не шли параллельно на разных инстансах.
type LockManager struct {
	rdb      *redis.Client
	unlockSc *redis.Script
}

func NewLockManager(rdb *redis.Client) *LockManager {
	return &LockManager{
		rdb:      rdb,
		unlockSc: redis.NewScript(unlockLua),
	}
}

// Acquire возвращает функцию освобождения; её можно вызывать повторно.
func (lm *LockManager) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := xid.New().String()
	lk := lockKeyPrefix + key

	ok, err := lm.rdb.SetNX(ctx, lk, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis SETNX %s: %w", lk, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			// контекст цикла к этому моменту может быть уже отменён
			unlockCtx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
			defer cancel()

			_ = lm.unlockSc.Run(unlockCtx, lm.rdb, []string{lk}, token).Err()
		})
	}

	return unlock, nil
}
