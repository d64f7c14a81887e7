// Package subscription: пользовательские операции над мониторами и ставками.
package subscription

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/pkg/errcodes"
)

const maxQueryLength = 200

type MonitorRepository interface {
	Create(ctx context.Context, m *entity.Monitor) error
	List(ctx context.Context) ([]entity.Monitor, error)
	ListByChannel(ctx context.Context, channelID int64) ([]entity.Monitor, error)
	Delete(ctx context.Context, id, channelID int64) error
	Count(ctx context.Context) (int, error)
}

type BidRepository interface {
	Create(ctx context.Context, bid *entity.BidRecord) (bool, error)
	GetByID(ctx context.Context, id int64) (*entity.BidRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.BidRecord, error)
	RaiseMaxBid(ctx context.Context, id, userID int64, raise func(decimal.Decimal) decimal.Decimal) (*entity.BidRecord, error)
	CountByStatus(ctx context.Context) (map[entity.BidStatus]int, error)
}

type ItemIDNormalizer interface {
	NormalizeItemID(raw string) string
}

type Service struct {
	monitors MonitorRepository
	bids     BidRepository
	items    ItemIDNormalizer
}

func NewService(monitors MonitorRepository, bids BidRepository, items ItemIDNormalizer) *Service {
	return &Service{
		monitors: monitors,
		bids:     bids,
		items:    items,
	}
}

type CreateMonitor struct {
	Query       string
	ListingType string
	ChannelID   int64
	UserID      int64
}

func (s *Service) AddMonitor(ctx context.Context, req CreateMonitor) (*entity.Monitor, error) {
	query := strings.Join(strings.Fields(req.Query), " ")
	if query == "" {
		return nil, domain.NewError(errcodes.ValidationError, "query must not be empty")
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		return nil, domain.NewError(errcodes.ValidationError,
			fmt.Sprintf("query is longer than %d characters", maxQueryLength))
	}

	listingType, ok := entity.ParseListingType(req.ListingType)
	if !ok {
		return nil, domain.NewError(errcodes.InvalidListing,
			fmt.Sprintf("unknown listing type %q, use all, auction or bin", req.ListingType))
	}

	m := &entity.Monitor{
		Query:       query,
		ListingType: listingType,
		ChannelID:   req.ChannelID,
		UserID:      req.UserID,
	}

	if err := s.monitors.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) ListMonitors(ctx context.Context, channelID int64) ([]entity.Monitor, error) {
	return s.monitors.ListByChannel(ctx, channelID)
}

func (s *Service) AllMonitors(ctx context.Context) ([]entity.Monitor, error) {
	return s.monitors.List(ctx)
}

func (s *Service) RemoveMonitor(ctx context.Context, id, channelID int64) error {
	return s.monitors.Delete(ctx, id, channelID)
}

// Watch начинает наблюдение за лотом. Повторный вызов возвращает существующую запись.
func (s *Service) Watch(ctx context.Context, userID int64, rawItemID string) (*entity.BidRecord, bool, error) {
	itemID, err := s.itemID(rawItemID)
	if err != nil {
		return nil, false, err
	}

	bid := &entity.BidRecord{
		ItemID: itemID,
		UserID: userID,
		Status: entity.BidStatusWatching,
	}

	created, err := s.bids.Create(ctx, bid)
	if err != nil {
		return nil, false, err
	}

	return bid, created, nil
}

// PlaceBid регистрирует ставку пользователя с максимумом maxBid. Сама ставка на площадке не делается.
func (s *Service) PlaceBid(ctx context.Context, userID int64, rawItemID string, maxBid decimal.Decimal) (*entity.BidRecord, bool, error) {
	itemID, err := s.itemID(rawItemID)
	if err != nil {
		return nil, false, err
	}

	if !maxBid.IsPositive() {
		return nil, false, domain.NewError(errcodes.InvalidMaxBid, "max bid must be positive")
	}

	bid := &entity.BidRecord{
		ItemID: itemID,
		UserID: userID,
		MaxBid: maxBid.Round(2),
		Status: entity.BidStatusActive,
	}

	created, err := s.bids.Create(ctx, bid)
	if err != nil {
		return nil, false, err
	}

	return bid, created, nil
}

type RaiseMode int

const (
	RaiseFixed RaiseMode = iota
	RaisePercent
)

// RaiseMaxBid поднимает максимум и возвращает ставку из OUTBID в ACTIVE.
func (s *Service) RaiseMaxBid(ctx context.Context, bidID, userID int64, mode RaiseMode) (*entity.BidRecord, error) {
	raise := entity.RaiseMaxBidFixed
	if mode == RaisePercent {
		raise = entity.RaiseMaxBidPercent
	}

	return s.bids.RaiseMaxBid(ctx, bidID, userID, raise)
}

func (s *Service) UserBids(ctx context.Context, userID int64) ([]entity.BidRecord, error) {
	return s.bids.ListByUser(ctx, userID)
}

type Stats struct {
	Monitors int                      `json:"monitors"`
	Bids     map[entity.BidStatus]int `json:"bids"`
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	monitors, err := s.monitors.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	bids, err := s.bids.CountByStatus(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Stats{Monitors: monitors, Bids: bids}, nil
}

func (s *Service) itemID(raw string) (string, error) {
	itemID := s.items.NormalizeItemID(raw)
	if !entity.IsItemID(itemID) {
		return "", domain.NewError(errcodes.InvalidItemID,
			fmt.Sprintf("%q is not an item id or item link", strings.TrimSpace(raw)))
	}

	return itemID, nil
}
