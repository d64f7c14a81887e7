package worker

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/pricing"
)

type Marketplace interface {
	SearchListings(ctx context.Context, query string, limit int, filter string) ([]entity.Listing, error)
	GetItemDetail(ctx context.Context, itemID string) (*entity.Listing, error)
	GetSoldComparables(ctx context.Context, query string) ([]entity.SoldItem, error)
	NormalizeItemID(raw string) string
}

type MonitorRepository interface {
	List(ctx context.Context) ([]entity.Monitor, error)
}

type SeenStore interface {
	IsSeen(ctx context.Context, itemID string) (bool, error)
	MarkSeen(ctx context.Context, itemID string) error
}

type BidRepository interface {
	ListActive(ctx context.Context) ([]entity.BidRecord, error)
	UpdateStatus(ctx context.Context, id int64, status entity.BidStatus) error
	UpdateObservedPrice(ctx context.Context, id int64, price decimal.Decimal) error
}

type Dispatcher interface {
	SendToChannel(ctx context.Context, channelID int64, n entity.Notification) error
	SendToUser(ctx context.Context, userID int64, n entity.Notification) error
}

type PriceResolver interface {
	Resolve(ctx context.Context, listing entity.Listing) pricing.Resolution
}

// Cycle: один проход цикла опроса.
type Cycle interface {
	RunCycle(ctx context.Context) error
}

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}
