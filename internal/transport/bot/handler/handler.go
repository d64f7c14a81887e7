package handler

import (
	"context"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/subscription"
	"deal_radar/internal/worker"
)

type SubscriptionService interface {
	AddMonitor(ctx context.Context, req subscription.CreateMonitor) (*entity.Monitor, error)
	ListMonitors(ctx context.Context, channelID int64) ([]entity.Monitor, error)
	RemoveMonitor(ctx context.Context, id, channelID int64) error
	Watch(ctx context.Context, userID int64, rawItemID string) (*entity.BidRecord, bool, error)
	PlaceBid(ctx context.Context, userID int64, rawItemID string, maxBid decimal.Decimal) (*entity.BidRecord, bool, error)
	RaiseMaxBid(ctx context.Context, bidID, userID int64, mode subscription.RaiseMode) (*entity.BidRecord, error)
	UserBids(ctx context.Context, userID int64) ([]entity.BidRecord, error)
	Stats(ctx context.Context) (subscription.Stats, error)
}

type Monitoring interface {
	IsRunning() bool
	Status() []worker.LoopStatus
	RunNow(ctx context.Context, loop worker.Loop) error
}

type SeenCounter interface {
	Count(ctx context.Context) (int64, error)
}

type Handler struct {
	subs       SubscriptionService
	monitoring Monitoring
	seen       SeenCounter
}

func New(subs SubscriptionService, monitoring Monitoring, seen SeenCounter) *Handler {
	return &Handler{
		subs:       subs,
		monitoring: monitoring,
		seen:       seen,
	}
}
