package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/pricing"
	"deal_radar/pkg/errcodes"
	"deal_radar/pkg/logx"
)

// BidTracker: цикл отслеживания наблюдений и ставок до окончания аукциона.
type BidTracker struct {
	market     Marketplace
	bids       BidRepository
	dispatcher Dispatcher
	metrics    *Metrics

	now func() time.Time
}

type BidTrackerOption func(*BidTracker)

func WithBidTrackerClock(now func() time.Time) BidTrackerOption {
	return func(t *BidTracker) {
		t.now = now
	}
}

func WithBidTrackerMetrics(m *Metrics) BidTrackerOption {
	return func(t *BidTracker) {
		t.metrics = m
	}
}

func NewBidTracker(
	market Marketplace,
	bids BidRepository,
	dispatcher Dispatcher,
	opts ...BidTrackerOption,
) *BidTracker {
	t := &BidTracker{
		market:     market,
		bids:       bids,
		dispatcher: dispatcher,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// RunCycle проверяет все нетерминальные записи. Ошибка одной записи не прерывает остальные.
func (t *BidTracker) RunCycle(ctx context.Context) error {
	records, err := t.bids.ListActive(ctx)
	if err != nil {
		return domain.WrapError(err, errcodes.CycleFailed, "list active bids")
	}

	for _, rec := range records {
		if ctx.Err() != nil {
			return domain.WrapError(ctx.Err(), errcodes.CycleFailed, "bid check interrupted")
		}

		if err := t.checkBid(ctx, rec); err != nil {
			logger(ctx).Error("bid check failed",
				slog.Int64(logx.FieldBidID, rec.ID),
				slog.String(logx.FieldItemID, rec.ItemID),
				logx.Error(err),
			)
		}
	}

	return nil
}

func (t *BidTracker) checkBid(ctx context.Context, rec entity.BidRecord) error {
	itemID := t.market.NormalizeItemID(rec.ItemID)

	item, err := t.market.GetItemDetail(ctx, itemID)
	if err != nil {
		t.metrics.fetchFailed("item_detail")
		return domain.WrapError(err, errcodes.TransientFetchFailed, "get item detail")
	}
	if item == nil {
		logger(ctx).Debug("item not found, bid skipped", slog.Int64(logx.FieldBidID, rec.ID))
		return nil
	}

	if item.HasEnded(t.now()) {
		return t.settle(ctx, rec, item)
	}

	price, ok := pricing.ObservedPrice(*item)
	if !ok {
		logger(ctx).Warn("item price unavailable", slog.Int64(logx.FieldBidID, rec.ID))
		return nil
	}

	switch rec.Status {
	case entity.BidStatusWatching:
		return t.watchUpdate(ctx, rec, item, price)
	case entity.BidStatusActive, entity.BidStatusOutbid:
		return t.checkOutbid(ctx, rec, item, price)
	default:
		return nil
	}
}

// settle закрывает запись после окончания аукциона.
// Победа определяется приближённо: финальная цена не выше максимума пользователя.
// Реального победителя API без OAuth пользователя не отдаёт.
func (t *BidTracker) settle(ctx context.Context, rec entity.BidRecord, item *entity.Listing) error {
	if rec.Status == entity.BidStatusWatching {
		return t.transition(ctx, rec, entity.BidStatusCompleted)
	}

	price, ok := pricing.ObservedPrice(*item)
	if !ok {
		logger(ctx).Warn("final price unavailable, bid left untouched",
			slog.Int64(logx.FieldBidID, rec.ID),
		)
		return nil
	}

	title := listingTitle(item, rec)

	if price.LessThanOrEqual(rec.MaxBid) {
		if err := t.transition(ctx, rec, entity.BidStatusWon); err != nil {
			return err
		}
		t.notifyUser(ctx, rec, renderWon(title, price))
		return nil
	}

	if err := t.transition(ctx, rec, entity.BidStatusLost); err != nil {
		return err
	}
	t.notifyUser(ctx, rec, renderLost(title, price, rec.MaxBid))

	return nil
}

// watchUpdate сообщает о любом изменении цены. Нулевая сохранённая цена: первое наблюдение.
func (t *BidTracker) watchUpdate(ctx context.Context, rec entity.BidRecord, item *entity.Listing, price decimal.Decimal) error {
	if price.Equal(rec.CurrentBid) {
		return nil
	}

	t.notifyUser(ctx, rec, renderWatchUpdate(listingTitle(item, rec), price, item.EndTime, t.now()))

	return t.persistPrice(ctx, rec, price)
}

// checkOutbid переводит ставку в OUTBID при росте цены выше максимума.
// Увиденная цена сохраняется при любом изменении, поэтому повторный алерт будет только при новом росте.
func (t *BidTracker) checkOutbid(ctx context.Context, rec entity.BidRecord, item *entity.Listing, price decimal.Decimal) error {
	if price.GreaterThan(rec.CurrentBid) && price.GreaterThan(rec.MaxBid) {
		if rec.Status != entity.BidStatusOutbid {
			if err := t.transition(ctx, rec, entity.BidStatusOutbid); err != nil {
				return err
			}
		}

		t.notifyUser(ctx, rec, renderOutbid(rec, listingTitle(item, rec), price))
	}

	if price.Equal(rec.CurrentBid) {
		return nil
	}

	return t.persistPrice(ctx, rec, price)
}

func (t *BidTracker) transition(ctx context.Context, rec entity.BidRecord, status entity.BidStatus) error {
	if !rec.Status.CanTransition(status) {
		return domain.NewError(errcodes.InvalidTransition, string(rec.Status)+" -> "+string(status))
	}

	if err := t.bids.UpdateStatus(ctx, rec.ID, status); err != nil {
		return err
	}

	t.metrics.transitioned(string(status))

	logger(ctx).Info("bid status changed",
		slog.Int64(logx.FieldBidID, rec.ID),
		slog.String(logx.FieldItemID, rec.ItemID),
		slog.String(logx.FieldStatus, string(status)),
	)

	return nil
}

func (t *BidTracker) persistPrice(ctx context.Context, rec entity.BidRecord, price decimal.Decimal) error {
	return t.bids.UpdateObservedPrice(ctx, rec.ID, price)
}

func (t *BidTracker) notifyUser(ctx context.Context, rec entity.BidRecord, n entity.Notification) {
	err := t.dispatcher.SendToUser(ctx, rec.UserID, n)
	t.metrics.delivered(err)

	if err != nil {
		logger(ctx).Error("failed to notify user",
			slog.Int64(logx.FieldBidID, rec.ID),
			slog.Int64(logx.FieldUserID, rec.UserID),
			logx.Error(err),
		)
	}
}
