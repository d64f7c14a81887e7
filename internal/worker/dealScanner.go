package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/analyzer"
	"deal_radar/internal/domain/service/pricing"
	"deal_radar/pkg/errcodes"
	"deal_radar/pkg/logx"
	"deal_radar/pkg/lox"
)

const (
	defaultSearchLimit = 10

	filterAuction  = "buyingOptions:{AUCTION}"
	filterBuyItNow = "buyingOptions:{FIXED_PRICE}"
	filterAll      = "buyingOptions:{AUCTION|FIXED_PRICE}"
)

var lowPriceThreshold = decimal.NewFromInt(1) //nolint:gochecknoglobals

// DealScanner: цикл поиска выгодных лотов по сохранённым мониторам.
type DealScanner struct {
	market     Marketplace
	monitors   MonitorRepository
	seen       SeenStore
	dispatcher Dispatcher
	resolver   PriceResolver
	metrics    *Metrics

	searchLimit int
	now         func() time.Time
}

type DealScannerOption func(*DealScanner)

func WithSearchLimit(limit int) DealScannerOption {
	return func(s *DealScanner) {
		if limit > 0 {
			s.searchLimit = limit
		}
	}
}

func WithDealScannerClock(now func() time.Time) DealScannerOption {
	return func(s *DealScanner) {
		s.now = now
	}
}

func WithDealScannerMetrics(m *Metrics) DealScannerOption {
	return func(s *DealScanner) {
		s.metrics = m
	}
}

func WithPriceResolver(r PriceResolver) DealScannerOption {
	return func(s *DealScanner) {
		s.resolver = r
	}
}

func NewDealScanner(
	market Marketplace,
	monitors MonitorRepository,
	seen SeenStore,
	dispatcher Dispatcher,
	opts ...DealScannerOption,
) *DealScanner {
	s := &DealScanner{
		market:      market,
		monitors:    monitors,
		seen:        seen,
		dispatcher:  dispatcher,
		resolver:    pricing.NewResolver(market),
		searchLimit: defaultSearchLimit,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// monitorGroup: мониторы с одинаковым нормализованным запросом и типом лота.
type monitorGroup struct {
	key      entity.GroupKey
	monitors []entity.Monitor
}

// RunCycle проходит все группы мониторов. Ошибка возвращается только если не удалось прочитать мониторы.
func (s *DealScanner) RunCycle(ctx context.Context) error {
	monitors, err := s.monitors.List(ctx)
	if err != nil {
		return domain.WrapError(err, errcodes.CycleFailed, "list monitors")
	}

	groups := groupMonitors(monitors)

	logger(ctx).Debug("deal scan started",
		slog.Int("monitors", len(monitors)),
		slog.Int("groups", len(groups)),
	)

	for _, g := range groups {
		if ctx.Err() != nil {
			return domain.WrapError(ctx.Err(), errcodes.CycleFailed, "deal scan interrupted")
		}

		s.scanGroup(ctx, g)
	}

	return nil
}

// groupMonitors сохраняет порядок первого появления ключа.
func groupMonitors(monitors []entity.Monitor) []monitorGroup {
	order, byKey := lox.GroupOrdered(monitors, entity.Monitor.GroupKey)

	return lox.Map(order, func(key entity.GroupKey) monitorGroup {
		return monitorGroup{key: key, monitors: byKey[key]}
	})
}

func searchFilter(t entity.ListingType) string {
	switch t.Normalize() {
	case entity.ListingTypeAuction:
		return filterAuction
	case entity.ListingTypeBuyItNow:
		return filterBuyItNow
	default:
		return filterAll
	}
}

func (s *DealScanner) scanGroup(ctx context.Context, g monitorGroup) {
	filter := searchFilter(g.key.ListingType)
	log := logger(ctx).With(
		slog.String(logx.FieldQuery, g.key.Query),
		slog.String(logx.FieldFilter, filter),
	)

	listings, err := s.market.SearchListings(ctx, g.key.Query, s.searchLimit, filter)
	if err != nil {
		s.metrics.fetchFailed("search")
		log.Warn("search failed, group skipped", logx.Error(err))
		return
	}

	fair := s.fairPrice(ctx, g.key.Query)

	for _, l := range listings {
		if ctx.Err() != nil {
			return
		}

		s.processListing(ctx, g, fair, l)
	}
}

// fairPrice: медиана продаж; при ошибке продолжаем с нулевой (условной) справедливой ценой.
func (s *DealScanner) fairPrice(ctx context.Context, query string) decimal.Decimal {
	sold, err := s.market.GetSoldComparables(ctx, query)
	if err != nil {
		s.metrics.fetchFailed("sold_comparables")
		logger(ctx).Warn("sold comparables failed, using default fair price",
			slog.String(logx.FieldQuery, query),
			logx.Error(err),
		)
		return analyzer.DefaultFairPrice
	}

	return analyzer.CalculateFairPrice(sold)
}

func (s *DealScanner) processListing(ctx context.Context, g monitorGroup, fair decimal.Decimal, l entity.Listing) {
	seen, err := s.seen.IsSeen(ctx, l.ID)
	if err != nil {
		logger(ctx).Warn("seen lookup failed, item skipped",
			slog.String(logx.FieldItemID, l.ID),
			logx.Error(err),
		)
		return
	}
	if seen {
		return
	}

	deal, ok := s.evaluate(ctx, l, fair)
	if !ok {
		return
	}

	if !isAlertWorthy(deal) {
		logger(ctx).Debug("not a deal, will check again later",
			slog.String(logx.FieldItemID, l.ID),
			slog.Int(logx.FieldScore, deal.Evaluation.Score),
		)
		return
	}

	n := renderDealAlert(deal, s.now())
	s.fanOut(ctx, g.monitors, n)
	s.markSeen(ctx, l.ID)
	s.metrics.alerted()
}

func (s *DealScanner) evaluate(ctx context.Context, l entity.Listing, fair decimal.Decimal) (entity.Deal, bool) {
	res := s.resolver.Resolve(ctx, l)
	if !res.Resolved {
		logger(ctx).Debug("price unavailable, item skipped", slog.String(logx.FieldItemID, l.ID))
		return entity.Deal{}, false
	}

	eval := analyzer.GetDealMeter(res.Price, fair)

	logger(ctx).Debug("item evaluated",
		slog.String(logx.FieldItemID, l.ID),
		slog.String(logx.FieldPrice, res.Price.String()),
		slog.String(logx.FieldFairPrice, fair.String()),
		slog.Int(logx.FieldScore, eval.Score),
	)

	return entity.Deal{
		Listing:    l,
		Price:      res.Price,
		Display:    res.Display,
		FairPrice:  fair,
		Evaluation: eval,
	}, true
}

// isAlertWorthy: выгодная цена либо аукцион, который ещё почти ничего не стоит.
func isAlertWorthy(deal entity.Deal) bool {
	if deal.Evaluation.IsDeal() {
		return true
	}

	return deal.Listing.IsAuction() && deal.Price.LessThan(lowPriceThreshold)
}

// fanOut отправляет сообщение каждому монитору группы. Ошибки доставки только логируются.
func (s *DealScanner) fanOut(ctx context.Context, monitors []entity.Monitor, n entity.Notification) {
	for _, m := range monitors {
		msg := n
		msg.MentionUserID = m.UserID

		err := s.dispatcher.SendToChannel(ctx, m.ChannelID, msg)
		s.metrics.delivered(err)

		if err != nil {
			logger(ctx).Error("failed to notify channel",
				slog.Int64(logx.FieldChannelID, m.ChannelID),
				logx.Error(err),
			)
		}
	}
}

func (s *DealScanner) markSeen(ctx context.Context, itemID string) {
	if err := s.seen.MarkSeen(ctx, itemID); err != nil {
		logger(ctx).Error("failed to mark item seen",
			slog.String(logx.FieldItemID, itemID),
			logx.Error(err),
		)
	}
}
