// Package pricing определяет цену лота по цепочке: выдача поиска, карточка лота, заглушка аукциона.
package pricing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
	"deal_radar/pkg/contextx"
	"deal_radar/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const StartingPriceUnavailable = "Starting price unavailable (no bids yet)"

// SentinelPrice: условная цена аукциона без ставок, чтобы он не терялся.
var SentinelPrice = decimal.RequireFromString("0.01") //nolint:gochecknoglobals

type Source int

const (
	SourceNone Source = iota
	SourceSearch
	SourceDetail
	SourceSentinel
)

func (s Source) String() string {
	switch s {
	case SourceSearch:
		return "search"
	case SourceDetail:
		return "detail"
	case SourceSentinel:
		return "sentinel"
	default:
		return "none"
	}
}

// Resolution: либо найденная цена с подписью для показа, либо Resolved=false.
type Resolution struct {
	Resolved bool
	Price    decimal.Decimal
	Display  string
	Source   Source
}

type DetailFetcher interface {
	GetItemDetail(ctx context.Context, itemID string) (*entity.Listing, error)
}

type Resolver struct {
	details DetailFetcher
}

func NewResolver(details DetailFetcher) *Resolver {
	return &Resolver{details: details}
}

// Resolve проходит цепочку источников по порядку. Ошибка карточки лота не прерывает цепочку.
func (r *Resolver) Resolve(ctx context.Context, listing entity.Listing) Resolution {
	if res, ok := fromListing(listing, SourceSearch); ok {
		return res
	}

	isAuction := listing.IsAuction()

	if isAuction && r.details != nil {
		full, err := r.details.GetItemDetail(ctx, listing.ID)
		if err != nil {
			logger(ctx).Warn("failed to fetch full item for price",
				slog.String(logx.FieldItemID, listing.ID),
				logx.Error(err),
			)
		} else if full != nil {
			if res, ok := fromListing(*full, SourceDetail); ok {
				return res
			}
		}
	}

	if isAuction && listing.BidCount == 0 {
		return Resolution{
			Resolved: true,
			Price:    SentinelPrice,
			Display:  StartingPriceUnavailable,
			Source:   SourceSentinel,
		}
	}

	return Resolution{}
}

// ObservedPrice возвращает цену для отслеживания ставок (цена лота или текущая ставка).
func ObservedPrice(listing entity.Listing) (decimal.Decimal, bool) {
	res, ok := fromListing(listing, SourceDetail)
	return res.Price, ok
}

func fromListing(l entity.Listing, source Source) (Resolution, bool) {
	switch {
	case l.Price != nil:
		return Resolution{
			Resolved: true,
			Price:    *l.Price,
			Display:  display(*l.Price, l.Currency),
			Source:   source,
		}, true
	case l.CurrentBid != nil:
		return Resolution{
			Resolved: true,
			Price:    *l.CurrentBid,
			Display:  display(*l.CurrentBid, l.BidCurrency),
			Source:   source,
		}, true
	default:
		return Resolution{}, false
	}
}

func display(price decimal.Decimal, currency string) string {
	if currency == "" {
		return price.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", price.StringFixed(2), currency)
}
