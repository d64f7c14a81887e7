package entity

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	BuyingOptionAuction    = "AUCTION"
	BuyingOptionFixedPrice = "FIXED_PRICE"
)

var itemIDPattern = regexp.MustCompile(`^v1\|\d+\|\d+$`) //nolint:gochecknoglobals

// IsItemID проверяет формат id Browse API: v1|<legacy>|<variation>.
func IsItemID(id string) bool {
	return itemIDPattern.MatchString(id)
}

// Listing: лот из выдачи маркетплейса, живёт один цикл.
type Listing struct {
	ID            string
	Title         string
	URL           string
	Price         *decimal.Decimal
	Currency      string
	CurrentBid    *decimal.Decimal
	BidCurrency   string
	BuyingOptions []string
	BidCount      int
	EndTime       time.Time
	ThumbnailURL  string
}

func (l Listing) IsAuction() bool {
	return slices.Contains(l.BuyingOptions, BuyingOptionAuction)
}

// LegacyID возвращает числовой id из формата v1|123456|0.
func (l Listing) LegacyID() string {
	return LegacyItemID(l.ID)
}

func LegacyItemID(id string) string {
	if !strings.HasPrefix(id, "v1|") {
		return id
	}

	parts := strings.Split(id, "|")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1]
	}

	return id
}

// HasEnded: аукцион завершён строго после времени окончания.
func (l Listing) HasEnded(now time.Time) bool {
	return !l.EndTime.IsZero() && now.After(l.EndTime)
}

// SoldItem: проданный аналог для оценки справедливой цены.
type SoldItem struct {
	Price    decimal.Decimal
	Currency string
}
