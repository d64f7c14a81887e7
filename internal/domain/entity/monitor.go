package entity

import (
	"strings"
	"time"
)

type ListingType string

const (
	ListingTypeAll      ListingType = "all"
	ListingTypeAuction  ListingType = "auction"
	ListingTypeBuyItNow ListingType = "buy_it_now"
)

// ParseListingType разбирает пользовательский ввод, неизвестные значения: false.
func ParseListingType(s string) (ListingType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ListingTypeAll, true
	case "auction":
		return ListingTypeAuction, true
	case "buy_it_now", "bin", "buyitnow", "fixed_price":
		return ListingTypeBuyItNow, true
	default:
		return "", false
	}
}

// Normalize сводит пустой и неизвестный тип к ALL.
func (t ListingType) Normalize() ListingType {
	switch t {
	case ListingTypeAuction, ListingTypeBuyItNow:
		return t
	default:
		return ListingTypeAll
	}
}

// Monitor: сохранённая подписка пользователя на поисковый запрос.
type Monitor struct {
	ID          int64       `json:"id"`
	Query       string      `json:"query"`
	ListingType ListingType `json:"listing_type"`
	ChannelID   int64       `json:"channel_id"`
	UserID      int64       `json:"user_id"`
	CreatedAt   time.Time   `json:"created_at"`
}

// GroupKey: ключ, по которому мониторы делят один поисковый запрос.
type GroupKey struct {
	Query       string
	ListingType ListingType
}

func (m Monitor) GroupKey() GroupKey {
	return GroupKey{
		Query:       NormalizeQuery(m.Query),
		ListingType: m.ListingType.Normalize(),
	}
}

func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
