package persistence

import (
	"time"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
)

// monitorSchema: строка таблицы monitors.
type monitorSchema struct {
	ID          int64     `db:"id"`
	Query       string    `db:"query"`
	ListingType string    `db:"listing_type"`
	ChannelID   int64     `db:"channel_id"`
	UserID      int64     `db:"user_id"`
	CreatedAt   time.Time `db:"created_at"`
}

func (s *monitorSchema) toDomain() entity.Monitor {
	return entity.Monitor{
		ID:          s.ID,
		Query:       s.Query,
		ListingType: entity.ListingType(s.ListingType).Normalize(),
		ChannelID:   s.ChannelID,
		UserID:      s.UserID,
		CreatedAt:   s.CreatedAt,
	}
}

// bidSchema: строка таблицы bids. NUMERIC сканируется напрямую в decimal.
type bidSchema struct {
	ID         int64           `db:"id"`
	ItemID     string          `db:"item_id"`
	UserID     int64           `db:"user_id"`
	Title      string          `db:"title"`
	MaxBid     decimal.Decimal `db:"max_bid"`
	CurrentBid decimal.Decimal `db:"current_bid"`
	Status     string          `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (s *bidSchema) toDomain() entity.BidRecord {
	return entity.BidRecord{
		ID:         s.ID,
		ItemID:     s.ItemID,
		UserID:     s.UserID,
		Title:      s.Title,
		MaxBid:     s.MaxBid,
		CurrentBid: s.CurrentBid,
		Status:     entity.BidStatus(s.Status),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func terminalStatusArgs() []string {
	statuses := entity.TerminalBidStatuses()
	args := make([]string, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, string(s))
	}
	return args
}
