package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BidStatus string

const (
	BidStatusWatching  BidStatus = "watching"
	BidStatusActive    BidStatus = "active"
	BidStatusOutbid    BidStatus = "outbid"
	BidStatusWon       BidStatus = "won"
	BidStatusLost      BidStatus = "lost"
	BidStatusCompleted BidStatus = "completed"
)

func (s BidStatus) IsTerminal() bool {
	switch s {
	case BidStatusWon, BidStatusLost, BidStatusCompleted:
		return true
	default:
		return false
	}
}

// TracksBid: запись отслеживает ставку, а не просто наблюдение.
func (s BidStatus) TracksBid() bool {
	return s == BidStatusActive || s == BidStatusOutbid
}

// CanTransition проверяет переход по автомату жизненного цикла ставки.
func (s BidStatus) CanTransition(to BidStatus) bool {
	switch s {
	case BidStatusWatching:
		return to == BidStatusWatching || to == BidStatusCompleted
	case BidStatusActive:
		return to == BidStatusOutbid || to == BidStatusWon || to == BidStatusLost
	case BidStatusOutbid:
		// OUTBID -> ACTIVE только после ручного повышения максимума.
		return to == BidStatusOutbid || to == BidStatusActive || to == BidStatusWon || to == BidStatusLost
	default:
		return false
	}
}

func TerminalBidStatuses() []BidStatus {
	return []BidStatus{BidStatusWon, BidStatusLost, BidStatusCompleted}
}

// BidRecord: наблюдение или ставка пользователя на один лот.
type BidRecord struct {
	ID     int64           `json:"id"`
	ItemID string          `json:"item_id"`
	UserID int64           `json:"user_id"`
	Title  string          `json:"title,omitempty"`
	MaxBid decimal.Decimal `json:"max_bid"`
	// CurrentBid: последняя увиденная цена лота, не ставка пользователя.
	CurrentBid decimal.Decimal `json:"current_bid"`
	Status     BidStatus       `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

var (
	raiseFixedStep   = decimal.NewFromInt(5)             //nolint:gochecknoglobals
	raisePercentRate = decimal.RequireFromString("1.10") //nolint:gochecknoglobals
)

// RaiseMaxBidFixed: кнопка "Increase +$5".
func RaiseMaxBidFixed(current decimal.Decimal) decimal.Decimal {
	return current.Add(raiseFixedStep)
}

// RaiseMaxBidPercent: кнопка "Increase +10%".
func RaiseMaxBidPercent(current decimal.Decimal) decimal.Decimal {
	return current.Mul(raisePercentRate).Round(2)
}
