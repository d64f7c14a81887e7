// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

// Monitor Монитор поискового запроса
type Monitor struct {
	ID          int64     `json:"id"`
	Query       string    `json:"query"`
	ListingType string    `json:"listing_type"`
	ChannelID   int64     `json:"channel_id"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateMonitorRequest Запрос на создание монитора
type CreateMonitorRequest struct {
	Query       string `json:"query" validate:"required,max=200"`
	ListingType string `json:"listing_type" validate:"omitempty,oneof=all auction buy_it_now bin"`
	ChannelID   int64  `json:"channel_id" validate:"required"`
	UserID      int64  `json:"user_id"`
}

// Bid Запись наблюдения или ставки
type Bid struct {
	ID         int64     `json:"id"`
	ItemID     string    `json:"item_id"`
	UserID     int64     `json:"user_id"`
	Title      string    `json:"title,omitempty"`
	MaxBid     string    `json:"max_bid"`
	CurrentBid string    `json:"current_bid"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateBidRequest Без max_bid создаётся наблюдение за лотом
type CreateBidRequest struct {
	ItemID string  `json:"item_id" validate:"required,max=256"`
	UserID int64   `json:"user_id" validate:"required"`
	MaxBid *string `json:"max_bid,omitempty" validate:"omitempty,numeric"`
}

type CreateBidResponse struct {
	Bid     Bid  `json:"bid"`
	Created bool `json:"created"`
}

// RaiseBidRequest Повышение максимума: fixed (+$5) или percent (+10%)
type RaiseBidRequest struct {
	UserID int64  `json:"user_id" validate:"required"`
	Mode   string `json:"mode" validate:"required,oneof=fixed percent"`
}

// LoopStatus Состояние одного цикла опроса
type LoopStatus struct {
	Loop         string     `json:"loop"`
	Interval     string     `json:"interval"`
	InProgress   bool       `json:"in_progress"`
	LastStarted  *time.Time `json:"last_started,omitempty"`
	LastFinished *time.Time `json:"last_finished,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
}

// Status Состояние сервиса
type Status struct {
	Running   bool           `json:"running"`
	Loops     []LoopStatus   `json:"loops"`
	Monitors  int            `json:"monitors"`
	SeenItems int64          `json:"seen_items"`
	Bids      map[string]int `json:"bids"`
}

// CycleResult Результат ручного запуска цикла
type CycleResult struct {
	Loop       string `json:"loop"`
	DurationMs int64  `json:"duration_ms"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
