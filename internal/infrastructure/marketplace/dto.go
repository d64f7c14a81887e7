package marketplace

import (
	"time"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
)

type amountDTO struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

func (a *amountDTO) decimal() *decimal.Decimal {
	if a == nil || a.Value == "" {
		return nil
	}

	d, err := decimal.NewFromString(a.Value)
	if err != nil {
		return nil
	}

	return &d
}

func (a *amountDTO) currency() string {
	if a == nil {
		return ""
	}
	return a.Currency
}

type imageDTO struct {
	ImageURL string `json:"imageUrl"`
}

// itemDTO: общий формат item_summary и item в Browse API.
type itemDTO struct {
	ItemID          string     `json:"itemId"`
	Title           string     `json:"title"`
	ItemWebURL      string     `json:"itemWebUrl"`
	Price           *amountDTO `json:"price"`
	CurrentBidPrice *amountDTO `json:"currentBidPrice"`
	BuyingOptions   []string   `json:"buyingOptions"`
	BidCount        int        `json:"bidCount"`
	ItemEndDate     string     `json:"itemEndDate"`
	Image           *imageDTO  `json:"image"`
}

func (d itemDTO) toDomain() entity.Listing {
	l := entity.Listing{
		ID:            d.ItemID,
		Title:         d.Title,
		URL:           d.ItemWebURL,
		Price:         d.Price.decimal(),
		Currency:      d.Price.currency(),
		CurrentBid:    d.CurrentBidPrice.decimal(),
		BidCurrency:   d.CurrentBidPrice.currency(),
		BuyingOptions: d.BuyingOptions,
		BidCount:      d.BidCount,
	}

	if d.ItemEndDate != "" {
		if end, err := time.Parse(time.RFC3339, d.ItemEndDate); err == nil {
			l.EndTime = end
		}
	}

	if d.Image != nil {
		l.ThumbnailURL = d.Image.ImageURL
	}

	return l
}

type searchResponseDTO struct {
	Total         int       `json:"total"`
	ItemSummaries []itemDTO `json:"itemSummaries"`
}

type itemSaleDTO struct {
	ItemID        string     `json:"itemId"`
	LastSoldPrice *amountDTO `json:"lastSoldPrice"`
}

type salesResponseDTO struct {
	ItemSales []itemSaleDTO `json:"itemSales"`
}

type errorResponseDTO struct {
	Errors []struct {
		ErrorID  int    `json:"errorId"`
		Message  string `json:"message"`
		Category string `json:"category"`
	} `json:"errors"`
}

func (e errorResponseDTO) message() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Message
}
