package worker

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"deal_radar/internal/domain/entity"
)

func TestFormatEnds(t *testing.T) {
	rq := require.New(t)

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		end      time.Time
		expected string
	}{
		{name: "Unknown", end: time.Time{}, expected: "N/A"},
		{name: "Ended", end: now.Add(-time.Minute), expected: "18 Oct 11:59 UTC (ended)"},
		{name: "Seconds", end: now.Add(20 * time.Second), expected: "18 Oct 12:00 UTC (in under 1m)"},
		{name: "Minutes", end: now.Add(7 * time.Minute), expected: "18 Oct 12:07 UTC (in 7m)"},
		{name: "Hours", end: now.Add(3*time.Hour + 5*time.Minute), expected: "18 Oct 15:05 UTC (in 3h 5m)"},
		{name: "Days", end: now.Add(50 * time.Hour), expected: "20 Oct 14:00 UTC (in 2d 2h)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.expected, formatEnds(tc.end, now))
		})
	}
}

func TestRenderDealAlertFixedPrice(t *testing.T) {
	rq := require.New(t)

	price := decimal.RequireFromString("45")
	deal := entity.Deal{
		Listing: entity.Listing{
			ID:            "v1|123456|0",
			Title:         "Switch & Dock",
			URL:           "https://www.ebay.com/itm/123456",
			Price:         &price,
			BuyingOptions: []string{entity.BuyingOptionFixedPrice},
			ThumbnailURL:  "https://i.ebayimg.com/1.jpg",
		},
		Price:      price,
		Display:    "45.00 USD",
		FairPrice:  decimal.RequireFromString("90"),
		Evaluation: entity.DealEvaluation{Score: 50, Label: "Great Deal", Emoji: "🔥", Sufficient: true},
	}

	n := renderDealAlert(deal, time.Now())

	rq.Contains(n.Text, "🚨 Deal")
	rq.NotContains(n.Text, "Bids:")
	rq.Contains(n.Text, "Switch &amp; Dock")
	rq.Contains(n.Text, "45.00 USD")
	rq.Contains(n.Text, "<b>Fair Price:</b> $90.00")
	rq.Contains(n.Text, "<code>123456</code>")
	rq.Contains(n.Text, "🔥 50% Great Deal")
	rq.Contains(n.Text, `<a href="https://i.ebayimg.com/1.jpg">`)
	rq.False(n.DisablePreview)
	rq.Equal([]entity.Button{{Label: "👀 Watch", Data: "watch_v1|123456|0"}}, n.Buttons)
}

func TestRenderBidMessages(t *testing.T) {
	rq := require.New(t)

	won := renderWon("Lot", decimal.RequireFromString("80"))
	rq.Equal("🎉 <b>You Won!</b> Item: Lot\nFinal Price: 80.00", won.Text)

	lost := renderLost("Lot", decimal.RequireFromString("120"), decimal.RequireFromString("100"))
	rq.Equal("😢 <b>Lost.</b> Item: Lot\nSold for: 120.00 (Your Max: 100.00)", lost.Text)

	rq.Equal("v1|9|0", listingTitle(nil, entity.BidRecord{ItemID: "v1|9|0"}))
	rq.Equal("Saved", listingTitle(&entity.Listing{}, entity.BidRecord{Title: "Saved"}))
}
