package analyzer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/analyzer"
	"deal_radar/pkg/tests"
)

func sold(prices ...string) []entity.SoldItem {
	items := make([]entity.SoldItem, 0, len(prices))
	for _, p := range prices {
		items = append(items, entity.SoldItem{Price: decimal.RequireFromString(p), Currency: "USD"})
	}
	return items
}

func TestCalculateFairPrice(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		sold     []entity.SoldItem
		expected string
	}{
		{name: "Empty", sold: nil, expected: "0"},
		{name: "Single", sold: sold("42.5"), expected: "42.5"},
		{name: "Odd count", sold: sold("30", "10", "20"), expected: "20"},
		{name: "Even count", sold: sold("10", "20", "30", "41"), expected: "25"},
		{name: "Outlier resistant", sold: sold("100", "105", "98", "1", "9999"), expected: "100"},
		{name: "Non-positive ignored", sold: sold("0", "-5", "50"), expected: "50"},
		{name: "Only zeros", sold: sold("0", "0"), expected: "0"},
		{name: "Rounded to cents", sold: sold("10.005", "10.01"), expected: "10.01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			got := analyzer.CalculateFairPrice(tc.sold)

			rq.True(got.Equal(decimal.RequireFromString(tc.expected)), "expected %s, got %s", tc.expected, got)
			rq.False(got.IsNegative())
		})
	}
}

func TestCalculateFairPriceDeterministic(t *testing.T) {
	rq := require.New(t)

	a := analyzer.CalculateFairPrice(sold("5", "3", "9", "1", "7", "2"))
	b := analyzer.CalculateFairPrice(sold("1", "2", "3", "5", "7", "9"))

	rq.True(a.Equal(b))
	rq.True(a.Equal(decimal.RequireFromString("4")))
}

func TestCalculateFairPriceDoesNotReorderInput(t *testing.T) {
	rq := require.New(t)

	input := sold("3", "1", "2")
	_ = analyzer.CalculateFairPrice(input)

	rq.Equal("3", input[0].Price.String())
	rq.Equal("1", input[1].Price.String())
}

func TestGetDealMeter(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		price      string
		fair       string
		score      int
		label      string
		isDeal     bool
		sufficient bool
	}{
		{name: "Half price", price: "50", fair: "100", score: 50, label: "Great Deal", isDeal: true, sufficient: true},
		{name: "Exactly fair", price: "100", fair: "100", score: 100, label: "Not a Deal", sufficient: true},
		{name: "Great boundary", price: "69", fair: "100", score: 69, label: "Great Deal", isDeal: true, sufficient: true},
		{name: "Good lower boundary", price: "70", fair: "100", score: 70, label: "Good Deal", isDeal: true, sufficient: true},
		{name: "Good upper boundary", price: "99", fair: "100", score: 99, label: "Good Deal", isDeal: true, sufficient: true},
		{name: "Rounds up into not a deal", price: "99.6", fair: "100", score: 100, label: "Not a Deal", sufficient: true},
		{name: "Overpriced", price: "250", fair: "100", score: 250, label: "Not a Deal", sufficient: true},
		{name: "Auction sentinel", price: "0.01", fair: "80", score: 0, label: "Great Deal", isDeal: true, sufficient: true},
		{name: "Zero fair price", price: "10", fair: "0", score: 100, label: "No Market Data"},
		{name: "Negative fair price", price: "10", fair: "-1", score: 100, label: "No Market Data"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			eval := analyzer.GetDealMeter(decimal.RequireFromString(tc.price), decimal.RequireFromString(tc.fair))

			rq.Equal(tc.score, eval.Score)
			rq.Equal(tc.label, eval.Label)
			rq.Equal(tc.isDeal, eval.IsDeal())
			rq.Equal(tc.sufficient, eval.Sufficient)
			rq.NotEmpty(eval.Emoji)
		})
	}
}

func TestCalculateFairPriceWithinRange(t *testing.T) {
	rq := require.New(t)
	random := tests.NewRandomizer()

	for range 100 {
		n := 1 + int(random.Float64()*20)

		items := make([]entity.SoldItem, 0, n)
		lo, hi := decimal.Zero, decimal.Zero
		for i := range n {
			price := decimal.NewFromFloat(1 + random.Float64()*1000).Round(2)
			items = append(items, entity.SoldItem{Price: price})

			if i == 0 || price.LessThan(lo) {
				lo = price
			}
			if i == 0 || price.GreaterThan(hi) {
				hi = price
			}
		}

		fair := analyzer.CalculateFairPrice(items)

		rq.True(fair.GreaterThanOrEqual(lo), "fair %s below min %s", fair, lo)
		rq.True(fair.LessThanOrEqual(hi), "fair %s above max %s", fair, hi)
	}
}

func TestGetDealMeterMonotonic(t *testing.T) {
	rq := require.New(t)
	random := tests.NewRandomizer()

	fair := decimal.NewFromInt(200)

	for range 100 {
		a := decimal.NewFromFloat(random.Float64() * 400).Round(2)
		b := a.Add(decimal.NewFromFloat(random.Float64() * 50).Round(2))

		cheaper := analyzer.GetDealMeter(a, fair)
		pricier := analyzer.GetDealMeter(b, fair)

		rq.LessOrEqual(cheaper.Score, pricier.Score)
		if pricier.IsDeal() {
			rq.True(cheaper.IsDeal())
		}
	}
}
