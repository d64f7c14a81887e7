// Package analyzer оценивает справедливую цену по проданным аналогам и выгодность лота.
package analyzer

import (
	"slices"

	"github.com/shopspring/decimal"

	"deal_radar/internal/domain/entity"
)

const (
	greatDealScore = 70

	colorGreat   = 0x2ECC71
	colorGood    = 0xF1C40F
	colorBad     = 0xE74C3C
	colorUnknown = 0x95A5A6
)

// DefaultFairPrice возвращается, когда продаж нет. Ноль означает "данных недостаточно".
var DefaultFairPrice = decimal.Zero //nolint:gochecknoglobals

var hundred = decimal.NewFromInt(100) //nolint:gochecknoglobals

// CalculateFairPrice возвращает медиану положительных цен продаж, округлённую до центов.
// Медиана устойчива к выбросам (лоты "только коробка", опечатки продавцов).
func CalculateFairPrice(sold []entity.SoldItem) decimal.Decimal {
	prices := make([]decimal.Decimal, 0, len(sold))
	for _, s := range sold {
		if s.Price.IsPositive() {
			prices = append(prices, s.Price)
		}
	}

	if len(prices) == 0 {
		return DefaultFairPrice
	}

	slices.SortFunc(prices, func(a, b decimal.Decimal) int {
		return a.Cmp(b)
	})

	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		return prices[mid].Round(2)
	}

	return prices[mid-1].Add(prices[mid]).Div(decimal.NewFromInt(2)).Round(2)
}

// GetDealMeter считает Score = price / fair * 100, округление до целого.
// Границы: <70 Great, 70..99 Good, >=100 Not a Deal. Без справедливой цены деления нет.
func GetDealMeter(price, fair decimal.Decimal) entity.DealEvaluation {
	if !fair.IsPositive() {
		return entity.DealEvaluation{
			Score:      entity.NotADealScore,
			Label:      "No Market Data",
			Color:      colorUnknown,
			Emoji:      "❔",
			Sufficient: false,
		}
	}

	score := int(price.Div(fair).Mul(hundred).Round(0).IntPart())
	if score < 0 {
		score = 0
	}

	eval := entity.DealEvaluation{Score: score, Sufficient: true}

	switch {
	case score < greatDealScore:
		eval.Label, eval.Color, eval.Emoji = "Great Deal", colorGreat, "🔥"
	case score < entity.NotADealScore:
		eval.Label, eval.Color, eval.Emoji = "Good Deal", colorGood, "✅"
	default:
		eval.Label, eval.Color, eval.Emoji = "Not a Deal", colorBad, "❌"
	}

	return eval
}
