package entity

import "github.com/shopspring/decimal"

// NotADealScore: с этого значения (включительно) цена считается невыгодной.
const NotADealScore = 100

// DealEvaluation: оценка цены относительно справедливой. Чем ниже Score, тем выгоднее.
type DealEvaluation struct {
	Score int
	Label string
	Color int
	Emoji string
	// Sufficient: false, если справедливой цены нет и оценка условная.
	Sufficient bool
}

func (e DealEvaluation) IsDeal() bool {
	return e.Sufficient && e.Score < NotADealScore
}

// Deal: лот, прошедший оценку, вместе с контекстом группы.
type Deal struct {
	Listing    Listing
	Price      decimal.Decimal
	Display    string
	FairPrice  decimal.Decimal
	Evaluation DealEvaluation
}
