package domain

import "github.com/shopspring/decimal"

// TimestampedPriceAmount is one price history sample.
type TimestampedPriceAmount struct {
	Price     decimal.Decimal
	Amount    decimal.Decimal
	Timestamp int64
}

// MarketPriceHistory maps outcome → samples. Outcomes lists the keys of
// ByOutcome in order of first appearance in the result set.
type MarketPriceHistory struct {
	Outcomes  []int
	ByOutcome map[int][]TimestampedPriceAmount
}

// NewMarketPriceHistory returns an empty, non-nil history.
func NewMarketPriceHistory() *MarketPriceHistory {
	return &MarketPriceHistory{
		Outcomes:  []int{},
		ByOutcome: make(map[int][]TimestampedPriceAmount),
	}
}

// Append adds a sample to outcome, recording the outcome on first sight.
func (h *MarketPriceHistory) Append(outcome int, s TimestampedPriceAmount) {
	if _, ok := h.ByOutcome[outcome]; !ok {
		h.Outcomes = append(h.Outcomes, outcome)
	}
	h.ByOutcome[outcome] = append(h.ByOutcome[outcome], s)
}

// AccountTrade is a fill seen from one account's side.
type AccountTrade struct {
	MarketID        string
	Outcome         int
	Side            OrderSide
	Price           decimal.Decimal
	Amount          decimal.Decimal
	Timestamp       int64
	BlockNumber     int64
	TransactionHash string
	LogIndex        int64
}

// MarketOutcome identifies one outcome of one market.
type MarketOutcome struct {
	MarketID string
	Outcome  int
}

// ProfitLoss is the profit-and-loss summary of one market outcome.
type ProfitLoss struct {
	MarketID      string
	Outcome       int
	Realized      decimal.Decimal
	Unrealized    decimal.Decimal
	Position      decimal.Decimal
	MeanOpenPrice decimal.Decimal
	Queued        decimal.Decimal
}
