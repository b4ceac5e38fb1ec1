// Package pnl computes profit and loss for one account's trades in a single
// market outcome.
package pnl

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
)

// Calculator turns an account's trades in one market outcome, in execution
// order, and that outcome's last traded price into a profit/loss summary.
// MarketID and Outcome of the result are filled in by the caller.
type Calculator interface {
	Calculate(trades []domain.AccountTrade, lastPrice decimal.Decimal) (domain.ProfitLoss, error)
}

// CalculatorFunc adapts a function to Calculator.
type CalculatorFunc func(trades []domain.AccountTrade, lastPrice decimal.Decimal) (domain.ProfitLoss, error)

func (f CalculatorFunc) Calculate(trades []domain.AccountTrade, lastPrice decimal.Decimal) (domain.ProfitLoss, error) {
	return f(trades, lastPrice)
}

// meanPrecision is the number of fractional digits kept for the mean open
// price, the only quantity that needs a division.
const meanPrecision = 18

var errMixedOutcomes = errors.New("pnl: trades span more than one market outcome")

// AverageCost tracks a signed position (long positive, short negative) and
// its weighted mean open price. Trades that grow the position move the mean;
// trades that shrink it realize (price - mean) per share in the position's
// direction, and a trade that crosses zero opens the remainder at its price.
type AverageCost struct{}

var _ Calculator = AverageCost{}

func (AverageCost) Calculate(trades []domain.AccountTrade, lastPrice decimal.Decimal) (domain.ProfitLoss, error) {
	var (
		position = decimal.Zero
		mean     = decimal.Zero
		realized = decimal.Zero
	)
	for i, t := range trades {
		if i > 0 && (t.MarketID != trades[0].MarketID || t.Outcome != trades[0].Outcome) {
			return domain.ProfitLoss{}, errMixedOutcomes
		}
		if t.Amount.IsNegative() {
			return domain.ProfitLoss{}, fmt.Errorf("pnl: trade %s/%d has negative amount %s", t.TransactionHash, t.LogIndex, t.Amount)
		}

		delta := t.Amount
		if delta.IsZero() {
			continue
		}
		if t.Side == domain.OrderSideSell {
			delta = delta.Neg()
		}

		switch {
		case position.IsZero():
			position = delta
			mean = t.Price
		case position.Sign() == delta.Sign():
			total := position.Add(delta)
			mean = mean.Mul(position.Abs()).Add(t.Price.Mul(delta.Abs())).DivRound(total.Abs(), meanPrecision)
			position = total
		default:
			closed := decimal.Min(position.Abs(), delta.Abs())
			gain := t.Price.Sub(mean).Mul(closed)
			if position.IsNegative() {
				gain = gain.Neg()
			}
			realized = realized.Add(gain)
			position = position.Add(delta)
			switch {
			case position.IsZero():
				mean = decimal.Zero
			case position.Sign() == delta.Sign():
				mean = t.Price
			}
		}
	}

	unrealized := decimal.Zero
	if !position.IsZero() {
		unrealized = lastPrice.Sub(mean).Mul(position)
	}
	return domain.ProfitLoss{
		Realized:      realized,
		Unrealized:    unrealized,
		Position:      position,
		MeanOpenPrice: mean,
		Queued:        decimal.Zero,
	}, nil
}
