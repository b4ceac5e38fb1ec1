package pnl

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func trade(side domain.OrderSide, amount, price string) domain.AccountTrade {
	return domain.AccountTrade{MarketID: "m1", Outcome: 1, Side: side, Amount: d(amount), Price: d(price)}
}

func TestAverageCost(t *testing.T) {
	buy, sell := domain.OrderSideBuy, domain.OrderSideSell
	tests := []struct {
		name       string
		trades     []domain.AccountTrade
		last       string
		position   string
		mean       string
		realized   string
		unrealized string
	}{
		{
			name:     "no trades",
			last:     "0.5",
			position: "0", mean: "0", realized: "0", unrealized: "0",
		},
		{
			name:     "two buys average the open price",
			trades:   []domain.AccountTrade{trade(buy, "10", "0.4"), trade(buy, "10", "0.6")},
			last:     "0.7",
			position: "20", mean: "0.5", realized: "0", unrealized: "4",
		},
		{
			name:     "partial sell realizes against the mean",
			trades:   []domain.AccountTrade{trade(buy, "10", "0.4"), trade(buy, "10", "0.6"), trade(sell, "5", "0.8")},
			last:     "0.7",
			position: "15", mean: "0.5", realized: "1.5", unrealized: "3",
		},
		{
			name:     "short covered at a lower price gains",
			trades:   []domain.AccountTrade{trade(sell, "10", "0.6"), trade(buy, "4", "0.5")},
			last:     "0.55",
			position: "-6", mean: "0.6", realized: "0.4", unrealized: "0.3",
		},
		{
			name:     "crossing zero opens the remainder at the trade price",
			trades:   []domain.AccountTrade{trade(buy, "5", "0.3"), trade(sell, "8", "0.5")},
			last:     "0.5",
			position: "-3", mean: "0.5", realized: "1", unrealized: "0",
		},
		{
			name:     "flat after round trip",
			trades:   []domain.AccountTrade{trade(buy, "2", "0.25"), trade(sell, "2", "0.75")},
			last:     "0.9",
			position: "0", mean: "0", realized: "1", unrealized: "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AverageCost{}.Calculate(tt.trades, d(tt.last))
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			check := func(field string, got decimal.Decimal, want string) {
				if !got.Equal(d(want)) {
					t.Errorf("%s = %s, want %s", field, got, want)
				}
			}
			check("position", got.Position, tt.position)
			check("meanOpenPrice", got.MeanOpenPrice, tt.mean)
			check("realized", got.Realized, tt.realized)
			check("unrealized", got.Unrealized, tt.unrealized)
			check("queued", got.Queued, "0")
		})
	}
}

func TestAverageCostRejectsMixedOutcomes(t *testing.T) {
	other := trade(domain.OrderSideBuy, "1", "0.5")
	other.Outcome = 2
	_, err := AverageCost{}.Calculate([]domain.AccountTrade{trade(domain.OrderSideBuy, "1", "0.5"), other}, d("0.5"))
	if err == nil {
		t.Fatal("expected error for mixed outcomes")
	}
}

func TestCalculatorFunc(t *testing.T) {
	var calls int
	c := CalculatorFunc(func(trades []domain.AccountTrade, last decimal.Decimal) (domain.ProfitLoss, error) {
		calls++
		return domain.ProfitLoss{Position: decimal.NewFromInt(int64(len(trades)))}, nil
	})
	got, err := c.Calculate(make([]domain.AccountTrade, 3), decimal.Zero)
	if err != nil || calls != 1 || !got.Position.Equal(decimal.NewFromInt(3)) {
		t.Errorf("got %+v, %v after %d calls", got, err, calls)
	}
}
