package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
	"github.com/alanyoungcy/marketsrpc/internal/pnl"
	"github.com/alanyoungcy/marketsrpc/internal/query"
	"github.com/alanyoungcy/marketsrpc/internal/reshape"
)

// TradeService reads fills: per-market price history and per-account
// profit and loss.
type TradeService struct {
	store  query.Store
	calc   pnl.Calculator
	logger *slog.Logger
}

// NewTradeService creates a TradeService. calc computes the per-outcome
// profit and loss summaries.
func NewTradeService(store query.Store, calc pnl.Calculator, logger *slog.Logger) *TradeService {
	return &TradeService{
		store:  store,
		calc:   calc,
		logger: logger.With(slog.String("component", "trade_service")),
	}
}

// PriceHistory returns the samples of each outcome of f.MarketID.
func (s *TradeService) PriceHistory(ctx context.Context, f domain.PriceHistoryFilter) (*domain.MarketPriceHistory, error) {
	sel, err := query.PriceHistory(f)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Select(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("trade_service: price history %s: %w", f.MarketID, err)
	}
	return reshape.PriceHistory(rows)
}

// ProfitLoss computes one summary per market outcome the account traded,
// in order of the outcome's first trade.
func (s *TradeService) ProfitLoss(ctx context.Context, f domain.TradingHistoryFilter) ([]domain.ProfitLoss, error) {
	sel, err := query.TradingHistory(f)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Select(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("trade_service: trading history: %w", err)
	}
	trades, err := reshape.AccountTrades(f.Account, rows)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return []domain.ProfitLoss{}, nil
	}

	var (
		keys     []domain.MarketOutcome
		groups   = make(map[domain.MarketOutcome][]domain.AccountTrade)
		markets  []string
		seenMkts = make(map[string]bool)
	)
	for _, t := range trades {
		key := domain.MarketOutcome{MarketID: t.MarketID, Outcome: t.Outcome}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], t)
		if !seenMkts[t.MarketID] {
			seenMkts[t.MarketID] = true
			markets = append(markets, t.MarketID)
		}
	}

	priceRows, err := s.store.Select(ctx, query.OutcomePrices(markets))
	if err != nil {
		return nil, fmt.Errorf("trade_service: outcome prices: %w", err)
	}
	prices, err := reshape.OutcomePrices(priceRows)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ProfitLoss, 0, len(keys))
	for _, key := range keys {
		last, ok := prices[key]
		if !ok {
			s.logger.WarnContext(ctx, "trade_service: no last price, using zero",
				slog.String("market_id", key.MarketID),
				slog.Int("outcome", key.Outcome),
			)
			last = decimal.Zero
		}
		pl, err := s.calc.Calculate(groups[key], last)
		if err != nil {
			return nil, fmt.Errorf("trade_service: profit/loss %s/%d: %w", key.MarketID, key.Outcome, err)
		}
		pl.MarketID = key.MarketID
		pl.Outcome = key.Outcome
		out = append(out, pl)
	}
	return out, nil
}
