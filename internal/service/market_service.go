// Package service runs the read pipelines: build a statement, execute it on
// the store, reshape the rows into domain values.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
	"github.com/alanyoungcy/marketsrpc/internal/query"
	"github.com/alanyoungcy/marketsrpc/internal/reshape"
)

// MarketService lists markets and loads their full records.
type MarketService struct {
	store  query.Store
	logger *slog.Logger
}

// NewMarketService creates a MarketService reading from store.
func NewMarketService(store query.Store, logger *slog.Logger) *MarketService {
	return &MarketService{
		store:  store,
		logger: logger.With(slog.String("component", "market_service")),
	}
}

// Markets returns the ids of markets matching f in the requested order.
func (s *MarketService) Markets(ctx context.Context, f domain.MarketsFilter) ([]string, error) {
	sel, err := query.Markets(f)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Select(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("market_service: markets: %w", err)
	}
	return reshape.MarketIDs(rows)
}

// MarketsInfo returns the records of the given markets in request order.
// Unknown ids are skipped.
func (s *MarketService) MarketsInfo(ctx context.Context, marketIDs []string) ([]domain.MarketInfo, error) {
	if len(marketIDs) == 0 {
		return []domain.MarketInfo{}, nil
	}
	q := query.MarketsInfo(marketIDs)

	markets, err := s.store.Select(ctx, q.Markets)
	if err != nil {
		return nil, fmt.Errorf("market_service: markets info: %w", err)
	}
	if len(markets) == 0 {
		return []domain.MarketInfo{}, nil
	}
	outcomes, err := s.store.Select(ctx, q.Outcomes)
	if err != nil {
		return nil, fmt.Errorf("market_service: outcomes: %w", err)
	}
	consensus, err := s.store.Select(ctx, q.Consensus)
	if err != nil {
		return nil, fmt.Errorf("market_service: consensus: %w", err)
	}

	infos, err := reshape.MarketsInfo(marketIDs, markets, outcomes, consensus)
	if err != nil {
		return nil, err
	}
	if len(infos) < len(marketIDs) {
		s.logger.DebugContext(ctx, "market_service: unknown market ids skipped",
			slog.Int("requested", len(marketIDs)),
			slog.Int("found", len(infos)),
		)
	}
	return infos, nil
}
