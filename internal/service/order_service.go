package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
	"github.com/alanyoungcy/marketsrpc/internal/query"
	"github.com/alanyoungcy/marketsrpc/internal/reshape"
)

// OrderService reads order book entries.
type OrderService struct {
	store  query.Store
	logger *slog.Logger
}

// NewOrderService creates an OrderService reading from store.
func NewOrderService(store query.Store, logger *slog.Logger) *OrderService {
	return &OrderService{
		store:  store,
		logger: logger.With(slog.String("component", "order_service")),
	}
}

// Orders returns the orders matching f grouped by market, outcome and side.
func (s *OrderService) Orders(ctx context.Context, f domain.OrdersFilter) (domain.GroupedOrders, error) {
	sel, err := query.Orders(f)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Select(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("order_service: orders: %w", err)
	}
	return reshape.Orders(rows)
}
