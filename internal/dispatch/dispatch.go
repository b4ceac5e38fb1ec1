// Package dispatch implements the marketsapi.MarketsApi RPC service: it
// validates requests, runs each pipeline through a single-worker queue, maps
// results to wire messages and classifies failures into gRPC status codes.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/grpc/codes"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
	"github.com/alanyoungcy/marketsrpc/internal/wire"
)

// MarketService defines the market reads the dispatcher requires.
type MarketService interface {
	Markets(ctx context.Context, f domain.MarketsFilter) ([]string, error)
	MarketsInfo(ctx context.Context, marketIDs []string) ([]domain.MarketInfo, error)
}

// OrderService defines the order reads the dispatcher requires.
type OrderService interface {
	Orders(ctx context.Context, f domain.OrdersFilter) (domain.GroupedOrders, error)
}

// TradeService defines the trade reads the dispatcher requires.
type TradeService interface {
	PriceHistory(ctx context.Context, f domain.PriceHistoryFilter) (*domain.MarketPriceHistory, error)
	ProfitLoss(ctx context.Context, f domain.TradingHistoryFilter) ([]domain.ProfitLoss, error)
}

// Dispatcher serves every MarketsApi method.
type Dispatcher struct {
	markets MarketService
	orders  OrderService
	trades  TradeService
	worker  *Worker
	mapper  *wire.Mapper
	logger  *slog.Logger
}

var _ MarketsAPIServer = (*Dispatcher)(nil)

// New creates a Dispatcher. All store access is serialized through worker.
func New(markets MarketService, orders OrderService, trades TradeService, worker *Worker, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		markets: markets,
		orders:  orders,
		trades:  trades,
		worker:  worker,
		mapper:  wire.NewMapper(logger),
		logger:  logger.With(slog.String("component", "dispatch")),
	}
}

// finish classifies err and logs failures that are not the caller's fault.
func (d *Dispatcher) finish(ctx context.Context, method string, err error) error {
	if err == nil {
		return nil
	}
	if Code(err) == codes.Unavailable {
		d.logger.ErrorContext(ctx, "dispatch: call failed",
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
	}
	return Status(err)
}

// run executes fn on the worker.
func (d *Dispatcher) run(ctx context.Context, fn func(context.Context) error) error {
	return d.worker.Do(ctx, fn)
}

// bulk runs one for each request in order and stops at the first failure.
// Results gathered before a failure are dropped.
func bulk[Req, Resp any](ctx context.Context, reqs []Req, one func(context.Context, Req) (Resp, error)) ([]Resp, error) {
	out := make([]Resp, 0, len(reqs))
	for i, r := range reqs {
		resp, err := one(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		out = append(out, resp)
	}
	return out, nil
}

func (d *Dispatcher) getMarkets(ctx context.Context, r *wire.GetMarketsRequest) (*wire.GetMarketsResponse, error) {
	if err := requireAddress("universe", r.Universe); err != nil {
		return nil, err
	}
	if err := checkAddress("creator", r.Creator); err != nil {
		return nil, err
	}
	if err := checkAddress("designated_reporter", r.DesignatedReporter); err != nil {
		return nil, err
	}
	var ids []string
	err := d.run(ctx, func(ctx context.Context) error {
		var err error
		ids, err = d.markets.Markets(ctx, wire.MarketsFilter(r))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &wire.GetMarketsResponse{MarketAddresses: ids}, nil
}

func (d *Dispatcher) GetMarkets(ctx context.Context, r *wire.GetMarketsRequest) (*wire.GetMarketsResponse, error) {
	resp, err := d.getMarkets(ctx, r)
	return resp, d.finish(ctx, "GetMarkets", err)
}

func (d *Dispatcher) BulkGetMarkets(ctx context.Context, r *wire.BulkGetMarketsRequest) (*wire.BulkGetMarketsResponse, error) {
	out, err := bulk(ctx, r.Requests, d.getMarkets)
	if err != nil {
		return nil, d.finish(ctx, "BulkGetMarkets", err)
	}
	return &wire.BulkGetMarketsResponse{Responses: out}, nil
}

func (d *Dispatcher) getMarketsInfo(ctx context.Context, r *wire.GetMarketsInfoRequest) (*wire.GetMarketsInfoResponse, error) {
	for _, id := range r.MarketAddresses {
		if err := requireAddress("market_addresses", id); err != nil {
			return nil, err
		}
	}
	var infos []domain.MarketInfo
	err := d.run(ctx, func(ctx context.Context) error {
		var err error
		infos, err = d.markets.MarketsInfo(ctx, r.MarketAddresses)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wire.MarketsInfoOf(infos), nil
}

func (d *Dispatcher) GetMarketsInfo(ctx context.Context, r *wire.GetMarketsInfoRequest) (*wire.GetMarketsInfoResponse, error) {
	resp, err := d.getMarketsInfo(ctx, r)
	return resp, d.finish(ctx, "GetMarketsInfo", err)
}

func (d *Dispatcher) BulkGetMarketsInfo(ctx context.Context, r *wire.BulkGetMarketsInfoRequest) (*wire.BulkGetMarketsInfoResponse, error) {
	out, err := bulk(ctx, r.Requests, d.getMarketsInfo)
	if err != nil {
		return nil, d.finish(ctx, "BulkGetMarketsInfo", err)
	}
	return &wire.BulkGetMarketsInfoResponse{Responses: out}, nil
}

func (d *Dispatcher) getPriceHistory(ctx context.Context, r *wire.GetMarketPriceHistoryRequest) (*wire.GetMarketPriceHistoryResponse, error) {
	if err := requireAddress("market_id", r.MarketID); err != nil {
		return nil, err
	}
	var h *domain.MarketPriceHistory
	err := d.run(ctx, func(ctx context.Context) error {
		var err error
		h, err = d.trades.PriceHistory(ctx, wire.PriceHistoryFilter(r))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &wire.GetMarketPriceHistoryResponse{MarketPriceHistory: wire.PriceHistoryOf(h)}, nil
}

func (d *Dispatcher) GetMarketPriceHistory(ctx context.Context, r *wire.GetMarketPriceHistoryRequest) (*wire.GetMarketPriceHistoryResponse, error) {
	resp, err := d.getPriceHistory(ctx, r)
	return resp, d.finish(ctx, "GetMarketPriceHistory", err)
}

// BulkGetMarketPriceHistory keys results by market id, so a market id may
// appear only once in the batch.
func (d *Dispatcher) BulkGetMarketPriceHistory(ctx context.Context, r *wire.BulkGetMarketPriceHistoryRequest) (*wire.BulkGetMarketPriceHistoryResponse, error) {
	seen := make(map[string]struct{}, len(r.Requests))
	for i, req := range r.Requests {
		if _, dup := seen[req.MarketID]; dup {
			err := fmt.Errorf("request %d: %w", i, domain.Validationf("market_id", "duplicate market %s", req.MarketID))
			return nil, d.finish(ctx, "BulkGetMarketPriceHistory", err)
		}
		seen[req.MarketID] = struct{}{}
	}
	out, err := bulk(ctx, r.Requests, d.getPriceHistory)
	if err != nil {
		return nil, d.finish(ctx, "BulkGetMarketPriceHistory", err)
	}
	resp := &wire.BulkGetMarketPriceHistoryResponse{
		MarketPriceHistories: make(map[string]*wire.MarketPriceHistory, len(out)),
	}
	for i, h := range out {
		resp.MarketPriceHistories[r.Requests[i].MarketID] = h.MarketPriceHistory
	}
	return resp, nil
}

func (d *Dispatcher) getOrders(ctx context.Context, r *wire.GetOrdersRequest) (*wire.GetOrdersResponse, error) {
	for _, c := range []struct{ field, v string }{
		{"universe", r.Universe},
		{"market_id", r.MarketID},
		{"creator", r.Creator},
	} {
		if err := checkAddress(c.field, c.v); err != nil {
			return nil, err
		}
	}
	var g domain.GroupedOrders
	err := d.run(ctx, func(ctx context.Context) error {
		var err error
		g, err = d.orders.Orders(ctx, wire.OrdersFilter(r))
		return err
	})
	if err != nil {
		return nil, err
	}
	return d.mapper.Orders(ctx, g), nil
}

func (d *Dispatcher) GetOrders(ctx context.Context, r *wire.GetOrdersRequest) (*wire.GetOrdersResponse, error) {
	resp, err := d.getOrders(ctx, r)
	return resp, d.finish(ctx, "GetOrders", err)
}

func (d *Dispatcher) BulkGetOrders(ctx context.Context, r *wire.BulkGetOrdersRequest) (*wire.BulkGetOrdersResponse, error) {
	out, err := bulk(ctx, r.Requests, d.getOrders)
	if err != nil {
		return nil, d.finish(ctx, "BulkGetOrders", err)
	}
	return &wire.BulkGetOrdersResponse{Responses: out}, nil
}

func (d *Dispatcher) getProfitLoss(ctx context.Context, r *wire.GetProfitLossRequest) (*wire.GetProfitLossResponse, error) {
	if err := requireAddress("universe", r.Universe); err != nil {
		return nil, err
	}
	if err := requireAddress("account", r.Account); err != nil {
		return nil, err
	}
	if err := checkAddress("market_id", r.MarketID); err != nil {
		return nil, err
	}
	var pl []domain.ProfitLoss
	err := d.run(ctx, func(ctx context.Context) error {
		var err error
		pl, err = d.trades.ProfitLoss(ctx, wire.TradingHistoryFilter(r))
		return err
	})
	if err != nil {
		return nil, err
	}
	return wire.ProfitLossOf(pl), nil
}

func (d *Dispatcher) GetProfitLoss(ctx context.Context, r *wire.GetProfitLossRequest) (*wire.GetProfitLossResponse, error) {
	resp, err := d.getProfitLoss(ctx, r)
	return resp, d.finish(ctx, "GetProfitLoss", err)
}

func (d *Dispatcher) BulkGetProfitLoss(ctx context.Context, r *wire.BulkGetProfitLossRequest) (*wire.BulkGetProfitLossResponse, error) {
	out, err := bulk(ctx, r.Requests, d.getProfitLoss)
	if err != nil {
		return nil, d.finish(ctx, "BulkGetProfitLoss", err)
	}
	return &wire.BulkGetProfitLossResponse{Responses: out}, nil
}
