// Package client is a typed gRPC client for marketsapi.MarketsApi.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/alanyoungcy/marketsrpc/internal/wire"
)

// Client calls MarketsApi over a gRPC connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// New creates a Client on cc.
func New(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func call[Resp any, PResp interface {
	*Resp
	wire.Message
}](ctx context.Context, c *Client, method string, in wire.Message, opts []grpc.CallOption) (*Resp, error) {
	out := PResp(new(Resp))
	reply := wire.New(out.ProtoName())
	if err := c.cc.Invoke(ctx, "/"+wire.ServiceName+"/"+method, wire.ToProto(in), reply, opts...); err != nil {
		return nil, err
	}
	if err := wire.FromProto(reply, out); err != nil {
		return nil, fmt.Errorf("client: %s: %w", method, err)
	}
	return (*Resp)(out), nil
}

func (c *Client) GetMarkets(ctx context.Context, in *wire.GetMarketsRequest, opts ...grpc.CallOption) (*wire.GetMarketsResponse, error) {
	return call[wire.GetMarketsResponse](ctx, c, "GetMarkets", in, opts)
}

func (c *Client) BulkGetMarkets(ctx context.Context, in *wire.BulkGetMarketsRequest, opts ...grpc.CallOption) (*wire.BulkGetMarketsResponse, error) {
	return call[wire.BulkGetMarketsResponse](ctx, c, "BulkGetMarkets", in, opts)
}

func (c *Client) GetMarketsInfo(ctx context.Context, in *wire.GetMarketsInfoRequest, opts ...grpc.CallOption) (*wire.GetMarketsInfoResponse, error) {
	return call[wire.GetMarketsInfoResponse](ctx, c, "GetMarketsInfo", in, opts)
}

func (c *Client) BulkGetMarketsInfo(ctx context.Context, in *wire.BulkGetMarketsInfoRequest, opts ...grpc.CallOption) (*wire.BulkGetMarketsInfoResponse, error) {
	return call[wire.BulkGetMarketsInfoResponse](ctx, c, "BulkGetMarketsInfo", in, opts)
}

func (c *Client) GetMarketPriceHistory(ctx context.Context, in *wire.GetMarketPriceHistoryRequest, opts ...grpc.CallOption) (*wire.GetMarketPriceHistoryResponse, error) {
	return call[wire.GetMarketPriceHistoryResponse](ctx, c, "GetMarketPriceHistory", in, opts)
}

func (c *Client) BulkGetMarketPriceHistory(ctx context.Context, in *wire.BulkGetMarketPriceHistoryRequest, opts ...grpc.CallOption) (*wire.BulkGetMarketPriceHistoryResponse, error) {
	return call[wire.BulkGetMarketPriceHistoryResponse](ctx, c, "BulkGetMarketPriceHistory", in, opts)
}

func (c *Client) GetOrders(ctx context.Context, in *wire.GetOrdersRequest, opts ...grpc.CallOption) (*wire.GetOrdersResponse, error) {
	return call[wire.GetOrdersResponse](ctx, c, "GetOrders", in, opts)
}

func (c *Client) BulkGetOrders(ctx context.Context, in *wire.BulkGetOrdersRequest, opts ...grpc.CallOption) (*wire.BulkGetOrdersResponse, error) {
	return call[wire.BulkGetOrdersResponse](ctx, c, "BulkGetOrders", in, opts)
}

func (c *Client) GetProfitLoss(ctx context.Context, in *wire.GetProfitLossRequest, opts ...grpc.CallOption) (*wire.GetProfitLossResponse, error) {
	return call[wire.GetProfitLossResponse](ctx, c, "GetProfitLoss", in, opts)
}

func (c *Client) BulkGetProfitLoss(ctx context.Context, in *wire.BulkGetProfitLossRequest, opts ...grpc.CallOption) (*wire.BulkGetProfitLossResponse, error) {
	return call[wire.BulkGetProfitLossResponse](ctx, c, "BulkGetProfitLoss", in, opts)
}
