package dispatch

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"github.com/alanyoungcy/marketsrpc/internal/wire"
)

// MarketsAPIServer is the server side of marketsapi.MarketsApi.
type MarketsAPIServer interface {
	GetMarkets(context.Context, *wire.GetMarketsRequest) (*wire.GetMarketsResponse, error)
	BulkGetMarkets(context.Context, *wire.BulkGetMarketsRequest) (*wire.BulkGetMarketsResponse, error)
	GetMarketsInfo(context.Context, *wire.GetMarketsInfoRequest) (*wire.GetMarketsInfoResponse, error)
	BulkGetMarketsInfo(context.Context, *wire.BulkGetMarketsInfoRequest) (*wire.BulkGetMarketsInfoResponse, error)
	GetMarketPriceHistory(context.Context, *wire.GetMarketPriceHistoryRequest) (*wire.GetMarketPriceHistoryResponse, error)
	BulkGetMarketPriceHistory(context.Context, *wire.BulkGetMarketPriceHistoryRequest) (*wire.BulkGetMarketPriceHistoryResponse, error)
	GetOrders(context.Context, *wire.GetOrdersRequest) (*wire.GetOrdersResponse, error)
	BulkGetOrders(context.Context, *wire.BulkGetOrdersRequest) (*wire.BulkGetOrdersResponse, error)
	GetProfitLoss(context.Context, *wire.GetProfitLossRequest) (*wire.GetProfitLossResponse, error)
	BulkGetProfitLoss(context.Context, *wire.BulkGetProfitLossRequest) (*wire.BulkGetProfitLossResponse, error)
}

// ServiceDesc describes MarketsApi for grpc.Server.RegisterService. Requests
// and responses cross the transport as dynamic messages of the wire schema.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: wire.ServiceName,
	HandlerType: (*MarketsAPIServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetMarkets", MarketsAPIServer.GetMarkets),
		unary("BulkGetMarkets", MarketsAPIServer.BulkGetMarkets),
		unary("GetMarketsInfo", MarketsAPIServer.GetMarketsInfo),
		unary("BulkGetMarketsInfo", MarketsAPIServer.BulkGetMarketsInfo),
		unary("GetMarketPriceHistory", MarketsAPIServer.GetMarketPriceHistory),
		unary("BulkGetMarketPriceHistory", MarketsAPIServer.BulkGetMarketPriceHistory),
		unary("GetOrders", MarketsAPIServer.GetOrders),
		unary("BulkGetOrders", MarketsAPIServer.BulkGetOrders),
		unary("GetProfitLoss", MarketsAPIServer.GetProfitLoss),
		unary("BulkGetProfitLoss", MarketsAPIServer.BulkGetProfitLoss),
	},
	Metadata: wire.FileName,
}

// Register adds srv to s.
func Register(s grpc.ServiceRegistrar, srv MarketsAPIServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed method to a grpc.MethodDesc.
func unary[Req any, PReq interface {
	*Req
	wire.Message
}, Resp wire.Message](name string, call func(MarketsAPIServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + wire.ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := wire.New(PReq(new(Req)).ProtoName())
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				pm, ok := req.(proto.Message)
				if !ok {
					return nil, status.Errorf(codes.Internal, "dispatch: %s: request is %T", name, req)
				}
				typed := PReq(new(Req))
				if err := wire.FromProto(pm, typed); err != nil {
					return nil, status.Error(codes.Internal, err.Error())
				}
				resp, err := call(srv.(MarketsAPIServer), ctx, typed)
				if err != nil {
					return nil, err
				}
				return wire.ToProto(resp), nil
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, handler)
		},
	}
}
