// Package wire defines the marketsapi protobuf schema, typed Go forms of its
// messages, and the mapping between those and the domain model.
//
// The schema is assembled as a FileDescriptorProto at init, validated with
// protodesc and registered in protoregistry.GlobalFiles, so server
// reflection and any protobuf tooling see it like generated code. Messages
// travel as dynamicpb values.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const (
	// Package is the protobuf package of the schema.
	Package = "marketsapi"
	// ServiceName is the fully qualified RPC service name.
	ServiceName = Package + ".MarketsApi"
	// FileName is the path the schema is registered under.
	FileName = "marketsapi/markets.proto"
)

// File is the registered schema.
var File protoreflect.FileDescriptor

func init() {
	fd, err := protodesc.NewFile(schema(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("wire: invalid schema: %v", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("wire: register schema: %v", err))
	}
	File = fd
}

// Service returns the MarketsApi service descriptor.
func Service() protoreflect.ServiceDescriptor {
	return File.Services().ByName("MarketsApi")
}

// New returns an empty dynamic message of the named schema type.
func New(name protoreflect.Name) *dynamicpb.Message {
	md := File.Messages().ByName(name)
	if md == nil {
		panic(fmt.Sprintf("wire: unknown message %s", name))
	}
	return dynamicpb.NewMessage(md)
}

// Methods lists every RPC as name, request type, response type.
var Methods = [][3]string{
	{"GetMarkets", "GetMarketsRequest", "GetMarketsResponse"},
	{"BulkGetMarkets", "BulkGetMarketsRequest", "BulkGetMarketsResponse"},
	{"GetMarketsInfo", "GetMarketsInfoRequest", "GetMarketsInfoResponse"},
	{"BulkGetMarketsInfo", "BulkGetMarketsInfoRequest", "BulkGetMarketsInfoResponse"},
	{"GetMarketPriceHistory", "GetMarketPriceHistoryRequest", "GetMarketPriceHistoryResponse"},
	{"BulkGetMarketPriceHistory", "BulkGetMarketPriceHistoryRequest", "BulkGetMarketPriceHistoryResponse"},
	{"GetOrders", "GetOrdersRequest", "GetOrdersResponse"},
	{"BulkGetOrders", "BulkGetOrdersRequest", "BulkGetOrdersResponse"},
	{"GetProfitLoss", "GetProfitLossRequest", "GetProfitLossResponse"},
	{"BulkGetProfitLoss", "BulkGetProfitLossRequest", "BulkGetProfitLossResponse"},
}

type fieldType = descriptorpb.FieldDescriptorProto_Type

const (
	tString = descriptorpb.FieldDescriptorProto_TYPE_STRING
	tBool   = descriptorpb.FieldDescriptorProto_TYPE_BOOL
	tInt32  = descriptorpb.FieldDescriptorProto_TYPE_INT32
	tInt64  = descriptorpb.FieldDescriptorProto_TYPE_INT64
	tEnum   = descriptorpb.FieldDescriptorProto_TYPE_ENUM
	tMsg    = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
)

func qualified(name string) *string {
	s := "." + Package + "." + name
	return &s
}

// msgBuilder accumulates one DescriptorProto. Field numbers are assigned in
// declaration order starting at 1.
type msgBuilder struct {
	d *descriptorpb.DescriptorProto
}

func message(name string) *msgBuilder {
	return &msgBuilder{d: &descriptorpb.DescriptorProto{Name: &name}}
}

func (b *msgBuilder) add(name string, label descriptorpb.FieldDescriptorProto_Label, t fieldType, typeName string) *descriptorpb.FieldDescriptorProto {
	num := int32(len(b.d.Field) + 1)
	f := &descriptorpb.FieldDescriptorProto{
		Name:   &name,
		Number: &num,
		Label:  label.Enum(),
		Type:   t.Enum(),
	}
	if typeName != "" {
		f.TypeName = qualified(typeName)
	}
	b.d.Field = append(b.d.Field, f)
	return f
}

func (b *msgBuilder) scalar(name string, t fieldType) *msgBuilder {
	b.add(name, descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, t, "")
	return b
}

func (b *msgBuilder) enum(name, enumName string) *msgBuilder {
	b.add(name, descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, tEnum, enumName)
	return b
}

// optional declares a proto3 optional field backed by a synthetic oneof.
func (b *msgBuilder) optional(name string, t fieldType, typeName string) *msgBuilder {
	f := b.add(name, descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, t, typeName)
	idx := int32(len(b.d.OneofDecl))
	b.d.OneofDecl = append(b.d.OneofDecl, &descriptorpb.OneofDescriptorProto{Name: ptr("_" + name)})
	f.OneofIndex = &idx
	f.Proto3Optional = ptr(true)
	return b
}

func (b *msgBuilder) msg(name, typeName string) *msgBuilder {
	b.add(name, descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, tMsg, typeName)
	return b
}

func (b *msgBuilder) repeated(name string, t fieldType, typeName string) *msgBuilder {
	b.add(name, descriptorpb.FieldDescriptorProto_LABEL_REPEATED, t, typeName)
	return b
}

// mapOf declares map<key, valueType>; the entry message is nested in b.
func (b *msgBuilder) mapOf(name string, key fieldType, valueType string) *msgBuilder {
	entry := mapEntryName(name)
	e := message(entry)
	e.scalar("key", key)
	e.msg("value", valueType)
	e.d.Options = &descriptorpb.MessageOptions{MapEntry: ptr(true)}
	b.d.NestedType = append(b.d.NestedType, e.d)

	b.add(name, descriptorpb.FieldDescriptorProto_LABEL_REPEATED, tMsg, *b.d.Name+"."+entry)
	return b
}

func enumType(name string, values []string) *descriptorpb.EnumDescriptorProto {
	e := &descriptorpb.EnumDescriptorProto{Name: &name}
	for i, v := range values {
		e.Value = append(e.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:   ptr(v),
			Number: ptr(int32(i)),
		})
	}
	return e
}

func schema() *descriptorpb.FileDescriptorProto {
	messages := []*msgBuilder{
		message("GetMarketsRequest").
			scalar("universe", tString).
			scalar("creator", tString).
			scalar("category", tString).
			scalar("search", tString).
			enum("reporting_state", "ReportingState").
			scalar("fee_window", tString).
			scalar("designated_reporter", tString).
			scalar("sort_by", tString).
			optional("is_sort_descending", tBool, "").
			scalar("limit", tInt32).
			scalar("offset", tInt32),
		message("GetMarketsResponse").
			repeated("market_addresses", tString, ""),
		message("BulkGetMarketsRequest").
			repeated("requests", tMsg, "GetMarketsRequest"),
		message("BulkGetMarketsResponse").
			repeated("responses", tMsg, "GetMarketsResponse"),

		message("GetMarketsInfoRequest").
			repeated("market_addresses", tString, ""),
		message("NormalizedPayout").
			scalar("is_invalid", tBool).
			repeated("payout", tString, ""),
		message("OutcomeInfo").
			scalar("id", tInt32).
			scalar("volume", tString).
			scalar("price", tString).
			optional("description", tString, ""),
		message("MarketInfo").
			scalar("id", tString).
			scalar("universe", tString).
			scalar("market_type", tString).
			scalar("num_outcomes", tInt32).
			scalar("min_price", tString).
			scalar("max_price", tString).
			scalar("cumulative_scale", tString).
			scalar("author", tString).
			scalar("creation_time", tInt64).
			scalar("creation_block", tInt64).
			scalar("creation_fee", tString).
			scalar("settlement_fee", tString).
			scalar("reporting_fee_rate", tString).
			scalar("market_creator_fee_rate", tString).
			optional("market_creator_fees_balance", tString, "").
			scalar("market_creator_mailbox", tString).
			scalar("market_creator_mailbox_owner", tString).
			optional("initial_report_size", tString, "").
			scalar("category", tString).
			repeated("tags", tString, "").
			scalar("volume", tString).
			scalar("outstanding_shares", tString).
			scalar("fee_window", tString).
			scalar("end_time", tInt64).
			optional("finalization_block_number", tInt64, "").
			optional("finalization_time", tInt64, "").
			optional("reporting_state", tEnum, "ReportingState").
			scalar("forking", tBool).
			scalar("needs_migration", tBool).
			scalar("description", tString).
			optional("details", tString, "").
			optional("scalar_denomination", tString, "").
			scalar("designated_reporter", tString).
			scalar("designated_report_stake", tString).
			optional("resolution_source", tString, "").
			scalar("num_ticks", tString).
			scalar("tick_size", tString).
			msg("consensus", "NormalizedPayout").
			repeated("outcomes", tMsg, "OutcomeInfo"),
		message("GetMarketsInfoResponse").
			repeated("market_info", tMsg, "MarketInfo"),
		message("BulkGetMarketsInfoRequest").
			repeated("requests", tMsg, "GetMarketsInfoRequest"),
		message("BulkGetMarketsInfoResponse").
			repeated("responses", tMsg, "GetMarketsInfoResponse"),

		message("GetMarketPriceHistoryRequest").
			scalar("market_id", tString).
			scalar("sort_by", tString).
			optional("is_sort_descending", tBool, "").
			scalar("limit", tInt32).
			scalar("offset", tInt32),
		message("TimestampedPriceAmount").
			scalar("price", tString).
			scalar("amount", tString).
			scalar("timestamp", tInt64),
		message("TimestampedPriceAmounts").
			repeated("samples", tMsg, "TimestampedPriceAmount"),
		message("MarketPriceHistory").
			mapOf("outcomes", tInt32, "TimestampedPriceAmounts"),
		message("GetMarketPriceHistoryResponse").
			msg("market_price_history", "MarketPriceHistory"),
		message("BulkGetMarketPriceHistoryRequest").
			repeated("requests", tMsg, "GetMarketPriceHistoryRequest"),
		message("BulkGetMarketPriceHistoryResponse").
			mapOf("market_price_histories", tString, "MarketPriceHistory"),

		message("GetOrdersRequest").
			scalar("universe", tString).
			scalar("market_id", tString).
			scalar("outcome", tInt32).
			enum("order_type", "OrderType").
			scalar("creator", tString).
			enum("order_state", "OrderState").
			scalar("earliest_creation_time", tInt64).
			scalar("latest_creation_time", tInt64).
			scalar("orphaned", tBool).
			scalar("sort_by", tString).
			optional("is_sort_descending", tBool, "").
			scalar("limit", tInt32).
			scalar("offset", tInt32),
		message("Order").
			scalar("order_id", tString).
			scalar("market_id", tString).
			scalar("outcome", tInt32).
			enum("order_type", "OrderType").
			scalar("owner", tString).
			scalar("transaction_hash", tString).
			scalar("log_index", tInt64).
			scalar("price", tString).
			scalar("amount", tString).
			scalar("original_amount", tString).
			scalar("shares_escrowed", tString).
			scalar("tokens_escrowed", tString).
			enum("order_state", "OrderState").
			scalar("creation_time", tInt64).
			scalar("creation_block_number", tInt64).
			optional("trade_group_id", tString, "").
			scalar("orphaned", tBool).
			optional("canceled_block_number", tInt64, "").
			optional("canceled_transaction_hash", tString, "").
			optional("canceled_time", tInt64, ""),
		message("OrderBucket").
			mapOf("orders", tString, "Order"),
		message("OutcomeOrders").
			msg("buy", "OrderBucket").
			msg("sell", "OrderBucket"),
		message("MarketOrders").
			mapOf("outcomes", tInt32, "OutcomeOrders"),
		message("GetOrdersResponse").
			mapOf("markets", tString, "MarketOrders"),
		message("BulkGetOrdersRequest").
			repeated("requests", tMsg, "GetOrdersRequest"),
		message("BulkGetOrdersResponse").
			repeated("responses", tMsg, "GetOrdersResponse"),

		message("GetProfitLossRequest").
			scalar("universe", tString).
			scalar("account", tString).
			scalar("market_id", tString).
			scalar("outcome", tInt32),
		message("ProfitLoss").
			scalar("market_id", tString).
			scalar("outcome", tInt32).
			scalar("realized", tString).
			scalar("unrealized", tString).
			scalar("position", tString).
			scalar("mean_open_price", tString).
			scalar("queued", tString),
		message("GetProfitLossResponse").
			repeated("profit_loss", tMsg, "ProfitLoss"),
		message("BulkGetProfitLossRequest").
			repeated("requests", tMsg, "GetProfitLossRequest"),
		message("BulkGetProfitLossResponse").
			repeated("responses", tMsg, "GetProfitLossResponse"),
	}

	svc := &descriptorpb.ServiceDescriptorProto{Name: ptr("MarketsApi")}
	for _, m := range Methods {
		svc.Method = append(svc.Method, &descriptorpb.MethodDescriptorProto{
			Name:       ptr(m[0]),
			InputType:  qualified(m[1]),
			OutputType: qualified(m[2]),
		})
	}

	f := &descriptorpb.FileDescriptorProto{
		Name:    ptr(FileName),
		Package: ptr(Package),
		Syntax:  ptr("proto3"),
		EnumType: []*descriptorpb.EnumDescriptorProto{
			enumType("ReportingState", reportingStateNames[:]),
			enumType("OrderState", orderStateNames[:]),
			enumType("OrderType", orderTypeNames[:]),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{svc},
	}
	for _, m := range messages {
		f.MessageType = append(f.MessageType, m.d)
	}
	return f
}

func ptr[T any](v T) *T { return &v }

// mapEntryName follows protoc: CamelCase of the field name plus "Entry".
func mapEntryName(field string) string {
	b := make([]byte, 0, len(field)+5)
	upper := true
	for i := 0; i < len(field); i++ {
		c := field[i]
		switch {
		case c == '_':
			upper = true
		case upper && 'a' <= c && c <= 'z':
			b = append(b, c-'a'+'A')
			upper = false
		default:
			b = append(b, c)
			upper = false
		}
	}
	return string(b) + "Entry"
}
