package wire

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
)

func TestSchemaRegistered(t *testing.T) {
	d, err := protoregistry.GlobalFiles.FindDescriptorByName(ServiceName)
	if err != nil {
		t.Fatalf("find %s: %v", ServiceName, err)
	}
	svc, ok := d.(protoreflect.ServiceDescriptor)
	if !ok {
		t.Fatalf("%s is %T, want service", ServiceName, d)
	}
	if got := svc.Methods().Len(); got != len(Methods) {
		t.Fatalf("methods = %d, want %d", got, len(Methods))
	}
	for _, m := range Methods {
		md := svc.Methods().ByName(protoreflect.Name(m[0]))
		if md == nil {
			t.Errorf("method %s missing", m[0])
			continue
		}
		if string(md.Input().Name()) != m[1] || string(md.Output().Name()) != m[2] {
			t.Errorf("%s: %s -> %s", m[0], md.Input().Name(), md.Output().Name())
		}
	}
}

func TestOptionalFieldsHavePresence(t *testing.T) {
	md := File.Messages().ByName("Order")
	for _, name := range []string{"trade_group_id", "canceled_block_number", "canceled_transaction_hash", "canceled_time"} {
		if fd := md.Fields().ByName(protoreflect.Name(name)); !fd.HasPresence() {
			t.Errorf("Order.%s has no presence", name)
		}
	}
	if md.Fields().ByName("price").HasPresence() {
		t.Error("Order.price should be implicit")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	state := ReportingStateFinalized
	desc := "Yes"
	in := &GetMarketsInfoResponse{MarketInfo: []*MarketInfo{{
		ID:               "0x01",
		NumOutcomes:      2,
		MinPrice:         "0",
		MaxPrice:         "1",
		Tags:             []string{"a", "b"},
		FinalizationTime: ptr(int64(1500000400)),
		ReportingState:   &state,
		Forking:          true,
		Consensus:        &NormalizedPayout{Payout: []string{"0", "10000"}},
		Outcomes:         []*OutcomeInfo{{ID: 0, Price: "0.5"}, {ID: 1, Description: &desc}},
	}}}
	b, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out GetMarketsInfoResponse
	if err := Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	m := out.MarketInfo[0]
	if m.ID != "0x01" || m.NumOutcomes != 2 || m.MinPrice != "0" || len(m.Tags) != 2 || !m.Forking {
		t.Errorf("scalars = %+v", m)
	}
	if m.FinalizationTime == nil || *m.FinalizationTime != 1500000400 {
		t.Errorf("finalizationTime = %v", m.FinalizationTime)
	}
	if m.FinalizationBlockNumber != nil || m.Details != nil {
		t.Error("absent optional fields came back present")
	}
	if m.ReportingState == nil || *m.ReportingState != ReportingStateFinalized {
		t.Errorf("reportingState = %v", m.ReportingState)
	}
	if m.Consensus == nil || m.Consensus.Payout[1] != "10000" {
		t.Errorf("consensus = %+v", m.Consensus)
	}
	if len(m.Outcomes) != 2 || m.Outcomes[0].Description != nil || *m.Outcomes[1].Description != "Yes" {
		t.Errorf("outcomes = %+v", m.Outcomes)
	}
}

func TestOptionalZeroIsPresent(t *testing.T) {
	zero := int64(0)
	b, err := Marshal(&Order{OrderID: "0x01", CanceledBlockNumber: &zero})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var o Order
	if err := Unmarshal(b, &o); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if o.CanceledBlockNumber == nil || *o.CanceledBlockNumber != 0 {
		t.Errorf("canceledBlockNumber = %v, want present 0", o.CanceledBlockNumber)
	}
	if o.CanceledTime != nil {
		t.Errorf("canceledTime = %v, want absent", o.CanceledTime)
	}
}

func TestExplicitAscendingSurvivesTheWire(t *testing.T) {
	tests := []struct {
		name string
		desc *bool
	}{
		{"unset", nil},
		{"ascending", ptr(false)},
		{"descending", ptr(true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Marshal(&GetMarketsRequest{Universe: "0x0b", IsSortDescending: tt.desc})
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var out GetMarketsRequest
			if err := Unmarshal(b, &out); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			got, ok := MarketsFilter(&out).Sort.Descending.Get()
			if ok != (tt.desc != nil) {
				t.Fatalf("descending set = %v, want %v", ok, tt.desc != nil)
			}
			if ok && got != *tt.desc {
				t.Errorf("descending = %v, want %v", got, *tt.desc)
			}
		})
	}
}

func TestNestedOrdersRoundTrip(t *testing.T) {
	in := &GetOrdersResponse{Markets: map[string]*MarketOrders{
		"0x01": {Outcomes: map[int32]*OutcomeOrders{
			1: {Buy: &OrderBucket{Orders: map[string]*Order{"0xaa": {OrderID: "0xaa", OrderType: OrderTypeBuy}}}},
		}},
	}}
	var out GetOrdersResponse
	if err := FromProto(ToProto(in), &out); err != nil {
		t.Fatalf("FromProto: %v", err)
	}
	oo := out.Markets["0x01"].Outcomes[1]
	if oo.Sell != nil {
		t.Error("sell bucket should be absent")
	}
	if o := oo.Buy.Orders["0xaa"]; o == nil || o.OrderType != OrderTypeBuy {
		t.Errorf("buy bucket = %+v", oo.Buy)
	}
}

func TestFromProtoRejectsOtherType(t *testing.T) {
	if err := FromProto(New("GetOrdersRequest"), &GetMarketsRequest{}); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestEnumTables(t *testing.T) {
	for d := 0; d < domain.NumReportingStates; d++ {
		w := ReportingStateToWire(domain.ReportingState(d))
		if w == ReportingStateUndefined {
			t.Errorf("reporting state %d unmapped", d)
		}
		if back, ok := ReportingStateFromWire(w).Get(); !ok || int(back) != d {
			t.Errorf("reporting state %d round trips to %v", d, back)
		}
		if domain.ReportingState(d).String() != w.String() {
			t.Errorf("names differ: %s vs %s", domain.ReportingState(d), w)
		}
	}
	for d := 0; d < domain.NumOrderStates; d++ {
		w := OrderStateToWire(domain.OrderState(d))
		if back, ok := OrderStateFromWire(w).Get(); w == OrderStateUndefined || !ok || int(back) != d {
			t.Errorf("order state %d -> %s", d, w)
		}
	}
	for d := 0; d < domain.NumOrderSides; d++ {
		w := OrderTypeToWire(domain.OrderSide(d))
		if back, ok := OrderTypeFromWire(w).Get(); w == OrderTypeUndefined || !ok || int(back) != d {
			t.Errorf("order side %d -> %s", d, w)
		}
	}
}

func TestUnknownEnumIsAbsent(t *testing.T) {
	tests := []struct {
		name string
		set  bool
	}{
		{"undefined reporting state", ReportingStateFromWire(ReportingStateUndefined).IsSet()},
		{"unknown reporting state", ReportingStateFromWire(ReportingState(99)).IsSet()},
		{"undefined order state", OrderStateFromWire(OrderStateUndefined).IsSet()},
		{"unknown order state", OrderStateFromWire(OrderState(-1)).IsSet()},
		{"unknown order type", OrderTypeFromWire(OrderType(7)).IsSet()},
	}
	for _, tt := range tests {
		if tt.set {
			t.Errorf("%s: got a value, want absent", tt.name)
		}
	}
}

func TestZeroValuesAreAbsent(t *testing.T) {
	f := OrdersFilter(&GetOrdersRequest{MarketID: "0x01"})
	if !f.MarketID.IsSet() {
		t.Error("market id dropped")
	}
	for name, set := range map[string]bool{
		"universe":  f.Universe.IsSet(),
		"outcome":   f.Outcome.IsSet(),
		"orderType": f.OrderType.IsSet(),
		"state":     f.OrderState.IsSet(),
		"earliest":  f.EarliestCreationTime.IsSet(),
		"orphaned":  f.Orphaned.IsSet(),
		"sortBy":    f.Sort.By.IsSet(),
		"desc":      f.Sort.Descending.IsSet(),
		"limit":     f.Page.Limit.IsSet(),
		"offset":    f.Page.Offset.IsSet(),
	} {
		if set {
			t.Errorf("%s set from a zero value", name)
		}
	}

	m := MarketsFilter(&GetMarketsRequest{Universe: "0x0b", IsSortDescending: ptr(true), Limit: 5, ReportingState: ReportingStateForking})
	if d, ok := m.Sort.Descending.Get(); !ok || !d {
		t.Error("descending lost")
	}
	if m.Sort.By.IsSet() {
		t.Error("sort column set without a request")
	}
	if l, _ := m.Page.Limit.Get(); l != 5 {
		t.Errorf("limit = %d", l)
	}
	if s, _ := m.ReportingState.Get(); s != domain.ReportingStateForking {
		t.Errorf("reporting state = %v", s)
	}
}

func TestMarketInfoOfOmitsAbsent(t *testing.T) {
	bal := decimal.RequireFromString("1.50")
	m := MarketInfoOf(domain.MarketInfo{
		ID:                       "0x01",
		MinPrice:                 decimal.Zero,
		MaxPrice:                 decimal.NewFromInt(1),
		MarketCreatorFeesBalance: &bal,
		Outcomes:                 []domain.OutcomeInfo{},
	})
	if m.ReportingState != nil || m.Consensus != nil || m.InitialReportSize != nil {
		t.Errorf("absent fields set: %+v", m)
	}
	if m.MarketCreatorFeesBalance == nil || *m.MarketCreatorFeesBalance != "1.50" {
		t.Errorf("fees balance = %v", m.MarketCreatorFeesBalance)
	}
	if m.MaxPrice != "1" || m.Outcomes == nil {
		t.Errorf("maxPrice = %q outcomes = %v", m.MaxPrice, m.Outcomes)
	}
}

func TestOrdersCanceledFieldOmittedOnParseFailure(t *testing.T) {
	var buf bytes.Buffer
	mp := NewMapper(slog.New(slog.NewJSONHandler(&buf, nil)))
	g := domain.GroupedOrders{}
	g.Add(domain.Order{
		OrderID:  "0x03",
		MarketID: "0x01",
		Outcome:  1,
		Side:     domain.OrderSideSell,
		State:    domain.OrderStateCanceled,
		Orphaned: true,
		Canceled: &domain.Cancellation{BlockNumber: "4", TransactionHash: "0x5103", Time: "not-a-time"},
	})
	resp := mp.Orders(context.Background(), g)
	oo := resp.Markets["0x01"].Outcomes[1]
	if oo.Buy != nil {
		t.Error("empty buy bucket should be absent")
	}
	o := oo.Sell.Orders["0x03"]
	if o.CanceledBlockNumber == nil || *o.CanceledBlockNumber != 4 {
		t.Errorf("canceledBlockNumber = %v", o.CanceledBlockNumber)
	}
	if o.CanceledTime != nil {
		t.Errorf("canceledTime = %v, want omitted", *o.CanceledTime)
	}
	if o.CanceledTransactionHash == nil || *o.CanceledTransactionHash != "0x5103" {
		t.Errorf("canceledTransactionHash = %v", o.CanceledTransactionHash)
	}
	if !o.Orphaned || o.OrderState != OrderStateCanceled || o.OrderType != OrderTypeSell {
		t.Errorf("order = %+v", o)
	}
	if !strings.Contains(buf.String(), "canceled_time") || !strings.Contains(buf.String(), `"level":"WARN"`) {
		t.Errorf("log = %s", buf.String())
	}
}

func TestMapEntryName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"outcomes", "OutcomesEntry"},
		{"market_price_histories", "MarketPriceHistoriesEntry"},
	}
	for _, tt := range tests {
		if got := mapEntryName(tt.in); got != tt.want {
			t.Errorf("mapEntryName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
