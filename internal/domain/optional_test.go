package domain

import "testing"

func TestNonZeroCollapsesZeroValues(t *testing.T) {
	if NonZero("").IsSet() {
		t.Error("NonZero(\"\") is set, want absent")
	}
	if NonZero(0).IsSet() {
		t.Error("NonZero(0) is set, want absent")
	}
	if NonZero(false).IsSet() {
		t.Error("NonZero(false) is set, want absent")
	}
	if v, ok := NonZero("0xabc").Get(); !ok || v != "0xabc" {
		t.Errorf("NonZero(\"0xabc\") = %q, %v; want \"0xabc\", true", v, ok)
	}
}

func TestSomeZeroIsDistinctFromNone(t *testing.T) {
	zero := Some("")
	if !zero.IsSet() {
		t.Fatal("Some(\"\") is absent, want present")
	}
	if zero == None[string]() {
		t.Error("Some(\"\") == None, want distinct")
	}
	if got := None[int]().Or(7); got != 7 {
		t.Errorf("None.Or(7) = %d, want 7", got)
	}
	if p := Some(3).Ptr(); p == nil || *p != 3 {
		t.Errorf("Some(3).Ptr() = %v, want pointer to 3", p)
	}
	if FromPtr[int](nil).IsSet() {
		t.Error("FromPtr(nil) is set, want absent")
	}
}

func TestEnumStringsRoundTrip(t *testing.T) {
	for i := 0; i < NumReportingStates; i++ {
		s := ReportingState(i)
		got, err := ParseReportingState(s.String())
		if err != nil || got != s {
			t.Errorf("ParseReportingState(%q) = %v, %v; want %v", s.String(), got, err, s)
		}
	}
	if _, err := ParseReportingState("SOMETHING_ELSE"); err == nil {
		t.Error("ParseReportingState accepted an unknown value")
	}
	for i := 1; i < NumOrderStates; i++ {
		s := OrderState(i)
		got, err := ParseOrderState(s.String())
		if err != nil || got != s {
			t.Errorf("ParseOrderState(%q) = %v, %v; want %v", s.String(), got, err, s)
		}
	}
	if _, err := ParseOrderState("ALL"); err == nil {
		t.Error("ParseOrderState accepted ALL as a stored state")
	}
	for i := 0; i < NumOrderSides; i++ {
		s := OrderSide(i)
		got, err := ParseOrderSide(s.String())
		if err != nil || got != s {
			t.Errorf("ParseOrderSide(%q) = %v, %v; want %v", s.String(), got, err, s)
		}
	}
}

func TestGroupedOrdersAdd(t *testing.T) {
	g := GroupedOrders{}
	g.Add(Order{OrderID: "a", MarketID: "m1", Outcome: 0, Side: OrderSideBuy})
	g.Add(Order{OrderID: "b", MarketID: "m1", Outcome: 0, Side: OrderSideSell})
	g.Add(Order{OrderID: "c", MarketID: "m1", Outcome: 1, Side: OrderSideBuy})
	g.Add(Order{OrderID: "d", MarketID: "m2", Outcome: 0, Side: OrderSideBuy})

	if g.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", g.Len())
	}
	if g["m1"][1].Sell != nil {
		t.Error("m1/1 has a sell bucket, want none")
	}
	if _, ok := g["m1"][0].Sell["b"]; !ok {
		t.Error("order b missing from m1/0/sell")
	}
}
