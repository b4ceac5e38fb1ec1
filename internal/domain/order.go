package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderSide indicates whether an order buys or sells outcome shares.
type OrderSide int

const (
	OrderSideBuy OrderSide = iota
	OrderSideSell

	NumOrderSides = int(iota)
)

var orderSideNames = [...]string{
	OrderSideBuy:  "buy",
	OrderSideSell: "sell",
}

var _ [len(orderSideNames) - NumOrderSides]struct{}
var _ [NumOrderSides - len(orderSideNames)]struct{}

func (s OrderSide) String() string {
	if s < 0 || int(s) >= NumOrderSides {
		return fmt.Sprintf("OrderSide(%d)", int(s))
	}
	return orderSideNames[s]
}

// Opposite returns the other side of a fill.
func (s OrderSide) Opposite() OrderSide {
	if s == OrderSideBuy {
		return OrderSideSell
	}
	return OrderSideBuy
}

// ParseOrderSide maps a stored order_type value to an OrderSide.
func ParseOrderSide(v string) (OrderSide, error) {
	for i, name := range orderSideNames {
		if name == v {
			return OrderSide(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown order type %q", ErrInvalidFormat, v)
}

// OrderState is an order's lifecycle state. OrderStateAll is only meaningful
// as a query filter; no stored order is ever in it.
type OrderState int

const (
	OrderStateAll OrderState = iota
	OrderStateOpen
	OrderStateFilled
	OrderStateCanceled

	NumOrderStates = int(iota)
)

var orderStateNames = [...]string{
	OrderStateAll:      "ALL",
	OrderStateOpen:     "OPEN",
	OrderStateFilled:   "FILLED",
	OrderStateCanceled: "CANCELED",
}

var _ [len(orderStateNames) - NumOrderStates]struct{}
var _ [NumOrderStates - len(orderStateNames)]struct{}

func (s OrderState) String() string {
	if s < 0 || int(s) >= NumOrderStates {
		return fmt.Sprintf("OrderState(%d)", int(s))
	}
	return orderStateNames[s]
}

// ParseOrderState maps a stored order_state value to an OrderState. ALL is
// rejected because it never describes a real order.
func ParseOrderState(v string) (OrderState, error) {
	for i, name := range orderStateNames {
		if name == v && OrderState(i) != OrderStateAll {
			return OrderState(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown order state %q", ErrInvalidFormat, v)
}

// Cancellation holds the on-chain cancel event of an order. BlockNumber and
// Time are carried as the store returned them and parsed at the wire boundary.
type Cancellation struct {
	BlockNumber     string
	TransactionHash string
	Time            string
}

// Order is a single order book entry.
type Order struct {
	OrderID             string
	MarketID            string
	Outcome             int
	Side                OrderSide
	Owner               string
	TransactionHash     string
	LogIndex            int64
	Price               decimal.Decimal
	Amount              decimal.Decimal
	OriginalAmount      decimal.Decimal
	SharesEscrowed      decimal.Decimal
	TokensEscrowed      decimal.Decimal
	State               OrderState
	CreationTime        int64
	CreationBlockNumber int64
	TradeGroupID        *string
	Orphaned            bool
	Canceled            *Cancellation
}

// OrdersBySide holds the buy and sell buckets of one outcome. A nil bucket
// means no order of that side matched.
type OrdersBySide struct {
	Buy  map[string]Order
	Sell map[string]Order
}

// Bucket returns the bucket for side, creating it when missing.
func (o *OrdersBySide) Bucket(side OrderSide) map[string]Order {
	switch side {
	case OrderSideBuy:
		if o.Buy == nil {
			o.Buy = make(map[string]Order)
		}
		return o.Buy
	case OrderSideSell:
		if o.Sell == nil {
			o.Sell = make(map[string]Order)
		}
		return o.Sell
	}
	return nil
}

// GroupedOrders is marketId → outcome → side → orderId → Order.
type GroupedOrders map[string]map[int]*OrdersBySide

// Add files o under its market, outcome and side.
func (g GroupedOrders) Add(o Order) {
	outcomes, ok := g[o.MarketID]
	if !ok {
		outcomes = make(map[int]*OrdersBySide)
		g[o.MarketID] = outcomes
	}
	sides, ok := outcomes[o.Outcome]
	if !ok {
		sides = &OrdersBySide{}
		outcomes[o.Outcome] = sides
	}
	sides.Bucket(o.Side)[o.OrderID] = o
}

// Len counts the orders in g.
func (g GroupedOrders) Len() int {
	n := 0
	for _, outcomes := range g {
		for _, sides := range outcomes {
			n += len(sides.Buy) + len(sides.Sell)
		}
	}
	return n
}
