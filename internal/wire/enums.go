package wire

import "github.com/alanyoungcy/marketsrpc/internal/domain"

// ReportingState is the wire enum; zero is "undefined".
type ReportingState int32

const (
	ReportingStateUndefined ReportingState = iota
	ReportingStatePreReporting
	ReportingStateDesignatedReporting
	ReportingStateOpenReporting
	ReportingStateCrowdsourcingDispute
	ReportingStateAwaitingNextWindow
	ReportingStateAwaitingFinalization
	ReportingStateFinalized
	ReportingStateForking
	ReportingStateAwaitingNoReportMigration
	ReportingStateAwaitingForkMigration

	numReportingStates = int(iota)
)

var reportingStateNames = [...]string{
	ReportingStateUndefined:                 "REPORTING_STATE_UNDEFINED",
	ReportingStatePreReporting:              "PRE_REPORTING",
	ReportingStateDesignatedReporting:       "DESIGNATED_REPORTING",
	ReportingStateOpenReporting:             "OPEN_REPORTING",
	ReportingStateCrowdsourcingDispute:      "CROWDSOURCING_DISPUTE",
	ReportingStateAwaitingNextWindow:        "AWAITING_NEXT_WINDOW",
	ReportingStateAwaitingFinalization:      "AWAITING_FINALIZATION",
	ReportingStateFinalized:                 "FINALIZED",
	ReportingStateForking:                   "FORKING",
	ReportingStateAwaitingNoReportMigration: "AWAITING_NO_REPORT_MIGRATION",
	ReportingStateAwaitingForkMigration:     "AWAITING_FORK_MIGRATION",
}

var _ [len(reportingStateNames) - numReportingStates]struct{}
var _ [numReportingStates - len(reportingStateNames)]struct{}

// OrderState is the wire enum; zero is "undefined".
type OrderState int32

const (
	OrderStateUndefined OrderState = iota
	OrderStateAll
	OrderStateOpen
	OrderStateFilled
	OrderStateCanceled

	numOrderStates = int(iota)
)

var orderStateNames = [...]string{
	OrderStateUndefined: "ORDER_STATE_UNDEFINED",
	OrderStateAll:       "ALL",
	OrderStateOpen:      "OPEN",
	OrderStateFilled:    "FILLED",
	OrderStateCanceled:  "CANCELED",
}

var _ [len(orderStateNames) - numOrderStates]struct{}
var _ [numOrderStates - len(orderStateNames)]struct{}

// OrderType is the wire enum; zero is "undefined".
type OrderType int32

const (
	OrderTypeUndefined OrderType = iota
	OrderTypeBuy
	OrderTypeSell

	numOrderTypes = int(iota)
)

var orderTypeNames = [...]string{
	OrderTypeUndefined: "ORDER_TYPE_UNDEFINED",
	OrderTypeBuy:       "BUY",
	OrderTypeSell:      "SELL",
}

var _ [len(orderTypeNames) - numOrderTypes]struct{}
var _ [numOrderTypes - len(orderTypeNames)]struct{}

// Domain to wire tables are indexed by the domain value. The paired array
// length checks stop the build when either enum gains a value that is not
// mapped here.

var reportingStateToWire = [...]ReportingState{
	domain.ReportingStatePreReporting:              ReportingStatePreReporting,
	domain.ReportingStateDesignatedReporting:       ReportingStateDesignatedReporting,
	domain.ReportingStateOpenReporting:             ReportingStateOpenReporting,
	domain.ReportingStateCrowdsourcingDispute:      ReportingStateCrowdsourcingDispute,
	domain.ReportingStateAwaitingNextWindow:        ReportingStateAwaitingNextWindow,
	domain.ReportingStateAwaitingFinalization:      ReportingStateAwaitingFinalization,
	domain.ReportingStateFinalized:                 ReportingStateFinalized,
	domain.ReportingStateForking:                   ReportingStateForking,
	domain.ReportingStateAwaitingNoReportMigration: ReportingStateAwaitingNoReportMigration,
	domain.ReportingStateAwaitingForkMigration:     ReportingStateAwaitingForkMigration,
}

var _ [len(reportingStateToWire) - domain.NumReportingStates]struct{}
var _ [domain.NumReportingStates - len(reportingStateToWire)]struct{}
var _ [numReportingStates - 1 - domain.NumReportingStates]struct{}
var _ [domain.NumReportingStates - (numReportingStates - 1)]struct{}

var orderStateToWire = [...]OrderState{
	domain.OrderStateAll:      OrderStateAll,
	domain.OrderStateOpen:     OrderStateOpen,
	domain.OrderStateFilled:   OrderStateFilled,
	domain.OrderStateCanceled: OrderStateCanceled,
}

var _ [len(orderStateToWire) - domain.NumOrderStates]struct{}
var _ [domain.NumOrderStates - len(orderStateToWire)]struct{}
var _ [numOrderStates - 1 - domain.NumOrderStates]struct{}
var _ [domain.NumOrderStates - (numOrderStates - 1)]struct{}

var orderSideToWire = [...]OrderType{
	domain.OrderSideBuy:  OrderTypeBuy,
	domain.OrderSideSell: OrderTypeSell,
}

var _ [len(orderSideToWire) - domain.NumOrderSides]struct{}
var _ [domain.NumOrderSides - len(orderSideToWire)]struct{}
var _ [numOrderTypes - 1 - domain.NumOrderSides]struct{}
var _ [domain.NumOrderSides - (numOrderTypes - 1)]struct{}

var (
	reportingStateFromWire = invert(reportingStateToWire[:])
	orderStateFromWire     = invert(orderStateToWire[:])
	orderSideFromWire      = invert(orderSideToWire[:])
)

func invert[W comparable](table []W) map[W]int {
	m := make(map[W]int, len(table))
	for d, w := range table {
		m[w] = d
	}
	return m
}

func (s ReportingState) String() string {
	if s < 0 || int(s) >= numReportingStates {
		return "REPORTING_STATE_UNKNOWN"
	}
	return reportingStateNames[s]
}

func (s OrderState) String() string {
	if s < 0 || int(s) >= numOrderStates {
		return "ORDER_STATE_UNKNOWN"
	}
	return orderStateNames[s]
}

func (t OrderType) String() string {
	if t < 0 || int(t) >= numOrderTypes {
		return "ORDER_TYPE_UNKNOWN"
	}
	return orderTypeNames[t]
}

// ReportingStateToWire maps a domain state to its wire value.
func ReportingStateToWire(s domain.ReportingState) ReportingState {
	if s < 0 || int(s) >= len(reportingStateToWire) {
		return ReportingStateUndefined
	}
	return reportingStateToWire[s]
}

// ReportingStateFromWire maps a wire value to a domain state. Undefined and
// unrecognized values are both absent.
func ReportingStateFromWire(s ReportingState) domain.Opt[domain.ReportingState] {
	if d, ok := reportingStateFromWire[s]; ok {
		return domain.Some(domain.ReportingState(d))
	}
	return domain.None[domain.ReportingState]()
}

// OrderStateToWire maps a domain order state to its wire value.
func OrderStateToWire(s domain.OrderState) OrderState {
	if s < 0 || int(s) >= len(orderStateToWire) {
		return OrderStateUndefined
	}
	return orderStateToWire[s]
}

// OrderStateFromWire maps a wire value to a domain order state; undefined and
// unrecognized values are absent.
func OrderStateFromWire(s OrderState) domain.Opt[domain.OrderState] {
	if d, ok := orderStateFromWire[s]; ok {
		return domain.Some(domain.OrderState(d))
	}
	return domain.None[domain.OrderState]()
}

// OrderTypeToWire maps an order side to its wire value.
func OrderTypeToWire(s domain.OrderSide) OrderType {
	if s < 0 || int(s) >= len(orderSideToWire) {
		return OrderTypeUndefined
	}
	return orderSideToWire[s]
}

// OrderTypeFromWire maps a wire value to an order side; undefined and
// unrecognized values are absent.
func OrderTypeFromWire(t OrderType) domain.Opt[domain.OrderSide] {
	if d, ok := orderSideFromWire[t]; ok {
		return domain.Some(domain.OrderSide(d))
	}
	return domain.None[domain.OrderSide]()
}
