package domain

// Sort selects an order column by its public name and a direction. Either
// part may be absent; components fill in their own defaults.
type Sort struct {
	By         Opt[string]
	Descending Opt[bool]
}

// Page bounds a result set. Absent limit and offset return everything.
type Page struct {
	Limit  Opt[int]
	Offset Opt[int]
}

// MarketsFilter selects market ids within a universe.
type MarketsFilter struct {
	Universe           string
	Creator            Opt[string]
	Category           Opt[string]
	Search             Opt[string]
	ReportingState     Opt[ReportingState]
	FeeWindow          Opt[string]
	DesignatedReporter Opt[string]
	Sort               Sort
	Page               Page
}

// PriceHistoryFilter selects the trades of one market. Page applies to each
// outcome separately.
type PriceHistoryFilter struct {
	MarketID string
	Sort     Sort
	Page     Page
}

// OrdersFilter selects orders. At least one of Universe and MarketID must be set.
type OrdersFilter struct {
	Universe             Opt[string]
	MarketID             Opt[string]
	Outcome              Opt[int]
	OrderType            Opt[OrderSide]
	Creator              Opt[string]
	OrderState           Opt[OrderState]
	EarliestCreationTime Opt[int64]
	LatestCreationTime   Opt[int64]
	Orphaned             Opt[bool]
	Sort                 Sort
	Page                 Page
}

// TradingHistoryFilter selects the fills of one account.
type TradingHistoryFilter struct {
	Universe string
	Account  string
	MarketID Opt[string]
	Outcome  Opt[int]
	Sort     Sort
	Page     Page
}
