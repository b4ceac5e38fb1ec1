package query

import "github.com/alanyoungcy/marketsrpc/internal/domain"

var ordersSort = sortSpec{
	columns: map[string]string{
		"creationBlockNumber": "orders.creation_block_number",
		"creationTime":        "creation_blocks.timestamp",
		"price":               "orders.price",
		"amount":              "orders.amount",
		"orderId":             "orders.order_id",
		"outcome":             "orders.outcome",
	},
	defaultBy:   "creationBlockNumber",
	defaultDesc: false,
	tieBreak:    []string{"orders.log_index", "orders.order_id"},
}

// Orders builds the order read for f. One of universe or market id must be
// present.
func Orders(f domain.OrdersFilter) (*Select, error) {
	universe, hasUniverse := f.Universe.Get()
	marketID, hasMarket := f.MarketID.Get()
	if !hasUniverse && !hasMarket {
		return nil, domain.Validation("universe", domain.ErrRequired)
	}

	s := &Select{
		From: "orders",
		Columns: []Column{
			Col("orders.order_id"),
			Col("orders.market_id"),
			Col("orders.outcome"),
			Col("orders.order_type"),
			Col("orders.order_creator"),
			Col("orders.transaction_hash"),
			Col("orders.log_index"),
			TextAs("orders.price", "price"),
			TextAs("orders.amount", "amount"),
			TextAs("orders.original_amount", "original_amount"),
			TextAs("orders.shares_escrowed", "shares_escrowed"),
			TextAs("orders.tokens_escrowed", "tokens_escrowed"),
			Col("orders.order_state"),
			Col("orders.creation_block_number"),
			ColAs("creation_blocks.timestamp", "creation_time"),
			Col("orders.trade_group_id"),
			Col("orders.orphaned"),
			TextAs("orders_canceled.block_number", "canceled_block_number"),
			ColAs("orders_canceled.transaction_hash", "canceled_transaction_hash"),
			TextAs("canceled_blocks.timestamp", "canceled_time"),
		},
		Joins: []Join{
			{Kind: InnerJoin, Table: "markets", Left: "orders.market_id", Right: "markets.market_id"},
			blocksJoin("creation_blocks", "orders.creation_block_number"),
			{Kind: LeftJoin, Table: "orders_canceled", Left: "orders.order_id", Right: "orders_canceled.order_id"},
			blocksJoin("canceled_blocks", "orders_canceled.block_number"),
		},
	}
	if hasUniverse {
		s.And(Eq("markets.universe", universe))
	}
	if hasMarket {
		s.And(Eq("orders.market_id", marketID))
	}
	if v, ok := f.Outcome.Get(); ok {
		s.And(Eq("orders.outcome", v))
	}
	if v, ok := f.OrderType.Get(); ok {
		s.And(Eq("orders.order_type", v.String()))
	}
	if v, ok := f.Creator.Get(); ok {
		s.And(Eq("orders.order_creator", v))
	}
	if v, ok := f.OrderState.Get(); ok && v != domain.OrderStateAll {
		s.And(Eq("orders.order_state", v.String()))
	}
	if v, ok := f.EarliestCreationTime.Get(); ok {
		s.And(Gte("creation_blocks.timestamp", v))
	}
	if v, ok := f.LatestCreationTime.Get(); ok {
		s.And(Lte("creation_blocks.timestamp", v))
	}
	if v, ok := f.Orphaned.Get(); ok {
		s.And(Eq("orders.orphaned", boolInt(v)))
	}

	order, err := ordersSort.order(f.Sort)
	if err != nil {
		return nil, err
	}
	s.OrderBy = order
	if err := applyPage(s, f.Page); err != nil {
		return nil, err
	}
	return s, nil
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
