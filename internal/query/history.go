package query

import "github.com/alanyoungcy/marketsrpc/internal/domain"

var priceHistorySort = sortSpec{
	columns: map[string]string{
		"timestamp": "blocks.timestamp",
		"price":     "trades.price",
		"amount":    "trades.amount",
		"outcome":   "trades.outcome",
	},
	defaultBy:   "timestamp",
	defaultDesc: false,
	tieBreak:    []string{"trades.block_number", "trades.log_index"},
}

// PriceHistory builds the trade read for a market's price history. Limit and
// offset are applied per outcome.
func PriceHistory(f domain.PriceHistoryFilter) (*Select, error) {
	if f.MarketID == "" {
		return nil, domain.Validation("marketId", domain.ErrRequired)
	}

	s := &Select{
		From: "trades",
		Columns: []Column{
			Col("trades.outcome"),
			TextAs("trades.price", "price"),
			TextAs("trades.amount", "amount"),
			ColAs("blocks.timestamp", "timestamp"),
			Col("trades.block_number"),
			Col("trades.log_index"),
		},
		Joins: []Join{{
			Kind:  LeftJoin,
			Table: "blocks",
			Left:  "trades.block_number",
			Right: "blocks.block_number",
		}},
		Where:       []Pred{Eq("trades.market_id", f.MarketID)},
		PartitionBy: "trades.outcome",
	}

	order, err := priceHistorySort.order(f.Sort)
	if err != nil {
		return nil, err
	}
	s.OrderBy = order
	if err := applyPage(s, f.Page); err != nil {
		return nil, err
	}
	return s, nil
}

var tradingHistorySort = sortSpec{
	columns: map[string]string{
		"timestamp": "blocks.timestamp",
		"price":     "trades.price",
		"amount":    "trades.amount",
	},
	defaultBy:   "timestamp",
	defaultDesc: false,
	tieBreak:    []string{"trades.block_number", "trades.log_index"},
}

// TradingHistory builds the read of every fill where the account was the
// order creator or the filler.
func TradingHistory(f domain.TradingHistoryFilter) (*Select, error) {
	if f.Universe == "" {
		return nil, domain.Validation("universe", domain.ErrRequired)
	}
	if f.Account == "" {
		return nil, domain.Validation("account", domain.ErrRequired)
	}

	s := &Select{
		From: "trades",
		Columns: []Column{
			Col("trades.market_id"),
			Col("trades.outcome"),
			Col("trades.order_type"),
			Col("trades.creator"),
			Col("trades.filler"),
			TextAs("trades.price", "price"),
			TextAs("trades.amount", "amount"),
			ColAs("blocks.timestamp", "timestamp"),
			Col("trades.block_number"),
			Col("trades.transaction_hash"),
			Col("trades.log_index"),
		},
		Joins: []Join{
			{Kind: InnerJoin, Table: "markets", Left: "trades.market_id", Right: "markets.market_id"},
			{Kind: LeftJoin, Table: "blocks", Left: "trades.block_number", Right: "blocks.block_number"},
		},
	}
	s.And(
		Eq("markets.universe", f.Universe),
		AnyOf{Eq("trades.creator", f.Account), Eq("trades.filler", f.Account)},
	)
	if v, ok := f.MarketID.Get(); ok {
		s.And(Eq("trades.market_id", v))
	}
	if v, ok := f.Outcome.Get(); ok {
		s.And(Eq("trades.outcome", v))
	}

	order, err := tradingHistorySort.order(f.Sort)
	if err != nil {
		return nil, err
	}
	s.OrderBy = order
	if err := applyPage(s, f.Page); err != nil {
		return nil, err
	}
	return s, nil
}

// OutcomePrices builds the read of the last traded price of each outcome of
// the given markets.
func OutcomePrices(marketIDs []string) *Select {
	return &Select{
		From: "outcomes",
		Columns: []Column{
			Col("outcomes.market_id"),
			Col("outcomes.outcome"),
			TextAs("outcomes.price", "price"),
		},
		Where: []Pred{InValues("outcomes.market_id", stringValues(marketIDs)...)},
	}
}
