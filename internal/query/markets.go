package query

import "github.com/alanyoungcy/marketsrpc/internal/domain"

var marketsSort = sortSpec{
	columns: map[string]string{
		"volume":              "markets.volume",
		"creationTime":        "creation_blocks.timestamp",
		"creationBlockNumber": "markets.creation_block_number",
		"endTime":             "markets.end_time",
		"category":            "markets.category",
		"marketId":            "markets.market_id",
		"reportingState":      "markets.reporting_state",
	},
	defaultBy:   "volume",
	defaultDesc: true,
	tieBreak:    []string{"markets.market_id"},
}

// Markets builds the market id listing for f.
func Markets(f domain.MarketsFilter) (*Select, error) {
	if f.Universe == "" {
		return nil, domain.Validation("universe", domain.ErrRequired)
	}

	s := &Select{
		From:    "markets",
		Columns: []Column{Col("markets.market_id")},
		Joins:   []Join{blocksJoin("creation_blocks", "markets.creation_block_number")},
	}
	s.And(Eq("markets.universe", f.Universe))
	if v, ok := f.Creator.Get(); ok {
		s.And(Eq("markets.market_creator", v))
	}
	if v, ok := f.Category.Get(); ok {
		s.And(Eq("markets.category", v))
	}
	if v, ok := f.Search.Get(); ok {
		s.And(AnyOf{
			Contains("markets.short_description", v),
			Contains("markets.long_description", v),
			Contains("markets.category", v),
		})
	}
	if v, ok := f.ReportingState.Get(); ok {
		s.And(Eq("markets.reporting_state", v.String()))
	}
	if v, ok := f.FeeWindow.Get(); ok {
		s.And(Eq("markets.fee_window", v))
	}
	if v, ok := f.DesignatedReporter.Get(); ok {
		s.And(Eq("markets.designated_reporter", v))
	}

	order, err := marketsSort.order(f.Sort)
	if err != nil {
		return nil, err
	}
	s.OrderBy = order
	if err := applyPage(s, f.Page); err != nil {
		return nil, err
	}
	return s, nil
}

// MarketsInfoQueries are the three reads that assemble MarketInfo records.
type MarketsInfoQueries struct {
	Markets   *Select
	Outcomes  *Select
	Consensus *Select
}

// NumPayouts is the number of payout columns stored per market.
const NumPayouts = 8

// PayoutKeys are the output keys of the payout columns, in payout order.
var PayoutKeys = [NumPayouts]string{
	"payout0", "payout1", "payout2", "payout3",
	"payout4", "payout5", "payout6", "payout7",
}

// MarketsInfo builds the reads for the given market ids.
func MarketsInfo(marketIDs []string) MarketsInfoQueries {
	ids := stringValues(marketIDs)

	markets := &Select{
		From: "markets",
		Columns: []Column{
			Col("markets.market_id"),
			Col("markets.universe"),
			Col("markets.market_type"),
			Col("markets.num_outcomes"),
			TextAs("markets.min_price", "min_price"),
			TextAs("markets.max_price", "max_price"),
			Col("markets.market_creator"),
			Col("markets.creation_block_number"),
			ColAs("creation_blocks.timestamp", "creation_time"),
			TextAs("markets.creation_fee", "creation_fee"),
			TextAs("markets.reporting_fee_rate", "reporting_fee_rate"),
			TextAs("markets.market_creator_fee_rate", "market_creator_fee_rate"),
			TextAs("markets.market_creator_fees_balance", "market_creator_fees_balance"),
			Col("markets.market_creator_mailbox"),
			Col("markets.market_creator_mailbox_owner"),
			TextAs("markets.initial_report_size", "initial_report_size"),
			Col("markets.category"),
			Col("markets.tag1"),
			Col("markets.tag2"),
			TextAs("markets.volume", "volume"),
			TextAs("markets.shares_outstanding", "shares_outstanding"),
			Col("markets.fee_window"),
			Col("markets.end_time"),
			Col("markets.finalization_block_number"),
			ColAs("finalization_blocks.timestamp", "finalization_time"),
			Col("markets.reporting_state"),
			Col("markets.forking"),
			Col("markets.needs_migration"),
			Col("markets.short_description"),
			Col("markets.long_description"),
			Col("markets.scalar_denomination"),
			Col("markets.designated_reporter"),
			TextAs("markets.designated_report_stake", "designated_report_stake"),
			Col("markets.resolution_source"),
			TextAs("markets.num_ticks", "num_ticks"),
			TextAs("markets.tick_size", "tick_size"),
		},
		Joins: []Join{
			blocksJoin("creation_blocks", "markets.creation_block_number"),
			blocksJoin("finalization_blocks", "markets.finalization_block_number"),
		},
		Where: []Pred{InValues("markets.market_id", ids...)},
	}

	outcomes := &Select{
		From: "outcomes",
		Columns: []Column{
			Col("outcomes.market_id"),
			Col("outcomes.outcome"),
			TextAs("outcomes.price", "price"),
			TextAs("outcomes.volume", "volume"),
			Col("outcomes.description"),
		},
		Where: []Pred{InValues("outcomes.market_id", ids...)},
		OrderBy: []Order{
			{Column: "outcomes.market_id"},
			{Column: "outcomes.outcome"},
		},
	}

	consensusCols := []Column{Col("payouts.market_id"), Col("payouts.is_invalid")}
	for _, key := range PayoutKeys {
		consensusCols = append(consensusCols, TextAs("payouts."+key, key))
	}
	consensus := &Select{
		From:    "payouts",
		Columns: consensusCols,
		Where: []Pred{
			InValues("payouts.market_id", ids...),
			Eq("payouts.winning", 1),
		},
	}

	return MarketsInfoQueries{Markets: markets, Outcomes: outcomes, Consensus: consensus}
}
