// Package reshape turns flat store rows into the nested domain model. Every
// function returns an explicitly empty, non-nil result for zero rows.
package reshape

import (
	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
	"github.com/alanyoungcy/marketsrpc/internal/query"
)

// MarketIDs extracts the market_id column in row order.
func MarketIDs(rows []query.Row) ([]string, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		r := reader{row: row}
		id := r.str("market_id")
		if r.err != nil {
			return nil, r.err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// MarketsInfo assembles MarketInfo records from the market, outcome and
// consensus reads. Records follow the order of ids; ids with no market row
// are left out.
func MarketsInfo(ids []string, markets, outcomes, consensus []query.Row) ([]domain.MarketInfo, error) {
	outcomesByMarket := make(map[string][]domain.OutcomeInfo)
	for _, row := range outcomes {
		r := reader{row: row}
		marketID := r.str("market_id")
		o := domain.OutcomeInfo{
			ID:          r.int("outcome"),
			Price:       r.dec("price"),
			Volume:      r.dec("volume"),
			Description: r.optStr("description"),
		}
		if r.err != nil {
			return nil, r.err
		}
		outcomesByMarket[marketID] = append(outcomesByMarket[marketID], o)
	}

	consensusByMarket := make(map[string]*domain.NormalizedPayout)
	for _, row := range consensus {
		r := reader{row: row}
		marketID := r.str("market_id")
		p := &domain.NormalizedPayout{
			IsInvalid: r.flag("is_invalid"),
			Payout:    []decimal.Decimal{},
		}
		for _, key := range query.PayoutKeys {
			if d := r.optDec(key); d != nil {
				p.Payout = append(p.Payout, *d)
			}
		}
		if r.err != nil {
			return nil, r.err
		}
		consensusByMarket[marketID] = p
	}

	byID := make(map[string]domain.MarketInfo, len(markets))
	for _, row := range markets {
		m, err := marketInfo(row)
		if err != nil {
			return nil, err
		}
		m.Consensus = consensusByMarket[m.ID]
		m.Outcomes = outcomesByMarket[m.ID]
		if m.Outcomes == nil {
			m.Outcomes = []domain.OutcomeInfo{}
		}
		byID[m.ID] = m
	}

	out := make([]domain.MarketInfo, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func marketInfo(row query.Row) (domain.MarketInfo, error) {
	r := reader{row: row}
	m := domain.MarketInfo{
		ID:                        r.str("market_id"),
		Universe:                  r.str("universe"),
		MarketType:                domain.MarketType(r.str("market_type")),
		NumOutcomes:               r.int("num_outcomes"),
		MinPrice:                  r.dec("min_price"),
		MaxPrice:                  r.dec("max_price"),
		Author:                    r.str("market_creator"),
		CreationBlock:             r.i64("creation_block_number"),
		CreationFee:               r.dec("creation_fee"),
		ReportingFeeRate:          r.dec("reporting_fee_rate"),
		MarketCreatorFeeRate:      r.dec("market_creator_fee_rate"),
		MarketCreatorFeesBalance:  r.optDec("market_creator_fees_balance"),
		MarketCreatorMailbox:      r.str("market_creator_mailbox"),
		MarketCreatorMailboxOwner: r.str("market_creator_mailbox_owner"),
		InitialReportSize:         r.optDec("initial_report_size"),
		Category:                  r.str("category"),
		Tags:                      []string{},
		Volume:                    r.dec("volume"),
		OutstandingShares:         r.dec("shares_outstanding"),
		FeeWindow:                 r.str("fee_window"),
		EndTime:                   r.i64("end_time"),
		FinalizationBlockNumber:   r.optI64("finalization_block_number"),
		FinalizationTime:          r.optI64("finalization_time"),
		Forking:                   r.flag("forking"),
		NeedsMigration:            r.flag("needs_migration"),
		Description:               r.str("short_description"),
		Details:                   r.optStr("long_description"),
		ScalarDenomination:        r.optStr("scalar_denomination"),
		DesignatedReporter:        r.str("designated_reporter"),
		DesignatedReportStake:     r.dec("designated_report_stake"),
		ResolutionSource:          r.optStr("resolution_source"),
		NumTicks:                  r.dec("num_ticks"),
		TickSize:                  r.dec("tick_size"),
	}
	// A block that has not been ingested yet leaves creation_time NULL.
	if t := r.optI64("creation_time"); t != nil {
		m.CreationTime = *t
	}
	for _, key := range []string{"tag1", "tag2"} {
		if tag := r.optStr(key); tag != nil {
			m.Tags = append(m.Tags, *tag)
		}
	}
	// Unrecognized stored states read as absent.
	if s := r.optStr("reporting_state"); s != nil {
		if st, err := domain.ParseReportingState(*s); err == nil {
			m.ReportingState = domain.Some(st)
		}
	}
	if r.err != nil {
		return domain.MarketInfo{}, r.err
	}

	m.CumulativeScale = m.MaxPrice.Sub(m.MinPrice)
	m.SettlementFee = m.ReportingFeeRate.Add(m.MarketCreatorFeeRate)
	return m, nil
}

// PriceHistory groups trade rows by outcome, keeping row order within each
// outcome.
func PriceHistory(rows []query.Row) (*domain.MarketPriceHistory, error) {
	h := domain.NewMarketPriceHistory()
	for _, row := range rows {
		r := reader{row: row}
		outcome := r.int("outcome")
		s := domain.TimestampedPriceAmount{
			Price:  r.dec("price"),
			Amount: r.dec("amount"),
		}
		if t := r.optI64("timestamp"); t != nil {
			s.Timestamp = *t
		}
		if r.err != nil {
			return nil, r.err
		}
		h.Append(outcome, s)
	}
	return h, nil
}

// Orders groups order rows by market, outcome, side and order id.
func Orders(rows []query.Row) (domain.GroupedOrders, error) {
	g := make(domain.GroupedOrders)
	for _, row := range rows {
		o, err := order(row)
		if err != nil {
			return nil, err
		}
		g.Add(o)
	}
	return g, nil
}

func order(row query.Row) (domain.Order, error) {
	r := reader{row: row}
	o := domain.Order{
		OrderID:             r.str("order_id"),
		MarketID:            r.str("market_id"),
		Outcome:             r.int("outcome"),
		Owner:               r.str("order_creator"),
		TransactionHash:     r.str("transaction_hash"),
		LogIndex:            r.i64("log_index"),
		Price:               r.dec("price"),
		Amount:              r.dec("amount"),
		OriginalAmount:      r.dec("original_amount"),
		SharesEscrowed:      r.dec("shares_escrowed"),
		TokensEscrowed:      r.dec("tokens_escrowed"),
		CreationBlockNumber: r.i64("creation_block_number"),
		TradeGroupID:        r.optStr("trade_group_id"),
		Orphaned:            r.flag("orphaned"),
	}
	if t := r.optI64("creation_time"); t != nil {
		o.CreationTime = *t
	}
	side := r.str("order_type")
	state := r.str("order_state")
	if cb := r.optStr("canceled_block_number"); cb != nil {
		c := &domain.Cancellation{BlockNumber: *cb}
		if h := r.optStr("canceled_transaction_hash"); h != nil {
			c.TransactionHash = *h
		}
		if t := r.optStr("canceled_time"); t != nil {
			c.Time = *t
		}
		o.Canceled = c
	}
	if r.err != nil {
		return domain.Order{}, r.err
	}

	var err error
	if o.Side, err = domain.ParseOrderSide(side); err != nil {
		return domain.Order{}, domain.Decode("order_type", err)
	}
	if o.State, err = domain.ParseOrderState(state); err != nil {
		return domain.Order{}, domain.Decode("order_state", err)
	}
	return o, nil
}

// AccountTrades reads trade rows from account's point of view. The order
// creator trades on the order's side and the filler on the opposite one.
func AccountTrades(account string, rows []query.Row) ([]domain.AccountTrade, error) {
	out := make([]domain.AccountTrade, 0, len(rows))
	for _, row := range rows {
		r := reader{row: row}
		t := domain.AccountTrade{
			MarketID:        r.str("market_id"),
			Outcome:         r.int("outcome"),
			Price:           r.dec("price"),
			Amount:          r.dec("amount"),
			BlockNumber:     r.i64("block_number"),
			TransactionHash: r.str("transaction_hash"),
			LogIndex:        r.i64("log_index"),
		}
		if ts := r.optI64("timestamp"); ts != nil {
			t.Timestamp = *ts
		}
		orderType := r.str("order_type")
		creator := r.str("creator")
		if r.err != nil {
			return nil, r.err
		}

		side, err := domain.ParseOrderSide(orderType)
		if err != nil {
			return nil, domain.Decode("order_type", err)
		}
		if creator != account {
			side = side.Opposite()
		}
		t.Side = side
		out = append(out, t)
	}
	return out, nil
}

// OutcomePrices maps each market outcome to its last traded price.
func OutcomePrices(rows []query.Row) (map[domain.MarketOutcome]decimal.Decimal, error) {
	out := make(map[domain.MarketOutcome]decimal.Decimal, len(rows))
	for _, row := range rows {
		r := reader{row: row}
		key := domain.MarketOutcome{MarketID: r.str("market_id"), Outcome: r.int("outcome")}
		price := r.dec("price")
		if r.err != nil {
			return nil, r.err
		}
		out[key] = price
	}
	return out, nil
}
