package wire

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
	"github.com/alanyoungcy/marketsrpc/internal/numeric"
)

// Request filter fields carry no presence, so a zero value means the filter
// was not supplied. is_sort_descending is the exception: it is a proto3
// optional, and an explicit false asks for ascending order.

func sortOf(by string, desc *bool) domain.Sort {
	return domain.Sort{By: domain.NonZero(by), Descending: domain.FromPtr(desc)}
}

func pageOf(limit, offset int32) domain.Page {
	return domain.Page{Limit: domain.NonZero(int(limit)), Offset: domain.NonZero(int(offset))}
}

// MarketsFilter maps a GetMarkets request to its domain filter.
func MarketsFilter(r *GetMarketsRequest) domain.MarketsFilter {
	return domain.MarketsFilter{
		Universe:           r.Universe,
		Creator:            domain.NonZero(r.Creator),
		Category:           domain.NonZero(r.Category),
		Search:             domain.NonZero(r.Search),
		ReportingState:     ReportingStateFromWire(r.ReportingState),
		FeeWindow:          domain.NonZero(r.FeeWindow),
		DesignatedReporter: domain.NonZero(r.DesignatedReporter),
		Sort:               sortOf(r.SortBy, r.IsSortDescending),
		Page:               pageOf(r.Limit, r.Offset),
	}
}

// PriceHistoryFilter maps a GetMarketPriceHistory request to its domain filter.
func PriceHistoryFilter(r *GetMarketPriceHistoryRequest) domain.PriceHistoryFilter {
	return domain.PriceHistoryFilter{
		MarketID: r.MarketID,
		Sort:     sortOf(r.SortBy, r.IsSortDescending),
		Page:     pageOf(r.Limit, r.Offset),
	}
}

// OrdersFilter maps a GetOrders request to its domain filter. Outcome 0 and
// orphaned=false are indistinguishable from "not supplied".
func OrdersFilter(r *GetOrdersRequest) domain.OrdersFilter {
	return domain.OrdersFilter{
		Universe:             domain.NonZero(r.Universe),
		MarketID:             domain.NonZero(r.MarketID),
		Outcome:              domain.NonZero(int(r.Outcome)),
		OrderType:            OrderTypeFromWire(r.OrderType),
		Creator:              domain.NonZero(r.Creator),
		OrderState:           OrderStateFromWire(r.OrderState),
		EarliestCreationTime: domain.NonZero(r.EarliestCreationTime),
		LatestCreationTime:   domain.NonZero(r.LatestCreationTime),
		Orphaned:             domain.NonZero(r.Orphaned),
		Sort:                 sortOf(r.SortBy, r.IsSortDescending),
		Page:                 pageOf(r.Limit, r.Offset),
	}
}

// TradingHistoryFilter maps a GetProfitLoss request to the account trade filter.
func TradingHistoryFilter(r *GetProfitLossRequest) domain.TradingHistoryFilter {
	return domain.TradingHistoryFilter{
		Universe: r.Universe,
		Account:  r.Account,
		MarketID: domain.NonZero(r.MarketID),
		Outcome:  domain.NonZero(int(r.Outcome)),
	}
}

// MarketInfoOf maps a domain market record to its wire form.
func MarketInfoOf(m domain.MarketInfo) *MarketInfo {
	out := &MarketInfo{
		ID:                        m.ID,
		Universe:                  m.Universe,
		MarketType:                string(m.MarketType),
		NumOutcomes:               int32(m.NumOutcomes),
		MinPrice:                  numeric.Encode(m.MinPrice),
		MaxPrice:                  numeric.Encode(m.MaxPrice),
		CumulativeScale:           numeric.Encode(m.CumulativeScale),
		Author:                    m.Author,
		CreationTime:              m.CreationTime,
		CreationBlock:             m.CreationBlock,
		CreationFee:               numeric.Encode(m.CreationFee),
		SettlementFee:             numeric.Encode(m.SettlementFee),
		ReportingFeeRate:          numeric.Encode(m.ReportingFeeRate),
		MarketCreatorFeeRate:      numeric.Encode(m.MarketCreatorFeeRate),
		MarketCreatorMailbox:      m.MarketCreatorMailbox,
		MarketCreatorMailboxOwner: m.MarketCreatorMailboxOwner,
		Category:                  m.Category,
		Tags:                      m.Tags,
		Volume:                    numeric.Encode(m.Volume),
		OutstandingShares:         numeric.Encode(m.OutstandingShares),
		FeeWindow:                 m.FeeWindow,
		EndTime:                   m.EndTime,
		FinalizationBlockNumber:   m.FinalizationBlockNumber,
		FinalizationTime:          m.FinalizationTime,
		Forking:                   m.Forking,
		NeedsMigration:            m.NeedsMigration,
		Description:               m.Description,
		Details:                   m.Details,
		ScalarDenomination:        m.ScalarDenomination,
		DesignatedReporter:        m.DesignatedReporter,
		DesignatedReportStake:     numeric.Encode(m.DesignatedReportStake),
		ResolutionSource:          m.ResolutionSource,
		NumTicks:                  numeric.Encode(m.NumTicks),
		TickSize:                  numeric.Encode(m.TickSize),
		Outcomes:                  make([]*OutcomeInfo, 0, len(m.Outcomes)),
	}
	if m.MarketCreatorFeesBalance != nil {
		s := numeric.Encode(*m.MarketCreatorFeesBalance)
		out.MarketCreatorFeesBalance = &s
	}
	if m.InitialReportSize != nil {
		s := numeric.Encode(*m.InitialReportSize)
		out.InitialReportSize = &s
	}
	if s, ok := m.ReportingState.Get(); ok {
		w := ReportingStateToWire(s)
		out.ReportingState = &w
	}
	if m.Consensus != nil {
		c := &NormalizedPayout{IsInvalid: m.Consensus.IsInvalid, Payout: make([]string, len(m.Consensus.Payout))}
		for i, p := range m.Consensus.Payout {
			c.Payout[i] = numeric.Encode(p)
		}
		out.Consensus = c
	}
	for _, o := range m.Outcomes {
		out.Outcomes = append(out.Outcomes, &OutcomeInfo{
			ID:          int32(o.ID),
			Volume:      numeric.Encode(o.Volume),
			Price:       numeric.Encode(o.Price),
			Description: o.Description,
		})
	}
	return out
}

// MarketsInfoOf maps records in order.
func MarketsInfoOf(ms []domain.MarketInfo) *GetMarketsInfoResponse {
	out := &GetMarketsInfoResponse{MarketInfo: make([]*MarketInfo, len(ms))}
	for i, m := range ms {
		out.MarketInfo[i] = MarketInfoOf(m)
	}
	return out
}

// PriceHistoryOf maps a domain price history to its wire form.
func PriceHistoryOf(h *domain.MarketPriceHistory) *MarketPriceHistory {
	out := &MarketPriceHistory{Outcomes: make(map[int32][]*TimestampedPriceAmount, len(h.ByOutcome))}
	for outcome, samples := range h.ByOutcome {
		ws := make([]*TimestampedPriceAmount, len(samples))
		for i, s := range samples {
			ws[i] = &TimestampedPriceAmount{
				Price:     numeric.Encode(s.Price),
				Amount:    numeric.Encode(s.Amount),
				Timestamp: s.Timestamp,
			}
		}
		out.Outcomes[int32(outcome)] = ws
	}
	return out
}

// ProfitLossOf maps summaries in order.
func ProfitLossOf(ps []domain.ProfitLoss) *GetProfitLossResponse {
	out := &GetProfitLossResponse{ProfitLoss: make([]*ProfitLoss, len(ps))}
	for i, p := range ps {
		out.ProfitLoss[i] = &ProfitLoss{
			MarketID:      p.MarketID,
			Outcome:       int32(p.Outcome),
			Realized:      numeric.Encode(p.Realized),
			Unrealized:    numeric.Encode(p.Unrealized),
			Position:      numeric.Encode(p.Position),
			MeanOpenPrice: numeric.Encode(p.MeanOpenPrice),
			Queued:        numeric.Encode(p.Queued),
		}
	}
	return out
}

// Mapper converts results whose mapping can partially fail. Such failures
// are logged and the affected field is left absent.
type Mapper struct {
	logger *slog.Logger
}

// NewMapper creates a Mapper.
func NewMapper(logger *slog.Logger) *Mapper {
	return &Mapper{logger: logger.With(slog.String("component", "wire_mapper"))}
}

// Orders maps grouped orders to the nested wire response.
func (mp *Mapper) Orders(ctx context.Context, g domain.GroupedOrders) *GetOrdersResponse {
	out := &GetOrdersResponse{Markets: make(map[string]*MarketOrders, len(g))}
	for marketID, outcomes := range g {
		mo := &MarketOrders{Outcomes: make(map[int32]*OutcomeOrders, len(outcomes))}
		for outcome, sides := range outcomes {
			oo := &OutcomeOrders{}
			if sides.Buy != nil {
				oo.Buy = mp.bucket(ctx, sides.Buy)
			}
			if sides.Sell != nil {
				oo.Sell = mp.bucket(ctx, sides.Sell)
			}
			mo.Outcomes[int32(outcome)] = oo
		}
		out.Markets[marketID] = mo
	}
	return out
}

func (mp *Mapper) bucket(ctx context.Context, orders map[string]domain.Order) *OrderBucket {
	b := &OrderBucket{Orders: make(map[string]*Order, len(orders))}
	// Sorted so partial-field warnings come out in a stable order.
	ids := make([]string, 0, len(orders))
	for id := range orders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		b.Orders[id] = mp.order(ctx, orders[id])
	}
	return b
}

func (mp *Mapper) order(ctx context.Context, o domain.Order) *Order {
	out := &Order{
		OrderID:             o.OrderID,
		MarketID:            o.MarketID,
		Outcome:             int32(o.Outcome),
		OrderType:           OrderTypeToWire(o.Side),
		Owner:               o.Owner,
		TransactionHash:     o.TransactionHash,
		LogIndex:            o.LogIndex,
		Price:               numeric.Encode(o.Price),
		Amount:              numeric.Encode(o.Amount),
		OriginalAmount:      numeric.Encode(o.OriginalAmount),
		SharesEscrowed:      numeric.Encode(o.SharesEscrowed),
		TokensEscrowed:      numeric.Encode(o.TokensEscrowed),
		OrderState:          OrderStateToWire(o.State),
		CreationTime:        o.CreationTime,
		CreationBlockNumber: o.CreationBlockNumber,
		TradeGroupID:        o.TradeGroupID,
		Orphaned:            o.Orphaned,
	}
	if c := o.Canceled; c != nil {
		out.CanceledBlockNumber = mp.parseInt(ctx, o.OrderID, "canceled_block_number", c.BlockNumber)
		out.CanceledTime = mp.parseInt(ctx, o.OrderID, "canceled_time", c.Time)
		if c.TransactionHash != "" {
			h := c.TransactionHash
			out.CanceledTransactionHash = &h
		}
	}
	return out
}

func (mp *Mapper) parseInt(ctx context.Context, orderID, field, v string) *int64 {
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		mp.logger.WarnContext(ctx, "field omitted",
			slog.String("order_id", orderID),
			slog.String("error", domain.PartialField(field, err).Error()),
		)
		return nil
	}
	return &n
}
