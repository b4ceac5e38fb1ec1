package wire

import "google.golang.org/protobuf/reflect/protoreflect"

// Decimal values travel as canonical strings. Optional fields are pointers;
// nil means the field is absent on the wire.

type GetMarketsRequest struct {
	Universe           string
	Creator            string
	Category           string
	Search             string
	ReportingState     ReportingState
	FeeWindow          string
	DesignatedReporter string
	SortBy             string
	IsSortDescending   *bool
	Limit              int32
	Offset             int32
}

func (*GetMarketsRequest) ProtoName() protoreflect.Name { return "GetMarketsRequest" }

func (r *GetMarketsRequest) writeTo(f fields) {
	f.setString("universe", r.Universe)
	f.setString("creator", r.Creator)
	f.setString("category", r.Category)
	f.setString("search", r.Search)
	f.setEnum("reporting_state", int32(r.ReportingState))
	f.setString("fee_window", r.FeeWindow)
	f.setString("designated_reporter", r.DesignatedReporter)
	f.setString("sort_by", r.SortBy)
	f.optBool("is_sort_descending", r.IsSortDescending)
	f.setInt32("limit", r.Limit)
	f.setInt32("offset", r.Offset)
}

func (r *GetMarketsRequest) readFrom(f fields) {
	*r = GetMarketsRequest{
		Universe:           f.str("universe"),
		Creator:            f.str("creator"),
		Category:           f.str("category"),
		Search:             f.str("search"),
		ReportingState:     ReportingState(f.enum("reporting_state")),
		FeeWindow:          f.str("fee_window"),
		DesignatedReporter: f.str("designated_reporter"),
		SortBy:             f.str("sort_by"),
		IsSortDescending:   f.getOptBool("is_sort_descending"),
		Limit:              f.int32("limit"),
		Offset:             f.int32("offset"),
	}
}

type GetMarketsResponse struct {
	MarketAddresses []string
}

func (*GetMarketsResponse) ProtoName() protoreflect.Name { return "GetMarketsResponse" }

func (r *GetMarketsResponse) writeTo(f fields) { f.setStrings("market_addresses", r.MarketAddresses) }
func (r *GetMarketsResponse) readFrom(f fields) {
	r.MarketAddresses = f.strings("market_addresses")
}

type BulkGetMarketsRequest struct {
	Requests []*GetMarketsRequest
}

func (*BulkGetMarketsRequest) ProtoName() protoreflect.Name { return "BulkGetMarketsRequest" }

func (r *BulkGetMarketsRequest) writeTo(f fields) { writeList(f, "requests", r.Requests) }
func (r *BulkGetMarketsRequest) readFrom(f fields) {
	r.Requests = readList[GetMarketsRequest](f, "requests")
}

type BulkGetMarketsResponse struct {
	Responses []*GetMarketsResponse
}

func (*BulkGetMarketsResponse) ProtoName() protoreflect.Name { return "BulkGetMarketsResponse" }

func (r *BulkGetMarketsResponse) writeTo(f fields) { writeList(f, "responses", r.Responses) }
func (r *BulkGetMarketsResponse) readFrom(f fields) {
	r.Responses = readList[GetMarketsResponse](f, "responses")
}

type GetMarketsInfoRequest struct {
	MarketAddresses []string
}

func (*GetMarketsInfoRequest) ProtoName() protoreflect.Name { return "GetMarketsInfoRequest" }

func (r *GetMarketsInfoRequest) writeTo(f fields) {
	f.setStrings("market_addresses", r.MarketAddresses)
}
func (r *GetMarketsInfoRequest) readFrom(f fields) {
	r.MarketAddresses = f.strings("market_addresses")
}

type NormalizedPayout struct {
	IsInvalid bool
	Payout    []string
}

func (*NormalizedPayout) ProtoName() protoreflect.Name { return "NormalizedPayout" }

func (p *NormalizedPayout) writeTo(f fields) {
	f.setBool("is_invalid", p.IsInvalid)
	f.setStrings("payout", p.Payout)
}

func (p *NormalizedPayout) readFrom(f fields) {
	p.IsInvalid = f.boolean("is_invalid")
	p.Payout = f.strings("payout")
}

type OutcomeInfo struct {
	ID          int32
	Volume      string
	Price       string
	Description *string
}

func (*OutcomeInfo) ProtoName() protoreflect.Name { return "OutcomeInfo" }

func (o *OutcomeInfo) writeTo(f fields) {
	f.setInt32("id", o.ID)
	f.setString("volume", o.Volume)
	f.setString("price", o.Price)
	f.optString("description", o.Description)
}

func (o *OutcomeInfo) readFrom(f fields) {
	*o = OutcomeInfo{
		ID:          f.int32("id"),
		Volume:      f.str("volume"),
		Price:       f.str("price"),
		Description: f.getOptString("description"),
	}
}

type MarketInfo struct {
	ID                        string
	Universe                  string
	MarketType                string
	NumOutcomes               int32
	MinPrice                  string
	MaxPrice                  string
	CumulativeScale           string
	Author                    string
	CreationTime              int64
	CreationBlock             int64
	CreationFee               string
	SettlementFee             string
	ReportingFeeRate          string
	MarketCreatorFeeRate      string
	MarketCreatorFeesBalance  *string
	MarketCreatorMailbox      string
	MarketCreatorMailboxOwner string
	InitialReportSize         *string
	Category                  string
	Tags                      []string
	Volume                    string
	OutstandingShares         string
	FeeWindow                 string
	EndTime                   int64
	FinalizationBlockNumber   *int64
	FinalizationTime          *int64
	ReportingState            *ReportingState
	Forking                   bool
	NeedsMigration            bool
	Description               string
	Details                   *string
	ScalarDenomination        *string
	DesignatedReporter        string
	DesignatedReportStake     string
	ResolutionSource          *string
	NumTicks                  string
	TickSize                  string
	Consensus                 *NormalizedPayout
	Outcomes                  []*OutcomeInfo
}

func (*MarketInfo) ProtoName() protoreflect.Name { return "MarketInfo" }

func (m *MarketInfo) writeTo(f fields) {
	f.setString("id", m.ID)
	f.setString("universe", m.Universe)
	f.setString("market_type", m.MarketType)
	f.setInt32("num_outcomes", m.NumOutcomes)
	f.setString("min_price", m.MinPrice)
	f.setString("max_price", m.MaxPrice)
	f.setString("cumulative_scale", m.CumulativeScale)
	f.setString("author", m.Author)
	f.setInt64("creation_time", m.CreationTime)
	f.setInt64("creation_block", m.CreationBlock)
	f.setString("creation_fee", m.CreationFee)
	f.setString("settlement_fee", m.SettlementFee)
	f.setString("reporting_fee_rate", m.ReportingFeeRate)
	f.setString("market_creator_fee_rate", m.MarketCreatorFeeRate)
	f.optString("market_creator_fees_balance", m.MarketCreatorFeesBalance)
	f.setString("market_creator_mailbox", m.MarketCreatorMailbox)
	f.setString("market_creator_mailbox_owner", m.MarketCreatorMailboxOwner)
	f.optString("initial_report_size", m.InitialReportSize)
	f.setString("category", m.Category)
	f.setStrings("tags", m.Tags)
	f.setString("volume", m.Volume)
	f.setString("outstanding_shares", m.OutstandingShares)
	f.setString("fee_window", m.FeeWindow)
	f.setInt64("end_time", m.EndTime)
	f.optInt64("finalization_block_number", m.FinalizationBlockNumber)
	f.optInt64("finalization_time", m.FinalizationTime)
	if m.ReportingState != nil {
		v := int32(*m.ReportingState)
		f.optEnum("reporting_state", &v)
	}
	f.setBool("forking", m.Forking)
	f.setBool("needs_migration", m.NeedsMigration)
	f.setString("description", m.Description)
	f.optString("details", m.Details)
	f.optString("scalar_denomination", m.ScalarDenomination)
	f.setString("designated_reporter", m.DesignatedReporter)
	f.setString("designated_report_stake", m.DesignatedReportStake)
	f.optString("resolution_source", m.ResolutionSource)
	f.setString("num_ticks", m.NumTicks)
	f.setString("tick_size", m.TickSize)
	if m.Consensus != nil {
		m.Consensus.writeTo(f.child("consensus"))
	}
	writeList(f, "outcomes", m.Outcomes)
}

func (m *MarketInfo) readFrom(f fields) {
	*m = MarketInfo{
		ID:                        f.str("id"),
		Universe:                  f.str("universe"),
		MarketType:                f.str("market_type"),
		NumOutcomes:               f.int32("num_outcomes"),
		MinPrice:                  f.str("min_price"),
		MaxPrice:                  f.str("max_price"),
		CumulativeScale:           f.str("cumulative_scale"),
		Author:                    f.str("author"),
		CreationTime:              f.int64("creation_time"),
		CreationBlock:             f.int64("creation_block"),
		CreationFee:               f.str("creation_fee"),
		SettlementFee:             f.str("settlement_fee"),
		ReportingFeeRate:          f.str("reporting_fee_rate"),
		MarketCreatorFeeRate:      f.str("market_creator_fee_rate"),
		MarketCreatorFeesBalance:  f.getOptString("market_creator_fees_balance"),
		MarketCreatorMailbox:      f.str("market_creator_mailbox"),
		MarketCreatorMailboxOwner: f.str("market_creator_mailbox_owner"),
		InitialReportSize:         f.getOptString("initial_report_size"),
		Category:                  f.str("category"),
		Tags:                      f.strings("tags"),
		Volume:                    f.str("volume"),
		OutstandingShares:         f.str("outstanding_shares"),
		FeeWindow:                 f.str("fee_window"),
		EndTime:                   f.int64("end_time"),
		FinalizationBlockNumber:   f.getOptInt64("finalization_block_number"),
		FinalizationTime:          f.getOptInt64("finalization_time"),
		Forking:                   f.boolean("forking"),
		NeedsMigration:            f.boolean("needs_migration"),
		Description:               f.str("description"),
		Details:                   f.getOptString("details"),
		ScalarDenomination:        f.getOptString("scalar_denomination"),
		DesignatedReporter:        f.str("designated_reporter"),
		DesignatedReportStake:     f.str("designated_report_stake"),
		ResolutionSource:          f.getOptString("resolution_source"),
		NumTicks:                  f.str("num_ticks"),
		TickSize:                  f.str("tick_size"),
		Outcomes:                  readList[OutcomeInfo](f, "outcomes"),
	}
	if v := f.getOptEnum("reporting_state"); v != nil {
		s := ReportingState(*v)
		m.ReportingState = &s
	}
	if c, ok := f.getChild("consensus"); ok {
		m.Consensus = &NormalizedPayout{}
		m.Consensus.readFrom(c)
	}
}

type GetMarketsInfoResponse struct {
	MarketInfo []*MarketInfo
}

func (*GetMarketsInfoResponse) ProtoName() protoreflect.Name { return "GetMarketsInfoResponse" }

func (r *GetMarketsInfoResponse) writeTo(f fields) { writeList(f, "market_info", r.MarketInfo) }
func (r *GetMarketsInfoResponse) readFrom(f fields) {
	r.MarketInfo = readList[MarketInfo](f, "market_info")
}

type BulkGetMarketsInfoRequest struct {
	Requests []*GetMarketsInfoRequest
}

func (*BulkGetMarketsInfoRequest) ProtoName() protoreflect.Name { return "BulkGetMarketsInfoRequest" }

func (r *BulkGetMarketsInfoRequest) writeTo(f fields) { writeList(f, "requests", r.Requests) }
func (r *BulkGetMarketsInfoRequest) readFrom(f fields) {
	r.Requests = readList[GetMarketsInfoRequest](f, "requests")
}

type BulkGetMarketsInfoResponse struct {
	Responses []*GetMarketsInfoResponse
}

func (*BulkGetMarketsInfoResponse) ProtoName() protoreflect.Name { return "BulkGetMarketsInfoResponse" }

func (r *BulkGetMarketsInfoResponse) writeTo(f fields) { writeList(f, "responses", r.Responses) }
func (r *BulkGetMarketsInfoResponse) readFrom(f fields) {
	r.Responses = readList[GetMarketsInfoResponse](f, "responses")
}

type GetMarketPriceHistoryRequest struct {
	MarketID         string
	SortBy           string
	IsSortDescending *bool
	Limit            int32
	Offset           int32
}

func (*GetMarketPriceHistoryRequest) ProtoName() protoreflect.Name {
	return "GetMarketPriceHistoryRequest"
}

func (r *GetMarketPriceHistoryRequest) writeTo(f fields) {
	f.setString("market_id", r.MarketID)
	f.setString("sort_by", r.SortBy)
	f.optBool("is_sort_descending", r.IsSortDescending)
	f.setInt32("limit", r.Limit)
	f.setInt32("offset", r.Offset)
}

func (r *GetMarketPriceHistoryRequest) readFrom(f fields) {
	*r = GetMarketPriceHistoryRequest{
		MarketID:         f.str("market_id"),
		SortBy:           f.str("sort_by"),
		IsSortDescending: f.getOptBool("is_sort_descending"),
		Limit:            f.int32("limit"),
		Offset:           f.int32("offset"),
	}
}

type TimestampedPriceAmount struct {
	Price     string
	Amount    string
	Timestamp int64
}

func (*TimestampedPriceAmount) ProtoName() protoreflect.Name { return "TimestampedPriceAmount" }

func (s *TimestampedPriceAmount) writeTo(f fields) {
	f.setString("price", s.Price)
	f.setString("amount", s.Amount)
	f.setInt64("timestamp", s.Timestamp)
}

func (s *TimestampedPriceAmount) readFrom(f fields) {
	*s = TimestampedPriceAmount{
		Price:     f.str("price"),
		Amount:    f.str("amount"),
		Timestamp: f.int64("timestamp"),
	}
}

// MarketPriceHistory is outcome → samples. The wire wraps each sample list
// in a TimestampedPriceAmounts message.
type MarketPriceHistory struct {
	Outcomes map[int32][]*TimestampedPriceAmount
}

func (*MarketPriceHistory) ProtoName() protoreflect.Name { return "MarketPriceHistory" }

func (h *MarketPriceHistory) writeTo(f fields) {
	for outcome, samples := range h.Outcomes {
		writeList(f.mapChild("outcomes", int32Key(outcome)), "samples", samples)
	}
}

func (h *MarketPriceHistory) readFrom(f fields) {
	h.Outcomes = make(map[int32][]*TimestampedPriceAmount)
	f.rangeMap("outcomes", func(k protoreflect.MapKey, v fields) {
		h.Outcomes[int32(k.Int())] = readList[TimestampedPriceAmount](v, "samples")
	})
}

type GetMarketPriceHistoryResponse struct {
	MarketPriceHistory *MarketPriceHistory
}

func (*GetMarketPriceHistoryResponse) ProtoName() protoreflect.Name {
	return "GetMarketPriceHistoryResponse"
}

func (r *GetMarketPriceHistoryResponse) writeTo(f fields) {
	if r.MarketPriceHistory != nil {
		r.MarketPriceHistory.writeTo(f.child("market_price_history"))
	}
}

func (r *GetMarketPriceHistoryResponse) readFrom(f fields) {
	r.MarketPriceHistory = nil
	if c, ok := f.getChild("market_price_history"); ok {
		r.MarketPriceHistory = &MarketPriceHistory{}
		r.MarketPriceHistory.readFrom(c)
	}
}

type BulkGetMarketPriceHistoryRequest struct {
	Requests []*GetMarketPriceHistoryRequest
}

func (*BulkGetMarketPriceHistoryRequest) ProtoName() protoreflect.Name {
	return "BulkGetMarketPriceHistoryRequest"
}

func (r *BulkGetMarketPriceHistoryRequest) writeTo(f fields) { writeList(f, "requests", r.Requests) }
func (r *BulkGetMarketPriceHistoryRequest) readFrom(f fields) {
	r.Requests = readList[GetMarketPriceHistoryRequest](f, "requests")
}

// BulkGetMarketPriceHistoryResponse is keyed by market id.
type BulkGetMarketPriceHistoryResponse struct {
	MarketPriceHistories map[string]*MarketPriceHistory
}

func (*BulkGetMarketPriceHistoryResponse) ProtoName() protoreflect.Name {
	return "BulkGetMarketPriceHistoryResponse"
}

func (r *BulkGetMarketPriceHistoryResponse) writeTo(f fields) {
	for id, h := range r.MarketPriceHistories {
		h.writeTo(f.mapChild("market_price_histories", stringKey(id)))
	}
}

func (r *BulkGetMarketPriceHistoryResponse) readFrom(f fields) {
	r.MarketPriceHistories = make(map[string]*MarketPriceHistory)
	f.rangeMap("market_price_histories", func(k protoreflect.MapKey, v fields) {
		h := &MarketPriceHistory{}
		h.readFrom(v)
		r.MarketPriceHistories[k.String()] = h
	})
}

type GetOrdersRequest struct {
	Universe             string
	MarketID             string
	Outcome              int32
	OrderType            OrderType
	Creator              string
	OrderState           OrderState
	EarliestCreationTime int64
	LatestCreationTime   int64
	Orphaned             bool
	SortBy               string
	IsSortDescending     *bool
	Limit                int32
	Offset               int32
}

func (*GetOrdersRequest) ProtoName() protoreflect.Name { return "GetOrdersRequest" }

func (r *GetOrdersRequest) writeTo(f fields) {
	f.setString("universe", r.Universe)
	f.setString("market_id", r.MarketID)
	f.setInt32("outcome", r.Outcome)
	f.setEnum("order_type", int32(r.OrderType))
	f.setString("creator", r.Creator)
	f.setEnum("order_state", int32(r.OrderState))
	f.setInt64("earliest_creation_time", r.EarliestCreationTime)
	f.setInt64("latest_creation_time", r.LatestCreationTime)
	f.setBool("orphaned", r.Orphaned)
	f.setString("sort_by", r.SortBy)
	f.optBool("is_sort_descending", r.IsSortDescending)
	f.setInt32("limit", r.Limit)
	f.setInt32("offset", r.Offset)
}

func (r *GetOrdersRequest) readFrom(f fields) {
	*r = GetOrdersRequest{
		Universe:             f.str("universe"),
		MarketID:             f.str("market_id"),
		Outcome:              f.int32("outcome"),
		OrderType:            OrderType(f.enum("order_type")),
		Creator:              f.str("creator"),
		OrderState:           OrderState(f.enum("order_state")),
		EarliestCreationTime: f.int64("earliest_creation_time"),
		LatestCreationTime:   f.int64("latest_creation_time"),
		Orphaned:             f.boolean("orphaned"),
		SortBy:               f.str("sort_by"),
		IsSortDescending:     f.getOptBool("is_sort_descending"),
		Limit:                f.int32("limit"),
		Offset:               f.int32("offset"),
	}
}

type Order struct {
	OrderID                 string
	MarketID                string
	Outcome                 int32
	OrderType               OrderType
	Owner                   string
	TransactionHash         string
	LogIndex                int64
	Price                   string
	Amount                  string
	OriginalAmount          string
	SharesEscrowed          string
	TokensEscrowed          string
	OrderState              OrderState
	CreationTime            int64
	CreationBlockNumber     int64
	TradeGroupID            *string
	Orphaned                bool
	CanceledBlockNumber     *int64
	CanceledTransactionHash *string
	CanceledTime            *int64
}

func (*Order) ProtoName() protoreflect.Name { return "Order" }

func (o *Order) writeTo(f fields) {
	f.setString("order_id", o.OrderID)
	f.setString("market_id", o.MarketID)
	f.setInt32("outcome", o.Outcome)
	f.setEnum("order_type", int32(o.OrderType))
	f.setString("owner", o.Owner)
	f.setString("transaction_hash", o.TransactionHash)
	f.setInt64("log_index", o.LogIndex)
	f.setString("price", o.Price)
	f.setString("amount", o.Amount)
	f.setString("original_amount", o.OriginalAmount)
	f.setString("shares_escrowed", o.SharesEscrowed)
	f.setString("tokens_escrowed", o.TokensEscrowed)
	f.setEnum("order_state", int32(o.OrderState))
	f.setInt64("creation_time", o.CreationTime)
	f.setInt64("creation_block_number", o.CreationBlockNumber)
	f.optString("trade_group_id", o.TradeGroupID)
	f.setBool("orphaned", o.Orphaned)
	f.optInt64("canceled_block_number", o.CanceledBlockNumber)
	f.optString("canceled_transaction_hash", o.CanceledTransactionHash)
	f.optInt64("canceled_time", o.CanceledTime)
}

func (o *Order) readFrom(f fields) {
	*o = Order{
		OrderID:                 f.str("order_id"),
		MarketID:                f.str("market_id"),
		Outcome:                 f.int32("outcome"),
		OrderType:               OrderType(f.enum("order_type")),
		Owner:                   f.str("owner"),
		TransactionHash:         f.str("transaction_hash"),
		LogIndex:                f.int64("log_index"),
		Price:                   f.str("price"),
		Amount:                  f.str("amount"),
		OriginalAmount:          f.str("original_amount"),
		SharesEscrowed:          f.str("shares_escrowed"),
		TokensEscrowed:          f.str("tokens_escrowed"),
		OrderState:              OrderState(f.enum("order_state")),
		CreationTime:            f.int64("creation_time"),
		CreationBlockNumber:     f.int64("creation_block_number"),
		TradeGroupID:            f.getOptString("trade_group_id"),
		Orphaned:                f.boolean("orphaned"),
		CanceledBlockNumber:     f.getOptInt64("canceled_block_number"),
		CanceledTransactionHash: f.getOptString("canceled_transaction_hash"),
		CanceledTime:            f.getOptInt64("canceled_time"),
	}
}

// OrderBucket is orderId → Order.
type OrderBucket struct {
	Orders map[string]*Order
}

func (*OrderBucket) ProtoName() protoreflect.Name { return "OrderBucket" }

func (b *OrderBucket) writeTo(f fields) {
	for id, o := range b.Orders {
		o.writeTo(f.mapChild("orders", stringKey(id)))
	}
}

func (b *OrderBucket) readFrom(f fields) {
	b.Orders = make(map[string]*Order)
	f.rangeMap("orders", func(k protoreflect.MapKey, v fields) {
		o := &Order{}
		o.readFrom(v)
		b.Orders[k.String()] = o
	})
}

// OutcomeOrders holds the buckets of one outcome. A nil bucket is absent on
// the wire.
type OutcomeOrders struct {
	Buy  *OrderBucket
	Sell *OrderBucket
}

func (*OutcomeOrders) ProtoName() protoreflect.Name { return "OutcomeOrders" }

func (o *OutcomeOrders) writeTo(f fields) {
	if o.Buy != nil {
		o.Buy.writeTo(f.child("buy"))
	}
	if o.Sell != nil {
		o.Sell.writeTo(f.child("sell"))
	}
}

func (o *OutcomeOrders) readFrom(f fields) {
	*o = OutcomeOrders{}
	if c, ok := f.getChild("buy"); ok {
		o.Buy = &OrderBucket{}
		o.Buy.readFrom(c)
	}
	if c, ok := f.getChild("sell"); ok {
		o.Sell = &OrderBucket{}
		o.Sell.readFrom(c)
	}
}

type MarketOrders struct {
	Outcomes map[int32]*OutcomeOrders
}

func (*MarketOrders) ProtoName() protoreflect.Name { return "MarketOrders" }

func (m *MarketOrders) writeTo(f fields) {
	for outcome, o := range m.Outcomes {
		o.writeTo(f.mapChild("outcomes", int32Key(outcome)))
	}
}

func (m *MarketOrders) readFrom(f fields) {
	m.Outcomes = make(map[int32]*OutcomeOrders)
	f.rangeMap("outcomes", func(k protoreflect.MapKey, v fields) {
		o := &OutcomeOrders{}
		o.readFrom(v)
		m.Outcomes[int32(k.Int())] = o
	})
}

// GetOrdersResponse is marketId → outcome → side → orderId → Order.
type GetOrdersResponse struct {
	Markets map[string]*MarketOrders
}

func (*GetOrdersResponse) ProtoName() protoreflect.Name { return "GetOrdersResponse" }

func (r *GetOrdersResponse) writeTo(f fields) {
	for id, m := range r.Markets {
		m.writeTo(f.mapChild("markets", stringKey(id)))
	}
}

func (r *GetOrdersResponse) readFrom(f fields) {
	r.Markets = make(map[string]*MarketOrders)
	f.rangeMap("markets", func(k protoreflect.MapKey, v fields) {
		m := &MarketOrders{}
		m.readFrom(v)
		r.Markets[k.String()] = m
	})
}

type BulkGetOrdersRequest struct {
	Requests []*GetOrdersRequest
}

func (*BulkGetOrdersRequest) ProtoName() protoreflect.Name { return "BulkGetOrdersRequest" }

func (r *BulkGetOrdersRequest) writeTo(f fields) { writeList(f, "requests", r.Requests) }
func (r *BulkGetOrdersRequest) readFrom(f fields) {
	r.Requests = readList[GetOrdersRequest](f, "requests")
}

type BulkGetOrdersResponse struct {
	Responses []*GetOrdersResponse
}

func (*BulkGetOrdersResponse) ProtoName() protoreflect.Name { return "BulkGetOrdersResponse" }

func (r *BulkGetOrdersResponse) writeTo(f fields) { writeList(f, "responses", r.Responses) }
func (r *BulkGetOrdersResponse) readFrom(f fields) {
	r.Responses = readList[GetOrdersResponse](f, "responses")
}

type GetProfitLossRequest struct {
	Universe string
	Account  string
	MarketID string
	Outcome  int32
}

func (*GetProfitLossRequest) ProtoName() protoreflect.Name { return "GetProfitLossRequest" }

func (r *GetProfitLossRequest) writeTo(f fields) {
	f.setString("universe", r.Universe)
	f.setString("account", r.Account)
	f.setString("market_id", r.MarketID)
	f.setInt32("outcome", r.Outcome)
}

func (r *GetProfitLossRequest) readFrom(f fields) {
	*r = GetProfitLossRequest{
		Universe: f.str("universe"),
		Account:  f.str("account"),
		MarketID: f.str("market_id"),
		Outcome:  f.int32("outcome"),
	}
}

type ProfitLoss struct {
	MarketID      string
	Outcome       int32
	Realized      string
	Unrealized    string
	Position      string
	MeanOpenPrice string
	Queued        string
}

func (*ProfitLoss) ProtoName() protoreflect.Name { return "ProfitLoss" }

func (p *ProfitLoss) writeTo(f fields) {
	f.setString("market_id", p.MarketID)
	f.setInt32("outcome", p.Outcome)
	f.setString("realized", p.Realized)
	f.setString("unrealized", p.Unrealized)
	f.setString("position", p.Position)
	f.setString("mean_open_price", p.MeanOpenPrice)
	f.setString("queued", p.Queued)
}

func (p *ProfitLoss) readFrom(f fields) {
	*p = ProfitLoss{
		MarketID:      f.str("market_id"),
		Outcome:       f.int32("outcome"),
		Realized:      f.str("realized"),
		Unrealized:    f.str("unrealized"),
		Position:      f.str("position"),
		MeanOpenPrice: f.str("mean_open_price"),
		Queued:        f.str("queued"),
	}
}

type GetProfitLossResponse struct {
	ProfitLoss []*ProfitLoss
}

func (*GetProfitLossResponse) ProtoName() protoreflect.Name { return "GetProfitLossResponse" }

func (r *GetProfitLossResponse) writeTo(f fields) { writeList(f, "profit_loss", r.ProfitLoss) }
func (r *GetProfitLossResponse) readFrom(f fields) {
	r.ProfitLoss = readList[ProfitLoss](f, "profit_loss")
}

type BulkGetProfitLossRequest struct {
	Requests []*GetProfitLossRequest
}

func (*BulkGetProfitLossRequest) ProtoName() protoreflect.Name { return "BulkGetProfitLossRequest" }

func (r *BulkGetProfitLossRequest) writeTo(f fields) { writeList(f, "requests", r.Requests) }
func (r *BulkGetProfitLossRequest) readFrom(f fields) {
	r.Requests = readList[GetProfitLossRequest](f, "requests")
}

type BulkGetProfitLossResponse struct {
	Responses []*GetProfitLossResponse
}

func (*BulkGetProfitLossResponse) ProtoName() protoreflect.Name { return "BulkGetProfitLossResponse" }

func (r *BulkGetProfitLossResponse) writeTo(f fields) { writeList(f, "responses", r.Responses) }
func (r *BulkGetProfitLossResponse) readFrom(f fields) {
	r.Responses = readList[GetProfitLossResponse](f, "responses")
}

func writeList[M Message](f fields, name string, items []M) {
	for _, it := range items {
		it.writeTo(f.appendChild(name))
	}
}

// readList decodes a repeated message field into fresh *T values.
func readList[T any, PT interface {
	*T
	Message
}](f fields, name string) []*T {
	cs := f.children(name)
	out := make([]*T, len(cs))
	for i, c := range cs {
		v := PT(new(T))
		v.readFrom(c)
		out[i] = (*T)(v)
	}
	return out
}
