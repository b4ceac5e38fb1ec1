package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ReportingState is a market's lifecycle phase. Values are dense from zero so
// mapping tables can be indexed by them; NumReportingStates must follow the
// last value.
type ReportingState int

const (
	ReportingStatePreReporting ReportingState = iota
	ReportingStateDesignatedReporting
	ReportingStateOpenReporting
	ReportingStateCrowdsourcingDispute
	ReportingStateAwaitingNextWindow
	ReportingStateAwaitingFinalization
	ReportingStateFinalized
	ReportingStateForking
	ReportingStateAwaitingNoReportMigration
	ReportingStateAwaitingForkMigration

	NumReportingStates = int(iota)
)

// reportingStateNames are the values stored in markets.reporting_state.
var reportingStateNames = [...]string{
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

// Compile-time check that every state has a stored name.
var _ [len(reportingStateNames) - NumReportingStates]struct{}
var _ [NumReportingStates - len(reportingStateNames)]struct{}

// String returns the stored representation of s.
func (s ReportingState) String() string {
	if s < 0 || int(s) >= NumReportingStates {
		return fmt.Sprintf("ReportingState(%d)", int(s))
	}
	return reportingStateNames[s]
}

// ParseReportingState maps a stored value back to a ReportingState.
func ParseReportingState(v string) (ReportingState, error) {
	for i, name := range reportingStateNames {
		if name == v {
			return ReportingState(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown reporting state %q", ErrInvalidFormat, v)
}

// MarketType is the outcome structure of a market.
type MarketType string

const (
	MarketTypeYesNo       MarketType = "yesNo"
	MarketTypeCategorical MarketType = "categorical"
	MarketTypeScalar      MarketType = "scalar"
)

// NormalizedPayout is a market's consensus resolution.
type NormalizedPayout struct {
	IsInvalid bool
	Payout    []decimal.Decimal
}

// OutcomeInfo summarises one outcome of a market.
type OutcomeInfo struct {
	ID          int
	Volume      decimal.Decimal
	Price       decimal.Decimal
	Description *string
}

// MarketInfo is the full read model of a market.
type MarketInfo struct {
	ID                        string
	Universe                  string
	MarketType                MarketType
	NumOutcomes               int
	MinPrice                  decimal.Decimal
	MaxPrice                  decimal.Decimal
	CumulativeScale           decimal.Decimal
	Author                    string
	CreationTime              int64
	CreationBlock             int64
	CreationFee               decimal.Decimal
	SettlementFee             decimal.Decimal
	ReportingFeeRate          decimal.Decimal
	MarketCreatorFeeRate      decimal.Decimal
	MarketCreatorFeesBalance  *decimal.Decimal
	MarketCreatorMailbox      string
	MarketCreatorMailboxOwner string
	InitialReportSize         *decimal.Decimal
	Category                  string
	Tags                      []string
	Volume                    decimal.Decimal
	OutstandingShares         decimal.Decimal
	FeeWindow                 string
	EndTime                   int64
	FinalizationBlockNumber   *int64
	FinalizationTime          *int64
	ReportingState            Opt[ReportingState]
	Forking                   bool
	NeedsMigration            bool
	Description               string
	Details                   *string
	ScalarDenomination        *string
	DesignatedReporter        string
	DesignatedReportStake     decimal.Decimal
	ResolutionSource          *string
	NumTicks                  decimal.Decimal
	TickSize                  decimal.Decimal
	Consensus                 *NormalizedPayout
	Outcomes                  []OutcomeInfo
}
