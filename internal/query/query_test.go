package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
)

const testUniverse = "0x1111111111111111111111111111111111111111"

func mustSQL(t *testing.T, s *Select) (string, []any) {
	t.Helper()
	sql, args, err := s.SQL()
	if err != nil {
		t.Fatalf("SQL: %v", err)
	}
	return sql, args
}

func TestMarketsDefaults(t *testing.T) {
	s, err := Markets(domain.MarketsFilter{Universe: testUniverse})
	if err != nil {
		t.Fatalf("Markets: %v", err)
	}
	sql, args := mustSQL(t, s)

	want := "SELECT markets.market_id AS market_id FROM markets" +
		" LEFT JOIN blocks AS creation_blocks ON markets.creation_block_number = creation_blocks.block_number" +
		" WHERE markets.universe = $1" +
		" ORDER BY markets.volume DESC, markets.market_id DESC"
	if sql != want {
		t.Errorf("sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 1 || args[0] != testUniverse {
		t.Errorf("args = %v, want [%s]", args, testUniverse)
	}
}

func TestMarketsRequiresUniverse(t *testing.T) {
	_, err := Markets(domain.MarketsFilter{})
	if domain.KindOf(err) != domain.KindValidation || !errors.Is(err, domain.ErrRequired) {
		t.Fatalf("err = %v, want validation of missing universe", err)
	}
}

func TestAbsentFiltersAreOmitted(t *testing.T) {
	tests := []struct {
		name     string
		f        domain.MarketsFilter
		wantArgs int
		contains string
	}{
		{"none", domain.MarketsFilter{Universe: testUniverse}, 1, ""},
		{"creator", domain.MarketsFilter{Universe: testUniverse, Creator: domain.Some("0xabc")}, 2, "markets.market_creator = $2"},
		{"empty creator is still a filter", domain.MarketsFilter{Universe: testUniverse, Creator: domain.Some("")}, 2, "markets.market_creator = $2"},
		{"search", domain.MarketsFilter{Universe: testUniverse, Search: domain.Some("rain")}, 4, "(markets.short_description ILIKE $2 OR markets.long_description ILIKE $3 OR markets.category ILIKE $4)"},
		{"reporting state", domain.MarketsFilter{Universe: testUniverse, ReportingState: domain.Some(domain.ReportingStateFinalized)}, 2, "markets.reporting_state = $2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Markets(tt.f)
			if err != nil {
				t.Fatalf("Markets: %v", err)
			}
			sql, args := mustSQL(t, s)
			if len(args) != tt.wantArgs {
				t.Errorf("len(args) = %d, want %d (%s)", len(args), tt.wantArgs, sql)
			}
			if tt.contains != "" && !strings.Contains(sql, tt.contains) {
				t.Errorf("sql %q does not contain %q", sql, tt.contains)
			}
		})
	}
}

func TestSortDirectionWithoutColumn(t *testing.T) {
	s, err := Markets(domain.MarketsFilter{
		Universe: testUniverse,
		Sort:     domain.Sort{Descending: domain.Some(false)},
	})
	if err != nil {
		t.Fatalf("Markets: %v", err)
	}
	sql, _ := mustSQL(t, s)
	if !strings.HasSuffix(sql, "ORDER BY markets.volume ASC, markets.market_id ASC") {
		t.Errorf("sql = %s, want default column ascending", sql)
	}
}

func TestSortColumnUsesDefaultDirection(t *testing.T) {
	s, err := Markets(domain.MarketsFilter{
		Universe: testUniverse,
		Sort:     domain.Sort{By: domain.Some("endTime")},
	})
	if err != nil {
		t.Fatalf("Markets: %v", err)
	}
	sql, _ := mustSQL(t, s)
	if !strings.HasSuffix(sql, "ORDER BY markets.end_time DESC, markets.market_id DESC") {
		t.Errorf("sql = %s", sql)
	}
}

func TestUnknownSortKeyRejected(t *testing.T) {
	_, err := Markets(domain.MarketsFilter{
		Universe: testUniverse,
		Sort:     domain.Sort{By: domain.Some("volume; DROP TABLE markets")},
	})
	if !errors.Is(err, domain.ErrUnknownSortKey) {
		t.Fatalf("err = %v, want ErrUnknownSortKey", err)
	}
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("kind = %v, want validation", domain.KindOf(err))
	}
}

func TestNegativePageRejected(t *testing.T) {
	_, err := Markets(domain.MarketsFilter{
		Universe: testUniverse,
		Page:     domain.Page{Limit: domain.Some(-1)},
	})
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestPageIsBound(t *testing.T) {
	s, err := Markets(domain.MarketsFilter{
		Universe: testUniverse,
		Page:     domain.Page{Limit: domain.Some(10), Offset: domain.Some(20)},
	})
	if err != nil {
		t.Fatalf("Markets: %v", err)
	}
	sql, args := mustSQL(t, s)
	if !strings.HasSuffix(sql, " LIMIT $2 OFFSET $3") {
		t.Errorf("sql = %s", sql)
	}
	if args[1] != 10 || args[2] != 20 {
		t.Errorf("args = %v", args)
	}
}

func TestPriceHistoryPartitionsPage(t *testing.T) {
	s, err := PriceHistory(domain.PriceHistoryFilter{
		MarketID: "0xm1",
		Sort:     domain.Sort{Descending: domain.Some(true)},
		Page:     domain.Page{Limit: domain.Some(1)},
	})
	if err != nil {
		t.Fatalf("PriceHistory: %v", err)
	}
	sql, args := mustSQL(t, s)
	for _, frag := range []string{
		"ROW_NUMBER() OVER (PARTITION BY trades.outcome ORDER BY blocks.timestamp DESC, trades.block_number DESC, trades.log_index DESC) AS row_num",
		") AS windowed WHERE row_num > $2 AND row_num <= $3",
		"ORDER BY outcome ASC, row_num ASC",
	} {
		if !strings.Contains(sql, frag) {
			t.Errorf("sql %q does not contain %q", sql, frag)
		}
	}
	if len(args) != 3 || args[1] != 0 || args[2] != 1 {
		t.Errorf("args = %v", args)
	}
}

func TestPriceHistoryWithoutPageIsPlain(t *testing.T) {
	s, err := PriceHistory(domain.PriceHistoryFilter{MarketID: "0xm1"})
	if err != nil {
		t.Fatalf("PriceHistory: %v", err)
	}
	sql, _ := mustSQL(t, s)
	if strings.Contains(sql, "ROW_NUMBER") {
		t.Errorf("unexpected window: %s", sql)
	}
	if !strings.HasSuffix(sql, "ORDER BY blocks.timestamp ASC, trades.block_number ASC, trades.log_index ASC") {
		t.Errorf("sql = %s", sql)
	}
}

func TestOrdersRequireUniverseOrMarket(t *testing.T) {
	if _, err := Orders(domain.OrdersFilter{}); !errors.Is(err, domain.ErrRequired) {
		t.Fatalf("err = %v, want ErrRequired", err)
	}
	if _, err := Orders(domain.OrdersFilter{MarketID: domain.Some("0xm1")}); err != nil {
		t.Fatalf("market only: %v", err)
	}
	if _, err := Orders(domain.OrdersFilter{Universe: domain.Some(testUniverse)}); err != nil {
		t.Fatalf("universe only: %v", err)
	}
}

func TestOrdersStateAllIsNoFilter(t *testing.T) {
	all, err := Orders(domain.OrdersFilter{MarketID: domain.Some("0xm1"), OrderState: domain.Some(domain.OrderStateAll)})
	if err != nil {
		t.Fatalf("Orders: %v", err)
	}
	open, err := Orders(domain.OrdersFilter{MarketID: domain.Some("0xm1"), OrderState: domain.Some(domain.OrderStateOpen)})
	if err != nil {
		t.Fatalf("Orders: %v", err)
	}
	allSQL, allArgs := mustSQL(t, all)
	openSQL, openArgs := mustSQL(t, open)
	if strings.Contains(allSQL, "order_state =") || len(allArgs) != 1 {
		t.Errorf("ALL produced a state filter: %s %v", allSQL, allArgs)
	}
	if !strings.Contains(openSQL, "orders.order_state = $2") || openArgs[1] != "OPEN" {
		t.Errorf("OPEN filter missing: %s %v", openSQL, openArgs)
	}
}

func TestOrdersCreationTimeBoundsInclusive(t *testing.T) {
	s, err := Orders(domain.OrdersFilter{
		MarketID:             domain.Some("0xm1"),
		EarliestCreationTime: domain.Some(int64(100)),
		LatestCreationTime:   domain.Some(int64(200)),
		Orphaned:             domain.Some(true),
	})
	if err != nil {
		t.Fatalf("Orders: %v", err)
	}
	sql, args := mustSQL(t, s)
	for _, frag := range []string{
		"creation_blocks.timestamp >= $2",
		"creation_blocks.timestamp <= $3",
		"orders.orphaned = $4",
	} {
		if !strings.Contains(sql, frag) {
			t.Errorf("sql %q does not contain %q", sql, frag)
		}
	}
	if args[3] != int64(1) {
		t.Errorf("orphaned arg = %v, want 1", args[3])
	}
}

func TestMarketsInfoEmptyIDsMatchNothing(t *testing.T) {
	q := MarketsInfo(nil)
	sql, args := mustSQL(t, q.Markets)
	if !strings.HasSuffix(sql, "WHERE FALSE") || len(args) != 0 {
		t.Errorf("sql = %s args = %v", sql, args)
	}
}

func TestMarketsInfoConsensusSelectsWinningPayout(t *testing.T) {
	q := MarketsInfo([]string{"0xm1", "0xm2"})
	sql, args := mustSQL(t, q.Consensus)
	if !strings.Contains(sql, "payouts.payout7::text AS payout7") {
		t.Errorf("sql = %s", sql)
	}
	if !strings.HasSuffix(sql, "WHERE payouts.market_id IN ($1, $2) AND payouts.winning = $3") {
		t.Errorf("sql = %s", sql)
	}
	if len(args) != 3 {
		t.Errorf("args = %v", args)
	}
}

func TestTradingHistoryMatchesEitherSide(t *testing.T) {
	s, err := TradingHistory(domain.TradingHistoryFilter{Universe: testUniverse, Account: "0xacc"})
	if err != nil {
		t.Fatalf("TradingHistory: %v", err)
	}
	sql, _ := mustSQL(t, s)
	if !strings.Contains(sql, "(trades.creator = $2 OR trades.filler = $3)") {
		t.Errorf("sql = %s", sql)
	}
}

func TestRenderRejectsBadIdentifiers(t *testing.T) {
	s := &Select{From: "markets", Columns: []Column{Col("markets.market_id")}}
	s.And(Eq("markets.universe = 1 OR 1", 1))
	if _, _, err := s.SQL(); err == nil {
		t.Fatal("expected identifier error")
	}
}

func TestContainsEscapesWildcards(t *testing.T) {
	s := &Select{From: "markets", Columns: []Column{Col("markets.market_id")}}
	s.And(Contains("markets.category", `50%_off\`))
	_, args := mustSQL(t, s)
	if want := `%50\%\_off\\%`; args[0] != want {
		t.Errorf("arg = %q, want %q", args[0], want)
	}
}
