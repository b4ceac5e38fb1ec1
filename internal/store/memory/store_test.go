package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
	"github.com/alanyoungcy/marketsrpc/internal/numeric"
	"github.com/alanyoungcy/marketsrpc/internal/query"
)

func tradeFixture() *Store {
	s := New()
	s.Insert("blocks",
		query.Row{"block_number": 1, "timestamp": 100},
		query.Row{"block_number": 2, "timestamp": 200},
		query.Row{"block_number": 3, "timestamp": 300},
	)
	s.Insert("trades",
		query.Row{"market_id": "m1", "outcome": 0, "price": numeric.MustDecode("0.40"), "amount": numeric.MustDecode("1"), "block_number": 1, "log_index": 0},
		query.Row{"market_id": "m1", "outcome": 1, "price": numeric.MustDecode("0.60"), "amount": numeric.MustDecode("2"), "block_number": 1, "log_index": 1},
		query.Row{"market_id": "m1", "outcome": 0, "price": numeric.MustDecode("0.45"), "amount": numeric.MustDecode("3"), "block_number": 2, "log_index": 0},
		query.Row{"market_id": "m1", "outcome": 1, "price": numeric.MustDecode("0.55"), "amount": numeric.MustDecode("4"), "block_number": 3, "log_index": 0},
		query.Row{"market_id": "m1", "outcome": 0, "price": numeric.MustDecode("0.50"), "amount": numeric.MustDecode("5"), "block_number": 3, "log_index": 1},
		query.Row{"market_id": "m2", "outcome": 0, "price": numeric.MustDecode("0.10"), "amount": numeric.MustDecode("6"), "block_number": 3, "log_index": 2},
	)
	return s
}

func TestPriceHistoryLatestPerOutcome(t *testing.T) {
	s := tradeFixture()
	sel, err := query.PriceHistory(domain.PriceHistoryFilter{
		MarketID: "m1",
		Sort:     domain.Sort{Descending: domain.Some(true)},
		Page:     domain.Page{Limit: domain.Some(1)},
	})
	if err != nil {
		t.Fatalf("PriceHistory: %v", err)
	}
	rows, err := s.Select(context.Background(), sel)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2: %v", len(rows), rows)
	}
	want := []struct {
		outcome int64
		price   string
		ts      int64
	}{
		{0, "0.50", 300},
		{1, "0.55", 300},
	}
	for i, w := range want {
		if rows[i]["outcome"] != w.outcome || rows[i]["price"] != w.price || rows[i]["timestamp"] != w.ts {
			t.Errorf("row %d = %v, want %+v", i, rows[i], w)
		}
	}
}

func TestPartitionOffset(t *testing.T) {
	s := tradeFixture()
	sel, err := query.PriceHistory(domain.PriceHistoryFilter{
		MarketID: "m1",
		Page:     domain.Page{Offset: domain.Some(1)},
	})
	if err != nil {
		t.Fatalf("PriceHistory: %v", err)
	}
	rows, err := s.Select(context.Background(), sel)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	var got []string
	for _, r := range rows {
		got = append(got, r["price"].(string))
	}
	if strings.Join(got, ",") != "0.45,0.50,0.55" {
		t.Errorf("prices = %v", got)
	}
}

func TestLeftJoinKeepsUnmatchedRows(t *testing.T) {
	s := New()
	s.Insert("orders",
		query.Row{"order_id": "o1", "creation_block_number": 1},
		query.Row{"order_id": "o2", "creation_block_number": 9},
	)
	s.Insert("blocks", query.Row{"block_number": 1, "timestamp": 100})

	sel := &query.Select{
		From:    "orders",
		Columns: []query.Column{query.Col("orders.order_id"), query.TextAs("cb.timestamp", "created")},
		Joins: []query.Join{{
			Kind: query.LeftJoin, Table: "blocks", Alias: "cb",
			Left: "orders.creation_block_number", Right: "cb.block_number",
		}},
		OrderBy: []query.Order{{Column: "cb.timestamp", Desc: true}},
	}
	rows, err := s.Select(context.Background(), sel)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	// NULL sorts first when descending.
	if rows[0]["order_id"] != "o2" || rows[0]["created"] != nil {
		t.Errorf("rows[0] = %v", rows[0])
	}
	if rows[1]["created"] != "100" {
		t.Errorf("rows[1] = %v, want text timestamp", rows[1])
	}
}

func TestInnerJoinDropsUnmatchedRows(t *testing.T) {
	s := New()
	s.Insert("markets", query.Row{"market_id": "m1", "universe": "u"})
	s.Insert("orders",
		query.Row{"order_id": "o1", "market_id": "m1"},
		query.Row{"order_id": "o2", "market_id": "m404"},
	)
	sel := &query.Select{
		From:    "orders",
		Columns: []query.Column{query.Col("orders.order_id")},
		Joins: []query.Join{{
			Kind: query.InnerJoin, Table: "markets",
			Left: "orders.market_id", Right: "markets.market_id",
		}},
		Where: []query.Pred{query.Eq("markets.universe", "u")},
	}
	rows, err := s.Select(context.Background(), sel)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(rows) != 1 || rows[0]["order_id"] != "o1" {
		t.Errorf("rows = %v", rows)
	}
}

func TestUnknownTableIsStoreError(t *testing.T) {
	s := New()
	_, err := s.Select(context.Background(), &query.Select{From: "nope", Columns: []query.Column{query.Col("nope.id")}})
	if domain.KindOf(err) != domain.KindStore {
		t.Fatalf("err = %v, want store error", err)
	}
}

func TestCanceledContext(t *testing.T) {
	s := tradeFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sel, _ := query.PriceHistory(domain.PriceHistoryFilter{MarketID: "m1"})
	if _, err := s.Select(ctx, sel); err == nil {
		t.Fatal("expected error on canceled context")
	}
}

func TestLoadJSON(t *testing.T) {
	s := New()
	doc := `{"outcomes": [{"market_id": "m1", "outcome": 0, "price": 0.50, "volume": 12, "description": null}]}`
	if err := s.LoadJSON(strings.NewReader(doc)); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	rows, err := s.Select(context.Background(), query.OutcomePrices([]string{"m1"}))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(rows) != 1 || rows[0]["price"] != "0.50" || rows[0]["outcome"] != int64(0) {
		t.Errorf("rows = %v", rows)
	}
}
