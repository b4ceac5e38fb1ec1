// Package memory is an in-process query.Store over plain row slices. It
// evaluates the same statements the PostgreSQL renderer emits, with
// PostgreSQL's ordering of NULLs, and backs tests and store-less local runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
	"github.com/alanyoungcy/marketsrpc/internal/numeric"
	"github.com/alanyoungcy/marketsrpc/internal/query"
)

// Tables are the relations every new Store starts with.
var Tables = []string{
	"blocks", "markets", "outcomes", "payouts", "trades", "orders", "orders_canceled",
}

// Store holds rows per table. Values are int64, string, decimal.Decimal or
// nil; Insert normalizes other integer widths.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]query.Row
}

var _ query.Store = (*Store)(nil)

// New returns an empty store with the standard tables.
func New() *Store {
	s := &Store{tables: make(map[string][]query.Row, len(Tables))}
	for _, t := range Tables {
		s.tables[t] = nil
	}
	return s
}

// Insert appends rows to table, creating it if needed.
func (s *Store) Insert(table string, rows ...query.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		cp := make(query.Row, len(r))
		for k, v := range r {
			cp[k] = normalize(v)
		}
		s.tables[table] = append(s.tables[table], cp)
	}
}

// Select evaluates sel. The statement is rendered first so identifier checks
// match the PostgreSQL store exactly.
func (s *Store) Select(ctx context.Context, sel *query.Select) ([]query.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Store("select "+sel.From, err)
	}
	if _, _, err := sel.SQL(); err != nil {
		return nil, domain.Store("render "+sel.From, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	envs, err := s.scan(sel.From)
	if err != nil {
		return nil, err
	}
	for _, j := range sel.Joins {
		if envs, err = s.join(envs, j); err != nil {
			return nil, err
		}
	}

	filtered := envs[:0]
	for _, e := range envs {
		ok, err := eval(e, sel.Where)
		if err != nil {
			return nil, domain.Store("select "+sel.From, err)
		}
		if ok {
			filtered = append(filtered, e)
		}
	}
	envs = filtered

	sortEnvs(envs, sel.OrderBy)

	if sel.PartitionBy != "" && (sel.Limit != nil || sel.Offset != nil) {
		envs = windowed(envs, sel)
	} else {
		envs = page(envs, sel.Limit, sel.Offset)
	}

	if err := ctx.Err(); err != nil {
		return nil, domain.Store("select "+sel.From, err)
	}
	return project(envs, sel.Columns), nil
}

// env is one joined row keyed by qualified column name.
type env map[string]any

func (s *Store) scan(table string) ([]env, error) {
	rows, ok := s.tables[table]
	if !ok {
		return nil, domain.Store("select "+table, fmt.Errorf("memory: relation %q does not exist", table))
	}
	out := make([]env, 0, len(rows))
	for _, r := range rows {
		e := make(env, len(r))
		qualify(e, table, r)
		out = append(out, e)
	}
	return out, nil
}

func qualify(e env, name string, r query.Row) {
	for k, v := range r {
		e[name+"."+k] = v
	}
}

func (s *Store) join(envs []env, j query.Join) ([]env, error) {
	rows, ok := s.tables[j.Table]
	if !ok {
		return nil, domain.Store("join "+j.Table, fmt.Errorf("memory: relation %q does not exist", j.Table))
	}
	name := j.Name()
	rightCol := strings.TrimPrefix(j.Right, name+".")

	var out []env
	for _, e := range envs {
		matched := false
		left := e[j.Left]
		for _, r := range rows {
			if c, ok := compare(left, r[rightCol]); !ok || c != 0 {
				continue
			}
			matched = true
			ne := make(env, len(e)+len(r))
			for k, v := range e {
				ne[k] = v
			}
			qualify(ne, name, r)
			out = append(out, ne)
		}
		if !matched && j.Kind == query.LeftJoin {
			out = append(out, e)
		}
	}
	return out, nil
}

func eval(e env, preds []query.Pred) (bool, error) {
	for _, p := range preds {
		ok, err := evalOne(e, p)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func evalOne(e env, p query.Pred) (bool, error) {
	switch p := p.(type) {
	case query.Cmp:
		v := e[p.Column]
		if v == nil {
			return false, nil
		}
		if p.Op == query.OpContains {
			s, ok1 := v.(string)
			sub, ok2 := p.Value.(string)
			if !ok1 || !ok2 {
				return false, fmt.Errorf("memory: contains on non-text column %s", p.Column)
			}
			return strings.Contains(strings.ToLower(s), strings.ToLower(sub)), nil
		}
		c, ok := compare(v, normalize(p.Value))
		if !ok {
			return false, fmt.Errorf("memory: cannot compare %s (%T) with %T", p.Column, v, p.Value)
		}
		switch p.Op {
		case query.OpEq:
			return c == 0, nil
		case query.OpNe:
			return c != 0, nil
		case query.OpLt:
			return c < 0, nil
		case query.OpLte:
			return c <= 0, nil
		case query.OpGt:
			return c > 0, nil
		case query.OpGte:
			return c >= 0, nil
		}
		return false, fmt.Errorf("memory: unknown operator %d", p.Op)
	case query.In:
		v := e[p.Column]
		for _, want := range p.Values {
			if c, ok := compare(v, normalize(want)); ok && c == 0 {
				return true, nil
			}
		}
		return false, nil
	case query.AnyOf:
		for _, q := range p {
			ok, err := evalOne(e, q)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case query.Null:
		return (e[p.Column] == nil) != p.Not, nil
	}
	return false, fmt.Errorf("memory: unsupported predicate %T", p)
}

// compare orders two non-nil values of compatible types. Integers and
// decimals compare numerically with each other.
func compare(a, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case int64:
		switch y := b.(type) {
		case int64:
			switch {
			case x < y:
				return -1, true
			case x > y:
				return 1, true
			}
			return 0, true
		case decimal.Decimal:
			return decimal.NewFromInt(x).Cmp(y), true
		}
	case decimal.Decimal:
		switch y := b.(type) {
		case decimal.Decimal:
			return x.Cmp(y), true
		case int64:
			return x.Cmp(decimal.NewFromInt(y)), true
		}
	}
	return 0, false
}

// orderValue compares for sorting: NULL is greater than every value.
func orderValue(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c, _ := compare(a, b)
	return c
}

func sortEnvs(envs []env, terms []query.Order) {
	if len(terms) == 0 {
		return
	}
	sort.SliceStable(envs, func(i, j int) bool {
		for _, t := range terms {
			c := orderValue(envs[i][t.Column], envs[j][t.Column])
			if c == 0 {
				continue
			}
			if t.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func page(envs []env, limit, offset *int) []env {
	if offset != nil {
		if *offset >= len(envs) {
			return nil
		}
		envs = envs[*offset:]
	}
	if limit != nil && *limit < len(envs) {
		envs = envs[:*limit]
	}
	return envs
}

// windowed numbers rows within each partition in their sorted order, keeps
// rows numbered (offset, offset+limit], and returns them ordered by partition
// value then row number.
func windowed(envs []env, sel *query.Select) []env {
	type numbered struct {
		e   env
		num int
	}
	offset := 0
	if sel.Offset != nil {
		offset = *sel.Offset
	}

	counts := make(map[string]int)
	var kept []numbered
	for _, e := range envs {
		key := partitionKey(e[sel.PartitionBy])
		counts[key]++
		n := counts[key]
		if n <= offset {
			continue
		}
		if sel.Limit != nil && n > offset+*sel.Limit {
			continue
		}
		kept = append(kept, numbered{e: e, num: n})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if c := orderValue(kept[i].e[sel.PartitionBy], kept[j].e[sel.PartitionBy]); c != 0 {
			return c < 0
		}
		return kept[i].num < kept[j].num
	})

	out := make([]env, len(kept))
	for i, k := range kept {
		out[i] = k.e
	}
	return out
}

func partitionKey(v any) string {
	if v == nil {
		return "\x00null"
	}
	return fmt.Sprintf("%T:%s", v, textOf(v))
}

func project(envs []env, cols []query.Column) []query.Row {
	out := make([]query.Row, len(envs))
	for i, e := range envs {
		r := make(query.Row, len(cols))
		for _, c := range cols {
			v := e[c.Expr]
			if c.Text && v != nil {
				v = textOf(v)
			}
			r[c.Key()] = v
		}
		out[i] = r
	}
	return out
}

func textOf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case decimal.Decimal:
		return numeric.Encode(x)
	}
	return fmt.Sprint(v)
}

func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case *string:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}
