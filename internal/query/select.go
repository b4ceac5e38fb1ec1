// Package query holds the store-neutral select statement used by every read,
// its PostgreSQL rendering, and the per-operation builders that turn request
// filters into statements.
package query

import (
	"context"
	"strings"
)

// Row is one result row keyed by output column name.
type Row map[string]any

// Store executes select statements. Implementations must treat Select as
// read-only and must honour ctx cancellation.
type Store interface {
	Select(ctx context.Context, s *Select) ([]Row, error)
}

// JoinKind selects inner or left outer join semantics.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
)

// Join attaches Table (optionally under Alias) where Left = Right. Both sides
// are qualified column references.
type Join struct {
	Kind  JoinKind
	Table string
	Alias string
	Left  string
	Right string
}

// Name is the qualifier the joined table's columns use.
func (j Join) Name() string {
	if j.Alias != "" {
		return j.Alias
	}
	return j.Table
}

// Column is one output column. Text casts the value to its text form, which
// is how NUMERIC values leave the store without a float conversion.
type Column struct {
	Expr string
	As   string
	Text bool
}

// Key is the name the column has in result rows.
func (c Column) Key() string {
	if c.As != "" {
		return c.As
	}
	if i := strings.LastIndexByte(c.Expr, '.'); i >= 0 {
		return c.Expr[i+1:]
	}
	return c.Expr
}

// Col is an output column named after its last path segment.
func Col(expr string) Column { return Column{Expr: expr} }

// ColAs is an output column under an explicit name.
func ColAs(expr, as string) Column { return Column{Expr: expr, As: as} }

// TextAs is an output column cast to text under an explicit name.
func TextAs(expr, as string) Column { return Column{Expr: expr, As: as, Text: true} }

// Op is a comparison operator.
type Op int

const (
	OpEq Op = iota
	OpNe
	OpLt
	OpLte
	OpGt
	OpGte
	// OpContains is a case-insensitive substring match on text.
	OpContains
)

// Pred is a boolean condition. Top-level predicates in Select.Where are ANDed.
type Pred interface {
	isPred()
}

// Cmp compares a column with a bound value.
type Cmp struct {
	Column string
	Op     Op
	Value  any
}

// In matches a column against a set of bound values. An empty set matches nothing.
type In struct {
	Column string
	Values []any
}

// AnyOf is satisfied when at least one of its predicates is.
type AnyOf []Pred

// Null tests a column for NULL, or for NOT NULL when Not is set.
type Null struct {
	Column string
	Not    bool
}

func (Cmp) isPred()   {}
func (In) isPred()    {}
func (AnyOf) isPred() {}
func (Null) isPred()  {}

func Eq(col string, v any) Pred           { return Cmp{Column: col, Op: OpEq, Value: v} }
func Gte(col string, v any) Pred          { return Cmp{Column: col, Op: OpGte, Value: v} }
func Lte(col string, v any) Pred          { return Cmp{Column: col, Op: OpLte, Value: v} }
func Contains(col, s string) Pred         { return Cmp{Column: col, Op: OpContains, Value: s} }
func IsNull(col string) Pred              { return Null{Column: col} }
func IsNotNull(col string) Pred           { return Null{Column: col, Not: true} }
func InValues(col string, vs ...any) Pred { return In{Column: col, Values: vs} }

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Select is a read over From with optional joins, filters, ordering and
// pagination. When PartitionBy is set, Limit and Offset apply within each
// partition of that column rather than to the whole result.
type Select struct {
	From        string
	Columns     []Column
	Joins       []Join
	Where       []Pred
	OrderBy     []Order
	Limit       *int
	Offset      *int
	PartitionBy string
}

// And appends predicates to the statement.
func (s *Select) And(p ...Pred) *Select {
	s.Where = append(s.Where, p...)
	return s
}

// KeyOf returns the output key of the column selecting expr.
func (s *Select) KeyOf(expr string) (string, bool) {
	for _, c := range s.Columns {
		if c.Expr == expr {
			return c.Key(), true
		}
	}
	return "", false
}
