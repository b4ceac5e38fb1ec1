package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// identRe admits plain and table-qualified lower-case identifiers. Every
// identifier in a statement is checked against it, values are always bound.
var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?$`)

func checkIdent(id string) error {
	if !identRe.MatchString(id) {
		return fmt.Errorf("query: invalid identifier %q", id)
	}
	return nil
}

// rowNumberKey is the window column added to partitioned statements.
const rowNumberKey = "row_num"

// SQL renders s as a PostgreSQL statement with $n placeholders.
func (s *Select) SQL() (string, []any, error) {
	r := &renderer{}
	if err := r.selectStmt(s); err != nil {
		return "", nil, err
	}
	return r.b.String(), r.args, nil
}

type renderer struct {
	b    strings.Builder
	args []any
}

func (r *renderer) bind(v any) string {
	r.args = append(r.args, v)
	return "$" + strconv.Itoa(len(r.args))
}

func (r *renderer) selectStmt(s *Select) error {
	if err := checkIdent(s.From); err != nil {
		return err
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("query: select from %s has no columns", s.From)
	}
	partitioned := s.PartitionBy != "" && (s.Limit != nil || s.Offset != nil)

	if partitioned {
		r.b.WriteString("SELECT ")
		for i, c := range s.Columns {
			if i > 0 {
				r.b.WriteString(", ")
			}
			if err := checkIdent(c.Key()); err != nil {
				return err
			}
			r.b.WriteString(c.Key())
		}
		r.b.WriteString(" FROM (")
	}

	r.b.WriteString("SELECT ")
	for i, c := range s.Columns {
		if i > 0 {
			r.b.WriteString(", ")
		}
		if err := r.column(c); err != nil {
			return err
		}
	}
	if partitioned {
		if err := checkIdent(s.PartitionBy); err != nil {
			return err
		}
		r.b.WriteString(", ROW_NUMBER() OVER (PARTITION BY ")
		r.b.WriteString(s.PartitionBy)
		if len(s.OrderBy) > 0 {
			r.b.WriteString(" ORDER BY ")
			if err := r.orderTerms(s.OrderBy, func(o Order) (string, error) { return o.Column, nil }); err != nil {
				return err
			}
		}
		r.b.WriteString(") AS " + rowNumberKey)
	}

	r.b.WriteString(" FROM ")
	r.b.WriteString(s.From)
	for _, j := range s.Joins {
		if err := r.join(j); err != nil {
			return err
		}
	}
	if len(s.Where) > 0 {
		r.b.WriteString(" WHERE ")
		for i, p := range s.Where {
			if i > 0 {
				r.b.WriteString(" AND ")
			}
			if err := r.pred(p); err != nil {
				return err
			}
		}
	}

	if partitioned {
		offset := 0
		if s.Offset != nil {
			offset = *s.Offset
		}
		r.b.WriteString(") AS windowed WHERE " + rowNumberKey + " > ")
		r.b.WriteString(r.bind(offset))
		if s.Limit != nil {
			r.b.WriteString(" AND " + rowNumberKey + " <= ")
			r.b.WriteString(r.bind(offset + *s.Limit))
		}
		key, ok := s.KeyOf(s.PartitionBy)
		if !ok {
			return fmt.Errorf("query: partition column %s is not selected", s.PartitionBy)
		}
		r.b.WriteString(" ORDER BY " + key + " ASC, " + rowNumberKey + " ASC")
		return nil
	}

	if len(s.OrderBy) > 0 {
		r.b.WriteString(" ORDER BY ")
		if err := r.orderTerms(s.OrderBy, func(o Order) (string, error) { return o.Column, nil }); err != nil {
			return err
		}
	}
	if s.Limit != nil {
		r.b.WriteString(" LIMIT ")
		r.b.WriteString(r.bind(*s.Limit))
	}
	if s.Offset != nil {
		r.b.WriteString(" OFFSET ")
		r.b.WriteString(r.bind(*s.Offset))
	}
	return nil
}

func (r *renderer) column(c Column) error {
	if err := checkIdent(c.Expr); err != nil {
		return err
	}
	if err := checkIdent(c.Key()); err != nil {
		return err
	}
	r.b.WriteString(c.Expr)
	if c.Text {
		r.b.WriteString("::text")
	}
	r.b.WriteString(" AS ")
	r.b.WriteString(c.Key())
	return nil
}

func (r *renderer) join(j Join) error {
	for _, id := range []string{j.Table, j.Left, j.Right} {
		if err := checkIdent(id); err != nil {
			return err
		}
	}
	switch j.Kind {
	case InnerJoin:
		r.b.WriteString(" INNER JOIN ")
	case LeftJoin:
		r.b.WriteString(" LEFT JOIN ")
	default:
		return fmt.Errorf("query: unknown join kind %d", j.Kind)
	}
	r.b.WriteString(j.Table)
	if j.Alias != "" {
		if err := checkIdent(j.Alias); err != nil {
			return err
		}
		r.b.WriteString(" AS ")
		r.b.WriteString(j.Alias)
	}
	r.b.WriteString(" ON ")
	r.b.WriteString(j.Left)
	r.b.WriteString(" = ")
	r.b.WriteString(j.Right)
	return nil
}

var opSQL = map[Op]string{
	OpEq:  " = ",
	OpNe:  " <> ",
	OpLt:  " < ",
	OpLte: " <= ",
	OpGt:  " > ",
	OpGte: " >= ",
}

func (r *renderer) pred(p Pred) error {
	switch p := p.(type) {
	case Cmp:
		if err := checkIdent(p.Column); err != nil {
			return err
		}
		if p.Op == OpContains {
			s, ok := p.Value.(string)
			if !ok {
				return fmt.Errorf("query: contains on %s needs a string, got %T", p.Column, p.Value)
			}
			r.b.WriteString(p.Column + " ILIKE " + r.bind("%"+escapeLike(s)+"%"))
			return nil
		}
		op, ok := opSQL[p.Op]
		if !ok {
			return fmt.Errorf("query: unknown operator %d", p.Op)
		}
		r.b.WriteString(p.Column + op + r.bind(p.Value))
	case In:
		if err := checkIdent(p.Column); err != nil {
			return err
		}
		if len(p.Values) == 0 {
			r.b.WriteString("FALSE")
			return nil
		}
		r.b.WriteString(p.Column + " IN (")
		for i, v := range p.Values {
			if i > 0 {
				r.b.WriteString(", ")
			}
			r.b.WriteString(r.bind(v))
		}
		r.b.WriteString(")")
	case AnyOf:
		if len(p) == 0 {
			r.b.WriteString("FALSE")
			return nil
		}
		r.b.WriteString("(")
		for i, q := range p {
			if i > 0 {
				r.b.WriteString(" OR ")
			}
			if err := r.pred(q); err != nil {
				return err
			}
		}
		r.b.WriteString(")")
	case Null:
		if err := checkIdent(p.Column); err != nil {
			return err
		}
		if p.Not {
			r.b.WriteString(p.Column + " IS NOT NULL")
		} else {
			r.b.WriteString(p.Column + " IS NULL")
		}
	default:
		return fmt.Errorf("query: unsupported predicate %T", p)
	}
	return nil
}

func (r *renderer) orderTerms(terms []Order, name func(Order) (string, error)) error {
	for i, o := range terms {
		col, err := name(o)
		if err != nil {
			return err
		}
		if err := checkIdent(col); err != nil {
			return err
		}
		if i > 0 {
			r.b.WriteString(", ")
		}
		r.b.WriteString(col)
		if o.Desc {
			r.b.WriteString(" DESC")
		} else {
			r.b.WriteString(" ASC")
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
