package query

import (
	"fmt"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
)

// sortSpec is a component's whitelist of sortable public names and its
// defaults. The default direction is used whenever the request leaves the
// direction unset, with or without an explicit column.
type sortSpec struct {
	columns     map[string]string
	defaultBy   string
	defaultDesc bool
	tieBreak    []string
}

func (sp sortSpec) order(s domain.Sort) ([]Order, error) {
	by := s.By.Or(sp.defaultBy)
	col, ok := sp.columns[by]
	if !ok {
		return nil, domain.Validation("sortBy", fmt.Errorf("%w %q", domain.ErrUnknownSortKey, by))
	}
	desc := s.Descending.Or(sp.defaultDesc)

	terms := []Order{{Column: col, Desc: desc}}
	for _, tb := range sp.tieBreak {
		if tb != col {
			terms = append(terms, Order{Column: tb, Desc: desc})
		}
	}
	return terms, nil
}

func applyPage(s *Select, p domain.Page) error {
	if v, ok := p.Limit.Get(); ok {
		if v < 0 {
			return domain.Validationf("limit", "must be non-negative, got %d", v)
		}
		s.Limit = &v
	}
	if v, ok := p.Offset.Get(); ok {
		if v < 0 {
			return domain.Validationf("offset", "must be non-negative, got %d", v)
		}
		s.Offset = &v
	}
	return nil
}

func blocksJoin(alias, onColumn string) Join {
	return Join{
		Kind:  LeftJoin,
		Table: "blocks",
		Alias: alias,
		Left:  onColumn,
		Right: alias + ".block_number",
	}
}

func stringValues(vs []string) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
