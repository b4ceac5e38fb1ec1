package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alanyoungcy/marketsrpc/internal/numeric"
	"github.com/alanyoungcy/marketsrpc/internal/query"
)

// LoadJSON inserts a fixture document of the form {"table": [{col: value}]}.
// Integral JSON numbers become int64 and fractional ones keep their literal
// scale as decimals; strings stay strings.
func (s *Store) LoadJSON(r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc map[string][]map[string]any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("memory: decode fixture: %w", err)
	}
	for table, rows := range doc {
		converted := make([]query.Row, 0, len(rows))
		for i, raw := range rows {
			row := make(query.Row, len(raw))
			for col, v := range raw {
				cv, err := fromJSON(v)
				if err != nil {
					return fmt.Errorf("memory: %s[%d].%s: %w", table, i, col, err)
				}
				row[col] = cv
			}
			converted = append(converted, row)
		}
		s.Insert(table, converted...)
	}
	return nil
}

// LoadFile is LoadJSON over the named file.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("memory: open fixture: %w", err)
	}
	defer f.Close()
	return s.LoadJSON(f)
}

func fromJSON(v any) (any, error) {
	switch x := v.(type) {
	case nil, string:
		return x, nil
	case bool:
		return normalize(x), nil
	case json.Number:
		lit := x.String()
		if !strings.ContainsAny(lit, ".eE") {
			return x.Int64()
		}
		return numeric.Decode(lit)
	}
	return nil, fmt.Errorf("unsupported value %T", v)
}
