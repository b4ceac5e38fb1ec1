package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
	"github.com/alanyoungcy/marketsrpc/internal/query"
)

var _ query.Store = (*Client)(nil)

// Select renders s and collects every row as a map keyed by output column.
// Integer columns come back as int64 regardless of their stored width.
func (c *Client) Select(ctx context.Context, s *query.Select) ([]query.Row, error) {
	sql, args, err := s.SQL()
	if err != nil {
		return nil, domain.Store("render "+s.From, err)
	}
	c.logger.Debug("select", slog.String("sql", sql), slog.Int("args", len(args)))

	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, domain.Store("select "+s.From, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, domain.Store("select "+s.From, err)
	}

	out := make([]query.Row, len(maps))
	for i, m := range maps {
		for k, v := range m {
			m[k] = widen(v)
		}
		out[i] = query.Row(m)
	}
	return out, nil
}

func widen(v any) any {
	switch n := v.(type) {
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int:
		return int64(n)
	default:
		return v
	}
}
