package reshape

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
	"github.com/alanyoungcy/marketsrpc/internal/numeric"
	"github.com/alanyoungcy/marketsrpc/internal/query"
)

// reader pulls typed values out of a row and keeps the first failure, so a
// record can be decoded field by field with a single error check at the end.
type reader struct {
	row query.Row
	err error
}

func (r *reader) fail(key string, err error) {
	if r.err == nil {
		r.err = domain.Decode(key, err)
	}
}

func (r *reader) str(key string) string {
	p := r.optStr(key)
	if p == nil {
		r.fail(key, fmt.Errorf("%w: unexpected NULL", domain.ErrInvalidFormat))
		return ""
	}
	return *p
}

func (r *reader) optStr(key string) *string {
	switch v := r.row[key].(type) {
	case nil:
		return nil
	case string:
		return &v
	default:
		r.fail(key, fmt.Errorf("%w: want text, got %T", domain.ErrInvalidFormat, v))
		return nil
	}
}

func (r *reader) i64(key string) int64 {
	p := r.optI64(key)
	if p == nil {
		r.fail(key, fmt.Errorf("%w: unexpected NULL", domain.ErrInvalidFormat))
		return 0
	}
	return *p
}

func (r *reader) optI64(key string) *int64 {
	v := r.row[key]
	if v == nil {
		return nil
	}
	n, ok := asInt64(v)
	if !ok {
		r.fail(key, fmt.Errorf("%w: want integer, got %T", domain.ErrInvalidFormat, v))
		return nil
	}
	return &n
}

func (r *reader) int(key string) int {
	return int(r.i64(key))
}

func (r *reader) dec(key string) decimal.Decimal {
	p := r.optDec(key)
	if p == nil {
		r.fail(key, fmt.Errorf("%w: unexpected NULL", domain.ErrInvalidFormat))
		return decimal.Decimal{}
	}
	return *p
}

func (r *reader) optDec(key string) *decimal.Decimal {
	s := r.optStr(key)
	if s == nil {
		return nil
	}
	d, err := numeric.Decode(*s)
	if err != nil {
		r.fail(key, err)
		return nil
	}
	return &d
}

// flag reads a 0/1 column as a bool. NULL reads as false; any other value is
// a decode error.
func (r *reader) flag(key string) bool {
	p := r.optI64(key)
	if p == nil {
		return false
	}
	switch *p {
	case 0:
		return false
	case 1:
		return true
	}
	r.fail(key, fmt.Errorf("%w: boolean column holds %d", domain.ErrInvalidFormat, *p))
	return false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int:
		return int64(n), true
	}
	return 0, false
}
