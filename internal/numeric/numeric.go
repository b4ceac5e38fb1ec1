// Package numeric converts between arbitrary-precision decimals and their
// canonical wire strings. No value ever passes through a float.
package numeric

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/marketsrpc/internal/domain"
)

// Decode parses a plain decimal string: an optional leading '-', digits, and
// at most one '.' followed by digits. Exponents, '+', whitespace and empty
// input are rejected. The scale of the input is kept, so "1.50" decodes to
// a Decimal with exponent -2.
func Decode(s string) (decimal.Decimal, error) {
	if err := checkSyntax(s); err != nil {
		return decimal.Decimal{}, err
	}
	var exp int32
	digits := s
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		exp = -int32(len(s) - dot - 1)
		digits = s[:dot] + s[dot+1:]
	}
	mantissa, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: decimal %q", domain.ErrInvalidFormat, s)
	}
	return decimal.NewFromBigInt(mantissa, exp), nil
}

// DecodeField is Decode with failures classified as a decode error on field.
func DecodeField(field, s string) (decimal.Decimal, error) {
	d, err := Decode(s)
	if err != nil {
		return decimal.Decimal{}, domain.Decode(field, err)
	}
	return d, nil
}

// Encode renders d with exactly as many fractional digits as its scale.
// Leading integer zeros and the sign of zero are dropped.
func Encode(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// MustDecode is Decode for literals known to be valid.
func MustDecode(s string) decimal.Decimal {
	d, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return d
}

func checkSyntax(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty decimal", domain.ErrInvalidFormat)
	}
	i := 0
	if s[0] == '-' {
		i++
	}
	digits, dots, fracDigits := 0, 0, 0
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
			if dots > 0 {
				fracDigits++
			}
		case c == '.':
			dots++
			if dots > 1 {
				return fmt.Errorf("%w: decimal %q has more than one point", domain.ErrInvalidFormat, s)
			}
		default:
			return fmt.Errorf("%w: decimal %q contains %q", domain.ErrInvalidFormat, s, c)
		}
	}
	if digits == 0 {
		return fmt.Errorf("%w: decimal %q has no digits", domain.ErrInvalidFormat, s)
	}
	if dots == 1 && fracDigits == 0 {
		return fmt.Errorf("%w: decimal %q ends with a point", domain.ErrInvalidFormat, s)
	}
	return nil
}
