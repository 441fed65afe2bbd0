package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (cents). Decimal strings only appear at
// the JSON boundary.
type Money int64

const centsPerUnit = 100

var hundred = decimal.NewFromInt(centsPerUnit)

// ParseMoney converts a decimal string such as "1500.50" into cents, rounding
// half away from zero at two places. An empty string parses as zero. Amounts
// whose cents do not fit in an int64 are a validation error.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	if !d.Mul(hundred).Round(0).BigInt().IsInt64() {
		return 0, NewValidationError(fmt.Sprintf("amount %s is out of range", s))
	}
	return MoneyFromDecimal(d), nil
}

// MoneyFromFloat converts a JSON number into cents.
func MoneyFromFloat(f float64) Money {
	return MoneyFromDecimal(decimal.NewFromFloat(f))
}

// MoneyFromDecimal rounds d to cents. d must already be known to fit;
// ParseMoney checks the range for untrusted input.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(hundred).Round(0).IntPart())
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) Float64() float64 {
	return m.Decimal().InexactFloat64()
}

// String formats the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// DivRound divides by n, rounding half away from zero. n <= 0 yields 0.
func (m Money) DivRound(n int) Money {
	if n <= 0 {
		return 0
	}
	return MoneyFromDecimal(m.Decimal().Div(decimal.NewFromInt(int64(n))))
}

// PercentOf returns m/base*100, or 0 when base is zero.
func (m Money) PercentOf(base Money) float64 {
	if base == 0 {
		return 0
	}
	return m.Decimal().Div(base.Decimal()).Mul(hundred).InexactFloat64()
}

// MarshalJSON renders the amount as a decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a decimal string or a JSON number.
func (m *Money) UnmarshalJSON(b []byte) error {
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	if s == "null" {
		*m = 0
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Sum adds up a list of amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}
