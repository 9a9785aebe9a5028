package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount held as an integer number of cents.
// The zero value is 0.00.
type Money struct {
	cents int64
}

// MaxMoney is the largest amount a NUMERIC(18,2) column holds.
var MaxMoney = Money{cents: 999_999_999_999_999_999}

// ErrMoneyOutOfRange is returned for amounts beyond ±MaxMoney.
var ErrMoneyOutOfRange = errors.New("money amount out of range")

var hundred = decimal.NewFromInt(100)

// Cents builds a Money from a number of minor units.
func Cents(c int64) Money {
	return Money{cents: c}
}

// NewMoney converts an arbitrary precision decimal to Money, rounding half
// to even at the cent. Amounts beyond ±MaxMoney are refused.
func NewMoney(d decimal.Decimal) (Money, error) {
	rounded := d.RoundBank(2)
	if rounded.Abs().GreaterThan(MaxMoney.Decimal()) {
		return Money{}, ErrMoneyOutOfRange
	}
	return Money{cents: rounded.Mul(hundred).IntPart()}, nil
}

// MoneyFromDecimal is NewMoney for values already known to fit, such as
// NUMERIC(18,2) columns. Out of range input is clamped to ±MaxMoney.
func MoneyFromDecimal(d decimal.Decimal) Money {
	m, err := NewMoney(d)
	if err == nil {
		return m
	}
	if d.IsNegative() {
		return MaxMoney.Neg()
	}
	return MaxMoney
}

// ParseMoney parses user or storage input into Money. Thousands
// separators, surrounding whitespace and a leading sign are accepted.
// Invalid, out of range or empty input parses to zero.
func ParseMoney(s string) Money {
	m, err := ParseMoneyStrict(s)
	if err != nil {
		return Money{}
	}
	return m
}

// ParseMoneyStrict is ParseMoney but reports malformed or out of range
// input instead of coercing it to zero. Empty input is still zero.
func ParseMoneyStrict(s string) (Money, error) {
	clean := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if clean == "" {
		return Money{}, nil
	}
	clean = strings.TrimPrefix(clean, "+")
	if strings.ContainsAny(clean, "eE") {
		return Money{}, fmt.Errorf("invalid money value %q", s)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money value %q", s)
	}
	m, err := NewMoney(d)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money value %q: %w", s, err)
	}
	return m, nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 { return m.cents }

// Decimal returns the amount as an exact two-place decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

func (m Money) Add(o Money) Money { return Money{cents: m.cents + o.cents} }
func (m Money) Sub(o Money) Money { return Money{cents: m.cents - o.cents} }
func (m Money) Neg() Money        { return Money{cents: -m.cents} }

func (m Money) Abs() Money {
	if m.cents < 0 {
		return m.Neg()
	}
	return m
}

// Cmp returns -1, 0 or +1.
func (m Money) Cmp(o Money) int {
	switch {
	case m.cents < o.cents:
		return -1
	case m.cents > o.cents:
		return 1
	}
	return 0
}

func (m Money) Equal(o Money) bool { return m.cents == o.cents }
func (m Money) IsZero() bool       { return m.cents == 0 }
func (m Money) IsPositive() bool   { return m.cents > 0 }
func (m Money) IsNegative() bool   { return m.cents < 0 }

// Max returns the larger of m and o.
func (m Money) Max(o Money) Money {
	if m.cents >= o.cents {
		return m
	}
	return o
}

// String renders the amount with exactly two fraction digits and no
// grouping, e.g. "-1234.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Format renders the amount with thousands separators, e.g. "-1,234.50".
func (m Money) Format() string {
	plain := m.Abs().String()
	intPart, frac, _ := strings.Cut(plain, ".")

	var b strings.Builder
	if m.cents < 0 {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// MarshalJSON encodes Money as a decimal string so amounts never pass
// through binary floating point.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts a decimal string or a JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Money{}
		return nil
	}
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	parsed, err := ParseMoneyStrict(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalYAML renders Money as its decimal string.
func (m Money) MarshalYAML() (any, error) {
	return m.String(), nil
}

// SumMoney adds up a list of amounts.
func SumMoney(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
