package stocklog

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Money represents a monetary value in the account currency, held exact as a
// decimal. Every arithmetic operation rounds its result to 2 decimal places:
// the rounding boundary is the accumulation step, so drift cannot build up
// across a long transaction history the way naive float summation does.
type Money struct {
	value decimal.Decimal
}

// M creates a Money from a float. Non-finite inputs yield zero: the ledger
// favors a silent zero over propagating NaN or Infinity into a displayed
// financial figure.
func M(v float64) Money {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}
	}
	return Money{value: decimal.NewFromFloat(v).Round(2)}
}

// MD creates a Money from a decimal, rounded to 2 places.
func MD(d decimal.Decimal) Money { return Money{value: d.Round(2)} }

// ParseMoney parses a decimal string into a Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return MD(d), nil
}

func (m Money) Equal(n Money) bool            { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                  { return m.value.IsZero() }
func (m Money) IsPositive() bool              { return m.value.IsPositive() }
func (m Money) IsNegative() bool              { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool         { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool      { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                    { return Money{value: m.value.Neg()} }
func (m Money) Cmp(n Money) int               { return m.value.Cmp(n.value) }
func (m Money) Abs() Money                    { return Money{value: m.value.Abs()} }

// Add returns m+n rounded to 2 decimal places.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value).Round(2)} }

// Sub returns m-n rounded to 2 decimal places.
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value).Round(2)} }

// Mul returns the amount for q units at price m, rounded to 2 decimal places.
func (m Money) Mul(q int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(q)).Round(2)}
}

// Div returns m divided by q units, rounded to 2 decimal places.
// Dividing by zero yields zero, not an error.
func (m Money) Div(q int64) Money {
	if q == 0 {
		return Money{}
	}
	return Money{value: m.value.Div(decimal.NewFromInt(q)).Round(2)}
}

// Scale multiplies by an arbitrary decimal factor (e.g. an exchange rate),
// rounded to 2 decimal places.
func (m Money) Scale(factor decimal.Decimal) Money {
	return Money{value: m.value.Mul(factor).Round(2)}
}

// Max returns the greater of m and n.
func (m Money) Max(n Money) Money {
	if m.LessThan(n) {
		return n
	}
	return m
}

// String returns the plain decimal representation, always with 2 fraction digits.
func (m Money) String() string { return m.value.StringFixed(2) }

// Display formats the value with the symbol and separators of the given
// ISO currency code, e.g. Display("USD") -> "$1,234.50".
func (m Money) Display(code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return m.String()
	}
	shifted := m.value.Shift(int32(cur.Fraction))
	return money.New(shifted.IntPart(), code).Display()
}

// SignedDisplay is like Display but prefixes gains with "+" and renders zero as "-".
func (m Money) SignedDisplay(code string) string {
	if m.IsZero() {
		return "-"
	}
	if m.IsPositive() {
		return "+" + m.Display(code)
	}
	return m.Display(code)
}

// Signed is like String but prefixes gains with "+" and renders zero as "-".
func (m Money) Signed() string {
	if m.IsZero() {
		return "-"
	}
	if m.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON implements the json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.Round(2).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Money) UnmarshalJSON(data []byte) error {
	if err := m.value.UnmarshalJSON(data); err != nil {
		return err
	}
	m.value = m.value.Round(2)
	return nil
}

// Percent is a ratio expressed in percent, rounded to 2 decimal places.
type Percent struct {
	value decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// PercentOf returns part/whole expressed in percent. A zero whole yields a
// zero percent, the neutral default used everywhere a figure is unknown.
func PercentOf(part, whole Money) Percent {
	if whole.IsZero() {
		return Percent{}
	}
	return Percent{value: part.value.Div(whole.value).Mul(hundred).Round(2)}
}

// PercentFromRatio converts a plain ratio (e.g. wins/trades) to a Percent.
func PercentFromRatio(num, den int64) Percent {
	if den == 0 {
		return Percent{}
	}
	return Percent{value: decimal.NewFromInt(num).Div(decimal.NewFromInt(den)).Mul(hundred).Round(2)}
}

func (p Percent) IsZero() bool          { return p.value.IsZero() }
func (p Percent) IsNegative() bool      { return p.value.IsNegative() }
func (p Percent) Equal(q Percent) bool  { return p.value.Equal(q.value) }
func (p Percent) String() string        { return p.value.StringFixed(2) + "%" }

// MarshalJSON implements the json.Marshaler interface.
func (p Percent) MarshalJSON() ([]byte, error) { return p.value.MarshalJSON() }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Percent) UnmarshalJSON(data []byte) error { return p.value.UnmarshalJSON(data) }
