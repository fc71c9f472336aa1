package taxlot

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the reporting currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Simple wrapper around money.Money

func (m Money) Currency() string             { return m.cur }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money         { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) Div(n Quantity) Money         { return Money{value: m.value.Div(n.value), cur: m.cur} }
func (m Money) Abs() Money                   { return Money{value: m.value.Abs(), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// AsFloat exists for rendering only, the engine keeps the calculation exact.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// Round returns the money rounded to its currency fraction (2 for USD).
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(m.currency().Fraction)), cur: m.cur}
}

// StringFixed returns the bare amount with the currency's fraction digits
// and no symbol, the form tax software expects in CSV cells.
func (m Money) StringFixed() string {
	return m.value.StringFixed(int32(m.currency().Fraction))
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// jmoney is the persisted shape of a Money.
type jmoney struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(jmoney{Amount: m.value, Currency: m.cur})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var j jmoney
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	m.value, m.cur = j.Amount, j.Currency
	return nil
}
