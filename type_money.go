package banking

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of the ledger unless configured otherwise.
const DefaultCurrency = "INR"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T int | int64 | float64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T int | int64 | float64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	default:
		panic("unsupported money value type")
	}
}

// currency returns the money's currency, or nil if the code is unknown.
func (m Money) currency() *money.Currency {
	return money.GetCurrency(m.cur)
}

// String formats the value in its currency, rounded to the currency's minor unit.
// Unknown currencies fall back to two decimals followed by the code.
func (m Money) String() string {
	cur := m.currency()
	if cur == nil {
		s := m.value.StringFixed(2)
		if m.cur != "" {
			s += " " + m.cur
		}
		return s
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
