package money

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount whose scale always equals the number of
// decimal places of its currency: a Money in US Dollars always has exactly
// 2 decimal places, a Money in Japanese Yen exactly 0.
// This is the safe default representation for most callers.
//
// Every operation routes through the arbitrary-precision [BigMoney] pivot and
// then re-applies the currency scale through a caller-supplied [RoundingMode].
// Operations that cannot lose precision, such as adding two Money values,
// take no mode.
// Where precision may be lost, the mode is explicit; [RoundUnnecessary] turns
// silent precision loss into an error.
//
// Money is immutable and safe for concurrent use by multiple goroutines.
// Pseudo-currencies have no minor-unit scale and cannot be represented;
// constructors reject them with [ErrPseudoCurrency].
type Money struct {
	bm BigMoney
}

// NewMoney returns a monetary amount with the given currency and value,
// rescaled to the decimal places of the currency using the given mode.
//
// NewMoney returns an error if:
//   - the currency is the zero value or a pseudo-currency;
//   - the mode is [RoundUnnecessary] and the value has nonzero digits beyond
//     the currency scale.
func NewMoney(curr Currency, amount decimal.Decimal, mode RoundingMode) (Money, error) {
	b, err := NewBigMoney(curr, amount)
	if err != nil {
		return Money{}, err
	}
	return MoneyFromBig(b, mode)
}

// NewMoneyExact is like [NewMoney] with [RoundUnnecessary]: the value must
// already fit the currency scale exactly.
func NewMoneyExact(curr Currency, amount decimal.Decimal) (Money, error) {
	return NewMoney(curr, amount, RoundUnnecessary)
}

// MoneyFromBig rescales an arbitrary-precision amount to the decimal places
// of its currency using the given mode.
// See also method [Money.Big].
func MoneyFromBig(b BigMoney, mode RoundingMode) (Money, error) {
	b, err := b.WithCurrencyScale(mode)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// MoneyFromMajor returns a monetary amount equal to the given number of major
// units of the currency, such as dollars for USD.
func MoneyFromMajor(curr Currency, units int64) (Money, error) {
	b, err := BigMoneyFromMajor(curr, units)
	if err != nil {
		return Money{}, err
	}
	return MoneyFromBig(b, RoundUnnecessary)
}

// MoneyFromMinor returns a monetary amount equal to the given number of minor
// units of the currency, such as cents for USD.
// See also method [Money.MinorUnits].
func MoneyFromMinor(curr Currency, units int64) (Money, error) {
	b, err := BigMoneyFromMinor(curr, units)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// ZeroMoney returns a zero monetary amount in the given currency.
func ZeroMoney(curr Currency) (Money, error) {
	return MoneyFromMajor(curr, 0)
}

// ParseMoney converts a string in the canonical "<code> <amount>" form,
// such as "USD 25.95", to a monetary amount.
// The amount must not have nonzero digits beyond the currency scale:
// "USD 25.951" fails with [ErrRoundingNecessary].
// For lenient parsing, combine [ParseBigMoney] with [MoneyFromBig].
func ParseMoney(s string) (Money, error) {
	b, err := ParseBigMoney(s)
	if err != nil {
		return Money{}, err
	}
	m, err := MoneyFromBig(b, RoundUnnecessary)
	if err != nil {
		return Money{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return m, nil
}

// MustParseMoney is like [ParseMoney] but panics if the string cannot be
// parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(fmt.Sprintf("ParseMoney(%q) failed: %v", s, err))
	}
	return m
}

// Big returns the arbitrary-precision representation of the amount.
// See also constructor [MoneyFromBig].
func (m Money) Big() BigMoney {
	return m.bm
}

// Currency returns the currency of the amount.
func (m Money) Currency() Currency {
	return m.bm.Currency()
}

// Amount returns the decimal value of the amount.
// Its scale always equals the decimal places of the currency.
func (m Money) Amount() decimal.Decimal {
	return m.bm.Amount()
}

// Scale returns the number of digits after the decimal point, which always
// equals the decimal places of the currency.
func (m Money) Scale() int {
	return m.bm.Scale()
}

// Sign returns:
//
//	-1 if m < 0
//	 0 if m = 0
//	+1 if m > 0
func (m Money) Sign() int {
	return m.bm.Sign()
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.bm.IsZero()
}

// IsPos returns true if the amount is greater than zero.
func (m Money) IsPos() bool {
	return m.bm.IsPos()
}

// IsNeg returns true if the amount is less than zero.
func (m Money) IsNeg() bool {
	return m.bm.IsNeg()
}

// SameCurrency returns true if the amounts are denominated in the same currency.
func (m Money) SameCurrency(o Money) bool {
	return m.bm.SameCurrency(o.bm)
}

// Add returns the sum of amounts m and o.
// Both operands share the currency scale, so the sum is always exact.
//
// Add returns an error if the amounts are denominated in different currencies.
func (m Money) Add(o Money) (Money, error) {
	b, err := m.bm.Add(o.bm)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// Sub returns the difference between amounts m and o.
// Both operands share the currency scale, so the difference is always exact.
//
// Sub returns an error if the amounts are denominated in different currencies.
func (m Money) Sub(o Money) (Money, error) {
	b, err := m.bm.Sub(o.bm)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// AddDecimal returns the sum of amount m and a bare decimal value, rescaled
// back to the currency scale using the given mode.
//
// AddDecimal returns an error if the mode is [RoundUnnecessary] and the value
// has nonzero digits beyond the currency scale.
func (m Money) AddDecimal(d decimal.Decimal, mode RoundingMode) (Money, error) {
	b, err := m.bm.AddDecimal(d)
	if err != nil {
		return Money{}, err
	}
	return MoneyFromBig(b, mode)
}

// SubDecimal returns the difference between amount m and a bare decimal
// value, rescaled back to the currency scale using the given mode.
// See also method [Money.AddDecimal].
func (m Money) SubDecimal(d decimal.Decimal, mode RoundingMode) (Money, error) {
	b, err := m.bm.SubDecimal(d)
	if err != nil {
		return Money{}, err
	}
	return MoneyFromBig(b, mode)
}

// Mul returns the product of amount m and factor e, rescaled back to the
// currency scale using the given mode.
func (m Money) Mul(e decimal.Decimal, mode RoundingMode) (Money, error) {
	b, err := m.bm.Mul(e)
	if err != nil {
		return Money{}, err
	}
	return MoneyFromBig(b, mode)
}

// MulInt64 returns the exact product of amount m and an integer factor.
// Multiplying by an integer keeps the scale, so no rounding mode is needed.
func (m Money) MulInt64(f int64) (Money, error) {
	b, err := m.bm.MulInt64(f)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// Div returns the quotient of amount m and divisor e, rounded to the currency
// scale using the given mode.
//
// Div returns an error if:
//   - the divisor is zero;
//   - the mode is [RoundUnnecessary] and a nonzero digit would be discarded.
func (m Money) Div(e decimal.Decimal, mode RoundingMode) (Money, error) {
	b, err := m.bm.Div(e, mode)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// DivInt64 returns the quotient of amount m and an integer divisor, rounded
// to the currency scale using the given mode.
// See also method [Money.Div].
func (m Money) DivInt64(f int64, mode RoundingMode) (Money, error) {
	b, err := m.bm.DivInt64(f, mode)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// ConvertedTo returns the amount converted to another currency by multiplying
// with the given rate, rounded to the scale of the target currency using the
// given mode.
//
// ConvertedTo returns an error if:
//   - the rate is negative;
//   - the target currency equals the source currency, unless the rate is 1;
//   - the target is a pseudo-currency.
func (m Money) ConvertedTo(to Currency, rate decimal.Decimal, mode RoundingMode) (Money, error) {
	b, err := m.bm.ConvertedToRounded(to, rate, mode)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// Rounded returns the amount rounded as if at the given scale while keeping
// the currency scale.
// For example, rounding "USD 2.55" at 1 place half-up yields "USD 2.60".
// Rounded is a no-op when the given scale is greater than or equal to the
// currency scale.
func (m Money) Rounded(scale int, mode RoundingMode) (Money, error) {
	b, err := m.bm.Rounded(scale, mode)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// Neg returns the amount with the opposite sign.
func (m Money) Neg() Money {
	return Money{bm: m.bm.Neg()}
}

// Abs returns the absolute value of the amount.
func (m Money) Abs() Money {
	return Money{bm: m.bm.Abs()}
}

// Cmp numerically compares amounts and returns:
//
//	-1 if m < o
//	 0 if m = o
//	+1 if m > o
//
// Cmp returns an error if the amounts are denominated in different currencies.
func (m Money) Cmp(o Money) (int, error) {
	return m.bm.Cmp(o.bm)
}

// Equal returns true if the amounts are numerically equal.
//
// Equal returns an error if the amounts are denominated in different currencies.
func (m Money) Equal(o Money) (bool, error) {
	return m.bm.Equal(o.bm)
}

// GreaterThan returns true if m is numerically greater than o.
//
// GreaterThan returns an error if the amounts are denominated in different
// currencies.
func (m Money) GreaterThan(o Money) (bool, error) {
	return m.bm.GreaterThan(o.bm)
}

// LessThan returns true if m is numerically less than o.
//
// LessThan returns an error if the amounts are denominated in different
// currencies.
func (m Money) LessThan(o Money) (bool, error) {
	return m.bm.LessThan(o.bm)
}

// Same returns true if the amounts have the same currency and the same value.
// Two Money values in one currency always share a scale, so Same agrees with
// [Money.Equal] except that it reports false instead of failing on a currency
// mismatch.
func (m Money) Same(o Money) bool {
	return m.bm.Same(o.bm)
}

// Min returns the smaller amount.
//
// Min returns an error if the amounts are denominated in different currencies.
func (m Money) Min(o Money) (Money, error) {
	b, err := m.bm.Min(o.bm)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// Max returns the larger amount.
//
// Max returns an error if the amounts are denominated in different currencies.
func (m Money) Max(o Money) (Money, error) {
	b, err := m.bm.Max(o.bm)
	if err != nil {
		return Money{}, err
	}
	return Money{bm: b}, nil
}

// Split returns a slice of amounts that sum up to the original amount,
// ensuring the parts are as equal as possible.
// If the amount cannot be divided evenly, the leftover minor units are
// distributed one by one among the first parts of the slice.
//
// Split returns an error if the number of parts is not positive.
func (m Money) Split(parts int) ([]Money, error) {
	if parts < 1 {
		return nil, fmt.Errorf("splitting %v into %v parts: number of parts must be positive", m, parts)
	}
	div := big.NewInt(int64(parts))
	rem := new(big.Int)
	base, rem := new(big.Int).QuoRem(m.Amount().Coefficient(), div, rem)

	// rem carries the sign of the amount and |rem| < parts.
	leftover := int(rem.Int64())
	step := int64(1)
	if leftover < 0 {
		leftover, step = -leftover, -1
	}

	exp := m.Amount().Exponent()
	res := make([]Money, parts)
	for i := range res {
		coef := new(big.Int).Set(base)
		if i < leftover {
			coef.Add(coef, big.NewInt(step))
		}
		res[i] = Money{bm: newBigMoneyUnsafe(m.Currency(), decimal.NewFromBigInt(coef, exp))}
	}
	return res, nil
}

// MinorUnits returns the amount expressed in minor units of its currency,
// such as cents for USD.
// It returns false if the result does not fit in an int64.
// See also constructor [MoneyFromMinor].
func (m Money) MinorUnits() (units int64, ok bool) {
	return m.bm.MinorUnits()
}

// MajorUnits returns the whole-unit part of the amount, truncated toward zero.
// It returns false if the result does not fit in an int64.
func (m Money) MajorUnits() (units int64, ok bool) {
	return m.bm.MajorUnits()
}

// String implements the [fmt.Stringer] interface and returns the canonical
// text form of the amount, such as "USD 25.95" or "JPY -3".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (m Money) String() string {
	return m.bm.String()
}

// Format implements the [fmt.Formatter] interface with the same verbs as
// [BigMoney.Format].
//
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (m Money) Format(state fmt.State, verb rune) {
	m.bm.Format(state, verb)
}

// MarshalText implements the [encoding.TextMarshaler] interface and returns
// the canonical text form of the amount.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseMoney].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (m *Money) UnmarshalText(text []byte) error {
	var err error
	*m, err = ParseMoney(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Money{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface and returns the
// canonical text form of the amount as a quoted string.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte("\"" + m.String() + "\""), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseMoney].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (m *Money) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return m.UnmarshalText(text)
}
