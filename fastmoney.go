package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JohnCGriffin/overflow"
	"github.com/shopspring/decimal"
)

// FastMoney represents a monetary amount as a single signed 64-bit count of
// minor units of its currency: "USD 25.95" is stored as 2595 cents.
// It trades the unlimited magnitude of [BigMoney] for speed and a fixed
// memory footprint.
//
// All arithmetic is overflow-checked: an operation whose result does not fit
// in an int64 fails with [ErrOverflow] instead of silently wrapping.
// Division truncates toward zero, following integer-division semantics.
//
// Like the other representations, FastMoney requires a currency with a
// minor-unit scale; pseudo-currencies are rejected with [ErrPseudoCurrency].
// FastMoney is immutable and safe for concurrent use by multiple goroutines.
type FastMoney struct {
	curr  Currency
	units int64 // amount in minor units, amount * 10^decimalPlaces
}

// NewFastMoney returns a monetary amount equal to the given number of minor
// units of the currency, such as cents for USD.
//
// NewFastMoney returns an error if the currency is the zero value or
// a pseudo-currency.
func NewFastMoney(curr Currency, units int64) (FastMoney, error) {
	if curr.code == "" {
		return FastMoney{}, fmt.Errorf("creating %v amount: %w", curr, ErrUnknownCurrency)
	}
	if curr.IsPseudo() {
		return FastMoney{}, fmt.Errorf("creating %v amount: %w", curr, ErrPseudoCurrency)
	}
	return FastMoney{curr: curr, units: units}, nil
}

// FastMoneyFromMajor returns a monetary amount equal to the given number of
// major units of the currency, such as dollars for USD.
//
// FastMoneyFromMajor returns an error if the minor-unit count does not fit
// in an int64.
func FastMoneyFromMajor(curr Currency, units int64) (FastMoney, error) {
	f, err := NewFastMoney(curr, units)
	if err != nil {
		return FastMoney{}, err
	}
	scaled, ok := overflow.Mul64(units, pow10Int64(curr.DecimalPlaces()))
	if !ok {
		return FastMoney{}, fmt.Errorf("creating %v amount from %v major units: %w", curr, units, ErrOverflow)
	}
	f.units = scaled
	return f, nil
}

// FastMoneyFromBig converts an arbitrary-precision amount to minor units,
// rounding any extra fractional digits using the given mode.
// See also method [FastMoney.Big].
//
// FastMoneyFromBig returns an error if:
//   - the currency is a pseudo-currency;
//   - the mode is [RoundUnnecessary] and a nonzero digit would be discarded;
//   - the minor-unit count does not fit in an int64.
func FastMoneyFromBig(b BigMoney, mode RoundingMode) (FastMoney, error) {
	b, err := b.WithCurrencyScale(mode)
	if err != nil {
		return FastMoney{}, err
	}
	coef := b.Amount().Coefficient()
	if !coef.IsInt64() {
		return FastMoney{}, fmt.Errorf("converting %v to minor units: %w", b, ErrOverflow)
	}
	return FastMoney{curr: b.Currency(), units: coef.Int64()}, nil
}

// ParseFastMoney converts a string in the canonical "<code> <amount>" form,
// such as "USD 25.95", to a minor-unit monetary amount.
// The amount must not have nonzero digits beyond the currency scale.
func ParseFastMoney(s string) (FastMoney, error) {
	b, err := ParseBigMoney(s)
	if err != nil {
		return FastMoney{}, err
	}
	f, err := FastMoneyFromBig(b, RoundUnnecessary)
	if err != nil {
		return FastMoney{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return f, nil
}

// MustParseFastMoney is like [ParseFastMoney] but panics if the string cannot
// be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseFastMoney(s string) FastMoney {
	f, err := ParseFastMoney(s)
	if err != nil {
		panic(fmt.Sprintf("ParseFastMoney(%q) failed: %v", s, err))
	}
	return f
}

// Big returns the arbitrary-precision representation of the amount, with the
// scale of the currency.
// See also constructor [FastMoneyFromBig].
func (f FastMoney) Big() BigMoney {
	return newBigMoneyUnsafe(f.curr, decimal.New(f.units, int32(-f.curr.DecimalPlaces())))
}

// Currency returns the currency of the amount.
func (f FastMoney) Currency() Currency {
	return f.curr
}

// MinorUnits returns the amount expressed in minor units of its currency.
func (f FastMoney) MinorUnits() int64 {
	return f.units
}

// MajorUnits returns the whole-unit part of the amount, truncated toward zero.
func (f FastMoney) MajorUnits() int64 {
	return f.units / pow10Int64(f.curr.DecimalPlaces())
}

// Amount returns the decimal value of the amount, with the scale of the
// currency.
func (f FastMoney) Amount() decimal.Decimal {
	return decimal.New(f.units, int32(-f.curr.DecimalPlaces()))
}

// Sign returns:
//
//	-1 if f < 0
//	 0 if f = 0
//	+1 if f > 0
func (f FastMoney) Sign() int {
	switch {
	case f.units < 0:
		return -1
	case f.units > 0:
		return 1
	default:
		return 0
	}
}

// IsZero returns true if the amount is zero.
func (f FastMoney) IsZero() bool {
	return f.units == 0
}

// SameCurrency returns true if the amounts are denominated in the same currency.
func (f FastMoney) SameCurrency(o FastMoney) bool {
	return f.curr == o.curr
}

// Add returns the sum of amounts f and o.
//
// Add returns an error if:
//   - the amounts are denominated in different currencies;
//   - the sum does not fit in an int64.
func (f FastMoney) Add(o FastMoney) (FastMoney, error) {
	if !f.SameCurrency(o) {
		return FastMoney{}, fmt.Errorf("computing [%v + %v]: %w", f, o, ErrCurrencyMismatch)
	}
	units, ok := overflow.Add64(f.units, o.units)
	if !ok {
		return FastMoney{}, fmt.Errorf("computing [%v + %v]: %w", f, o, ErrOverflow)
	}
	return FastMoney{curr: f.curr, units: units}, nil
}

// Sub returns the difference between amounts f and o.
//
// Sub returns an error if:
//   - the amounts are denominated in different currencies;
//   - the difference does not fit in an int64.
func (f FastMoney) Sub(o FastMoney) (FastMoney, error) {
	if !f.SameCurrency(o) {
		return FastMoney{}, fmt.Errorf("computing [%v - %v]: %w", f, o, ErrCurrencyMismatch)
	}
	units, ok := overflow.Sub64(f.units, o.units)
	if !ok {
		return FastMoney{}, fmt.Errorf("computing [%v - %v]: %w", f, o, ErrOverflow)
	}
	return FastMoney{curr: f.curr, units: units}, nil
}

// MulInt64 returns the product of amount f and an integer factor.
//
// MulInt64 returns an error if the product does not fit in an int64.
func (f FastMoney) MulInt64(n int64) (FastMoney, error) {
	units, ok := overflow.Mul64(f.units, n)
	if !ok {
		return FastMoney{}, fmt.Errorf("computing [%v * %v]: %w", f, n, ErrOverflow)
	}
	return FastMoney{curr: f.curr, units: units}, nil
}

// DivInt64 returns the quotient of amount f and an integer divisor, truncated
// toward zero.
//
// DivInt64 returns an error if:
//   - the divisor is zero;
//   - the quotient does not fit in an int64, which happens only when dividing
//     the minimum amount by -1.
func (f FastMoney) DivInt64(n int64) (FastMoney, error) {
	if n == 0 {
		return FastMoney{}, fmt.Errorf("computing [%v / %v]: %w", f, n, ErrDivisionByZero)
	}
	units, ok := overflow.Div64(f.units, n)
	if !ok {
		return FastMoney{}, fmt.Errorf("computing [%v / %v]: %w", f, n, ErrOverflow)
	}
	return FastMoney{curr: f.curr, units: units}, nil
}

// ConvertedTo returns the amount converted to another currency by multiplying
// with the given rate, rounded to the scale of the target currency using the
// given mode.
// The conversion is computed through the [BigMoney] pivot, so intermediate
// precision is unlimited; only the final result must fit in an int64.
//
// ConvertedTo returns an error under the conditions of
// [BigMoney.ConvertedTo] and [FastMoneyFromBig].
func (f FastMoney) ConvertedTo(to Currency, rate decimal.Decimal, mode RoundingMode) (FastMoney, error) {
	b, err := f.Big().ConvertedTo(to, rate)
	if err != nil {
		return FastMoney{}, err
	}
	return FastMoneyFromBig(b, mode)
}

// Neg returns the amount with the opposite sign.
//
// Neg returns an error if the amount is the minimum int64 count of minor
// units, whose negation does not fit in an int64.
func (f FastMoney) Neg() (FastMoney, error) {
	if f.units == math.MinInt64 {
		return FastMoney{}, fmt.Errorf("negating %v: %w", f, ErrOverflow)
	}
	return FastMoney{curr: f.curr, units: -f.units}, nil
}

// Abs returns the absolute value of the amount.
//
// Abs returns an error if the amount is the minimum int64 count of minor
// units, whose magnitude does not fit in an int64.
func (f FastMoney) Abs() (FastMoney, error) {
	if f.units >= 0 {
		return f, nil
	}
	return f.Neg()
}

// Cmp compares amounts and returns:
//
//	-1 if f < o
//	 0 if f = o
//	+1 if f > o
//
// Cmp returns an error if the amounts are denominated in different currencies.
func (f FastMoney) Cmp(o FastMoney) (int, error) {
	if !f.SameCurrency(o) {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", f, o, ErrCurrencyMismatch)
	}
	switch {
	case f.units < o.units:
		return -1, nil
	case f.units > o.units:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal returns true if the amounts are equal.
//
// Equal returns an error if the amounts are denominated in different currencies.
func (f FastMoney) Equal(o FastMoney) (bool, error) {
	c, err := f.Cmp(o)
	return c == 0, err
}

// String implements the [fmt.Stringer] interface and returns the canonical
// text form of the amount, such as "USD 25.95" or "USD -0.05".
// The decimal point is placed according to the decimal places of the
// currency; negative amounts carry a single leading sign.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (f FastMoney) String() string {
	var sb strings.Builder
	sb.WriteString(f.curr.Code())
	sb.WriteByte(' ')
	if f.units < 0 {
		sb.WriteByte('-')
	}

	// The unsigned conversion of the wrapped negation is correct even for
	// the minimum int64 value.
	mag := uint64(f.units)
	if f.units < 0 {
		mag = uint64(-f.units)
	}
	digits := strconv.FormatUint(mag, 10)

	dp := f.curr.DecimalPlaces()
	switch {
	case dp == 0:
		sb.WriteString(digits)
	case len(digits) > dp:
		sb.WriteString(digits[:len(digits)-dp])
		sb.WriteByte('.')
		sb.WriteString(digits[len(digits)-dp:])
	default:
		sb.WriteString("0.")
		for i := len(digits); i < dp; i++ {
			sb.WriteByte('0')
		}
		sb.WriteString(digits)
	}
	return sb.String()
}

// MarshalText implements the [encoding.TextMarshaler] interface and returns
// the canonical text form of the amount.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (f FastMoney) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseFastMoney].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (f *FastMoney) UnmarshalText(text []byte) error {
	var err error
	*f, err = ParseFastMoney(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", FastMoney{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface and returns the
// canonical text form of the amount as a quoted string.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (f FastMoney) MarshalJSON() ([]byte, error) {
	return []byte("\"" + f.String() + "\""), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseFastMoney].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (f *FastMoney) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return f.UnmarshalText(text)
}

// pow10Int64 returns 10^n for n in [0, 3].
func pow10Int64(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
