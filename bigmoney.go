package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BigMoney represents a monetary amount of arbitrary precision.
// Its zero value corresponds to "XXX 0", where XXX indicates an unknown currency.
//
// A BigMoney pairs a [Currency] with a [decimal.Decimal] amount and places no
// constraint on the scale of the amount beyond the package-wide
// [MinScale, MaxScale] bound: "USD 25.951" is a valid BigMoney even though
// US Dollars have only 2 decimal places.
// It is the common pivot between the scale-constrained representations
// [Money], [FixedMoney], and [FastMoney].
//
// BigMoney is immutable: every operation returns a new value.
// It is safe for concurrent use by multiple goroutines.
type BigMoney struct {
	curr   Currency        // ISO 4217 currency
	amount decimal.Decimal // monetary value
}

// newBigMoneyUnsafe creates a big monetary amount without checking the scale.
func newBigMoneyUnsafe(c Currency, d decimal.Decimal) BigMoney {
	return BigMoney{curr: c, amount: d}
}

// newBigMoneySafe creates a big monetary amount and checks the scale.
func newBigMoneySafe(c Currency, d decimal.Decimal) (BigMoney, error) {
	if c.code == "" {
		return BigMoney{}, ErrUnknownCurrency
	}
	if err := checkScale(decimalScale(d)); err != nil {
		return BigMoney{}, err
	}
	return newBigMoneyUnsafe(c, d), nil
}

// decimalScale returns the number of digits after the decimal point of d.
// It is negative when d carries trailing zeros before the decimal point.
func decimalScale(d decimal.Decimal) int {
	return -int(d.Exponent())
}

// NewBigMoney returns a big monetary amount with the given currency and value.
// The scale of the amount is kept exactly as given; no rounding occurs.
//
// NewBigMoney returns an error if the currency is the zero value or the scale
// of the amount is outside [MinScale, MaxScale].
func NewBigMoney(curr Currency, amount decimal.Decimal) (BigMoney, error) {
	b, err := newBigMoneySafe(curr, amount)
	if err != nil {
		return BigMoney{}, fmt.Errorf("creating %v amount: %w", curr, err)
	}
	return b, nil
}

// BigMoneyFromMajor returns a big monetary amount equal to the given number
// of major units of the currency, such as dollars for USD.
// The result has scale 0.
func BigMoneyFromMajor(curr Currency, units int64) (BigMoney, error) {
	return NewBigMoney(curr, decimal.New(units, 0))
}

// ZeroBig returns a zero big monetary amount in the given currency, with
// scale 0.
func ZeroBig(curr Currency) (BigMoney, error) {
	return NewBigMoney(curr, decimal.Decimal{})
}

// BigMoneyFromMinor returns a big monetary amount equal to the given number
// of minor units of the currency, such as cents for USD.
// The result has the scale of the currency.
//
// BigMoneyFromMinor returns an error if the currency is a pseudo-currency,
// as such currencies have no minor unit.
func BigMoneyFromMinor(curr Currency, units int64) (BigMoney, error) {
	if curr.IsPseudo() {
		return BigMoney{}, fmt.Errorf("creating %v amount from minor units: %w", curr, ErrPseudoCurrency)
	}
	return NewBigMoney(curr, decimal.New(units, int32(-curr.DecimalPlaces())))
}

// ParseBigMoney converts a string in the canonical
// "<code> <amount>" form, such as "USD 25.95" or "JPY -3", to a big monetary
// amount.
// The scale of the result equals the number of fractional digits in the
// string, so "USD 25.950" parses to a scale-3 amount.
//
// ParseBigMoney returns an error if the currency is not registered or the
// string is not in the canonical form.
func ParseBigMoney(s string) (BigMoney, error) {
	c, d, err := parseMoneyParts(s)
	if err != nil {
		return BigMoney{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return newBigMoneySafe(c, d)
}

// MustParseBigMoney is like [ParseBigMoney] but panics if the string cannot
// be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseBigMoney(s string) BigMoney {
	b, err := ParseBigMoney(s)
	if err != nil {
		panic(fmt.Sprintf("ParseBigMoney(%q) failed: %v", s, err))
	}
	return b
}

// parseMoneyParts splits a canonical "<code> <amount>" string into its
// currency and decimal value.
func parseMoneyParts(s string) (Currency, decimal.Decimal, error) {
	if len(s) < 5 || s[3] != ' ' {
		return Currency{}, decimal.Decimal{}, fmt.Errorf("%w: expected \"<code> <amount>\"", ErrMalformedData)
	}
	c, err := GetCurrency(s[:3])
	if err != nil {
		return Currency{}, decimal.Decimal{}, err
	}
	num := s[4:]
	if !validAmount(num) {
		return Currency{}, decimal.Decimal{}, fmt.Errorf("%w: invalid amount %q", ErrMalformedData, num)
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return Currency{}, decimal.Decimal{}, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	return c, d, nil
}

// validAmount reports whether s matches [+-]?[0-9]*[.]?[0-9]* and contains
// at least one digit.
func validAmount(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, points := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}

// Currency returns the currency of the amount.
func (b BigMoney) Currency() Currency {
	return b.curr
}

// Amount returns the decimal value of the amount.
func (b BigMoney) Amount() decimal.Decimal {
	return b.amount
}

// Scale returns the number of digits after the decimal point.
func (b BigMoney) Scale() int {
	return decimalScale(b.amount)
}

// Sign returns:
//
//	-1 if b < 0
//	 0 if b = 0
//	+1 if b > 0
func (b BigMoney) Sign() int {
	return b.amount.Sign()
}

// IsZero returns true if the amount is zero, regardless of its scale.
func (b BigMoney) IsZero() bool {
	return b.amount.IsZero()
}

// IsPos returns true if the amount is greater than zero.
func (b BigMoney) IsPos() bool {
	return b.amount.IsPositive()
}

// IsNeg returns true if the amount is less than zero.
func (b BigMoney) IsNeg() bool {
	return b.amount.IsNegative()
}

// SameCurrency returns true if the amounts are denominated in the same currency.
func (b BigMoney) SameCurrency(o BigMoney) bool {
	return b.curr == o.curr
}

// Add returns the exact sum of amounts b and o.
// The scale of the result is the greater of the two scales; Add never rounds.
//
// Add returns an error if the amounts are denominated in different currencies.
func (b BigMoney) Add(o BigMoney) (BigMoney, error) {
	if !b.SameCurrency(o) {
		return BigMoney{}, fmt.Errorf("computing [%v + %v]: %w", b, o, ErrCurrencyMismatch)
	}
	return b.AddDecimal(o.amount)
}

// Sub returns the exact difference between amounts b and o.
// The scale of the result is the greater of the two scales; Sub never rounds.
//
// Sub returns an error if the amounts are denominated in different currencies.
func (b BigMoney) Sub(o BigMoney) (BigMoney, error) {
	if !b.SameCurrency(o) {
		return BigMoney{}, fmt.Errorf("computing [%v - %v]: %w", b, o, ErrCurrencyMismatch)
	}
	return b.SubDecimal(o.amount)
}

// AddDecimal returns the exact sum of amount b and a bare decimal value,
// widening the scale to the greater of the two.
func (b BigMoney) AddDecimal(d decimal.Decimal) (BigMoney, error) {
	res, err := newBigMoneySafe(b.curr, b.amount.Add(d))
	if err != nil {
		return BigMoney{}, fmt.Errorf("computing [%v + %v]: %w", b, d, err)
	}
	return res, nil
}

// SubDecimal returns the exact difference between amount b and a bare decimal
// value, widening the scale to the greater of the two.
func (b BigMoney) SubDecimal(d decimal.Decimal) (BigMoney, error) {
	res, err := newBigMoneySafe(b.curr, b.amount.Sub(d))
	if err != nil {
		return BigMoney{}, fmt.Errorf("computing [%v - %v]: %w", b, d, err)
	}
	return res, nil
}

// Mul returns the exact product of amount b and factor e.
// The scale of the result is the sum of the two scales.
func (b BigMoney) Mul(e decimal.Decimal) (BigMoney, error) {
	res, err := newBigMoneySafe(b.curr, b.amount.Mul(e))
	if err != nil {
		return BigMoney{}, fmt.Errorf("computing [%v * %v]: %w", b, e, err)
	}
	return res, nil
}

// MulInt64 returns the exact product of amount b and an integer factor.
// The scale of the result equals the scale of b.
func (b BigMoney) MulInt64(f int64) (BigMoney, error) {
	return b.Mul(decimal.New(f, 0))
}

// Div returns the quotient of amount b and divisor e, rounded to the scale
// of b using the given rounding mode.
// Division is the only inherently lossy operator, so the mode is mandatory.
//
// Div returns an error if:
//   - the divisor is zero;
//   - the mode is [RoundUnnecessary] and a nonzero digit would be discarded.
func (b BigMoney) Div(e decimal.Decimal, mode RoundingMode) (BigMoney, error) {
	d, err := divideDecimal(b.amount, e, b.Scale(), mode)
	if err != nil {
		return BigMoney{}, fmt.Errorf("computing [%v / %v]: %w", b, e, err)
	}
	return newBigMoneyUnsafe(b.curr, d), nil
}

// DivInt64 returns the quotient of amount b and an integer divisor, rounded
// to the scale of b using the given rounding mode.
// See also method [BigMoney.Div].
func (b BigMoney) DivInt64(f int64, mode RoundingMode) (BigMoney, error) {
	return b.Div(decimal.New(f, 0), mode)
}

// ConvertedTo returns the amount exactly converted to another currency by
// multiplying with the given rate.
// The scale of the result is the scale of b plus the scale of the rate.
// See also method [BigMoney.ConvertedToRounded].
//
// ConvertedTo returns an error if:
//   - the rate is negative;
//   - the target currency equals the source currency, unless the rate is 1.
func (b BigMoney) ConvertedTo(to Currency, rate decimal.Decimal) (BigMoney, error) {
	res, err := b.convertedTo(to, rate)
	if err != nil {
		return BigMoney{}, fmt.Errorf("converting %v to %v: %w", b, to, err)
	}
	return res, nil
}

func (b BigMoney) convertedTo(to Currency, rate decimal.Decimal) (BigMoney, error) {
	if rate.IsNegative() {
		return BigMoney{}, fmt.Errorf("%w: %v", ErrNegativeRate, rate)
	}
	if to == b.curr {
		if !rate.Equal(decimal.New(1, 0)) {
			return BigMoney{}, fmt.Errorf("%w: cannot convert to the same currency with rate %v", ErrCurrencyMismatch, rate)
		}
		return b, nil
	}
	return newBigMoneySafe(to, b.amount.Mul(rate))
}

// ConvertedToRounded converts the amount to another currency and rounds the
// result to the scale of the target currency using the given rounding mode.
// See also method [BigMoney.ConvertedTo].
//
// ConvertedToRounded returns an error under the conditions of
// [BigMoney.ConvertedTo], and additionally if the target is a pseudo-currency.
func (b BigMoney) ConvertedToRounded(to Currency, rate decimal.Decimal, mode RoundingMode) (BigMoney, error) {
	res, err := b.ConvertedTo(to, rate)
	if err != nil {
		return BigMoney{}, err
	}
	return res.WithCurrencyScale(mode)
}

// WithScale returns the amount rescaled to the given scale.
// Widening the scale pads with zeros and is always exact; narrowing it rounds
// using the given mode.
//
// WithScale returns an error if:
//   - the scale is outside [MinScale, MaxScale];
//   - the mode is [RoundUnnecessary] and a nonzero digit would be discarded.
func (b BigMoney) WithScale(scale int, mode RoundingMode) (BigMoney, error) {
	d, err := rescaleDecimal(b.amount, scale, mode)
	if err != nil {
		return BigMoney{}, fmt.Errorf("rescaling %v to %v places: %w", b, scale, err)
	}
	return newBigMoneyUnsafe(b.curr, d), nil
}

// WithCurrencyScale returns the amount rescaled to the scale of its currency
// using the given mode.
// It returns an error if the currency is a pseudo-currency.
// See also method [BigMoney.WithScale].
func (b BigMoney) WithCurrencyScale(mode RoundingMode) (BigMoney, error) {
	if b.curr.IsPseudo() {
		return BigMoney{}, fmt.Errorf("rescaling %v to currency scale: %w", b, ErrPseudoCurrency)
	}
	return b.WithScale(b.curr.DecimalPlaces(), mode)
}

// Rounded returns the amount rounded as if at the given scale while
// preserving the displayed scale of b.
// For example, rounding "USD 0.125" at 2 places half-even yields "USD 0.120".
// Rounded is a no-op when the given scale is greater than or equal to the
// current scale.
//
// Rounded returns an error if the mode is [RoundUnnecessary] and a nonzero
// digit would be discarded, or if the scale is below [MinScale].
func (b BigMoney) Rounded(scale int, mode RoundingMode) (BigMoney, error) {
	if scale >= b.Scale() {
		return b, nil
	}
	d, err := rescaleDecimal(b.amount, scale, mode)
	if err != nil {
		return BigMoney{}, fmt.Errorf("rounding %v at %v places: %w", b, scale, err)
	}
	d, err = rescaleDecimal(d, b.Scale(), RoundUnnecessary)
	if err != nil {
		return BigMoney{}, fmt.Errorf("rounding %v at %v places: %w", b, scale, err)
	}
	return newBigMoneyUnsafe(b.curr, d), nil
}

// Neg returns the amount with the opposite sign.
func (b BigMoney) Neg() BigMoney {
	if b.IsZero() {
		return b
	}
	return newBigMoneyUnsafe(b.curr, b.amount.Neg())
}

// Abs returns the absolute value of the amount.
func (b BigMoney) Abs() BigMoney {
	return newBigMoneyUnsafe(b.curr, b.amount.Abs())
}

// Cmp numerically compares amounts, ignoring their scales, and returns:
//
//	-1 if b < o
//	 0 if b = o
//	+1 if b > o
//
// Cmp returns an error if the amounts are denominated in different currencies.
func (b BigMoney) Cmp(o BigMoney) (int, error) {
	if !b.SameCurrency(o) {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", b, o, ErrCurrencyMismatch)
	}
	return b.amount.Cmp(o.amount), nil
}

// Equal returns true if the amounts are numerically equal, ignoring their
// scales, so "USD 2.00" equals "USD 2".
// For structural equality see method [BigMoney.Same].
//
// Equal returns an error if the amounts are denominated in different currencies.
func (b BigMoney) Equal(o BigMoney) (bool, error) {
	c, err := b.Cmp(o)
	return c == 0, err
}

// GreaterThan returns true if b is numerically greater than o.
//
// GreaterThan returns an error if the amounts are denominated in different
// currencies.
func (b BigMoney) GreaterThan(o BigMoney) (bool, error) {
	c, err := b.Cmp(o)
	return c > 0, err
}

// LessThan returns true if b is numerically less than o.
//
// LessThan returns an error if the amounts are denominated in different
// currencies.
func (b BigMoney) LessThan(o BigMoney) (bool, error) {
	c, err := b.Cmp(o)
	return c < 0, err
}

// Same returns true if the amounts have the same currency, the same scale,
// and the same unscaled value, so "USD 2.00" is not the same as "USD 2".
// For numeric equality see method [BigMoney.Equal].
func (b BigMoney) Same(o BigMoney) bool {
	return b.curr == o.curr &&
		b.amount.Exponent() == o.amount.Exponent() &&
		b.amount.Coefficient().Cmp(o.amount.Coefficient()) == 0
}

// Min returns the numerically smaller amount.
//
// Min returns an error if the amounts are denominated in different currencies.
func (b BigMoney) Min(o BigMoney) (BigMoney, error) {
	switch c, err := b.Cmp(o); {
	case err != nil:
		return BigMoney{}, err
	case c <= 0:
		return b, nil
	default:
		return o, nil
	}
}

// Max returns the numerically larger amount.
//
// Max returns an error if the amounts are denominated in different currencies.
func (b BigMoney) Max(o BigMoney) (BigMoney, error) {
	switch c, err := b.Cmp(o); {
	case err != nil:
		return BigMoney{}, err
	case c >= 0:
		return b, nil
	default:
		return o, nil
	}
}

// MinorUnits returns the amount expressed in minor units of its currency,
// rounding any extra fractional digits half to even.
// It returns false if the currency is a pseudo-currency or the result does
// not fit in an int64.
func (b BigMoney) MinorUnits() (units int64, ok bool) {
	if b.curr.IsPseudo() {
		return 0, false
	}
	d, err := rescaleDecimal(b.amount, b.curr.DecimalPlaces(), RoundHalfEven)
	if err != nil {
		return 0, false
	}
	coef := d.Coefficient()
	if !coef.IsInt64() {
		return 0, false
	}
	return coef.Int64(), true
}

// MajorUnits returns the whole-unit part of the amount, truncated toward zero.
// It returns false if the result does not fit in an int64.
func (b BigMoney) MajorUnits() (units int64, ok bool) {
	d, err := rescaleDecimal(b.amount, 0, RoundDown)
	if err != nil {
		return 0, false
	}
	coef := d.Coefficient()
	if !coef.IsInt64() {
		return 0, false
	}
	return coef.Int64(), true
}

// String implements the [fmt.Stringer] interface and returns the canonical
// text form of the amount, such as "USD 25.95" or "JPY -3".
// The output preserves the scale, so "USD 25.950" and "USD 25.95" render
// differently.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (b BigMoney) String() string {
	return b.curr.Code() + " " + formatDecimal(b.amount)
}

// formatDecimal renders a decimal value with exactly as many fractional
// digits as its scale: 25950 at scale 3 renders as "25.950", not "25.95".
// A value with a negative scale has its implied trailing zeros written out,
// since the canonical text form carries no exponent.
func formatDecimal(d decimal.Decimal) string {
	coef := d.Coefficient()
	neg := coef.Sign() < 0
	if neg {
		coef.Neg(coef) // Coefficient returns a copy
	}
	digits := coef.String()
	scale := decimalScale(d)

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	switch {
	case scale <= 0:
		sb.WriteString(digits)
		if digits != "0" {
			for i := 0; i < -scale; i++ {
				sb.WriteByte('0')
			}
		}
	case len(digits) > scale:
		sb.WriteString(digits[:len(digits)-scale])
		sb.WriteByte('.')
		sb.WriteString(digits[len(digits)-scale:])
	default:
		sb.WriteString("0.")
		for i := len(digits); i < scale; i++ {
			sb.WriteByte('0')
		}
		sb.WriteString(digits)
	}
	return sb.String()
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example     | Description                |
//	| ------ | ----------- | -------------------------- |
//	| %s, %v | USD 5.67    | Currency and amount        |
//	| %q     | "USD 5.67"  | Quoted currency and amount |
//	| %f     | 5.67        | Amount only                |
//	| %c     | USD         | Currency only              |
//
// The '-' format flag and a width can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (b BigMoney) Format(state fmt.State, verb rune) {
	var text string
	switch verb {
	case 's', 'S', 'v', 'V':
		text = b.String()
	case 'q', 'Q':
		text = "\"" + b.String() + "\""
	case 'f', 'F':
		text = formatDecimal(b.amount)
	case 'c', 'C':
		text = b.curr.Code()
	default:
		//nolint:errcheck
		fmt.Fprintf(state, "%%!%c(money.BigMoney=%s)", verb, b.String())
		return
	}
	writePadded(state, text)
}

// MarshalText implements the [encoding.TextMarshaler] interface and returns
// the canonical text form of the amount.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (b BigMoney) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseBigMoney].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (b *BigMoney) UnmarshalText(text []byte) error {
	var err error
	*b, err = ParseBigMoney(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", BigMoney{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface and returns the
// canonical text form of the amount as a quoted string.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (b BigMoney) MarshalJSON() ([]byte, error) {
	return []byte("\"" + b.String() + "\""), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseBigMoney].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (b *BigMoney) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return b.UnmarshalText(text)
}
