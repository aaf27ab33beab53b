package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FixedMoney represents a monetary amount whose scale is chosen by the caller
// once, at construction, and re-applied after every operation.
// It is useful when calculations must carry more precision than the currency
// itself provides, such as unit prices quoted to 4 decimal places in a
// 2-decimal currency.
//
// Unlike [Money], the retained scale is independent of the currency and is
// never altered, not even by currency conversion.
// The scale must be non-negative; construction fails with [ErrInvalidScale]
// otherwise.
//
// FixedMoney is immutable and safe for concurrent use by multiple goroutines.
type FixedMoney struct {
	bm BigMoney
}

// NewFixedMoney returns a monetary amount with the given currency and value,
// rescaled to the given scale using the given mode.
//
// NewFixedMoney returns an error if:
//   - the scale is negative;
//   - the scale is greater than [MaxScale];
//   - the mode is [RoundUnnecessary] and the value has nonzero digits beyond
//     the scale.
func NewFixedMoney(curr Currency, amount decimal.Decimal, scale int, mode RoundingMode) (FixedMoney, error) {
	b, err := NewBigMoney(curr, amount)
	if err != nil {
		return FixedMoney{}, err
	}
	return FixedMoneyFromBig(b, scale, mode)
}

// FixedMoneyFromBig rescales an arbitrary-precision amount to the given scale
// using the given mode.
// See also method [FixedMoney.Big].
func FixedMoneyFromBig(b BigMoney, scale int, mode RoundingMode) (FixedMoney, error) {
	if scale < 0 {
		return FixedMoney{}, fmt.Errorf("creating fixed-scale amount: %w: %v", ErrInvalidScale, scale)
	}
	b, err := b.WithScale(scale, mode)
	if err != nil {
		return FixedMoney{}, err
	}
	return FixedMoney{bm: b}, nil
}

// ParseFixedMoney converts a string in the canonical "<code> <amount>" form
// to a monetary amount with the given scale.
// Digits beyond the scale are rounded using the given mode.
func ParseFixedMoney(s string, scale int, mode RoundingMode) (FixedMoney, error) {
	b, err := ParseBigMoney(s)
	if err != nil {
		return FixedMoney{}, err
	}
	f, err := FixedMoneyFromBig(b, scale, mode)
	if err != nil {
		return FixedMoney{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return f, nil
}

// MustParseFixedMoney is like [ParseFixedMoney] but panics if the string
// cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseFixedMoney(s string, scale int, mode RoundingMode) FixedMoney {
	f, err := ParseFixedMoney(s, scale, mode)
	if err != nil {
		panic(fmt.Sprintf("ParseFixedMoney(%q, %v, %v) failed: %v", s, scale, mode, err))
	}
	return f
}

// retain re-applies the retained scale of f to a pivot result.
func (f FixedMoney) retain(b BigMoney, mode RoundingMode) (FixedMoney, error) {
	b, err := b.WithScale(f.Scale(), mode)
	if err != nil {
		return FixedMoney{}, err
	}
	return FixedMoney{bm: b}, nil
}

// Big returns the arbitrary-precision representation of the amount.
// See also constructor [FixedMoneyFromBig].
func (f FixedMoney) Big() BigMoney {
	return f.bm
}

// Currency returns the currency of the amount.
func (f FixedMoney) Currency() Currency {
	return f.bm.Currency()
}

// Amount returns the decimal value of the amount.
// Its scale always equals the retained scale.
func (f FixedMoney) Amount() decimal.Decimal {
	return f.bm.Amount()
}

// Scale returns the retained scale chosen at construction.
func (f FixedMoney) Scale() int {
	return f.bm.Scale()
}

// Sign returns:
//
//	-1 if f < 0
//	 0 if f = 0
//	+1 if f > 0
func (f FixedMoney) Sign() int {
	return f.bm.Sign()
}

// IsZero returns true if the amount is zero.
func (f FixedMoney) IsZero() bool {
	return f.bm.IsZero()
}

// IsPos returns true if the amount is greater than zero.
func (f FixedMoney) IsPos() bool {
	return f.bm.IsPos()
}

// IsNeg returns true if the amount is less than zero.
func (f FixedMoney) IsNeg() bool {
	return f.bm.IsNeg()
}

// SameCurrency returns true if the amounts are denominated in the same currency.
func (f FixedMoney) SameCurrency(o FixedMoney) bool {
	return f.bm.SameCurrency(o.bm)
}

// Add returns the sum of amounts f and o, rescaled to the retained scale of f
// using the given mode.
// The sum is exact unless o carries a larger scale than f.
//
// Add returns an error if the amounts are denominated in different currencies.
func (f FixedMoney) Add(o FixedMoney, mode RoundingMode) (FixedMoney, error) {
	b, err := f.bm.Add(o.bm)
	if err != nil {
		return FixedMoney{}, err
	}
	return f.retain(b, mode)
}

// Sub returns the difference between amounts f and o, rescaled to the
// retained scale of f using the given mode.
// See also method [FixedMoney.Add].
func (f FixedMoney) Sub(o FixedMoney, mode RoundingMode) (FixedMoney, error) {
	b, err := f.bm.Sub(o.bm)
	if err != nil {
		return FixedMoney{}, err
	}
	return f.retain(b, mode)
}

// AddDecimal returns the sum of amount f and a bare decimal value, rescaled
// to the retained scale using the given mode.
func (f FixedMoney) AddDecimal(d decimal.Decimal, mode RoundingMode) (FixedMoney, error) {
	b, err := f.bm.AddDecimal(d)
	if err != nil {
		return FixedMoney{}, err
	}
	return f.retain(b, mode)
}

// SubDecimal returns the difference between amount f and a bare decimal
// value, rescaled to the retained scale using the given mode.
func (f FixedMoney) SubDecimal(d decimal.Decimal, mode RoundingMode) (FixedMoney, error) {
	b, err := f.bm.SubDecimal(d)
	if err != nil {
		return FixedMoney{}, err
	}
	return f.retain(b, mode)
}

// Mul returns the product of amount f and factor e, rescaled to the retained
// scale using the given mode.
func (f FixedMoney) Mul(e decimal.Decimal, mode RoundingMode) (FixedMoney, error) {
	b, err := f.bm.Mul(e)
	if err != nil {
		return FixedMoney{}, err
	}
	return f.retain(b, mode)
}

// MulInt64 returns the exact product of amount f and an integer factor.
// Multiplying by an integer keeps the scale, so no rounding mode is needed.
func (f FixedMoney) MulInt64(n int64) (FixedMoney, error) {
	b, err := f.bm.MulInt64(n)
	if err != nil {
		return FixedMoney{}, err
	}
	return FixedMoney{bm: b}, nil
}

// Div returns the quotient of amount f and divisor e, rounded to the retained
// scale using the given mode.
//
// Div returns an error if:
//   - the divisor is zero;
//   - the mode is [RoundUnnecessary] and a nonzero digit would be discarded.
func (f FixedMoney) Div(e decimal.Decimal, mode RoundingMode) (FixedMoney, error) {
	b, err := f.bm.Div(e, mode)
	if err != nil {
		return FixedMoney{}, err
	}
	return FixedMoney{bm: b}, nil
}

// DivInt64 returns the quotient of amount f and an integer divisor, rounded
// to the retained scale using the given mode.
// See also method [FixedMoney.Div].
func (f FixedMoney) DivInt64(n int64, mode RoundingMode) (FixedMoney, error) {
	b, err := f.bm.DivInt64(n, mode)
	if err != nil {
		return FixedMoney{}, err
	}
	return FixedMoney{bm: b}, nil
}

// ConvertedTo returns the amount converted to another currency by multiplying
// with the given rate.
// The retained scale is kept: conversion never changes the scale of a
// FixedMoney, regardless of the target currency.
//
// ConvertedTo returns an error if:
//   - the rate is negative;
//   - the target currency equals the source currency, unless the rate is 1;
//   - the mode is [RoundUnnecessary] and a nonzero digit would be discarded.
func (f FixedMoney) ConvertedTo(to Currency, rate decimal.Decimal, mode RoundingMode) (FixedMoney, error) {
	b, err := f.bm.ConvertedTo(to, rate)
	if err != nil {
		return FixedMoney{}, err
	}
	return f.retain(b, mode)
}

// Rounded returns the amount rounded as if at the given scale while keeping
// the retained scale.
// Rounded is a no-op when the given scale is greater than or equal to the
// retained scale.
func (f FixedMoney) Rounded(scale int, mode RoundingMode) (FixedMoney, error) {
	b, err := f.bm.Rounded(scale, mode)
	if err != nil {
		return FixedMoney{}, err
	}
	return FixedMoney{bm: b}, nil
}

// Neg returns the amount with the opposite sign.
func (f FixedMoney) Neg() FixedMoney {
	return FixedMoney{bm: f.bm.Neg()}
}

// Abs returns the absolute value of the amount.
func (f FixedMoney) Abs() FixedMoney {
	return FixedMoney{bm: f.bm.Abs()}
}

// Cmp numerically compares amounts, ignoring their scales, and returns:
//
//	-1 if f < o
//	 0 if f = o
//	+1 if f > o
//
// Cmp returns an error if the amounts are denominated in different currencies.
func (f FixedMoney) Cmp(o FixedMoney) (int, error) {
	return f.bm.Cmp(o.bm)
}

// Equal returns true if the amounts are numerically equal, ignoring their
// scales.
//
// Equal returns an error if the amounts are denominated in different currencies.
func (f FixedMoney) Equal(o FixedMoney) (bool, error) {
	return f.bm.Equal(o.bm)
}

// GreaterThan returns true if f is numerically greater than o.
//
// GreaterThan returns an error if the amounts are denominated in different
// currencies.
func (f FixedMoney) GreaterThan(o FixedMoney) (bool, error) {
	return f.bm.GreaterThan(o.bm)
}

// LessThan returns true if f is numerically less than o.
//
// LessThan returns an error if the amounts are denominated in different
// currencies.
func (f FixedMoney) LessThan(o FixedMoney) (bool, error) {
	return f.bm.LessThan(o.bm)
}

// Same returns true if the amounts have the same currency, the same retained
// scale, and the same unscaled value.
func (f FixedMoney) Same(o FixedMoney) bool {
	return f.bm.Same(o.bm)
}

// String implements the [fmt.Stringer] interface and returns the canonical
// text form of the amount, such as "USD 25.9500".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (f FixedMoney) String() string {
	return f.bm.String()
}

// Format implements the [fmt.Formatter] interface with the same verbs as
// [BigMoney.Format].
//
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (f FixedMoney) Format(state fmt.State, verb rune) {
	f.bm.Format(state, verb)
}

// MarshalText implements the [encoding.TextMarshaler] interface and returns
// the canonical text form of the amount.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (f FixedMoney) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// MarshalJSON implements the [json.Marshaler] interface and returns the
// canonical text form of the amount as a quoted string.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (f FixedMoney) MarshalJSON() ([]byte, error) {
	return []byte("\"" + f.String() + "\""), nil
}
