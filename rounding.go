package money

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// RoundingMode determines how a value is rounded when an operation must
// discard digits to reach a target scale.
type RoundingMode uint8

// Supported rounding modes.
const (
	// RoundUp rounds away from zero for any nonzero discarded fraction.
	RoundUp RoundingMode = iota
	// RoundDown discards the fraction, rounding toward zero.
	RoundDown
	// RoundCeiling rounds toward positive infinity.
	RoundCeiling
	// RoundFloor rounds toward negative infinity.
	RoundFloor
	// RoundHalfUp rounds to the nearest neighbor, ties away from zero.
	RoundHalfUp
	// RoundHalfDown rounds to the nearest neighbor, ties toward zero.
	RoundHalfDown
	// RoundHalfEven rounds to the nearest neighbor, ties to the even digit.
	RoundHalfEven
	// RoundUnnecessary asserts that no rounding is needed and fails with
	// [ErrRoundingNecessary] if a nonzero digit would be discarded.
	RoundUnnecessary
)

// Scale bounds shared by all monetary representations.
// A scale outside this range is rejected with [ErrScaleRange].
const (
	MinScale = -1000
	MaxScale = 1000
)

var roundingNames = [...]string{
	RoundUp:          "UP",
	RoundDown:        "DOWN",
	RoundCeiling:     "CEILING",
	RoundFloor:       "FLOOR",
	RoundHalfUp:      "HALF_UP",
	RoundHalfDown:    "HALF_DOWN",
	RoundHalfEven:    "HALF_EVEN",
	RoundUnnecessary: "UNNECESSARY",
}

// String implements the [fmt.Stringer] interface.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (m RoundingMode) String() string {
	if int(m) < len(roundingNames) {
		return roundingNames[m]
	}
	return fmt.Sprintf("RoundingMode(%d)", uint8(m))
}

// ParseRoundingMode converts a string, such as "HALF_EVEN", to a rounding mode.
// ParseRoundingMode returns an error if the string does not name a mode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	for m, name := range roundingNames {
		if s == name {
			return RoundingMode(m), nil
		}
	}
	return 0, fmt.Errorf("parsing rounding mode: %w: %q", ErrMalformedData, s)
}

var bigTen = big.NewInt(10)

// pow10 returns 10^n for n >= 0.
func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

func checkScale(scale int) error {
	if scale < MinScale || scale > MaxScale {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrScaleRange, scale, MinScale, MaxScale)
	}
	return nil
}

// roundQuotient returns num / den rounded according to mode m.
// The denominator must be positive; the numerator carries the sign.
func (m RoundingMode) roundQuotient(num, den *big.Int) (*big.Int, error) {
	rem := new(big.Int)
	quo, rem := new(big.Int).QuoRem(num, den, rem)
	if rem.Sign() == 0 {
		return quo, nil
	}

	away := func() *big.Int {
		if num.Sign() < 0 {
			return quo.Sub(quo, big.NewInt(1))
		}
		return quo.Add(quo, big.NewInt(1))
	}

	switch m {
	case RoundDown:
		return quo, nil
	case RoundUp:
		return away(), nil
	case RoundCeiling:
		if num.Sign() > 0 {
			return away(), nil
		}
		return quo, nil
	case RoundFloor:
		if num.Sign() < 0 {
			return away(), nil
		}
		return quo, nil
	case RoundHalfUp, RoundHalfDown, RoundHalfEven:
		// Compare twice the discarded remainder against the divisor.
		twice := new(big.Int).Abs(rem)
		twice.Lsh(twice, 1)
		switch twice.Cmp(den) {
		case +1:
			return away(), nil
		case -1:
			return quo, nil
		}
		// Exact halfway point.
		switch m {
		case RoundHalfUp:
			return away(), nil
		case RoundHalfDown:
			return quo, nil
		default:
			if quo.Bit(0) == 1 {
				return away(), nil
			}
			return quo, nil
		}
	case RoundUnnecessary:
		return nil, ErrRoundingNecessary
	}
	return nil, fmt.Errorf("unsupported rounding mode %v", m)
}

// rescaleDecimal returns d rescaled to the given scale.
// Widening the scale pads with zeros and is always exact.
// Narrowing the scale discards digits according to mode m.
func rescaleDecimal(d decimal.Decimal, scale int, m RoundingMode) (decimal.Decimal, error) {
	if err := checkScale(scale); err != nil {
		return decimal.Decimal{}, err
	}
	cur := -int(d.Exponent())
	coef := d.Coefficient()
	switch {
	case scale == cur:
		return d, nil
	case scale > cur:
		coef.Mul(coef, pow10(scale-cur))
		return decimal.NewFromBigInt(coef, int32(-scale)), nil
	default:
		quo, err := m.roundQuotient(coef, pow10(cur-scale))
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromBigInt(quo, int32(-scale)), nil
	}
}

// divideDecimal returns a / b computed directly at the given scale.
// The quotient is rounded according to mode m.
func divideDecimal(a, b decimal.Decimal, scale int, m RoundingMode) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Decimal{}, ErrDivisionByZero
	}
	if err := checkScale(scale); err != nil {
		return decimal.Decimal{}, err
	}
	num := a.Coefficient()
	den := b.Coefficient()
	// a/b = num/den * 10^(scale(b) - scale(a)), so the quotient at the target
	// scale is num*10^shift / den with shift = scale - scale(a) + scale(b).
	shift := scale + int(a.Exponent()) - int(b.Exponent())
	switch {
	case shift > 0:
		num.Mul(num, pow10(shift))
	case shift < 0:
		den.Mul(den, pow10(-shift))
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	quo, err := m.roundQuotient(num, den)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromBigInt(quo, int32(-scale)), nil
}
