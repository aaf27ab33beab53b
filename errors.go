package money

import "errors"

// Errors returned by this package.
// They are reported wrapped with the context of the failing operation, so they
// should be tested with [errors.Is] rather than compared directly.
var (
	// ErrCurrencyMismatch occurs when an operation combines two monetary
	// values denominated in different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrUnknownCurrency occurs when a currency code has not been registered.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrDuplicateCurrency occurs when a currency code is re-registered with
	// properties conflicting with an earlier registration.
	ErrDuplicateCurrency = errors.New("duplicate currency")

	// ErrInvalidScale occurs when a fixed-scale value is constructed with
	// a negative scale.
	ErrInvalidScale = errors.New("invalid scale")

	// ErrScaleRange occurs when a scale falls outside [MinScale, MaxScale].
	ErrScaleRange = errors.New("scale out of range")

	// ErrRoundingNecessary occurs when [RoundUnnecessary] is used and the
	// operation would discard a nonzero digit.
	ErrRoundingNecessary = errors.New("rounding necessary")

	// ErrDivisionByZero occurs when a divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNegativeRate occurs when a currency conversion rate is negative.
	ErrNegativeRate = errors.New("negative conversion rate")

	// ErrOverflow occurs when a [FastMoney] operation does not fit in int64.
	ErrOverflow = errors.New("int64 overflow")

	// ErrMalformedData occurs when a currency data record cannot be parsed.
	ErrMalformedData = errors.New("malformed currency data")

	// ErrPseudoCurrency occurs when an operation requires a minor-unit scale
	// on a currency that has none, such as XAU.
	ErrPseudoCurrency = errors.New("pseudo-currency has no minor unit")
)
