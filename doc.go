/*
Package money implements exact monetary values bound to a currency's decimal
convention.
It builds on the [decimal] package for arbitrary-precision fixed-point numbers
and combines it with a [Currency] type backed by a process-wide registry of
ISO 4217 data.

# Representations

The package provides four interoperable representations of a monetary value:

  - [BigMoney] pairs a currency with a decimal value of any scale and is the
    common pivot between the other representations.
  - [Money] keeps its scale equal to the decimal places of its currency and is
    the safe default for most callers.
  - [FixedMoney] keeps a caller-chosen non-negative scale fixed at
    construction, for calculations that carry more precision than the currency
    provides.
  - [FastMoney] stores the amount as a single int64 count of minor units,
    trading unlimited magnitude for speed and explicit overflow checks.

All four are immutable: every operation returns a new value, which makes them
safe for concurrent use by multiple goroutines.

# Scale and Rounding

Every value is a signed unscaled integer combined with a scale, so 25.95 is
the pair (2595, 2).
Operations follow fixed scale-reconciliation rules: addition widens to the
larger operand scale, multiplication sums the scales, and division rounds at
the dividend's scale using a mandatory [RoundingMode].
Wherever a scale-constrained representation must reduce precision, the caller
chooses the mode; [RoundUnnecessary] turns silent precision loss into
[ErrRoundingNecessary].

# Currencies

Currencies are registered once, at startup: the embedded ISO 4217 data loads
at package initialization, and applications may add custom currencies with
[RegisterCurrency] or [LoadCurrencies] before use.
Amounts in different currencies never mix; operations on mismatched
currencies fail with [ErrCurrencyMismatch].
Pseudo-currencies such as XAU carry no minor unit, and operations that
require one fail with [ErrPseudoCurrency].

# Errors

All failures surface synchronously at the offending operation as errors
wrapping the package's sentinel values, such as [ErrDivisionByZero] or
[ErrOverflow]; nothing is retried or recovered internally.
Only the Must* constructors panic, to simplify initialization of globals.

[decimal]: https://pkg.go.dev/github.com/shopspring/decimal
*/
package money
