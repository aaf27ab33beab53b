package money

import (
	"fmt"
)

// Currency type represents a currency in the global financial system.
// The zero value corresponds to "XXX", which indicates an unknown currency;
// like the registered XXX it is treated as a pseudo-currency, so operations
// that need a minor-unit scale reject it.
//
// A Currency holds the properties defined by [ISO 4217]: the 3-letter
// alphabetic code, the 3-digit numeric code, and the number of digits used
// for the currency's minor unit.
// Currencies are interned in a process-wide registry and compared by value,
// so two Currency values obtained for the same code are always equal.
//
// When persisting a currency, use the alphabetic code returned by the
// [Currency.Code] method.
//
// [ISO 4217]: https://en.wikipedia.org/wiki/ISO_4217
type Currency struct {
	code string // 3-letter ISO 4217 code
	num  int16  // 3-digit ISO 4217 code, -1 if the currency has none
	dp   int8   // digits in the minor unit, -1 for pseudo-currencies
}

// NoNumericCode is the numeric code of currencies that do not have one.
const NoNumericCode = -1

// GetCurrency returns the registered currency with the given 3-letter code.
// The lookup is case-insensitive.
//
// GetCurrency returns an error if the code has not been registered.
// See also functions [RegisterCurrency] and [LoadCurrencies].
func GetCurrency(code string) (Currency, error) {
	return defaultRegistry.lookup(code)
}

// MustGetCurrency is like [GetCurrency] but panics if the code is not registered.
// It simplifies safe initialization of global variables holding currencies.
func MustGetCurrency(code string) Currency {
	c, err := GetCurrency(code)
	if err != nil {
		panic(fmt.Sprintf("GetCurrency(%q) failed: %v", code, err))
	}
	return c
}

// CurrencyByNumeric returns the registered currency with the given
// ISO 4217 numeric code.
func CurrencyByNumeric(num int) (Currency, error) {
	return defaultRegistry.lookupNumeric(num)
}

// CurrenciesIn returns the currencies registered for the given 2-letter
// country code, in registration order.
// The returned slice is empty if no currency is registered for the country.
func CurrenciesIn(country string) []Currency {
	return defaultRegistry.lookupCountry(country)
}

// RegisteredCurrencies returns all registered currencies sorted by code.
func RegisteredCurrencies() []Currency {
	return defaultRegistry.all()
}

// Code returns the [3-letter code] assigned to the currency by the ISO 4217
// standard.
// For the zero Currency value, Code returns "XXX".
//
// [3-letter code]: https://en.wikipedia.org/wiki/ISO_4217#National_currencies
func (c Currency) Code() string {
	if c.code == "" {
		return "XXX"
	}
	return c.code
}

// NumericCode returns the [3-digit code] assigned to the currency by the
// ISO 4217 standard, or [NoNumericCode] if the currency does not have one.
//
// [3-digit code]: https://en.wikipedia.org/wiki/ISO_4217#Numeric_codes
func (c Currency) NumericCode() int {
	return int(c.num)
}

// DecimalPlaces returns the number of digits after the decimal point required
// for representing the minor unit of the currency.
// The supported currencies use 0, 1, 2, or 3 decimal places:
//   - 0 indicates currencies without minor units, such as the [Japanese Yen].
//   - 2 indicates currencies whose minor unit is a hundredth, such as
//     the [US Dollar], which represents 1 cent as 0.01 dollars.
//   - 3 indicates currencies whose minor unit is a thousandth, such as
//     the [Omani Rial], which represents 1 baisa as 0.001 rials.
//
// DecimalPlaces returns -1 for pseudo-currencies such as gold or the
// "no currency" code XXX; see also method [Currency.IsPseudo].
//
// [Japanese Yen]: https://en.wikipedia.org/wiki/Japanese_yen
// [US Dollar]: https://en.wikipedia.org/wiki/United_States_dollar
// [Omani Rial]: https://en.wikipedia.org/wiki/Omani_rial
func (c Currency) DecimalPlaces() int {
	return int(c.dp)
}

// IsPseudo returns true if the currency is a pseudo-currency, that is,
// a registered code without a minor unit, such as XAU (gold).
// The zero Currency value is also pseudo.
// Operations that require a minor-unit scale fail with [ErrPseudoCurrency]
// for such currencies.
func (c Currency) IsPseudo() bool {
	return c.dp < 0 || c.code == ""
}

// CountryCodes returns the 2-letter codes of the countries the currency is
// registered for, in registration order.
func (c Currency) CountryCodes() []string {
	return defaultRegistry.countries(c)
}

// String method implements the [fmt.Stringer] interface and returns
// the 3-letter code of the currency.
// See also method [Currency.Code].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (c Currency) String() string {
	return c.Code()
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also function [GetCurrency].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (c *Currency) UnmarshalText(text []byte) error {
	var err error
	*c, err = GetCurrency(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Currency{}, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns a 3-letter code.
// See also method [Currency.Code].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also function [GetCurrency].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (c *Currency) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	var err error
	*c, err = GetCurrency(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Currency{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a quoted 3-letter code.
// See also method [Currency.Code].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (c Currency) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, 5)
	text = append(text, '"')
	text = append(text, c.Code()...)
	text = append(text, '"')
	return text, nil
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb       | Example | Description     |
//	| ---------- | ------- | --------------- |
//	| %c, %s, %v | USD     | Currency        |
//	| %q         | "USD"   | Quoted currency |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (c Currency) Format(state fmt.State, verb rune) {
	var text string
	switch verb {
	case 'q', 'Q':
		text = "\"" + c.Code() + "\""
	case 's', 'S', 'v', 'V', 'c', 'C':
		text = c.Code()
	default:
		//nolint:errcheck
		fmt.Fprintf(state, "%%!%c(money.Currency=%s)", verb, c.Code())
		return
	}
	writePadded(state, text)
}

// writePadded writes text to state honoring the width and '-' flags.
func writePadded(state fmt.State, text string) {
	pad := 0
	if w, ok := state.Width(); ok && w > len(text) {
		pad = w - len(text)
	}
	//nolint:errcheck
	switch {
	case pad == 0:
		state.Write([]byte(text))
	case state.Flag('-'):
		state.Write([]byte(text))
		state.Write(spaces(pad))
	default:
		state.Write(spaces(pad))
		state.Write([]byte(text))
	}
}

func spaces(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return b
}
