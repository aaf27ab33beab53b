package money

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// defaultRegistry holds every registered currency.
// It is populated from the embedded ISO 4217 data at package initialization
// and may be extended at application startup via [RegisterCurrency] or
// [LoadCurrencies].
// All accesses go through a read-write mutex, so registration is safe even if
// the host application does not serialize its initialization phase.
var defaultRegistry = newRegistry()

//go:embed currencies.csv
var currencyData string

func init() {
	if err := LoadCurrencies(strings.NewReader(currencyData)); err != nil {
		panic(fmt.Sprintf("loading embedded currency data: %v", err))
	}
}

type registry struct {
	mu        sync.RWMutex
	byCode    map[string]Currency
	byNum     map[int16]Currency
	byCountry map[string][]Currency
	countryOf map[Currency][]string
}

func newRegistry() *registry {
	return &registry{
		byCode:    make(map[string]Currency),
		byNum:     make(map[int16]Currency),
		byCountry: make(map[string][]Currency),
		countryOf: make(map[Currency][]string),
	}
}

// RegisterCurrency registers a currency with the given 3-letter code, numeric
// code, number of decimal places, and 2-letter country codes.
// Use [NoNumericCode] as the numeric code for currencies that do not have one,
// and -1 decimal places for pseudo-currencies without a minor unit.
//
// Registration is idempotent: registering an already known code with identical
// properties returns the existing currency.
// Re-registering a code with conflicting properties fails with
// [ErrDuplicateCurrency].
// The returned error is non-nil if the code is not 3 uppercase letters,
// the numeric code is not in [0, 999] or [NoNumericCode], or the decimal
// places are not in [-1, 3].
func RegisterCurrency(code string, numericCode, decimalPlaces int, countries []string) (Currency, error) {
	c, err := defaultRegistry.register(code, numericCode, decimalPlaces, countries)
	if err != nil {
		return Currency{}, fmt.Errorf("registering currency %q: %w", code, err)
	}
	return c, nil
}

func (r *registry) register(code string, num, dp int, countries []string) (Currency, error) {
	if !validCode(code) {
		return Currency{}, fmt.Errorf("%w: code must be 3 uppercase letters", ErrMalformedData)
	}
	if num < NoNumericCode || num > 999 {
		return Currency{}, fmt.Errorf("%w: numeric code %v not in [0, 999]", ErrMalformedData, num)
	}
	if dp < -1 || dp > 3 {
		return Currency{}, fmt.Errorf("%w: decimal places %v not in [-1, 3]", ErrMalformedData, dp)
	}
	for _, country := range countries {
		if len(country) != 2 || !isUpperAlpha(country) {
			return Currency{}, fmt.Errorf("%w: country code %q must be 2 uppercase letters", ErrMalformedData, country)
		}
	}
	c := Currency{code: code, num: int16(num), dp: int8(dp)}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byCode[code]; ok {
		if prev != c {
			return Currency{}, fmt.Errorf("%w: %q already registered with different properties", ErrDuplicateCurrency, code)
		}
		return prev, nil
	}
	if num != NoNumericCode {
		if prev, ok := r.byNum[int16(num)]; ok {
			return Currency{}, fmt.Errorf("%w: numeric code %v already used by %q", ErrDuplicateCurrency, num, prev.Code())
		}
		r.byNum[int16(num)] = c
	}
	r.byCode[code] = c
	for _, country := range countries {
		r.byCountry[country] = append(r.byCountry[country], c)
	}
	r.countryOf[c] = append([]string(nil), countries...)
	return c, nil
}

func (r *registry) lookup(code string) (Currency, error) {
	code = strings.ToUpper(code)
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byCode[code]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

func (r *registry) lookupNumeric(num int) (Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byNum[int16(num)]
	if !ok || num == NoNumericCode {
		return Currency{}, fmt.Errorf("%w: numeric code %v", ErrUnknownCurrency, num)
	}
	return c, nil
}

func (r *registry) lookupCountry(country string) []Currency {
	country = strings.ToUpper(country)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Currency(nil), r.byCountry[country]...)
}

func (r *registry) countries(c Currency) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.countryOf[c]...)
}

func (r *registry) all() []Currency {
	r.mu.RLock()
	defer r.mu.RUnlock()
	currs := make([]Currency, 0, len(r.byCode))
	for _, c := range r.byCode {
		currs = append(currs, c)
	}
	sort.Slice(currs, func(i, j int) bool { return currs[i].code < currs[j].code })
	return currs
}

// LoadCurrencies registers currencies in bulk from a data source with one
// record per line:
//
//	CODE,numericCode,decimalPlaces,countries[#comment]
//
// where CODE is a 3-letter currency code, numericCode is the 3-digit ISO code
// (empty if the currency has none), decimalPlaces is in [-1, 3], and countries
// is a concatenation of 2-letter country codes.
// Blank lines and lines starting with '#' are ignored; anything after a '#'
// on a record line is a comment.
//
// A malformed record stops the load with an error wrapping [ErrMalformedData]
// and reporting the offending line number: a partially loaded registry is
// considered worse than a failed startup.
// Records preceding the malformed one remain registered.
func LoadCurrencies(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if err := loadRecord(text); err != nil {
			return fmt.Errorf("loading currency data: line %v: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("loading currency data: %w", err)
	}
	return nil
}

func loadRecord(text string) error {
	fields := strings.Split(text, ",")
	if len(fields) != 4 {
		return fmt.Errorf("%w: expected 4 fields, got %v", ErrMalformedData, len(fields))
	}
	code := fields[0]

	num := NoNumericCode
	if fields[1] != "" {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("%w: numeric code %q", ErrMalformedData, fields[1])
		}
		num = n
	}

	dp, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("%w: decimal places %q", ErrMalformedData, fields[2])
	}

	concat := fields[3]
	if len(concat)%2 != 0 {
		return fmt.Errorf("%w: odd-length country list %q", ErrMalformedData, concat)
	}
	countries := make([]string, 0, len(concat)/2)
	for i := 0; i < len(concat); i += 2 {
		countries = append(countries, concat[i:i+2])
	}

	_, err = defaultRegistry.register(code, num, dp, countries)
	return err
}

func validCode(code string) bool {
	return len(code) == 3 && isUpperAlpha(code)
}

func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
