package money

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCurrency(t *testing.T) {
	t.Run("new currency", func(t *testing.T) {
		c, err := RegisterCurrency("ABC", 990, 2, []string{"AA"})
		require.NoError(t, err)
		assert.Equal(t, "ABC", c.Code())
		assert.Equal(t, 990, c.NumericCode())
		assert.Equal(t, 2, c.DecimalPlaces())
		assert.Equal(t, []string{"AA"}, c.CountryCodes())

		got, err := GetCurrency("ABC")
		require.NoError(t, err)
		assert.Equal(t, c, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := RegisterCurrency("ABD", 991, 2, nil)
		require.NoError(t, err)
		again, err := RegisterCurrency("ABD", 991, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})

	t.Run("conflicting properties", func(t *testing.T) {
		_, err := RegisterCurrency("ABE", 992, 2, nil)
		require.NoError(t, err)
		_, err = RegisterCurrency("ABE", 992, 3, nil)
		assert.ErrorIs(t, err, ErrDuplicateCurrency)
	})

	t.Run("duplicate numeric code", func(t *testing.T) {
		_, err := RegisterCurrency("ABF", 840, 2, nil) // numeric code of USD
		assert.ErrorIs(t, err, ErrDuplicateCurrency)
	})

	t.Run("no numeric code", func(t *testing.T) {
		c, err := RegisterCurrency("ABG", NoNumericCode, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, NoNumericCode, c.NumericCode())
	})

	t.Run("invalid input", func(t *testing.T) {
		tests := []struct {
			name      string
			code      string
			num, dp   int
			countries []string
		}{
			{"lowercase code", "abc", 993, 2, nil},
			{"short code", "AB", 993, 2, nil},
			{"long code", "ABCD", 993, 2, nil},
			{"numeric code too large", "ABH", 1000, 2, nil},
			{"numeric code too small", "ABH", -2, 2, nil},
			{"decimal places too large", "ABH", 993, 4, nil},
			{"decimal places too small", "ABH", 993, -2, nil},
			{"bad country code", "ABH", 993, 2, []string{"A1"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := RegisterCurrency(tt.code, tt.num, tt.dp, tt.countries)
				assert.ErrorIs(t, err, ErrMalformedData)
			})
		}
	})
}

func TestLoadCurrencies(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		data := `
# test records
ABJ,994,2,AABB # two countries
ABK,,0,
`
		err := LoadCurrencies(strings.NewReader(data))
		require.NoError(t, err)

		c, err := GetCurrency("ABJ")
		require.NoError(t, err)
		assert.Equal(t, 994, c.NumericCode())
		assert.Equal(t, 2, c.DecimalPlaces())
		assert.Equal(t, []string{"AA", "BB"}, c.CountryCodes())

		c, err = GetCurrency("ABK")
		require.NoError(t, err)
		assert.Equal(t, NoNumericCode, c.NumericCode())
		assert.Empty(t, c.CountryCodes())
	})

	t.Run("malformed record stops the load", func(t *testing.T) {
		tests := []struct {
			name string
			data string
		}{
			{"too few fields", "ABL,995,2"},
			{"too many fields", "ABL,995,2,,extra"},
			{"bad numeric code", "ABL,xyz,2,"},
			{"bad decimal places", "ABL,995,two,"},
			{"odd country list", "ABL,995,2,AAB"},
			{"bad code", "ABCDE,995,2,"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := LoadCurrencies(strings.NewReader(tt.data))
				assert.ErrorIs(t, err, ErrMalformedData)
				assert.ErrorContains(t, err, "line 1")
			})
		}
	})

	t.Run("reports the offending line", func(t *testing.T) {
		data := "ABM,996,2,\n\n# comment\nbroken line\n"
		err := LoadCurrencies(strings.NewReader(data))
		require.Error(t, err)
		assert.ErrorContains(t, err, "line 4")

		// Records preceding the malformed one remain registered.
		_, err = GetCurrency("ABM")
		assert.NoError(t, err)
	})
}

func TestRegisterCurrency_Concurrent(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_, err := RegisterCurrency("ABN", 997, 2, nil)
				assert.NoError(t, err)
				_, err = GetCurrency("USD")
				assert.NoError(t, err)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
