package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMoney(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			curr   string
			amount string
			mode   RoundingMode
			want   string
		}{
			{"USD", "25.95", RoundUnnecessary, "USD 25.95"},
			{"USD", "25.9", RoundUnnecessary, "USD 25.90"},
			{"USD", "25", RoundUnnecessary, "USD 25.00"},
			{"USD", "0.125", RoundHalfEven, "USD 0.12"},
			{"USD", "0.125", RoundHalfUp, "USD 0.13"},
			{"JPY", "2", RoundUnnecessary, "JPY 2"},
			{"JPY", "2.6", RoundFloor, "JPY 2"},
			{"OMR", "1.2345", RoundDown, "OMR 1.234"},
		}
		for _, tt := range tests {
			curr := MustGetCurrency(tt.curr)
			m, err := NewMoney(curr, decimal.RequireFromString(tt.amount), tt.mode)
			if err != nil {
				t.Errorf("NewMoney(%v, %v, %v) failed: %v", tt.curr, tt.amount, tt.mode, err)
				continue
			}
			if got := m.String(); got != tt.want {
				t.Errorf("NewMoney(%v, %v, %v) = %q, want %q", tt.curr, tt.amount, tt.mode, got, tt.want)
			}
			if m.Scale() != curr.DecimalPlaces() {
				t.Errorf("NewMoney(%v, %v, %v).Scale() = %v, want %v", tt.curr, tt.amount, tt.mode, m.Scale(), curr.DecimalPlaces())
			}
		}
	})

	t.Run("rounding necessary", func(t *testing.T) {
		usd := MustGetCurrency("USD")
		_, err := NewMoneyExact(usd, decimal.RequireFromString("25.951"))
		if !errors.Is(err, ErrRoundingNecessary) {
			t.Errorf("NewMoneyExact(USD, 25.951) error = %v, want ErrRoundingNecessary", err)
		}
	})

	t.Run("pseudo-currency", func(t *testing.T) {
		xau := MustGetCurrency("XAU")
		_, err := NewMoney(xau, decimal.New(1, 0), RoundDown)
		if !errors.Is(err, ErrPseudoCurrency) {
			t.Errorf("NewMoney(XAU, 1, DOWN) error = %v, want ErrPseudoCurrency", err)
		}
	})
}

func TestMoney_DefaultScaleSum(t *testing.T) {
	// The same sum that is exact at arbitrary precision fails when forced
	// into the currency scale without an explicit rounding choice.
	a, b := MustParseBigMoney("USD 25.95"), MustParseBigMoney("USD 3.001")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !sum.Same(MustParseBigMoney("USD 28.951")) {
		t.Fatalf("USD 25.95 + USD 3.001 = %q, want USD 28.951", sum)
	}

	_, err = MoneyFromBig(sum, RoundUnnecessary)
	if !errors.Is(err, ErrRoundingNecessary) {
		t.Errorf("MoneyFromBig(USD 28.951, UNNECESSARY) error = %v, want ErrRoundingNecessary", err)
	}

	m, err := MoneyFromBig(sum, RoundHalfEven)
	if err != nil {
		t.Fatalf("MoneyFromBig(USD 28.951, HALF_EVEN) failed: %v", err)
	}
	if got := m.String(); got != "USD 28.95" {
		t.Errorf("MoneyFromBig(USD 28.951, HALF_EVEN) = %q, want USD 28.95", got)
	}
}

func TestMoneyFromMinor(t *testing.T) {
	usd := MustGetCurrency("USD")
	m, err := MoneyFromMinor(usd, 2595)
	if err != nil {
		t.Fatalf("MoneyFromMinor(USD, 2595) failed: %v", err)
	}
	want, err := NewMoneyExact(usd, decimal.RequireFromString("25.95"))
	if err != nil {
		t.Fatalf("NewMoneyExact failed: %v", err)
	}
	if !m.Same(want) {
		t.Errorf("MoneyFromMinor(USD, 2595) = %q, want %q", m, want)
	}

	units, ok := m.MinorUnits()
	if !ok || units != 2595 {
		t.Errorf("MinorUnits() = (%v, %v), want (2595, true)", units, ok)
	}
}

func TestParseMoney(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, s := range []string{"USD 25.95", "USD 0.00", "USD -0.05", "JPY -3", "OMR 1.250"} {
			m := MustParseMoney(s)
			if got := m.String(); got != s {
				t.Errorf("ParseMoney(%q).String() = %q", s, got)
			}
			again := MustParseMoney(m.String())
			if !again.Same(m) {
				t.Errorf("parse(%q.String()) not structurally equal", s)
			}
		}
	})

	t.Run("short scale pads", func(t *testing.T) {
		m := MustParseMoney("USD 25.9")
		if got := m.String(); got != "USD 25.90" {
			t.Errorf("ParseMoney(\"USD 25.9\") = %q, want USD 25.90", got)
		}
	})

	t.Run("excess precision", func(t *testing.T) {
		_, err := ParseMoney("USD 25.951")
		if !errors.Is(err, ErrRoundingNecessary) {
			t.Errorf("ParseMoney(\"USD 25.951\") error = %v, want ErrRoundingNecessary", err)
		}
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add and subtract are exact", func(t *testing.T) {
		a, b := MustParseMoney("USD 25.95"), MustParseMoney("USD 3.05")
		sum, err := a.Add(b)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if got := sum.String(); got != "USD 29.00" {
			t.Errorf("USD 25.95 + USD 3.05 = %q, want USD 29.00", got)
		}
		back, err := sum.Sub(b)
		if err != nil {
			t.Fatalf("Sub failed: %v", err)
		}
		if !back.Same(a) {
			t.Errorf("(a + b) - b = %q, want %q", back, a)
		}
	})

	t.Run("multiply by integer", func(t *testing.T) {
		m := MustParseMoney("JPY 2")
		got, err := m.MulInt64(3)
		if err != nil {
			t.Fatalf("MulInt64 failed: %v", err)
		}
		if got.String() != "JPY 6" {
			t.Errorf("JPY 2 * 3 = %q, want JPY 6", got)
		}
	})

	t.Run("multiply by decimal rounds back", func(t *testing.T) {
		m := MustParseMoney("USD 1.15")
		got, err := m.Mul(decimal.RequireFromString("1.15"), RoundHalfUp)
		if err != nil {
			t.Fatalf("Mul failed: %v", err)
		}
		if got.String() != "USD 1.32" { // 1.3225 rounds half-up at the cent
			t.Errorf("USD 1.15 * 1.15 = %q, want USD 1.32", got)
		}
		_, err = m.Mul(decimal.RequireFromString("1.15"), RoundUnnecessary)
		if !errors.Is(err, ErrRoundingNecessary) {
			t.Errorf("Mul UNNECESSARY error = %v, want ErrRoundingNecessary", err)
		}
	})

	t.Run("divide", func(t *testing.T) {
		m := MustParseMoney("USD 10.00")
		got, err := m.DivInt64(3, RoundDown)
		if err != nil {
			t.Fatalf("DivInt64 failed: %v", err)
		}
		if got.String() != "USD 3.33" {
			t.Errorf("USD 10.00 / 3 = %q, want USD 3.33", got)
		}
		if _, err := m.DivInt64(0, RoundDown); !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("DivInt64(0) error = %v, want ErrDivisionByZero", err)
		}
	})

	t.Run("currency mismatch", func(t *testing.T) {
		a, b := MustParseMoney("USD 1.00"), MustParseMoney("EUR 1.00")
		if _, err := a.Add(b); !errors.Is(err, ErrCurrencyMismatch) {
			t.Errorf("USD.Add(EUR) error = %v, want ErrCurrencyMismatch", err)
		}
		if _, err := a.Cmp(b); !errors.Is(err, ErrCurrencyMismatch) {
			t.Errorf("USD.Cmp(EUR) error = %v, want ErrCurrencyMismatch", err)
		}
	})
}

func TestMoney_ConvertedTo(t *testing.T) {
	m := MustParseMoney("USD 10.00")
	eur := MustGetCurrency("EUR")
	got, err := m.ConvertedTo(eur, decimal.RequireFromString("0.92"), RoundDown)
	if err != nil {
		t.Fatalf("ConvertedTo(EUR, 0.92, DOWN) failed: %v", err)
	}
	if got.String() != "EUR 9.20" {
		t.Errorf("ConvertedTo(EUR, 0.92, DOWN) = %q, want EUR 9.20", got)
	}

	xau := MustGetCurrency("XAU")
	if _, err := m.ConvertedTo(xau, decimal.New(1, 0), RoundDown); !errors.Is(err, ErrPseudoCurrency) {
		t.Errorf("ConvertedTo(XAU, 1, DOWN) error = %v, want ErrPseudoCurrency", err)
	}
}

func TestMoney_Split(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s     string
			parts int
			want  []string
		}{
			{"USD 100.00", 3, []string{"USD 33.34", "USD 33.33", "USD 33.33"}},
			{"USD 0.05", 2, []string{"USD 0.03", "USD 0.02"}},
			{"USD -0.07", 3, []string{"USD -0.03", "USD -0.02", "USD -0.02"}},
			{"JPY 10", 4, []string{"JPY 3", "JPY 3", "JPY 2", "JPY 2"}},
			{"USD 9.99", 1, []string{"USD 9.99"}},
		}
		for _, tt := range tests {
			m := MustParseMoney(tt.s)
			parts, err := m.Split(tt.parts)
			if err != nil {
				t.Errorf("%q.Split(%v) failed: %v", tt.s, tt.parts, err)
				continue
			}
			sum, err := ZeroMoney(m.Currency())
			if err != nil {
				t.Fatalf("ZeroMoney failed: %v", err)
			}
			for i, p := range parts {
				if got := p.String(); got != tt.want[i] {
					t.Errorf("%q.Split(%v)[%v] = %q, want %q", tt.s, tt.parts, i, got, tt.want[i])
				}
				sum, err = sum.Add(p)
				if err != nil {
					t.Fatalf("Add failed: %v", err)
				}
			}
			if !sum.Same(m) {
				t.Errorf("%q.Split(%v) sums to %q", tt.s, tt.parts, sum)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		m := MustParseMoney("USD 1.00")
		for _, parts := range []int{0, -1} {
			if _, err := m.Split(parts); err == nil {
				t.Errorf("Split(%v) did not fail", parts)
			}
		}
	})
}

func TestMoney_MinMax(t *testing.T) {
	a, b := MustParseMoney("USD 1.00"), MustParseMoney("USD 2.00")
	if got, err := a.Min(b); err != nil || !got.Same(a) {
		t.Errorf("Min = %q, %v, want %q", got, err, a)
	}
	if got, err := a.Max(b); err != nil || !got.Same(b) {
		t.Errorf("Max = %q, %v, want %q", got, err, b)
	}
}

func TestMoney_Rounded(t *testing.T) {
	m := MustParseMoney("USD 2.55")
	got, err := m.Rounded(1, RoundHalfUp)
	if err != nil {
		t.Fatalf("Rounded failed: %v", err)
	}
	if got.String() != "USD 2.60" {
		t.Errorf("USD 2.55.Rounded(1, HALF_UP) = %q, want USD 2.60", got)
	}
	if got.Scale() != 2 {
		t.Errorf("Rounded changed the scale to %v", got.Scale())
	}
}
