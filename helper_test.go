package fxmatrix

import (
	"math"
	"testing"
)

const eps = 1e-12

// Q is a helper for test to create a quote from const.
func Q(numerator, denominator Currency, rate float64) Quote {
	return Quote{Numerator: numerator, Denominator: denominator, Rate: rate}
}

func near(a, b float64) bool { return math.Abs(a-b) <= eps*math.Max(1, math.Abs(b)) }

// mustLoad adds the quotes to g and fails the test on the first error.
func mustLoad(t *testing.T, g Grower, quotes ...Quote) {
	t.Helper()
	if err := Load(g, quotes); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func assertRates(t *testing.T, got, want [][]float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(Rates()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Errorf("len(Rates()[%d]) = %d, want %d", i, len(got[i]), len(want[i]))
			continue
		}
		for j := range want[i] {
			if !near(got[i][j], want[i][j]) {
				t.Errorf("Rates()[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func assertCurrencies(t *testing.T, got []Currency, want ...Currency) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Currencies() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Currencies() = %v, want %v", got, want)
		}
	}
}

func assertFxRate(t *testing.T, m Source, numerator, denominator Currency, want float64) {
	t.Helper()
	got, err := m.FxRate(numerator, denominator)
	if err != nil {
		t.Errorf("FxRate(%s, %s) error = %v", numerator, denominator, err)
		return
	}
	if !near(got, want) {
		t.Errorf("FxRate(%s, %s) = %v, want %v", numerator, denominator, got, want)
	}
}
