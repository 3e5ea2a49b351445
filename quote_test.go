package fxmatrix

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDecodeQuotes(t *testing.T) {
	input := `{"numerator":"EUR","denominator":"USD","rate":1.2}

{"numerator":"CHF","denominator":"USD","rate":0.5,"source":"ecb"}
`
	quotes, err := DecodeQuotes(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeQuotes() error = %v", err)
	}
	want := []Quote{Q("EUR", "USD", 1.2), {Numerator: "CHF", Denominator: "USD", Rate: 0.5, Source: "ecb"}}
	if len(quotes) != len(want) {
		t.Fatalf("DecodeQuotes() = %v, want %v", quotes, want)
	}
	for i := range want {
		if quotes[i] != want[i] {
			t.Errorf("DecodeQuotes()[%d] = %+v, want %+v", i, quotes[i], want[i])
		}
	}

	_, err = DecodeQuotes(strings.NewReader("{\"numerator\":\"EUR\"}\nnot json\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("DecodeQuotes() error = %v, want an error on line 2", err)
	}
}

func TestEncodeQuotes(t *testing.T) {
	var buf bytes.Buffer
	quotes := []Quote{Q("EUR", "USD", 1.2), {Numerator: "JPY", Denominator: "USD", Rate: 150, Source: "ecb"}}
	if err := EncodeQuotes(&buf, quotes); err != nil {
		t.Fatalf("EncodeQuotes() error = %v", err)
	}
	want := `{"numerator":"EUR","denominator":"USD","rate":1.2}
{"numerator":"JPY","denominator":"USD","rate":150,"source":"ecb"}
`
	if got := buf.String(); got != want {
		t.Errorf("EncodeQuotes() = %q, want %q", got, want)
	}
}

func TestDecodeQuotesYAML(t *testing.T) {
	input := `quotes:
  - numerator: USD
    denominator: EUR
    rate: 1.1
  - numerator: EUR
    denominator: GBP
    rate: 1.15
    source: manual
`
	quotes, err := DecodeQuotesYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeQuotesYAML() error = %v", err)
	}
	if len(quotes) != 2 || quotes[1].Source != "manual" || quotes[0] != Q("USD", "EUR", 1.1) {
		t.Errorf("DecodeQuotesYAML() = %+v", quotes)
	}

	if _, err := DecodeQuotesYAML(strings.NewReader("quotes:\n  - numerator: USD\n    price: 1\n")); err == nil {
		t.Error("DecodeQuotesYAML() with an unknown field error = nil")
	}
	if quotes, err := DecodeQuotesYAML(strings.NewReader("")); err != nil || len(quotes) != 0 {
		t.Errorf("DecodeQuotesYAML(\"\") = %v, %v", quotes, err)
	}
}

func TestLoad(t *testing.T) {
	m := NewChecked()
	err := Load(m, []Quote{Q("USD", "EUR", 1.1), Q("EUR", "GBP", 1.15), Q("USD", "GBP", 2)})
	if !errors.Is(err, ErrInconsistentRate) {
		t.Fatalf("Load() error = %v, want %v", err, ErrInconsistentRate)
	}
	if !strings.Contains(err.Error(), "quote 3") {
		t.Errorf("Load() error = %v, want it to name quote 3", err)
	}
	// quotes before the failing one are kept
	if got := m.NumberOfCurrencies(); got != 3 {
		t.Errorf("NumberOfCurrencies() = %d, want 3", got)
	}
}

func TestApply(t *testing.T) {
	m := NewUnchecked()
	quotes := []Quote{Q("USD", "EUR", 1.1), Q("EUR", "GBP", 1.15), Q("USD", "EUR", 1.2), Q("GBP", "EUR", 0.8)}
	if err := Apply(m, quotes); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assertCurrencies(t, m.Currencies(), "EUR", "USD", "GBP")
	assertFxRate(t, m, "USD", "EUR", 1.2)
	assertFxRate(t, m, "EUR", "GBP", 1.25)

	c := NewChecked()
	err := Apply(c, []Quote{Q("USD", "EUR", 1.1), Q("USD", "EUR", 1.5)})
	if !errors.Is(err, ErrInconsistentRate) {
		t.Errorf("Apply() error = %v, want %v", err, ErrInconsistentRate)
	}
}

func TestQuotes(t *testing.T) {
	m := NewUnchecked()
	mustLoad(t, m, Q("EUR", "USD", 1.2), Q("CHF", "USD", 0.5), Q("EUR", "GBP", 1.3))

	quotes := Quotes(m)
	want := []Quote{Q("EUR", "USD", 1.2), Q("CHF", "USD", 0.5), Q("GBP", "EUR", 1/1.3)}
	if len(quotes) != len(want) {
		t.Fatalf("Quotes() = %v, want %v", quotes, want)
	}
	for i := range want {
		if quotes[i].Numerator != want[i].Numerator || quotes[i].Denominator != want[i].Denominator || !near(quotes[i].Rate, want[i].Rate) {
			t.Errorf("Quotes()[%d] = %v, want %v", i, quotes[i], want[i])
		}
	}

	back := NewUnchecked()
	mustLoad(t, back, quotes...)
	for _, q := range want {
		assertFxRate(t, back, q.Numerator, q.Denominator, q.Rate)
	}
}

func TestQuote_Reversed(t *testing.T) {
	q := Quote{Numerator: "EUR", Denominator: "USD", Rate: 1.25, Source: "ecb"}
	want := Quote{Numerator: "USD", Denominator: "EUR", Rate: 0.8, Source: "ecb"}
	if got := q.Reversed(); got != want {
		t.Errorf("Reversed() = %+v, want %+v", got, want)
	}
}
