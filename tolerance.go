package fxmatrix

import "github.com/shopspring/decimal"

// Tolerance decides whether a newly supplied rate agrees with the rate
// already inferable for the same pair.
type Tolerance interface {
	Consistent(numerator, denominator Currency, supplied, existing float64) bool
}

// DecimalTolerance compares both rates rounded to a number of decimal places.
// Pairs whose denominator is JPY use JPYPlaces, all others use Places.
type DecimalTolerance struct {
	Places    int32
	JPYPlaces int32
}

// DefaultTolerance matches rates to 4 decimal places, or 2 when the
// denominator is JPY.
var DefaultTolerance = DecimalTolerance{Places: 4, JPYPlaces: 2}

func (t DecimalTolerance) Consistent(numerator, denominator Currency, supplied, existing float64) bool {
	places := t.Places
	if denominator == "JPY" {
		places = t.JPYPlaces
	}
	a := decimal.NewFromFloat(supplied).Round(places)
	b := decimal.NewFromFloat(existing).Round(places)
	return a.Equal(b)
}

// legacyTolerance truncates both rates to 2 decimal places whatever the
// pair, which is a much looser check than DefaultTolerance.
type legacyTolerance struct{}

func (legacyTolerance) Consistent(_, _ Currency, supplied, existing float64) bool {
	return int64(supplied*100) == int64(existing*100)
}
