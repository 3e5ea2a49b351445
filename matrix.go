package fxmatrix

import (
	"fmt"
	"math"
)

// Source is the minimal read surface a snapshot can be built from.
type Source interface {
	// Currencies returns the currencies in index order.
	Currencies() []Currency
	// FxRate returns the quantity of numerator equivalent to one unit of
	// denominator.
	FxRate(numerator, denominator Currency) (float64, error)
}

// Matrix is the read surface shared by every matrix flavor.
type Matrix interface {
	Source
	// ContainsPair reports whether FxRate(a, b) would succeed.
	ContainsPair(a, b Currency) bool
	// Rates returns a copy of the raw triangular table: row p holds the cells
	// (p, p+1) .. (p, n-1), -1 marking a cell with no rate.
	Rates() [][]float64
	NumberOfCurrencies() int
	// Convert sums amounts into the target currency.
	Convert(amounts Amounts, target Currency) (Amount, error)
}

// Grower is implemented by matrices that accept new rates.
type Grower interface {
	AddCurrency(numerator, denominator Currency, rate float64) error
}

// Updater is implemented by matrices whose rates can be amended.
type Updater interface {
	UpdateRates(numerator, denominator Currency, rate float64) error
}

// Mutable is a matrix that can be grown and updated.
type Mutable interface {
	Matrix
	Grower
	Updater
}

var (
	_ Mutable = (*Unchecked)(nil)
	_ Mutable = (*Checked)(nil)
	_ Mutable = (*Immutable)(nil)
)

// checkRate validates the arguments of a mutating call.
func checkRate(numerator, denominator Currency, rate float64) error {
	if numerator == "" || denominator == "" {
		return fmt.Errorf("%w: empty currency", ErrInvalidArgument)
	}
	if numerator == denominator {
		return fmt.Errorf("%w: cannot have equal numerator and denominator currency: %s", ErrInvalidArgument, numerator)
	}
	if !(rate > 0) || math.IsInf(rate, 1) {
		return fmt.Errorf("%w: FX rate must be a finite number greater than zero: have %v", ErrInvalidArgument, rate)
	}
	return nil
}

// checkPair validates the arguments of a query.
func checkPair(numerator, denominator Currency) error {
	if numerator == "" || denominator == "" {
		return fmt.Errorf("%w: empty currency", ErrInvalidArgument)
	}
	return nil
}

// lookupPair returns the indices of both currencies.
func lookupPair(x *currencyIndex, numerator, denominator Currency) (int, int, error) {
	ni, ok := x.lookup(numerator)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s not found in FX matrix", ErrUnknownCurrency, numerator)
	}
	di, ok := x.lookup(denominator)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s not found in FX matrix", ErrUnknownCurrency, denominator)
	}
	return ni, di, nil
}
