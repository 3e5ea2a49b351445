package fxmatrix

import "fmt"

// Unchecked is a mutable matrix that stores exactly the rates it is told.
//
// It never infers a cross rate and never validates consistency: FxRate only
// answers for pairs that were added directly.
type Unchecked struct {
	table
}

// NewUnchecked returns an empty matrix.
func NewUnchecked() *Unchecked {
	return &Unchecked{table: newTable()}
}

// AddCurrency records that one unit of denominator is worth rate units of
// numerator. Unknown currencies are appended to the matrix. It fails with
// ErrAlreadyPresent if the pair already holds a rate, in either orientation.
func (m *Unchecked) AddCurrency(numerator, denominator Currency, rate float64) error {
	if err := checkRate(numerator, denominator, rate); err != nil {
		return fmt.Errorf("add %s/%s: %w", numerator, denominator, err)
	}
	if ni, di, err := lookupPair(&m.index, numerator, denominator); err == nil {
		if _, ok := m.store.rate(ni, di); ok {
			return fmt.Errorf("add %s/%s: %w", numerator, denominator, ErrAlreadyPresent)
		}
	}
	ni, di, _ := m.place(numerator, denominator)
	m.store.setRate(ni, di, rate)
	return nil
}

// UpdateRates overwrites the rate of a pair whose currencies are both known.
func (m *Unchecked) UpdateRates(numerator, denominator Currency, rate float64) error {
	if err := checkRate(numerator, denominator, rate); err != nil {
		return fmt.Errorf("update %s/%s: %w", numerator, denominator, err)
	}
	ni, di, err := lookupPair(&m.index, numerator, denominator)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", numerator, denominator, err)
	}
	m.store.setRate(ni, di, rate)
	return nil
}

// FxRate returns the quantity of numerator equivalent to one unit of
// denominator, as it was added. It is 1 for equal currencies.
func (m *Unchecked) FxRate(numerator, denominator Currency) (float64, error) {
	if err := checkPair(numerator, denominator); err != nil {
		return 0, err
	}
	if numerator == denominator {
		return 1, nil
	}
	ni, di, err := lookupPair(&m.index, numerator, denominator)
	if err != nil {
		return 0, err
	}
	rate, ok := m.store.rate(ni, di)
	if !ok {
		return 0, fmt.Errorf("%w: no rate for %s/%s", ErrNoRateAvailable, numerator, denominator)
	}
	return rate, nil
}

// ContainsPair reports whether both currencies are known and a rate was
// added for the pair. A known currency always contains itself.
func (m *Unchecked) ContainsPair(a, b Currency) bool {
	ai, aok := m.index.lookup(a)
	bi, bok := m.index.lookup(b)
	if !aok || !bok {
		return false
	}
	if ai == bi {
		return true
	}
	_, ok := m.store.rate(ai, bi)
	return ok
}

// Currencies returns the currencies in the order they were first added.
func (m *Unchecked) Currencies() []Currency { return m.index.currencies() }

// Rates returns a copy of the raw triangular table.
func (m *Unchecked) Rates() [][]float64 { return m.store.rows() }

func (m *Unchecked) NumberOfCurrencies() int { return m.index.len() }

// Convert sums amounts into the target currency using the rates as added.
func (m *Unchecked) Convert(amounts Amounts, target Currency) (Amount, error) {
	return Convert(m, amounts, target)
}

// Immutable returns a snapshot of m. It fails if any pair has no rate.
func (m *Unchecked) Immutable() (*Immutable, error) { return Freeze(m) }

// Equal reports whether both matrices hold the same currencies in the same
// order and the same table.
func (m *Unchecked) Equal(o *Unchecked) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.table.equal(&o.table)
}
