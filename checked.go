package fxmatrix

import "fmt"

// Checked is a mutable matrix that infers cross rates and validates new
// rates against them.
//
// Every cell carries a supplied flag telling whether its rate was given
// explicitly. Inferred rates are never stored: a query that misses a
// supplied cell searches the supplied cells for a path of pivot currencies
// and composes their rates.
type Checked struct {
	table
	supplied  []bool // same layout as store.cells
	tolerance Tolerance
}

// Option configures a Checked matrix.
type Option func(*Checked)

// WithTolerance sets the policy used to compare a supplied rate with the
// rate already inferable for the pair.
func WithTolerance(t Tolerance) Option {
	return func(m *Checked) {
		if t != nil {
			m.tolerance = t
		}
	}
}

// WithLegacyTolerance compares rates truncated to 2 decimal places for every
// pair, JPY or not.
func WithLegacyTolerance() Option { return WithTolerance(legacyTolerance{}) }

// NewChecked returns an empty matrix using DefaultTolerance unless an option
// says otherwise.
func NewChecked(opts ...Option) *Checked {
	m := &Checked{table: newTable(), tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// isSupplied reports whether the cell of the pair a != b was given
// explicitly.
func (m *Checked) isSupplied(a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return m.supplied[offset(a, b)]
}

// supply stores the rate of a per unit of b and marks it supplied.
func (m *Checked) supply(a, b int, rate float64) {
	m.store.setRate(a, b, rate)
	if a > b {
		a, b = b, a
	}
	m.supplied[offset(a, b)] = true
}

// syncFlags extends the supplied flags with false placeholders after the
// store has grown.
func (m *Checked) syncFlags() {
	if missing := len(m.store.cells) - len(m.supplied); missing > 0 {
		m.supplied = append(m.supplied, make([]bool, missing)...)
	}
}

// resolve returns the rate of a per unit of b, directly when supplied and by
// composing supplied rates otherwise.
func (m *Checked) resolve(a, b int) (float64, bool) {
	if m.isSupplied(a, b) {
		return m.store.rate(a, b)
	}
	return newWalker(m).resolve(a, b)
}

// AddCurrency records that one unit of denominator is worth rate units of
// numerator.
//
// If the pair is already known it fails with ErrAlreadyPresent when its rate
// was supplied, and with ErrInconsistentRate when rate disagrees with the
// rate currently inferable for the pair. A pair with no inferable rate
// accepts any rate.
func (m *Checked) AddCurrency(numerator, denominator Currency, rate float64) error {
	if err := checkRate(numerator, denominator, rate); err != nil {
		return fmt.Errorf("add %s/%s: %w", numerator, denominator, err)
	}
	if ni, di, err := lookupPair(&m.index, numerator, denominator); err == nil {
		if m.isSupplied(ni, di) {
			return fmt.Errorf("add %s/%s: %w", numerator, denominator, ErrAlreadyPresent)
		}
		if err := m.checkConsistent(ni, di, numerator, denominator, rate); err != nil {
			return fmt.Errorf("add %s/%s: %w", numerator, denominator, err)
		}
		m.supply(ni, di, rate)
		return nil
	}
	ni, di, _ := m.place(numerator, denominator)
	m.syncFlags()
	m.supply(ni, di, rate)
	return nil
}

// UpdateRates overwrites the rate of a pair whose currencies are both known.
// The new rate must agree with the rate currently resolved for the pair,
// directly or by inference.
func (m *Checked) UpdateRates(numerator, denominator Currency, rate float64) error {
	if err := checkRate(numerator, denominator, rate); err != nil {
		return fmt.Errorf("update %s/%s: %w", numerator, denominator, err)
	}
	ni, di, err := lookupPair(&m.index, numerator, denominator)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", numerator, denominator, err)
	}
	if err := m.checkConsistent(ni, di, numerator, denominator, rate); err != nil {
		return fmt.Errorf("update %s/%s: %w", numerator, denominator, err)
	}
	m.supply(ni, di, rate)
	return nil
}

func (m *Checked) checkConsistent(ni, di int, numerator, denominator Currency, rate float64) error {
	existing, ok := m.resolve(ni, di)
	if !ok {
		return nil
	}
	if !m.tolerance.Consistent(numerator, denominator, rate, existing) {
		return fmt.Errorf("%w: implied FX rate for %s/%s %v was inconsistent with the provided rate %v",
			ErrInconsistentRate, numerator, denominator, existing, rate)
	}
	return nil
}

// FxRate returns the quantity of numerator equivalent to one unit of
// denominator. It is 1 for equal currencies.
func (m *Checked) FxRate(numerator, denominator Currency) (float64, error) {
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
	rate, ok := m.resolve(ni, di)
	if !ok {
		return 0, fmt.Errorf("%w: could not find provided rates that produce %s/%s", ErrNoRateAvailable, numerator, denominator)
	}
	return rate, nil
}

// IsSupplied reports whether the rate of the pair was given explicitly rather
// than being inferred or missing.
func (m *Checked) IsSupplied(a, b Currency) bool {
	ai, bi, err := lookupPair(&m.index, a, b)
	if err != nil || ai == bi {
		return false
	}
	return m.isSupplied(ai, bi)
}

// ContainsPair reports whether FxRate(a, b) succeeds.
func (m *Checked) ContainsPair(a, b Currency) bool {
	_, err := m.FxRate(a, b)
	return err == nil
}

// Currencies returns the currencies in the order they were first added.
func (m *Checked) Currencies() []Currency { return m.index.currencies() }

// Rates returns a copy of the raw triangular table. Cells that were not
// supplied hold -1: inferred rates are not part of it.
func (m *Checked) Rates() [][]float64 { return m.store.rows() }

func (m *Checked) NumberOfCurrencies() int { return m.index.len() }

// Convert sums amounts into the target currency, inferring cross rates as
// needed.
func (m *Checked) Convert(amounts Amounts, target Currency) (Amount, error) {
	return Convert(m, amounts, target)
}

// Immutable returns a snapshot of m with every cross rate materialized. It
// fails if some pair cannot be inferred.
func (m *Checked) Immutable() (*Immutable, error) { return Freeze(m) }

// Equal reports whether both matrices hold the same currencies in the same
// order and the same table. Supplied flags are not compared: they can be
// derived from the table.
func (m *Checked) Equal(o *Checked) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.table.equal(&o.table)
}
