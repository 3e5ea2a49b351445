package fxmatrix

import "fmt"

// Kind tells which flavor of matrix a snapshot was built from.
type Kind int

const (
	KindForeign Kind = iota
	KindUnchecked
	KindChecked
)

func (k Kind) String() string {
	switch k {
	case KindUnchecked:
		return "unchecked"
	case KindChecked:
		return "checked"
	default:
		return "foreign"
	}
}

func parseKind(s string) (Kind, error) {
	switch s {
	case "unchecked":
		return KindUnchecked, nil
	case "checked":
		return KindChecked, nil
	case "foreign", "":
		return KindForeign, nil
	}
	return KindForeign, fmt.Errorf("%w: unknown matrix kind %q", ErrInvalidArgument, s)
}

// Immutable is a read-only matrix holding a rate for every pair of its
// currencies.
//
// It owns a private copy of its data: mutating the source afterwards has no
// effect on it. Having no internal state changes after construction, it is
// safe for concurrent use.
type Immutable struct {
	kind Kind
	m    Unchecked
}

// Freeze materializes every pairwise rate of src into a new snapshot, keeping
// the currency order of src. It fails with the error of the first pair src
// cannot resolve: a snapshot is never partially resolved.
func Freeze(src Source) (*Immutable, error) {
	snap := &Immutable{kind: kindOf(src), m: Unchecked{table: newTable()}}
	currencies := src.Currencies()
	if len(currencies) == 1 {
		snap.m.index.add(currencies[0])
		snap.m.store.grow()
	}
	for i, a := range currencies {
		for _, b := range currencies[i+1:] {
			rate, err := src.FxRate(b, a)
			if err != nil {
				return nil, fmt.Errorf("freeze %s/%s: %w", b, a, err)
			}
			if err := snap.m.AddCurrency(b, a, rate); err != nil {
				return nil, fmt.Errorf("freeze: %w", err)
			}
		}
	}
	return snap, nil
}

func kindOf(src Source) Kind {
	switch s := src.(type) {
	case *Unchecked:
		return KindUnchecked
	case *Checked:
		return KindChecked
	case *Immutable:
		return s.kind
	}
	return KindForeign
}

// Kind returns the flavor of the matrix the snapshot was built from.
func (s *Immutable) Kind() Kind { return s.kind }

// AddCurrency always fails with ErrImmutable.
func (s *Immutable) AddCurrency(numerator, denominator Currency, _ float64) error {
	return fmt.Errorf("add %s/%s: %w", numerator, denominator, ErrImmutable)
}

// UpdateRates always fails with ErrImmutable.
func (s *Immutable) UpdateRates(numerator, denominator Currency, _ float64) error {
	return fmt.Errorf("update %s/%s: %w", numerator, denominator, ErrImmutable)
}

func (s *Immutable) FxRate(numerator, denominator Currency) (float64, error) {
	return s.m.FxRate(numerator, denominator)
}

func (s *Immutable) ContainsPair(a, b Currency) bool { return s.m.ContainsPair(a, b) }
func (s *Immutable) Currencies() []Currency          { return s.m.Currencies() }
func (s *Immutable) Rates() [][]float64              { return s.m.Rates() }
func (s *Immutable) NumberOfCurrencies() int         { return s.m.NumberOfCurrencies() }

func (s *Immutable) Convert(amounts Amounts, target Currency) (Amount, error) {
	return Convert(s, amounts, target)
}

// Equal reports whether both snapshots come from the same flavor and hold
// the same currencies and rates.
func (s *Immutable) Equal(o *Immutable) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.kind == o.kind && s.m.Equal(&o.m)
}
