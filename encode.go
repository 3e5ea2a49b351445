package fxmatrix

import (
	"encoding/json"
	"fmt"
	"math"
)

// blob is the persisted form of a matrix: the currency list and the raw
// triangular table.
type blob struct {
	Kind       string      `json:"kind"`
	Currencies []Currency  `json:"currencies"`
	Rates      [][]float64 `json:"rates"`
}

func marshalTable(kind Kind, t *table) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", kind.String())
	w.Append("currencies", t.index.currencies())
	w.Append("rates", t.store.rows())
	return w.MarshalJSON()
}

// decodeTable parses a blob into a table, checking the triangular shape.
// Unset cells are accepted only if allowUnset is true.
func decodeTable(data []byte, allowUnset bool) (Kind, table, error) {
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return KindForeign, table{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	kind, err := parseKind(b.Kind)
	if err != nil {
		return KindForeign, table{}, err
	}
	n := len(b.Currencies)
	if len(b.Rates) != n {
		return KindForeign, table{}, fmt.Errorf("%w: %d currencies but %d rate rows", ErrInvalidArgument, n, len(b.Rates))
	}
	t := newTable()
	for _, c := range b.Currencies {
		if c == "" {
			return KindForeign, table{}, fmt.Errorf("%w: empty currency", ErrInvalidArgument)
		}
		if _, dup := t.index.lookup(c); dup {
			return KindForeign, table{}, fmt.Errorf("%w: duplicate currency %s", ErrInvalidArgument, c)
		}
		t.index.add(c)
		t.store.grow()
	}
	for p, row := range b.Rates {
		if len(row) != n-p-1 {
			return KindForeign, table{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidArgument, p, len(row), n-p-1)
		}
		for j, v := range row {
			switch {
			case v == unset && allowUnset:
			case v > 0 && !math.IsInf(v, 1):
			default:
				return KindForeign, table{}, fmt.Errorf("%w: invalid rate %v at row %d cell %d", ErrInvalidArgument, v, p, j)
			}
			t.store.setCell(p, p+j+1, v)
		}
	}
	return kind, t, nil
}

func (m *Unchecked) MarshalJSON() ([]byte, error) { return marshalTable(KindUnchecked, &m.table) }

func (m *Unchecked) UnmarshalJSON(data []byte) error {
	_, t, err := decodeTable(data, true)
	if err != nil {
		return err
	}
	m.table = t
	return nil
}

func (m *Checked) MarshalJSON() ([]byte, error) { return marshalTable(KindChecked, &m.table) }

// UnmarshalJSON restores a checked matrix. Every cell holding a rate is
// marked supplied, which is what a checked matrix stores anyway. The
// tolerance is left unchanged.
func (m *Checked) UnmarshalJSON(data []byte) error {
	_, t, err := decodeTable(data, true)
	if err != nil {
		return err
	}
	m.table = t
	m.supplied = make([]bool, len(t.store.cells))
	for i, v := range t.store.cells {
		m.supplied[i] = v != unset
	}
	if m.tolerance == nil {
		m.tolerance = DefaultTolerance
	}
	return nil
}

func (s *Immutable) MarshalJSON() ([]byte, error) { return marshalTable(s.kind, &s.m.table) }

// UnmarshalImmutable rebuilds a snapshot from its JSON form. Every pair must
// hold a rate.
func UnmarshalImmutable(data []byte) (*Immutable, error) {
	kind, t, err := decodeTable(data, false)
	if err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &Immutable{kind: kind, m: Unchecked{table: t}}, nil
}
