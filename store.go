package fxmatrix

import "slices"

// unset marks a cell with no known rate. Rates are always > 0.
const unset = -1.0

// rateStore is a triangular table holding one cell per pair of indices p < q.
//
// cell(p, q) is the quantity of currency q equivalent to one unit of
// currency p ("q per p").
//
// Cells live in a flat arena laid out column by column: column q holds the q
// cells (0,q) .. (q-1,q) starting at q*(q-1)/2. The offset does not depend on
// the number of currencies, so growing the table only appends.
type rateStore struct {
	n     int // number of currencies
	cells []float64
}

// offset returns the arena position of the pair p < q.
func offset(p, q int) int { return q*(q-1)/2 + p }

// grow appends a new currency column whose cells are all unset and returns
// its index.
func (s *rateStore) grow() int {
	q := s.n
	for range q {
		s.cells = append(s.cells, unset)
	}
	s.n++
	return q
}

func (s *rateStore) cell(p, q int) float64       { return s.cells[offset(p, q)] }
func (s *rateStore) setCell(p, q int, v float64) { s.cells[offset(p, q)] = v }

// rate returns the rate of the currency at index a per unit of the currency at
// index b, following the orientation rule of the table. It returns false if
// the cell is unset. a and b must differ.
func (s *rateStore) rate(a, b int) (float64, bool) {
	if a > b {
		v := s.cell(b, a)
		return v, v != unset
	}
	v := s.cell(a, b)
	if v == unset {
		return v, false
	}
	return 1 / v, true
}

// setRate stores the rate of a per unit of b into the oriented cell.
func (s *rateStore) setRate(a, b int, rate float64) {
	if a > b {
		s.setCell(b, a, rate)
		return
	}
	s.setCell(a, b, 1/rate)
}

// rows returns the table as a ragged row-major array: row p holds the cells
// (p, p+1) .. (p, n-1).
func (s *rateStore) rows() [][]float64 {
	rows := make([][]float64, s.n)
	for p := range s.n {
		row := make([]float64, s.n-p-1)
		for q := p + 1; q < s.n; q++ {
			row[q-p-1] = s.cell(p, q)
		}
		rows[p] = row
	}
	return rows
}

func (s *rateStore) clone() rateStore {
	return rateStore{n: s.n, cells: slices.Clone(s.cells)}
}

func (s *rateStore) equal(o *rateStore) bool {
	return s.n == o.n && slices.Equal(s.cells, o.cells)
}
