package fxmatrix

import "slices"

// currencyIndex assigns each currency a position the first time it is seen.
// Positions never change and the sequence only grows.
type currencyIndex struct {
	list []Currency
	pos  map[Currency]int
}

func newCurrencyIndex() currencyIndex {
	return currencyIndex{pos: make(map[Currency]int)}
}

// add appends c and returns its new position. c must not be indexed yet.
func (x *currencyIndex) add(c Currency) int {
	i := len(x.list)
	x.list = append(x.list, c)
	x.pos[c] = i
	return i
}

// lookup returns the position of c.
func (x *currencyIndex) lookup(c Currency) (int, bool) {
	i, ok := x.pos[c]
	return i, ok
}

func (x *currencyIndex) len() int { return len(x.list) }

// currencies returns a copy of the indexed currencies in index order.
func (x *currencyIndex) currencies() []Currency { return slices.Clone(x.list) }

func (x *currencyIndex) clone() currencyIndex {
	c := currencyIndex{list: slices.Clone(x.list), pos: make(map[Currency]int, len(x.pos))}
	for k, v := range x.pos {
		c.pos[k] = v
	}
	return c
}
