package fxmatrix

import "slices"

// table couples the currency index with its rate store.
type table struct {
	index currencyIndex
	store rateStore
}

func newTable() table { return table{index: newCurrencyIndex()} }

// place indexes the currencies of a pair, growing the store for the new ones.
// When both are new the denominator is appended first. created is true if at
// least one currency was new, in which case the pair cell is still unset.
func (t *table) place(numerator, denominator Currency) (ni, di int, created bool) {
	ni, nok := t.index.lookup(numerator)
	di, dok := t.index.lookup(denominator)
	if !dok {
		di = t.index.add(denominator)
		t.store.grow()
	}
	if !nok {
		ni = t.index.add(numerator)
		t.store.grow()
	}
	return ni, di, !nok || !dok
}

func (t *table) clone() table {
	return table{index: t.index.clone(), store: t.store.clone()}
}

func (t *table) equal(o *table) bool {
	return slices.Equal(t.index.list, o.index.list) && t.store.equal(&o.store)
}
