package fxmatrix

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Convert sums every amount of the bag into target, each multiplied by
// FxRate(target, currency). Sums are exact decimals; rates are taken as the
// shortest decimal representation of their float value.
//
// It fails on the first currency, in ascending order, that has no rate into
// target, returning no partial sum. An empty bag converts to zero.
func Convert(src Source, amounts Amounts, target Currency) (Amount, error) {
	if target == "" {
		return Amount{}, fmt.Errorf("convert: %w: empty target currency", ErrInvalidArgument)
	}
	total := decimal.Zero
	for a := range amounts.All() {
		rate, err := src.FxRate(target, a.Currency())
		if err != nil {
			return Amount{}, fmt.Errorf("convert %s into %s: %w", a.Currency(), target, err)
		}
		total = total.Add(a.Value().Mul(decimal.NewFromFloat(rate)))
	}
	return Amount{value: total, cur: target}, nil
}
