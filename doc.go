// Package fxmatrix provides a sparse, incrementally built table of foreign
// exchange rates between an open set of currencies.
//
// The core functionalities include:
//   - Unchecked matrices: store exactly the rates they are told, never infer
//     and never validate.
//   - Checked matrices: keep track of which rates were supplied, infer any
//     other rate by composing supplied ones through pivot currencies, and
//     reject new rates that disagree with what is already inferable.
//   - Immutable snapshots: a fully materialized, read-only copy of every
//     pairwise rate, safe to share between goroutines.
//   - Conversion: summing a bag of amounts in several currencies into a single
//     target currency.
//
// A rate FxRate(num, den) is the quantity of num equivalent to one unit of
// den, so that FxRate(a, b) * FxRate(b, a) == 1 and
// FxRate(a, c) == FxRate(a, b) * FxRate(b, c).
//
// Mutable matrices are not safe for concurrent use. Confine them to a single
// goroutine while they are built, then share an Immutable snapshot instead.
package fxmatrix
