package fxmatrix

import "errors"

// Sentinel errors reported by matrices. They are always wrapped with the
// operation context; test them with errors.Is.
var (
	// ErrInvalidArgument is returned for an empty currency, a non positive
	// rate, or equal numerator and denominator on a mutating call.
	ErrInvalidArgument = errors.New("fxmatrix: invalid argument")

	// ErrUnknownCurrency is returned when a currency was never added.
	ErrUnknownCurrency = errors.New("fxmatrix: unknown currency")

	// ErrAlreadyPresent is returned when AddCurrency targets a pair that
	// already has a rate (Unchecked) or a supplied rate (Checked).
	ErrAlreadyPresent = errors.New("fxmatrix: rate already present")

	// ErrNoRateAvailable is returned when a rate cannot be resolved, directly
	// or by inference.
	ErrNoRateAvailable = errors.New("fxmatrix: no rate available")

	// ErrInconsistentRate is returned by Checked matrices when a new rate
	// disagrees with the rate already inferable for the pair.
	ErrInconsistentRate = errors.New("fxmatrix: inconsistent rate")

	// ErrImmutable is returned by every mutating call on an Immutable.
	ErrImmutable = errors.New("fxmatrix: immutable matrix")
)
