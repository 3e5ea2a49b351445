package fxmatrix

import (
	"fmt"
	"regexp"

	"github.com/Rhymond/go-money"
)

// Currency identifies a monetary unit, typically by its ISO 4217 code.
//
// The matrix treats it as an opaque comparable value: any non-empty string is
// accepted. Use ParseCurrency on untrusted input.
type Currency string

func (c Currency) String() string { return string(c) }

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ParseCurrency validates that s is a known ISO 4217 currency code.
func ParseCurrency(s string) (Currency, error) {
	if !currencyCodeRegex.MatchString(s) {
		return "", fmt.Errorf("%w: currency must be 3 uppercase letters, got %q", ErrInvalidArgument, s)
	}
	if money.GetCurrency(s) == nil {
		return "", fmt.Errorf("%w: unknown currency code %q", ErrInvalidArgument, s)
	}
	return Currency(s), nil
}

// Fraction returns the number of minor unit digits of the currency (2 for
// USD, 0 for JPY). Unknown codes default to 2.
func (c Currency) Fraction() int {
	if cur, ok := c.info(); ok {
		return cur.Fraction
	}
	return 2
}

// info returns the ISO description of c, if it is a known code.
func (c Currency) info() (*money.Currency, bool) {
	cur := money.GetCurrency(string(c))
	return cur, cur != nil
}
