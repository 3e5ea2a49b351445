package fxmatrix

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// number lists the types accepted by the amount constructors.
type number interface {
	float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T number](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Amount is an exact quantity of a single currency.
type Amount struct {
	value decimal.Decimal // as major unit value
	cur   Currency
}

// A returns an amount of value in currency.
func A[T number](value T, currency Currency) Amount {
	return Amount{value: newDecimal(value), cur: currency}
}

func (a Amount) Currency() Currency           { return a.cur }
func (a Amount) Value() decimal.Decimal       { return a.value }
func (a Amount) Float() float64               { return a.value.InexactFloat64() }
func (a Amount) IsZero() bool                 { return a.value.IsZero() }
func (a Amount) Equal(b Amount) bool          { return a.cur == b.cur && a.value.Equal(b.value) }
func (a Amount) Neg() Amount                  { return Amount{value: a.value.Neg(), cur: a.cur} }
func (a Amount) Mul(f decimal.Decimal) Amount { return Amount{value: a.value.Mul(f), cur: a.cur} }

// Add sums two amounts of the same currency. It panics on a currency mismatch.
func (a Amount) Add(b Amount) Amount {
	if a.cur != b.cur {
		panic("currency mismatch " + string(a.cur) + "!=" + string(b.cur))
	}
	return Amount{value: a.value.Add(b.value), cur: a.cur}
}

// String formats the amount with the currency symbol and minor unit digits
// when the currency is a known ISO code, "12.50 XYZ" otherwise.
func (a Amount) String() string {
	cur, ok := a.cur.info()
	if !ok {
		return a.value.StringFixed(2) + " " + string(a.cur)
	}
	dec := a.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (a Amount) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", a.cur)
	w.Append("amount", a.value)
	return w.MarshalJSON()
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var v struct {
		Currency Currency        `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Currency == "" {
		return fmt.Errorf("%w: amount without currency", ErrInvalidArgument)
	}
	a.cur, a.value = v.Currency, v.Amount
	return nil
}

// Amounts is a bag of amounts in several currencies. Amounts of the same
// currency are summed. The zero value is an empty bag; every operation
// returns a new bag.
type Amounts struct {
	values map[Currency]decimal.Decimal
}

// NewAmounts returns a bag holding the sum of the given amounts per currency.
func NewAmounts(amounts ...Amount) Amounts {
	b := Amounts{values: make(map[Currency]decimal.Decimal, len(amounts))}
	for _, a := range amounts {
		b.values[a.cur] = b.values[a.cur].Add(a.value)
	}
	return b
}

func (b Amounts) clone() Amounts {
	values := make(map[Currency]decimal.Decimal, len(b.values)+1)
	maps.Copy(values, b.values)
	return Amounts{values: values}
}

// Len returns the number of distinct currencies in the bag.
func (b Amounts) Len() int { return len(b.values) }

// Currencies returns the currencies of the bag in ascending order.
func (b Amounts) Currencies() []Currency {
	return slices.Sorted(maps.Keys(b.values))
}

// Amount returns the amount held in currency c.
func (b Amounts) Amount(c Currency) (Amount, bool) {
	v, ok := b.values[c]
	return Amount{value: v, cur: c}, ok
}

// All returns an iterator over the amounts in ascending currency order.
func (b Amounts) All() iter.Seq[Amount] {
	return func(yield func(Amount) bool) {
		for _, c := range b.Currencies() {
			if !yield(Amount{value: b.values[c], cur: c}) {
				return
			}
		}
	}
}

// Plus returns a bag with a added to the amount of its currency.
func (b Amounts) Plus(a Amount) Amounts {
	n := b.clone()
	n.values[a.cur] = n.values[a.cur].Add(a.value)
	return n
}

// PlusAll returns the sum of both bags.
func (b Amounts) PlusAll(o Amounts) Amounts {
	n := b.clone()
	for c, v := range o.values {
		n.values[c] = n.values[c].Add(v)
	}
	return n
}

// With returns a bag where the amount of a's currency is replaced by a.
func (b Amounts) With(a Amount) Amounts {
	n := b.clone()
	n.values[a.cur] = a.value
	return n
}

// Without returns a bag without currency c. It returns b itself when c is not
// in the bag.
func (b Amounts) Without(c Currency) Amounts {
	if _, ok := b.values[c]; !ok {
		return b
	}
	n := b.clone()
	delete(n.values, c)
	return n
}

// MultipliedBy returns a bag with every amount multiplied by factor.
func (b Amounts) MultipliedBy(factor decimal.Decimal) Amounts {
	n := b.clone()
	for c, v := range n.values {
		n.values[c] = v.Mul(factor)
	}
	return n
}

// Equal reports whether both bags hold the same amounts.
func (b Amounts) Equal(o Amounts) bool {
	if len(b.values) != len(o.values) {
		return false
	}
	for c, v := range b.values {
		w, ok := o.values[c]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

func (b Amounts) MarshalJSON() ([]byte, error) {
	list := make([]Amount, 0, len(b.values))
	for a := range b.All() {
		list = append(list, a)
	}
	return json.Marshal(list)
}

func (b *Amounts) UnmarshalJSON(data []byte) error {
	var list []Amount
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*b = NewAmounts(list...)
	return nil
}
