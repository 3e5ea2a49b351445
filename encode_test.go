package fxmatrix

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMarshalJSON(t *testing.T) {
	m := NewUnchecked()
	mustLoad(t, m, Q("EUR", "USD", 1.25), Q("CHF", "GBP", 2))

	got, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"kind":"unchecked","currencies":["USD","EUR","GBP","CHF"],"rates":[[1.25,-1,-1],[-1,-1],[2],[]]}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	var back Unchecked
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(m) {
		t.Errorf("Unmarshal() = %v, want %v", back.Rates(), m.Rates())
	}
}

func TestChecked_UnmarshalJSON(t *testing.T) {
	m := triangle(t)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	back := NewChecked()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(m) {
		t.Errorf("Unmarshal() = %v, want %v", back.Rates(), m.Rates())
	}
	// supplied flags are restored, so inference keeps working
	assertFxRate(t, back, "USD", "GBP", 1.1*1.15)
	if err := back.AddCurrency("USD", "GBP", 2); !errors.Is(err, ErrInconsistentRate) {
		t.Errorf("AddCurrency() error = %v, want %v", err, ErrInconsistentRate)
	}
}

func TestUnmarshalImmutable(t *testing.T) {
	snap, err := triangle(t).Immutable()
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	back, err := UnmarshalImmutable(data)
	if err != nil {
		t.Fatalf("UnmarshalImmutable() error = %v", err)
	}
	if !back.Equal(snap) {
		t.Errorf("UnmarshalImmutable() = %v, want %v", back.Rates(), snap.Rates())
	}
	if back.Kind() != KindChecked {
		t.Errorf("Kind() = %v, want %v", back.Kind(), KindChecked)
	}
}

func TestUnmarshalImmutable_Errors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"unknown kind", `{"kind":"sparse","currencies":[],"rates":[]}`},
		{"missing row", `{"currencies":["USD","EUR"],"rates":[[1.2]]}`},
		{"short row", `{"currencies":["USD","EUR","GBP"],"rates":[[1.2],[1.1],[]]}`},
		{"duplicate currency", `{"currencies":["USD","USD"],"rates":[[1],[]]}`},
		{"empty currency", `{"currencies":["USD",""],"rates":[[1],[]]}`},
		{"negative rate", `{"currencies":["USD","EUR"],"rates":[[-2],[]]}`},
		{"zero rate", `{"currencies":["USD","EUR"],"rates":[[0],[]]}`},
		{"unset rate", `{"currencies":["USD","EUR"],"rates":[[-1],[]]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := UnmarshalImmutable([]byte(tc.data)); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("UnmarshalImmutable(%s) error = %v, want %v", tc.data, err, ErrInvalidArgument)
			}
		})
	}

	// mutable matrices accept unset cells
	var m Unchecked
	if err := json.Unmarshal([]byte(`{"currencies":["USD","EUR"],"rates":[[-1],[]]}`), &m); err != nil {
		t.Errorf("Unmarshal() error = %v", err)
	}
}
