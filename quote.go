package fxmatrix

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Quote is one supplied rate: one unit of Denominator is worth Rate units of
// Numerator.
type Quote struct {
	Numerator   Currency `json:"numerator" yaml:"numerator"`
	Denominator Currency `json:"denominator" yaml:"denominator"`
	Rate        float64  `json:"rate" yaml:"rate"`
	Source      string   `json:"source,omitempty" yaml:"source,omitempty"` // where the rate came from, if known
}

func (q Quote) String() string { return fmt.Sprintf("%s/%s %v", q.Numerator, q.Denominator, q.Rate) }

// Reversed returns the same rate seen from the other side of the pair.
func (q Quote) Reversed() Quote {
	return Quote{Numerator: q.Denominator, Denominator: q.Numerator, Rate: 1 / q.Rate, Source: q.Source}
}

func (q Quote) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("numerator", q.Numerator)
	w.Append("denominator", q.Denominator)
	w.Append("rate", q.Rate)
	w.Optional("source", q.Source)
	return w.MarshalJSON()
}

// DecodeQuotes reads quotes from a stream of JSONL data, one quote per line.
// Empty lines are skipped.
func DecodeQuotes(r io.Reader) ([]Quote, error) {
	var quotes []Quote
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var q Quote
		if err := json.Unmarshal(lineBytes, &q); err != nil {
			return nil, fmt.Errorf("line %d: could not decode quote %q: %w", line, string(lineBytes), err)
		}
		quotes = append(quotes, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return quotes, nil
}

// EncodeQuote marshals a single quote to JSON and writes it to w, followed
// by a newline, in JSONL format.
func EncodeQuote(w io.Writer, q Quote) error {
	jsonData, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}
	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write quote: %w", err)
	}
	return nil
}

// EncodeQuotes writes all quotes in JSONL format.
func EncodeQuotes(w io.Writer, quotes []Quote) error {
	for _, q := range quotes {
		if err := EncodeQuote(w, q); err != nil {
			return err
		}
	}
	return nil
}

// DecodeQuotesYAML reads quotes from a YAML document of the form
//
//	quotes:
//	  - numerator: EUR
//	    denominator: USD
//	    rate: 1.2
func DecodeQuotesYAML(r io.Reader) ([]Quote, error) {
	var doc struct {
		Quotes []Quote `yaml:"quotes"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("could not decode yaml quotes: %w", err)
	}
	return doc.Quotes, nil
}

// Load adds every quote to g in order. It stops on the first quote g
// rejects.
func Load(g Grower, quotes []Quote) error {
	for i, q := range quotes {
		if err := g.AddCurrency(q.Numerator, q.Denominator, q.Rate); err != nil {
			return fmt.Errorf("quote %d (%s): %w", i+1, q, err)
		}
	}
	return nil
}

// Apply adds every quote to m in order. A quote for a pair that already has
// a direct rate replaces it.
func Apply(m Mutable, quotes []Quote) error {
	for i, q := range quotes {
		err := m.AddCurrency(q.Numerator, q.Denominator, q.Rate)
		if errors.Is(err, ErrAlreadyPresent) {
			err = m.UpdateRates(q.Numerator, q.Denominator, q.Rate)
		}
		if err != nil {
			return fmt.Errorf("quote %d (%s): %w", i+1, q, err)
		}
	}
	return nil
}

// Quotes returns one quote per cell of the table of m that holds a rate, row
// by row. Loading them into an empty Unchecked matrix gives a matrix with the
// same direct rates, possibly in another currency order.
func Quotes(m Matrix) []Quote {
	currencies := m.Currencies()
	var quotes []Quote
	for p, row := range m.Rates() {
		for j, v := range row {
			if v == unset {
				continue
			}
			q := p + j + 1
			quotes = append(quotes, Quote{Numerator: currencies[q], Denominator: currencies[p], Rate: v})
		}
	}
	return quotes
}
