// Package feed extracts FX quotes from JSON documents such as the responses
// of public rate APIs.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fxmatrix"
)

// Source tells where to find the rate of one pair in a JSON document.
type Source struct {
	Numerator   fxmatrix.Currency
	Denominator fxmatrix.Currency
	Path        string // JSONPath of the rate, e.g. $.rates.EUR
}

func (s Source) String() string { return fmt.Sprintf("%s/%s=%s", s.Numerator, s.Denominator, s.Path) }

// ParseSource parses a source written as NUM/DEN=path.
func ParseSource(s string) (Source, error) {
	pair, path, ok := strings.Cut(s, "=")
	if !ok || path == "" {
		return Source{}, fmt.Errorf("invalid source %q: want NUM/DEN=path", s)
	}
	num, den, ok := strings.Cut(pair, "/")
	if !ok {
		return Source{}, fmt.Errorf("invalid source %q: want NUM/DEN=path", s)
	}
	n, err := fxmatrix.ParseCurrency(num)
	if err != nil {
		return Source{}, fmt.Errorf("invalid source %q: %w", s, err)
	}
	d, err := fxmatrix.ParseCurrency(den)
	if err != nil {
		return Source{}, fmt.Errorf("invalid source %q: %w", s, err)
	}
	return Source{Numerator: n, Denominator: d, Path: path}, nil
}

// Extract evaluates every source against doc, a decoded JSON document, and
// returns one quote per source.
func Extract(doc any, sources []Source) ([]fxmatrix.Quote, error) {
	quotes := make([]fxmatrix.Quote, 0, len(sources))
	for _, s := range sources {
		rate, err := extract(doc, s.Path)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s/%s: %q %w", s.Numerator, s.Denominator, s.Path, err)
		}
		quotes = append(quotes, fxmatrix.Quote{Numerator: s.Numerator, Denominator: s.Denominator, Rate: rate})
	}
	return quotes, nil
}

func extract(doc any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return 0, err
	}
	// wildcard and filter paths return a list, keep the first answer
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return 0, fmt.Errorf("no value")
		}
		jval = jlist[0]
	}
	var rate float64
	switch v := jval.(type) {
	case float64:
		rate = v
	case string:
		if rate, err = strconv.ParseFloat(v, 64); err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
	default:
		return 0, fmt.Errorf("not a number: %v", jval)
	}
	if !(rate > 0) {
		return 0, fmt.Errorf("not a positive rate: %v", rate)
	}
	return rate, nil
}

// Fetch gets the JSON document at addr and extracts the quotes of sources
// from it. Each quote records addr as its source.
func Fetch(ctx context.Context, client *http.Client, addr string, sources []Source) ([]fxmatrix.Quote, error) {
	var doc any
	if err := jwget(ctx, client, addr, &doc); err != nil {
		return nil, err
	}
	quotes, err := Extract(doc, sources)
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		quotes[i].Source = addr
	}
	return quotes, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
