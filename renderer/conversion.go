package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fxmatrix"
	md "github.com/nao1215/markdown"
)

// ConversionMarkdown renders the conversion of amounts into target: one line
// per currency with the rate used, then the total.
func ConversionMarkdown(src fxmatrix.Source, amounts fxmatrix.Amounts, target fxmatrix.Currency) (string, error) {
	total, err := fxmatrix.Convert(src, amounts, target)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Conversion into %s", target))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Amount", "Rate", "Value"},
		Rows:   [][]string{},
	}
	for a := range amounts.All() {
		rate, err := src.FxRate(target, a.Currency())
		if err != nil {
			return "", err
		}
		value, err := fxmatrix.Convert(src, fxmatrix.NewAmounts(a), target)
		if err != nil {
			return "", err
		}
		table.Rows = append(table.Rows, []string{a.String(), FormatRate(rate), value.String()})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), "", md.Bold(total.String())})
	doc.Table(table)

	return doc.String(), nil
}
