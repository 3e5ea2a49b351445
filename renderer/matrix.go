package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/fxmatrix"
	md "github.com/nao1215/markdown"
)

// supplier is implemented by matrices that tell supplied rates from inferred
// ones.
type supplier interface {
	IsSupplied(a, b fxmatrix.Currency) bool
}

// FormatRate prints a rate with 6 significant digits.
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'g', 6, 64)
}

// MatrixMarkdown renders the full cross-rate table of m: the cell at row a
// and column b is FxRate(a, b), the price of one b in a. Pairs the matrix
// cannot resolve are shown as "-".
func MatrixMarkdown(m fxmatrix.Matrix) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("FX Matrix")
	currencies := m.Currencies()
	if len(currencies) == 0 {
		doc.PlainText("The matrix holds no currency.")
		return doc.String()
	}
	s, checked := m.(supplier)

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    []string{""},
		Rows:      [][]string{},
	}
	for _, c := range currencies {
		table.Alignment = append(table.Alignment, md.AlignRight)
		table.Header = append(table.Header, md.Bold(string(c)))
	}
	for _, a := range currencies {
		row := []string{md.Bold(string(a))}
		for _, b := range currencies {
			rate, err := m.FxRate(a, b)
			switch {
			case err != nil:
				row = append(row, "-")
			case checked && s.IsSupplied(a, b):
				row = append(row, md.Bold(FormatRate(rate)))
			default:
				row = append(row, FormatRate(rate))
			}
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	if checked {
		doc.PlainText("Rates in bold were supplied, the others are inferred.")
	}
	doc.PlainText(fmt.Sprintf("%d currencies.", len(currencies)))
	return doc.String()
}
