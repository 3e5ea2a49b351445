package cmd

import (
	"os"

	"github.com/etnz/fxmatrix"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictCurrencies completes with the currencies of the rates file named by
// the environment, flags are not parsed yet when completing.
var predictCurrencies = complete.PredictFunc(func(prefix string) []string {
	f, err := os.Open(envString(EnvRatesFile, "rates.jsonl"))
	if err != nil {
		return nil
	}
	defer f.Close()
	quotes, err := fxmatrix.DecodeQuotes(f)
	if err != nil {
		return nil
	}
	m := fxmatrix.NewUnchecked()
	fxmatrix.Apply(m, quotes)
	var codes []string
	for _, c := range m.Currencies() {
		codes = append(codes, string(c))
	}
	return codes
})

// Completion describes the command line of fxm for shell completion.
func Completion() *complete.Command {
	ratesFiles := predict.Or(predict.Files("*.jsonl"), predict.Files("*.yaml"), predict.Files("*.yml"))
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"rates-file": ratesFiles,
			"checked":    predict.Nothing,
			"v":          predict.Nothing,
			"plain":      predict.Nothing,
			"redis-addr": predict.Something,
		},
		Sub: map[string]*complete.Command{
			"rate": {
				Flags: map[string]complete.Predictor{"exact": predict.Nothing},
				Args:  predictCurrencies,
			},
			"convert": {
				Flags: map[string]complete.Predictor{"to": predictCurrencies, "short": predict.Nothing},
				Args:  predictCurrencies,
			},
			"table": {},
			"add": {
				Flags: map[string]complete.Predictor{"source": predict.Something},
				Args:  predictCurrencies,
			},
			"check": {Flags: map[string]complete.Predictor{"complete": predict.Nothing}},
			"fetch": {
				Flags: map[string]complete.Predictor{
					"url":     predict.Something,
					"path":    predict.Something,
					"cache":   predict.Dirs("*"),
					"dry-run": predict.Nothing,
				},
			},
			"fmt": {Flags: map[string]complete.Predictor{"o": predict.Files("*.jsonl")}},
			"serve": {
				Flags: map[string]complete.Predictor{"addr": predict.Something, "metrics": predict.Nothing},
			},
			"push": {
				Flags: map[string]complete.Predictor{"name": predict.Something, "ttl": predict.Something},
			},
			"pull": {
				Flags: map[string]complete.Predictor{
					"name": predict.Something,
					"o":    predict.Files("*.jsonl"),
					"list": predict.Nothing,
				},
			},
			"topic": {Args: predictTopics},
		},
	}
}
