package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/fxmatrix"
	"github.com/etnz/fxmatrix/persist"
	"github.com/go-redis/redismock/v8"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, filename string) string {
	t.Helper()
	b, err := os.ReadFile(filename)
	require.NoError(t, err)
	return string(b)
}

func TestAddCmd(t *testing.T) {
	filename := useRates(t, triangle, true)

	status, out := run(t, &addCmd{}, "-source", "manual", "USD", "GBP", "1.875")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Successfully added USD/GBP 1.875")
	assert.Equal(t, triangle+`{"numerator":"USD","denominator":"GBP","rate":1.875,"source":"manual"}
`, readFile(t, filename))

	// inconsistent with the inferred 1.875
	status, _ = run(t, &addCmd{}, "USD", "GBP", "2")
	assert.Equal(t, subcommands.ExitFailure, status)

	status, _ = run(t, &addCmd{}, "USD", "GBP", "-1")
	assert.Equal(t, subcommands.ExitFailure, status)
	status, _ = run(t, &addCmd{}, "usd", "GBP", "1")
	assert.Equal(t, subcommands.ExitUsageError, status)
	status, _ = run(t, &addCmd{}, "USD", "GBP", "one")
	assert.Equal(t, subcommands.ExitUsageError, status)

	// rejected quotes are not written
	assert.Equal(t, 3, strings.Count(readFile(t, filename), "\n"))
}

func TestCheckCmd(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		args     []string
		want     subcommands.ExitStatus
		contains string
	}{
		{"consistent", triangle, nil, subcommands.ExitSuccess, "2 quotes, 3 currencies, consistent"},
		{"inconsistent", triangle + `{"numerator":"USD","denominator":"GBP","rate":2}` + "\n", nil, subcommands.ExitFailure, ""},
		{"disconnected", triangle + `{"numerator":"NZD","denominator":"AUD","rate":1.08}` + "\n", nil, subcommands.ExitSuccess, "3 quotes, 5 currencies"},
		{"incomplete", triangle + `{"numerator":"NZD","denominator":"AUD","rate":1.08}` + "\n", []string{"-complete"}, subcommands.ExitFailure, ""},
		{"complete", triangle, []string{"-complete"}, subcommands.ExitSuccess, "consistent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// check always infers, whatever the global flag
			useRates(t, tt.content, false)
			status, out := run(t, &checkCmd{}, tt.args...)
			assert.Equal(t, tt.want, status)
			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestMissingPairs(t *testing.T) {
	m := fxmatrix.NewChecked()
	require.NoError(t, fxmatrix.Load(m, []fxmatrix.Quote{
		{Numerator: "USD", Denominator: "EUR", Rate: 1.25},
		{Numerator: "NZD", Denominator: "AUD", Rate: 1.08},
	}))
	assert.Equal(t, [][2]fxmatrix.Currency{
		{"AUD", "EUR"}, {"NZD", "EUR"}, {"AUD", "USD"}, {"NZD", "USD"},
	}, missingPairs(m))
}

func TestFmtCmd(t *testing.T) {
	original := `{"numerator":"USD","denominator":"EUR","rate":1.1,"source":"ecb"}

{"numerator":"GBP","denominator":"EUR","rate":0.85}
{"numerator":"USD","denominator":"EUR","rate":1.25,"source":"manual"}
`
	formatted := `{"numerator":"USD","denominator":"EUR","rate":1.25,"source":"manual"}
{"numerator":"GBP","denominator":"EUR","rate":0.85}
`

	t.Run("in place", func(t *testing.T) {
		filename := useRates(t, original, true)
		status, out := run(t, &fmtCmd{})
		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Contains(t, out, "has been formatted")
		assert.Equal(t, formatted, readFile(t, filename))
	})

	t.Run("to file", func(t *testing.T) {
		filename := useRates(t, original, false)
		output := filepath.Join(t.TempDir(), "out.jsonl")
		status, _ := run(t, &fmtCmd{}, "-o", output)
		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Equal(t, formatted, readFile(t, output))
		assert.Equal(t, original, readFile(t, filename), "the rates file must be left untouched")
	})

	t.Run("yaml output", func(t *testing.T) {
		useRates(t, original, false)
		status, _ := run(t, &fmtCmd{}, "-o", filepath.Join(t.TempDir(), "out.yaml"))
		assert.Equal(t, subcommands.ExitUsageError, status)
	})
}

func TestFetchCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"base":"USD","rates":{"EUR":0.8,"GBP":"0.5"}}`)
	}))
	defer srv.Close()

	t.Run("append", func(t *testing.T) {
		filename := useRates(t, "", true)
		status, out := run(t, &fetchCmd{}, "-url", srv.URL, "-path", "EUR/USD=$.rates.EUR", "-path", "GBP/USD=$.rates.GBP")
		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Contains(t, out, "Successfully added 2 quotes")
		assert.Equal(t, fmt.Sprintf(`{"numerator":"EUR","denominator":"USD","rate":0.8,"source":%q}
{"numerator":"GBP","denominator":"USD","rate":0.5,"source":%q}
`, srv.URL, srv.URL), readFile(t, filename))
	})

	t.Run("dry run", func(t *testing.T) {
		filename := useRates(t, "", false)
		status, out := run(t, &fetchCmd{}, "-dry-run", "-url", srv.URL, "-path", "EUR/USD=$.rates.EUR")
		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Contains(t, out, `"rate":0.8`)
		assert.Empty(t, readFile(t, filename))
	})

	t.Run("inconsistent", func(t *testing.T) {
		filename := useRates(t, `{"numerator":"EUR","denominator":"USD","rate":0.9}`+"\n", true)
		status, _ := run(t, &fetchCmd{}, "-url", srv.URL, "-path", "EUR/USD=$.rates.EUR")
		assert.Equal(t, subcommands.ExitFailure, status)
		assert.NotContains(t, readFile(t, filename), "0.8")
	})

	t.Run("missing path", func(t *testing.T) {
		useRates(t, "", false)
		status, _ := run(t, &fetchCmd{}, "-url", srv.URL, "-path", "CHF/USD=$.rates.CHF")
		assert.Equal(t, subcommands.ExitFailure, status)
	})

	t.Run("usage", func(t *testing.T) {
		useRates(t, "", false)
		status, _ := run(t, &fetchCmd{}, "-url", srv.URL)
		assert.Equal(t, subcommands.ExitUsageError, status)
	})
}

// useRedis replaces the redis connection with a mock for the duration of
// the test.
func useRedis(t *testing.T) redismock.ClientMock {
	t.Helper()
	db, mock := redismock.NewClientMock()
	old := openStore
	openStore = func(context.Context) (*persist.Store, func() error, error) {
		return persist.NewStore(db, keyPrefix), func() error { return nil }, nil
	}
	t.Cleanup(func() { openStore = old })
	return mock
}

func TestPushCmd(t *testing.T) {
	useRates(t, triangle, true)
	mock := useRedis(t)

	m := fxmatrix.NewChecked()
	require.NoError(t, fxmatrix.Apply(m, []fxmatrix.Quote{
		{Numerator: "USD", Denominator: "EUR", Rate: 1.25},
		{Numerator: "EUR", Denominator: "GBP", Rate: 1.5},
	}))
	snap, err := m.Immutable()
	require.NoError(t, err)
	data, err := snap.MarshalJSON()
	require.NoError(t, err)

	mock.ExpectSet("fxm:snapshot:eod", string(data), 0).SetVal("OK")
	mock.ExpectSAdd("fxm:names", "eod").SetVal(1)

	status, out := run(t, &pushCmd{}, "-name", "eod")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, `Snapshot "eod" saved with 3 currencies.`)
	assert.NoError(t, mock.ExpectationsWereMet())

	// an unchecked matrix misses the USD/GBP cross rate
	*checked = false
	status, _ = run(t, &pushCmd{}, "-name", "eod")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestPullCmd(t *testing.T) {
	blob := `{"kind":"checked","currencies":["EUR","USD","GBP"],"rates":[[1.25,0.5],[0.4],[]]}`

	t.Run("write rates", func(t *testing.T) {
		filename := useRates(t, "", false)
		mock := useRedis(t)
		mock.ExpectGet("fxm:snapshot:eod").SetVal(blob)

		status, out := run(t, &pullCmd{}, "-name", "eod")
		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Contains(t, out, "(3 quotes)")
		assert.Equal(t, `{"numerator":"USD","denominator":"EUR","rate":1.25,"source":"redis:eod"}
{"numerator":"GBP","denominator":"EUR","rate":0.5,"source":"redis:eod"}
{"numerator":"GBP","denominator":"USD","rate":0.4,"source":"redis:eod"}
`, readFile(t, filename))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		useRates(t, "", false)
		mock := useRedis(t)
		mock.ExpectGet("fxm:snapshot:missing").RedisNil()

		status, _ := run(t, &pullCmd{}, "-name", "missing")
		assert.Equal(t, subcommands.ExitFailure, status)
	})

	t.Run("list", func(t *testing.T) {
		useRates(t, "", false)
		mock := useRedis(t)
		mock.ExpectSMembers("fxm:names").SetVal([]string{"latest", "eod"})

		status, out := run(t, &pullCmd{}, "-list")
		require.Equal(t, subcommands.ExitSuccess, status)
		assert.Equal(t, "eod\nlatest\n", out)
	})
}
