package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/fxmatrix"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, logs *bytes.Buffer, opts ...Option) *Server {
	t.Helper()
	m := fxmatrix.NewChecked()
	require.NoError(t, fxmatrix.Load(m, []fxmatrix.Quote{
		{Numerator: "USD", Denominator: "EUR", Rate: 1.25},
		{Numerator: "EUR", Denominator: "GBP", Rate: 1.5},
		{Numerator: "NZD", Denominator: "AUD", Rate: 1.08},
	}))
	return NewServer(m, log.NewLogfmtLogger(logs), opts...)
}

func do(s http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	s.ServeHTTP(w, r)
	return w
}

func TestServer_Rates(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(t, &logs)

	testCases := []struct {
		name   string
		target string
		code   int
		body   string
	}{
		{"supplied", "/rates/USD/EUR", 200, `{"numerator":"USD","denominator":"EUR","rate":1.25}`},
		{"inferred", "/rates/USD/GBP", 200, `{"numerator":"USD","denominator":"GBP","rate":1.875}`},
		{"unknown currency", "/rates/USD/JPY", 404, ""},
		{"no rate", "/rates/USD/AUD", 422, ""},
		{"unknown route", "/rates/USD", 404, `{"error":"not found"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(s, "GET", tc.target, "")
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tc.body != "" {
				assert.Equal(t, tc.body, strings.TrimSpace(w.Body.String()))
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
	assert.Contains(t, logs.String(), "method=GET path=/rates/USD/EUR status=200")
	assert.Contains(t, logs.String(), "status=422")
}

func TestServer_Currencies(t *testing.T) {
	s := newTestServer(t, &bytes.Buffer{})
	w := do(s, "GET", "/currencies", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, `["EUR","USD","GBP","AUD","NZD"]`, strings.TrimSpace(w.Body.String()))

	w = do(s, "POST", "/currencies", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_Matrix(t *testing.T) {
	s := newTestServer(t, &bytes.Buffer{})
	w := do(s, "GET", "/matrix", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t,
		`{"kind":"checked","currencies":["EUR","USD","GBP","AUD","NZD"],"rates":[[1.25,0.6666666666666666,-1,-1],[-1,-1,-1],[-1,-1],[1.08],[]]}`,
		strings.TrimSpace(w.Body.String()))

	// unset cells are kept, so the blob is not a snapshot
	_, err := fxmatrix.UnmarshalImmutable(w.Body.Bytes())
	assert.ErrorIs(t, err, fxmatrix.ErrInvalidArgument)
}

func TestServer_Convert(t *testing.T) {
	s := newTestServer(t, &bytes.Buffer{})

	testCases := []struct {
		name string
		body string
		code int
		want string
	}{
		{"ok", `{"target":"USD","amounts":[{"currency":"EUR","amount":"100"},{"currency":"USD","amount":"5"}]}`, 200, `{"currency":"USD","amount":"130"}`},
		{"numbers", `{"target":"USD","amounts":[{"currency":"GBP","amount":2}]}`, 200, `{"currency":"USD","amount":"3.75"}`},
		{"empty bag", `{"target":"EUR","amounts":[]}`, 200, `{"currency":"EUR","amount":"0"}`},
		{"invalid json", `{"target":`, 400, `{"error":"invalid json"}`},
		{"no target", `{"amounts":[]}`, 400, ""},
		{"no rate", `{"target":"USD","amounts":[{"currency":"AUD","amount":"1"}]}`, 422, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(s, "POST", "/convert", tc.body)
			assert.Equal(t, tc.code, w.Code)
			if tc.want != "" {
				assert.Equal(t, tc.want, strings.TrimSpace(w.Body.String()))
			}
		})
	}
}

func TestServer_WithHandler(t *testing.T) {
	s := newTestServer(t, &bytes.Buffer{}, WithHandler("/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("metrics"))
	})))
	w := do(s, "GET", "/metrics", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "metrics", w.Body.String())
}
