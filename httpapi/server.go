// Package httpapi serves a read-only JSON view of an FX matrix.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/fxmatrix"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
)

// Server routes the HTTP API to a matrix.
type Server struct {
	matrix fxmatrix.Matrix
	logger log.Logger
	router *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithHandler mounts h on path, next to the API routes. It is used to expose
// metrics.
func WithHandler(path string, h http.Handler) Option {
	return func(s *Server) { s.router.Handle(path, h).Methods(http.MethodGet) }
}

// NewServer returns a server answering from m. m must not be mutated while
// the server runs: serve an Immutable snapshot.
func NewServer(m fxmatrix.Matrix, logger log.Logger, opts ...Option) *Server {
	s := &Server{matrix: m, logger: logger, router: mux.NewRouter()}
	s.routes()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestLoggingMiddleware)
	s.router.HandleFunc("/currencies", s.currencies).Methods(http.MethodGet)
	s.router.HandleFunc("/rates/{numerator}/{denominator}", s.rate).Methods(http.MethodGet)
	s.router.HandleFunc("/matrix", s.snapshot).Methods(http.MethodGet)
	s.router.HandleFunc("/convert", s.convert).Methods(http.MethodPost)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) currencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.matrix.Currencies())
}

func (s *Server) rate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	num, den := fxmatrix.Currency(vars["numerator"]), fxmatrix.Currency(vars["denominator"])
	rate, err := s.matrix.FxRate(num, den)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, fxmatrix.Quote{Numerator: num, Denominator: den, Rate: rate})
}

func (s *Server) snapshot(w http.ResponseWriter, _ *http.Request) {
	m, ok := s.matrix.(json.Marshaler)
	if !ok {
		snap, err := fxmatrix.Freeze(s.matrix)
		if err != nil {
			writeError(w, statusOf(err), err.Error())
			return
		}
		m = snap
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	// request for unmarshalling JSON requests posted by clients
	var request struct {
		Target  fxmatrix.Currency `json:"target"`
		Amounts fxmatrix.Amounts  `json:"amounts"`
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	total, err := s.matrix.Convert(request.Amounts, request.Target)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, total)
}

// statusOf maps matrix errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, fxmatrix.ErrUnknownCurrency):
		return http.StatusNotFound
	case errors.Is(err, fxmatrix.ErrNoRateAvailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fxmatrix.ErrInvalidArgument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed json encoding")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	data, _ := json.Marshal(map[string]string{"error": msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

// responseWrapper captures the status code written by a handler.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		defer func(begin time.Time) {
			logger := level.Info(s.logger)
			if wrapper.statusCode >= 500 {
				logger = level.Error(s.logger)
			}
			logger.Log("method", r.Method, "path", r.URL.Path, "status", wrapper.statusCode, "took", time.Since(begin))
		}(time.Now())
		next.ServeHTTP(wrapper, r)
	})
}
