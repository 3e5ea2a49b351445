package fxmatrix

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors updated by instrumented matrices.
type Metrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	currencies prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg, if not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxmatrix_requests_total",
			Help: "Number of matrix calls by method and result.",
		}, []string{"method", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fxmatrix_request_duration_seconds",
			Help:    "Duration of matrix calls by method.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"method"}),
		currencies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fxmatrix_currencies",
			Help: "Number of currencies held by the matrix.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration, m.currencies)
	}
	return m
}

func (m *Metrics) observe(method string, begin time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.requests.WithLabelValues(method, result).Inc()
	m.duration.WithLabelValues(method).Observe(time.Since(begin).Seconds())
}

type instrumentedMatrix struct {
	metrics *Metrics
	next    Mutable
}

// NewInstrumentedMatrix returns a matrix that counts and times the calls made
// to next, and tracks its number of currencies.
func NewInstrumentedMatrix(metrics *Metrics, next Mutable) Mutable {
	metrics.currencies.Set(float64(next.NumberOfCurrencies()))
	return &instrumentedMatrix{metrics: metrics, next: next}
}

func (mw *instrumentedMatrix) AddCurrency(numerator, denominator Currency, rate float64) (err error) {
	defer func(begin time.Time) {
		mw.metrics.observe("AddCurrency", begin, err)
		mw.metrics.currencies.Set(float64(mw.next.NumberOfCurrencies()))
	}(time.Now())
	return mw.next.AddCurrency(numerator, denominator, rate)
}

func (mw *instrumentedMatrix) UpdateRates(numerator, denominator Currency, rate float64) (err error) {
	defer func(begin time.Time) { mw.metrics.observe("UpdateRates", begin, err) }(time.Now())
	return mw.next.UpdateRates(numerator, denominator, rate)
}

func (mw *instrumentedMatrix) FxRate(numerator, denominator Currency) (_ float64, err error) {
	defer func(begin time.Time) { mw.metrics.observe("FxRate", begin, err) }(time.Now())
	return mw.next.FxRate(numerator, denominator)
}

func (mw *instrumentedMatrix) Convert(amounts Amounts, target Currency) (_ Amount, err error) {
	defer func(begin time.Time) { mw.metrics.observe("Convert", begin, err) }(time.Now())
	return mw.next.Convert(amounts, target)
}

func (mw *instrumentedMatrix) ContainsPair(a, b Currency) bool { return mw.next.ContainsPair(a, b) }
func (mw *instrumentedMatrix) Currencies() []Currency          { return mw.next.Currencies() }
func (mw *instrumentedMatrix) Rates() [][]float64              { return mw.next.Rates() }
func (mw *instrumentedMatrix) NumberOfCurrencies() int         { return mw.next.NumberOfCurrencies() }
