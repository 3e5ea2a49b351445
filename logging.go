package fxmatrix

import (
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type loggingMatrix struct {
	logger log.Logger
	next   Mutable
}

// NewLoggingMatrix returns a matrix that logs every call made to next with
// its arguments, duration and error. Failed calls are logged at error level,
// the others at debug level.
func NewLoggingMatrix(logger log.Logger, next Mutable) Mutable {
	return &loggingMatrix{logger: logger, next: next}
}

func (mw *loggingMatrix) log(begin time.Time, err error, keyvals ...any) {
	logger := level.Debug(mw.logger)
	if err != nil {
		logger = level.Error(mw.logger)
	}
	keyvals = append(keyvals, "took", time.Since(begin), "err", err)
	logger.Log(keyvals...)
}

func (mw *loggingMatrix) AddCurrency(numerator, denominator Currency, rate float64) (err error) {
	defer func(begin time.Time) {
		mw.log(begin, err, "method", "AddCurrency", "numerator", numerator, "denominator", denominator, "rate", rate)
	}(time.Now())
	return mw.next.AddCurrency(numerator, denominator, rate)
}

func (mw *loggingMatrix) UpdateRates(numerator, denominator Currency, rate float64) (err error) {
	defer func(begin time.Time) {
		mw.log(begin, err, "method", "UpdateRates", "numerator", numerator, "denominator", denominator, "rate", rate)
	}(time.Now())
	return mw.next.UpdateRates(numerator, denominator, rate)
}

func (mw *loggingMatrix) FxRate(numerator, denominator Currency) (rate float64, err error) {
	defer func(begin time.Time) {
		mw.log(begin, err, "method", "FxRate", "numerator", numerator, "denominator", denominator, "rate", rate)
	}(time.Now())
	return mw.next.FxRate(numerator, denominator)
}

func (mw *loggingMatrix) Convert(amounts Amounts, target Currency) (total Amount, err error) {
	defer func(begin time.Time) {
		mw.log(begin, err, "method", "Convert", "currencies", amounts.Len(), "target", target, "total", total)
	}(time.Now())
	return mw.next.Convert(amounts, target)
}

func (mw *loggingMatrix) ContainsPair(a, b Currency) bool { return mw.next.ContainsPair(a, b) }
func (mw *loggingMatrix) Currencies() []Currency          { return mw.next.Currencies() }
func (mw *loggingMatrix) Rates() [][]float64              { return mw.next.Rates() }
func (mw *loggingMatrix) NumberOfCurrencies() int         { return mw.next.NumberOfCurrencies() }
