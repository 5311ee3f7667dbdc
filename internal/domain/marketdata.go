package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultUSDKRW is the fallback USD-to-KRW exchange rate applied when the rate
// collaborator is unavailable at journal-save time. The stored total then
// reflects this rate, which is acceptable: stored totals always reflect
// whatever rate was in effect when the user saved.
var DefaultUSDKRW = decimal.NewFromInt(1300)

// ErrBenchmarkUnavailable signals that the external reference series could not
// be obtained (fetch failed, rate-limited, or empty). Callers must surface the
// overlay as absent instead of rendering fabricated values.
var ErrBenchmarkUnavailable = errors.New("benchmark series unavailable")

// ReferenceSeries maps a calendar date (DateLayout) to that day's closing
// value of an external reference index. It may be partial or stale; alignment
// onto a journal's date axis is the metrics package's job.
type ReferenceSeries map[string]decimal.Decimal

// RateSource supplies the current USD-to-KRW exchange rate.
type RateSource interface {
	// USDKRW returns how many KRW one USD buys right now.
	USDKRW(ctx context.Context) (decimal.Decimal, error)
}

// BenchmarkSource supplies the daily closing series of the benchmark index
// used for the chart overlay.
type BenchmarkSource interface {
	// DailyCloses returns the benchmark's date -> close mapping.
	// Implementations return ErrBenchmarkUnavailable (possibly wrapped) when
	// the series cannot be obtained.
	DailyCloses(ctx context.Context) (ReferenceSeries, error)
}
