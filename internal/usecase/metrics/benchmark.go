package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minsukang/investlog-backend/internal/domain"
)

// AlignReference produces one reference value per target date using
// last-known-value carry-forward: for each date, the reference entry with the
// greatest date <= target wins. A target date preceding the entire reference
// series takes the series' earliest value instead, so leading gaps carry the
// first observation backward rather than being left undefined.
//
// An empty or nil series returns domain.ErrBenchmarkUnavailable; values are
// never fabricated to fill the gap.
func AlignReference(series domain.ReferenceSeries, dates []string) ([]decimal.Decimal, error) {
	if len(series) == 0 {
		return nil, domain.ErrBenchmarkUnavailable
	}

	refDates := make([]string, 0, len(series))
	for d := range series {
		refDates = append(refDates, d)
	}
	sort.Strings(refDates)

	aligned := make([]decimal.Decimal, 0, len(dates))
	for _, target := range dates {
		// Index of the first reference date > target; the entry before it is
		// the last known value as of the target date.
		idx := sort.SearchStrings(refDates, target+"\x00")
		if idx == 0 {
			aligned = append(aligned, series[refDates[0]])
			continue
		}
		aligned = append(aligned, series[refDates[idx-1]])
	}
	return aligned, nil
}

// NormalizeWithReference is Normalize with the benchmark overlay attached:
// the reference series is aligned onto the windowed date axis and rebased at
// the same anchor date as the primary series, so the difference between the
// two percentages is comparable at any window.
func NormalizeWithReference(points []ValuationPoint, series domain.ReferenceSeries, w Window, now time.Time) ([]NormalizedPoint, error) {
	filtered := filterWindow(points, w, now)
	if len(filtered) == 0 {
		return []NormalizedPoint{}, nil
	}

	dates := make([]string, 0, len(filtered))
	for _, p := range filtered {
		dates = append(dates, p.Date)
	}

	aligned, err := AlignReference(series, dates)
	if err != nil {
		return nil, err
	}

	base := filtered[0].TotalValue
	refBase := aligned[0]

	out := make([]NormalizedPoint, 0, len(filtered))
	for i, p := range filtered {
		refPct := PercentChange(aligned[i], refBase)
		out = append(out, NormalizedPoint{
			Date:             p.Date,
			PercentChange:    PercentChange(p.TotalValue, base),
			ReferencePercent: &refPct,
		})
	}
	return out, nil
}
