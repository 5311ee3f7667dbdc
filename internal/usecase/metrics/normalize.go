package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NormalizedPoint is one dated percentage-change-from-base value, rounded to
// 2 decimal places. ReferencePercent carries the benchmark overlay's change
// over the same window when one was aligned; nil means no overlay.
type NormalizedPoint struct {
	Date             string
	PercentChange    decimal.Decimal
	ReferencePercent *decimal.Decimal
}

// Normalize rebases a valuation series to percentage change from the first
// point inside the active window.
//
// The window is applied first: the 0% anchor is always the first point of the
// filtered sequence, never the first point of the unfiltered history, so
// switching windows recomputes every visible point's percentage. An empty
// filtered sequence yields an empty result.
func Normalize(points []ValuationPoint, w Window, now time.Time) []NormalizedPoint {
	filtered := filterWindow(points, w, now)
	if len(filtered) == 0 {
		return []NormalizedPoint{}
	}

	base := filtered[0].TotalValue
	out := make([]NormalizedPoint, 0, len(filtered))
	for _, p := range filtered {
		out = append(out, NormalizedPoint{
			Date:          p.Date,
			PercentChange: PercentChange(p.TotalValue, base),
		})
	}
	return out
}

// PercentChange computes round2((value-base)/base × 100). A zero or negative
// base means there is no meaningful baseline, and every point reports 0%
// rather than dividing by zero.
func PercentChange(value, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return value.Sub(base).Div(base).Mul(hundred).Round(2)
}

// filterWindow keeps the points whose date falls inside the window. The
// boundary is computed once per invocation from now.
func filterWindow(points []ValuationPoint, w Window, now time.Time) []ValuationPoint {
	start, bounded := w.Start(now)
	if !bounded {
		return points
	}

	filtered := make([]ValuationPoint, 0, len(points))
	for _, p := range points {
		if p.Date >= start {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
