package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/minsukang/investlog-backend/internal/domain"
)

// ValuationPoint is one dated total-asset valuation. It is derived fresh on
// every computation pass and never persisted.
type ValuationPoint struct {
	Date       string
	TotalValue decimal.Decimal
}

// BuildSeries orders the records by date ascending and values each one live
// at the given exchange rate. Every output point corresponds to exactly one
// input record; records sharing a date (not schema-enforced) are passed
// through without deduplication. An empty input yields an empty series.
func BuildSeries(records []*domain.JournalRecord, rate decimal.Decimal) []ValuationPoint {
	points := make([]ValuationPoint, 0, len(records))
	for _, rec := range records {
		points = append(points, ValuationPoint{
			Date:       rec.Date,
			TotalValue: TotalValue(rec, rate),
		})
	}
	sortByDate(points)
	return points
}

// BuildStoredSeries is BuildSeries using each record's save-time TotalAssets
// instead of revaluing holdings. Stored totals reflect the historical exchange
// rate in effect when each record was saved, so this series is rate-independent.
func BuildStoredSeries(records []*domain.JournalRecord) []ValuationPoint {
	points := make([]ValuationPoint, 0, len(records))
	for _, rec := range records {
		points = append(points, ValuationPoint{
			Date:       rec.Date,
			TotalValue: rec.TotalAssets,
		})
	}
	sortByDate(points)
	return points
}

func sortByDate(points []ValuationPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
}
