package chart

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minsukang/investlog-backend/internal/domain"
	"github.com/minsukang/investlog-backend/internal/usecase/metrics"
)

// Point is one renderable chart point. TotalAssets is floored to whole KRW
// for display; BenchmarkPercent is nil when no overlay is active. Memo and
// MarketIssues let the chart mark dates that carry notes.
type Point struct {
	Date             string
	TotalAssets      decimal.Decimal
	PercentChange    decimal.Decimal
	BenchmarkPercent *decimal.Decimal
	Memo             string
	MarketIssues     string
}

// AssetChart is the full chart payload for one window selection.
// BenchmarkAvailable is false when the overlay was requested but the
// reference series could not be obtained; the renderer must disable the
// comparison rather than plot a fabricated zero-line.
type AssetChart struct {
	Window             metrics.Window
	Points             []Point
	BenchmarkAvailable bool
}

// Service assembles chart data from journals, the current exchange rate and
// the benchmark series.
type Service struct {
	JournalRepo domain.JournalRepository
	Rates       domain.RateSource
	Benchmark   domain.BenchmarkSource
}

// NewService creates a new chart Service instance
func NewService(journalRepo domain.JournalRepository, rates domain.RateSource, benchmark domain.BenchmarkSource) *Service {
	return &Service{
		JournalRepo: journalRepo,
		Rates:       rates,
		Benchmark:   benchmark,
	}
}

// AssetChart builds the valuation chart for a user.
//
// The chart revalues every record live at the current exchange rate so that
// records saved under different historical rates stay comparable. When the
// rate collaborator is down, it falls back to the stored save-time totals
// (which need no rate at all) instead of failing the render. An empty history
// yields an empty chart, a renderable state distinct from a fetch failure.
func (s *Service) AssetChart(ctx context.Context, userID uuid.UUID, w metrics.Window, includeBenchmark bool) (*AssetChart, error) {
	records, err := s.JournalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var points []metrics.ValuationPoint
	if rate, err := s.Rates.USDKRW(ctx); err != nil {
		log.Printf("rate fetch failed, charting stored totals: %v", err)
		points = metrics.BuildStoredSeries(records)
	} else {
		points = metrics.BuildSeries(records, rate)
	}

	now := time.Now()

	var normalized []metrics.NormalizedPoint
	benchmarkAvailable := false

	if includeBenchmark {
		series, err := s.Benchmark.DailyCloses(ctx)
		if err == nil {
			normalized, err = metrics.NormalizeWithReference(points, series, w, now)
			benchmarkAvailable = err == nil
		}
		if !benchmarkAvailable {
			log.Printf("benchmark overlay unavailable: %v", err)
		}
	}

	if normalized == nil || !benchmarkAvailable {
		normalized = metrics.Normalize(points, w, now)
	}

	return &AssetChart{
		Window:             w,
		Points:             s.assemblePoints(records, points, normalized),
		BenchmarkAvailable: benchmarkAvailable,
	}, nil
}

// assemblePoints joins the normalized points back onto their valuations and
// source records by date. Duplicate dates are undefined by design; the last
// record for a date wins the note lookup.
func (s *Service) assemblePoints(records []*domain.JournalRecord, points []metrics.ValuationPoint, normalized []metrics.NormalizedPoint) []Point {
	byDate := make(map[string]*domain.JournalRecord, len(records))
	for _, rec := range records {
		byDate[rec.Date] = rec
	}
	valueByDate := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		valueByDate[p.Date] = p.TotalValue
	}

	out := make([]Point, 0, len(normalized))
	for _, np := range normalized {
		point := Point{
			Date:             np.Date,
			TotalAssets:      valueByDate[np.Date].Floor(),
			PercentChange:    np.PercentChange,
			BenchmarkPercent: np.ReferencePercent,
		}
		if rec, ok := byDate[np.Date]; ok {
			point.Memo = rec.Memo
			point.MarketIssues = rec.MarketIssues
		}
		out = append(out, point)
	}
	return out
}
