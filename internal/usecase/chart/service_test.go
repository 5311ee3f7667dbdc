package chart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/minsukang/investlog-backend/internal/domain"
	"github.com/minsukang/investlog-backend/internal/usecase/metrics"
)

// MockJournalRepository is a mock implementation of JournalRepository for testing
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Create(ctx context.Context, rec *domain.JournalRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockJournalRepository) Update(ctx context.Context, rec *domain.JournalRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockJournalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.JournalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalRecord), args.Error(1)
}

func (m *MockJournalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.JournalRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.JournalRecord), args.Error(1)
}

// MockRateSource is a mock implementation of RateSource for testing
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) USDKRW(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockBenchmarkSource is a mock implementation of BenchmarkSource for testing
type MockBenchmarkSource struct {
	mock.Mock
}

func (m *MockBenchmarkSource) DailyCloses(ctx context.Context) (domain.ReferenceSeries, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ReferenceSeries), args.Error(1)
}

func usdJournal(date string, usd int64, memo string) *domain.JournalRecord {
	return &domain.JournalRecord{
		ID:          uuid.New(),
		Date:        date,
		TotalAssets: decimal.NewFromInt(usd * 1300), // saved at a historical rate of 1300
		Cash:        domain.CashHolding{USD: decimal.NewFromInt(usd)},
		Memo:        memo,
	}
}

func TestAssetChart_LiveRevaluationAtCurrentRate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockJournalRepository)
	mockRates := new(MockRateSource)
	mockBenchmark := new(MockBenchmarkSource)
	service := NewService(mockRepo, mockRates, mockBenchmark)

	userID := uuid.New()
	records := []*domain.JournalRecord{
		usdJournal("2024-01-01", 100, "first entry"),
		usdJournal("2024-02-01", 150, ""),
	}

	mockRepo.On("ListByUser", ctx, userID).Return(records, nil)
	mockRates.On("USDKRW", ctx).Return(decimal.NewFromInt(1400), nil)

	out, err := service.AssetChart(ctx, userID, metrics.WindowAll, false)

	require.NoError(t, err)
	require.Len(t, out.Points, 2)
	assert.False(t, out.BenchmarkAvailable)

	// Charted at the live rate of 1400, not the stored 1300.
	assert.True(t, out.Points[0].TotalAssets.Equal(decimal.NewFromInt(140000)))
	assert.True(t, out.Points[1].TotalAssets.Equal(decimal.NewFromInt(210000)))
	assert.True(t, out.Points[0].PercentChange.Equal(decimal.Zero))
	assert.True(t, out.Points[1].PercentChange.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "first entry", out.Points[0].Memo)
	assert.Nil(t, out.Points[0].BenchmarkPercent)

	mockRepo.AssertExpectations(t)
	mockRates.AssertExpectations(t)
}

func TestAssetChart_RateOutageFallsBackToStoredTotals(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockJournalRepository)
	mockRates := new(MockRateSource)
	mockBenchmark := new(MockBenchmarkSource)
	service := NewService(mockRepo, mockRates, mockBenchmark)

	userID := uuid.New()
	records := []*domain.JournalRecord{
		usdJournal("2024-01-01", 100, ""),
	}

	mockRepo.On("ListByUser", ctx, userID).Return(records, nil)
	mockRates.On("USDKRW", ctx).Return(decimal.Zero, errors.New("fx provider down"))

	out, err := service.AssetChart(ctx, userID, metrics.WindowAll, false)

	require.NoError(t, err)
	require.Len(t, out.Points, 1)
	// Stored save-time total, no revaluation possible.
	assert.True(t, out.Points[0].TotalAssets.Equal(decimal.NewFromInt(130000)))
}

func TestAssetChart_EmptyHistory(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockJournalRepository)
	mockRates := new(MockRateSource)
	mockBenchmark := new(MockBenchmarkSource)
	service := NewService(mockRepo, mockRates, mockBenchmark)

	userID := uuid.New()
	mockRepo.On("ListByUser", ctx, userID).Return([]*domain.JournalRecord{}, nil)
	mockRates.On("USDKRW", ctx).Return(decimal.NewFromInt(1300), nil)

	out, err := service.AssetChart(ctx, userID, metrics.Window1Y, false)

	require.NoError(t, err)
	assert.Empty(t, out.Points)
}

func TestAssetChart_BenchmarkOverlay(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockJournalRepository)
	mockRates := new(MockRateSource)
	mockBenchmark := new(MockBenchmarkSource)
	service := NewService(mockRepo, mockRates, mockBenchmark)

	userID := uuid.New()
	records := []*domain.JournalRecord{
		usdJournal("2024-01-01", 100, ""),
		usdJournal("2024-02-01", 120, ""),
	}
	series := domain.ReferenceSeries{
		"2024-01-01": decimal.NewFromInt(4000),
		"2024-02-01": decimal.NewFromInt(4400),
	}

	mockRepo.On("ListByUser", ctx, userID).Return(records, nil)
	mockRates.On("USDKRW", ctx).Return(decimal.NewFromInt(1300), nil)
	mockBenchmark.On("DailyCloses", ctx).Return(series, nil)

	out, err := service.AssetChart(ctx, userID, metrics.WindowAll, true)

	require.NoError(t, err)
	assert.True(t, out.BenchmarkAvailable)
	require.Len(t, out.Points, 2)
	require.NotNil(t, out.Points[1].BenchmarkPercent)
	assert.True(t, out.Points[1].BenchmarkPercent.Equal(decimal.NewFromInt(10)))

	mockBenchmark.AssertExpectations(t)
}

func TestAssetChart_BenchmarkUnavailableDisablesOverlay(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockJournalRepository)
	mockRates := new(MockRateSource)
	mockBenchmark := new(MockBenchmarkSource)
	service := NewService(mockRepo, mockRates, mockBenchmark)

	userID := uuid.New()
	records := []*domain.JournalRecord{
		usdJournal("2024-01-01", 100, ""),
	}

	mockRepo.On("ListByUser", ctx, userID).Return(records, nil)
	mockRates.On("USDKRW", ctx).Return(decimal.NewFromInt(1300), nil)
	mockBenchmark.On("DailyCloses", ctx).Return(nil, domain.ErrBenchmarkUnavailable)

	out, err := service.AssetChart(ctx, userID, metrics.WindowAll, true)

	// No error and no fabricated overlay: the chart renders without the
	// comparison line.
	require.NoError(t, err)
	assert.False(t, out.BenchmarkAvailable)
	require.Len(t, out.Points, 1)
	assert.Nil(t, out.Points[0].BenchmarkPercent)
}
