package journal

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minsukang/investlog-backend/internal/domain"
	"github.com/minsukang/investlog-backend/internal/usecase/metrics"
)

// Input carries the user-submitted fields of a journal record.
type Input struct {
	Date           string
	Evaluation     decimal.Decimal
	ForeignStocks  []domain.HoldingLine
	DomesticStocks []domain.HoldingLine
	Crypto         []domain.HoldingLine
	Cash           domain.CashHolding
	Trades         string
	MarketIssues   string
	Memo           string
	Psychology     domain.PsychologySnapshot
	BullChecklist  []domain.ChecklistItem
	BearChecklist  []domain.ChecklistItem
}

// Service handles journal record operations
type Service struct {
	JournalRepo domain.JournalRepository
	Rates       domain.RateSource
}

// NewService creates a new journal Service instance
func NewService(journalRepo domain.JournalRepository, rates domain.RateSource) *Service {
	return &Service{
		JournalRepo: journalRepo,
		Rates:       rates,
	}
}

// Create validates and persists a new journal record for the user.
// The stored total is computed here, at the save-time exchange rate, and
// floored to whole KRW. That total is deliberately frozen: later revaluations
// at a different rate do not rewrite it.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input Input) (*domain.JournalRecord, error) {
	now := time.Now()
	rec := recordFromInput(userID, input)
	rec.ID = uuid.New()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	rate := s.currentRate(ctx)
	rec.TotalAssets = metrics.TotalValue(rec, rate).Floor()

	if err := s.JournalRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Update replaces an existing record after an ownership check. The stored
// total is recomputed under the rate in effect now, since re-submission is a
// fresh save.
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, input Input) (*domain.JournalRecord, error) {
	existing, err := s.JournalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	rec := recordFromInput(userID, input)
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now()

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	rate := s.currentRate(ctx)
	rec.TotalAssets = metrics.TotalValue(rec, rate).Floor()

	if err := s.JournalRepo.Update(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Delete removes a record owned by the user.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.JournalRepo.Delete(ctx, id, userID)
}

// Get retrieves a single record, owner-only. Detail views read the stored
// save-time total; no revaluation happens here.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*domain.JournalRecord, error) {
	rec, err := s.JournalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return rec, nil
}

// List retrieves the user's full history, ordered by date ascending.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.JournalRecord, error) {
	return s.JournalRepo.ListByUser(ctx, userID)
}

// currentRate fetches the USD-to-KRW rate, falling back to the default when
// the collaborator is down. A save must not fail because the rate source had
// an outage; the stored total simply reflects the fallback rate.
func (s *Service) currentRate(ctx context.Context) decimal.Decimal {
	rate, err := s.Rates.USDKRW(ctx)
	if err != nil {
		log.Printf("rate fetch failed, using default %s: %v", domain.DefaultUSDKRW, err)
		return domain.DefaultUSDKRW
	}
	return rate
}

func recordFromInput(userID uuid.UUID, input Input) *domain.JournalRecord {
	return &domain.JournalRecord{
		UserID:         userID,
		Date:           input.Date,
		Evaluation:     input.Evaluation,
		ForeignStocks:  input.ForeignStocks,
		DomesticStocks: input.DomesticStocks,
		Crypto:         input.Crypto,
		Cash:           input.Cash,
		Trades:         input.Trades,
		MarketIssues:   input.MarketIssues,
		Memo:           input.Memo,
		Psychology:     input.Psychology,
		BullChecklist:  input.BullChecklist,
		BearChecklist:  input.BearChecklist,
	}
}
