package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minsukang/investlog-backend/internal/domain"
)

// JSON documents stored in the JSONB columns. Field names match the schema
// the web client historically wrote, so existing rows stay readable.
type holdingDoc struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

type cashDoc struct {
	KRW decimal.Decimal `json:"krw"`
	USD decimal.Decimal `json:"usd"`
}

type psychologyDoc struct {
	FearGreedIndex   int      `json:"fear_greed_index"`
	ConfidenceLevel  string   `json:"confidence_level,omitempty"`
	M2MoneySupply    string   `json:"m2_money_supply,omitempty"`
	MarginDebt       string   `json:"margin_debt,omitempty"`
	MarginRatio      string   `json:"margin_ratio,omitempty"`
	MarketSentiments []string `json:"market_sentiments,omitempty"`
}

type checklistDoc struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// journalRepository implements domain.JournalRepository
type journalRepository struct {
	db *DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *DB) domain.JournalRepository {
	return &journalRepository{db: db}
}

const journalColumns = `
	id, user_id, date, total_assets, evaluation,
	foreign_stocks, domestic_stocks, cryptocurrency, cash,
	trades, market_issues, memo, psychology_check,
	bull_market_checklist, bear_market_checklist,
	created_at, updated_at
`

// Create creates a new journal record
func (r *journalRepository) Create(ctx context.Context, rec *domain.JournalRecord) error {
	query := `
		INSERT INTO investment_journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	args, err := journalArgs(rec)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert journal record: %w", err)
	}

	return nil
}

// Update replaces an existing journal record
func (r *journalRepository) Update(ctx context.Context, rec *domain.JournalRecord) error {
	query := `
		UPDATE investment_journals SET
			user_id = $2, date = $3, total_assets = $4, evaluation = $5,
			foreign_stocks = $6, domestic_stocks = $7, cryptocurrency = $8, cash = $9,
			trades = $10, market_issues = $11, memo = $12, psychology_check = $13,
			bull_market_checklist = $14, bear_market_checklist = $15,
			created_at = $16, updated_at = $17
		WHERE id = $1
	`

	args, err := journalArgs(rec)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update journal record: %w", err)
	}

	return requireRowsAffected(result)
}

// Delete removes a journal record owned by the given user
func (r *journalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM investment_journals WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete journal record: %w", err)
	}

	return requireRowsAffected(result)
}

// GetByID retrieves a journal record by its ID
func (r *journalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.JournalRecord, error) {
	query := `SELECT ` + journalColumns + ` FROM investment_journals WHERE id = $1`

	rec, err := scanJournal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get journal record: %w", err)
	}

	return rec, nil
}

// ListByUser retrieves all journal records of a user, ordered by date ascending
func (r *journalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.JournalRecord, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM investment_journals
		WHERE user_id = $1
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal records: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.JournalRecord, 0)
	for rows.Next() {
		rec, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal records: %w", err)
	}

	return records, nil
}

func requireRowsAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func journalArgs(rec *domain.JournalRecord) ([]interface{}, error) {
	foreign, err := marshalHoldings(rec.ForeignStocks)
	if err != nil {
		return nil, err
	}
	domestic, err := marshalHoldings(rec.DomesticStocks)
	if err != nil {
		return nil, err
	}
	crypto, err := marshalHoldings(rec.Crypto)
	if err != nil {
		return nil, err
	}
	cash, err := json.Marshal(cashDoc{KRW: rec.Cash.KRW, USD: rec.Cash.USD})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cash: %w", err)
	}
	psychology, err := json.Marshal(psychologyDoc{
		FearGreedIndex:   rec.Psychology.FearGreedIndex,
		ConfidenceLevel:  rec.Psychology.ConfidenceLevel,
		M2MoneySupply:    rec.Psychology.M2MoneySupply,
		MarginDebt:       rec.Psychology.MarginDebt,
		MarginRatio:      rec.Psychology.MarginRatio,
		MarketSentiments: rec.Psychology.MarketSentiments,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal psychology check: %w", err)
	}
	bull, err := marshalChecklist(rec.BullChecklist)
	if err != nil {
		return nil, err
	}
	bear, err := marshalChecklist(rec.BearChecklist)
	if err != nil {
		return nil, err
	}

	return []interface{}{
		rec.ID,
		rec.UserID,
		rec.Date,
		rec.TotalAssets.String(),
		rec.Evaluation.String(),
		foreign,
		domestic,
		crypto,
		cash,
		rec.Trades,
		rec.MarketIssues,
		rec.Memo,
		psychology,
		bull,
		bear,
		rec.CreatedAt,
		rec.UpdatedAt,
	}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJournal(row rowScanner) (*domain.JournalRecord, error) {
	var (
		rec            domain.JournalRecord
		date           time.Time
		totalAssetsStr string
		evaluationStr  string
		foreignRaw     []byte
		domesticRaw    []byte
		cryptoRaw      []byte
		cashRaw        []byte
		psychologyRaw  []byte
		bullRaw        []byte
		bearRaw        []byte
	)

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&date,
		&totalAssetsStr,
		&evaluationStr,
		&foreignRaw,
		&domesticRaw,
		&cryptoRaw,
		&cashRaw,
		&rec.Trades,
		&rec.MarketIssues,
		&rec.Memo,
		&psychologyRaw,
		&bullRaw,
		&bearRaw,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Date = date.Format(domain.DateLayout)

	if rec.TotalAssets, err = decimal.NewFromString(totalAssetsStr); err != nil {
		return nil, fmt.Errorf("failed to parse total_assets: %w", err)
	}
	if rec.Evaluation, err = decimal.NewFromString(evaluationStr); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation: %w", err)
	}

	if rec.ForeignStocks, err = unmarshalHoldings(foreignRaw); err != nil {
		return nil, fmt.Errorf("failed to parse foreign_stocks: %w", err)
	}
	if rec.DomesticStocks, err = unmarshalHoldings(domesticRaw); err != nil {
		return nil, fmt.Errorf("failed to parse domestic_stocks: %w", err)
	}
	if rec.Crypto, err = unmarshalHoldings(cryptoRaw); err != nil {
		return nil, fmt.Errorf("failed to parse cryptocurrency: %w", err)
	}

	var cash cashDoc
	if err := json.Unmarshal(cashRaw, &cash); err != nil {
		return nil, fmt.Errorf("failed to parse cash: %w", err)
	}
	rec.Cash = domain.CashHolding{KRW: cash.KRW, USD: cash.USD}

	var psychology psychologyDoc
	if err := json.Unmarshal(psychologyRaw, &psychology); err != nil {
		return nil, fmt.Errorf("failed to parse psychology_check: %w", err)
	}
	rec.Psychology = domain.PsychologySnapshot{
		FearGreedIndex:   psychology.FearGreedIndex,
		ConfidenceLevel:  psychology.ConfidenceLevel,
		M2MoneySupply:    psychology.M2MoneySupply,
		MarginDebt:       psychology.MarginDebt,
		MarginRatio:      psychology.MarginRatio,
		MarketSentiments: psychology.MarketSentiments,
	}

	if rec.BullChecklist, err = unmarshalChecklist(bullRaw); err != nil {
		return nil, fmt.Errorf("failed to parse bull_market_checklist: %w", err)
	}
	if rec.BearChecklist, err = unmarshalChecklist(bearRaw); err != nil {
		return nil, fmt.Errorf("failed to parse bear_market_checklist: %w", err)
	}

	return &rec, nil
}

func marshalHoldings(lines []domain.HoldingLine) ([]byte, error) {
	docs := make([]holdingDoc, 0, len(lines))
	for _, line := range lines {
		docs = append(docs, holdingDoc{Symbol: line.Symbol, Price: line.UnitPrice, Quantity: line.Quantity})
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal holdings: %w", err)
	}
	return raw, nil
}

func unmarshalHoldings(raw []byte) ([]domain.HoldingLine, error) {
	var docs []holdingDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	lines := make([]domain.HoldingLine, 0, len(docs))
	for _, doc := range docs {
		lines = append(lines, domain.HoldingLine{Symbol: doc.Symbol, UnitPrice: doc.Price, Quantity: doc.Quantity})
	}
	return lines, nil
}

func marshalChecklist(items []domain.ChecklistItem) ([]byte, error) {
	docs := make([]checklistDoc, 0, len(items))
	for _, item := range items {
		docs = append(docs, checklistDoc(item))
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checklist: %w", err)
	}
	return raw, nil
}

func unmarshalChecklist(raw []byte) ([]domain.ChecklistItem, error) {
	var docs []checklistDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	items := make([]domain.ChecklistItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, domain.ChecklistItem(doc))
	}
	return items, nil
}
