package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used everywhere in the system.
// Lexicographic order on this layout matches chronological order, so date
// strings are compared directly.
const DateLayout = "2006-01-02"

// HoldingLine represents one tradable position inside a journal record.
// Quantity and UnitPrice are permissive: zero values stand in for fields the
// user left empty, and negative values (short-style entries, manual
// corrections) pass through unvalidated.
type HoldingLine struct {
	Symbol    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CashHolding carries the two cash balances of a record, one per currency.
type CashHolding struct {
	KRW decimal.Decimal
	USD decimal.Decimal
}

// PsychologySnapshot captures the market-psychology indicators the user logged
// alongside the record. All supplementary fields are optional free text.
type PsychologySnapshot struct {
	FearGreedIndex   int
	ConfidenceLevel  string
	M2MoneySupply    string
	MarginDebt       string
	MarginRatio      string
	MarketSentiments []string
}

// ChecklistItem is one entry of a bull- or bear-market checklist.
type ChecklistItem struct {
	ID      string
	Text    string
	Checked bool
}

// JournalRecord represents one dated snapshot of a user's holdings and notes.
// It is exclusively owned by one user; other users may read it only when the
// owner's profile is public.
//
// TotalAssets is the total persisted at save time, valued at the exchange rate
// the user observed then. A live revaluation of the same holdings at today's
// rate may legitimately differ; both values stay addressable and each view
// picks the one it needs (detail views read TotalAssets, the chart recomputes).
type JournalRecord struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Date           string // DateLayout
	TotalAssets    decimal.Decimal
	Evaluation     decimal.Decimal
	ForeignStocks  []HoldingLine
	DomesticStocks []HoldingLine
	Crypto         []HoldingLine
	Cash           CashHolding
	Trades         string
	MarketIssues   string
	Memo           string
	Psychology     PsychologySnapshot
	BullChecklist  []ChecklistItem
	BearChecklist  []ChecklistItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate ensures the record adheres to domain rules.
// Holdings are deliberately not validated (messy user-entered financial data
// is accepted as-is); only the fields the rest of the system relies on are
// checked here, so downstream consumers never re-check them.
func (j *JournalRecord) Validate() error {
	if j.UserID == uuid.Nil {
		return errors.New("journal record must belong to a user")
	}

	if _, err := time.Parse(DateLayout, j.Date); err != nil {
		return errors.New("journal date must be in YYYY-MM-DD format")
	}

	if j.Psychology.FearGreedIndex < 0 || j.Psychology.FearGreedIndex > 100 {
		return errors.New("fear & greed index must be between 0 and 100")
	}

	return nil
}
