package http

import (
	"github.com/shopspring/decimal"

	"github.com/minsukang/investlog-backend/internal/domain"
	"github.com/minsukang/investlog-backend/internal/usecase/chart"
	"github.com/minsukang/investlog-backend/internal/usecase/journal"
	"github.com/minsukang/investlog-backend/internal/usecase/search"
)

// Wire shapes. Money amounts travel as strings to keep decimal precision out
// of float hands; decimal.Decimal unmarshals both JSON numbers and strings on
// the way in.

type holdingDTO struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

type cashDTO struct {
	KRW decimal.Decimal `json:"krw"`
	USD decimal.Decimal `json:"usd"`
}

type psychologyDTO struct {
	FearGreedIndex   int      `json:"fear_greed_index"`
	ConfidenceLevel  string   `json:"confidence_level,omitempty"`
	M2MoneySupply    string   `json:"m2_money_supply,omitempty"`
	MarginDebt       string   `json:"margin_debt,omitempty"`
	MarginRatio      string   `json:"margin_ratio,omitempty"`
	MarketSentiments []string `json:"market_sentiments,omitempty"`
}

type checklistItemDTO struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type journalRequest struct {
	Date                string             `json:"date" binding:"required"`
	Evaluation          decimal.Decimal    `json:"evaluation"`
	ForeignStocks       []holdingDTO       `json:"foreign_stocks"`
	DomesticStocks      []holdingDTO       `json:"domestic_stocks"`
	Cryptocurrency      []holdingDTO       `json:"cryptocurrency"`
	Cash                cashDTO            `json:"cash"`
	Trades              string             `json:"trades"`
	MarketIssues        string             `json:"market_issues"`
	Memo                string             `json:"memo"`
	PsychologyCheck     psychologyDTO      `json:"psychology_check"`
	BullMarketChecklist []checklistItemDTO `json:"bull_market_checklist"`
	BearMarketChecklist []checklistItemDTO `json:"bear_market_checklist"`
}

type journalResponse struct {
	ID                  string             `json:"id"`
	UserID              string             `json:"user_id"`
	Date                string             `json:"date"`
	TotalAssets         string             `json:"total_assets"`
	Evaluation          string             `json:"evaluation"`
	ForeignStocks       []holdingDTO       `json:"foreign_stocks"`
	DomesticStocks      []holdingDTO       `json:"domestic_stocks"`
	Cryptocurrency      []holdingDTO       `json:"cryptocurrency"`
	Cash                cashDTO            `json:"cash"`
	Trades              string             `json:"trades,omitempty"`
	MarketIssues        string             `json:"market_issues,omitempty"`
	Memo                string             `json:"memo,omitempty"`
	PsychologyCheck     psychologyDTO      `json:"psychology_check"`
	BullMarketChecklist []checklistItemDTO `json:"bull_market_checklist"`
	BearMarketChecklist []checklistItemDTO `json:"bear_market_checklist"`
	CreatedAt           string             `json:"created_at"`
	UpdatedAt           string             `json:"updated_at"`
}

type profileRequest struct {
	Nickname    string `json:"nickname" binding:"required"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	IsPublic    bool   `json:"is_public"`
}

type profileResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Nickname    string `json:"nickname"`
	DisplayName string `json:"display_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	IsPublic    bool   `json:"is_public"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type chartPointResponse struct {
	Date             string  `json:"date"`
	TotalAssets      string  `json:"total_assets"`
	PercentChange    string  `json:"percent_change"`
	BenchmarkPercent *string `json:"benchmark_percent,omitempty"`
	Memo             string  `json:"memo,omitempty"`
	MarketIssues     string  `json:"market_issues,omitempty"`
}

type chartResponse struct {
	Window             string               `json:"window"`
	Points             []chartPointResponse `json:"points"`
	BenchmarkAvailable bool                 `json:"benchmark_available"`
}

type searchResultResponse struct {
	Journal journalResponse `json:"journal"`
	Profile profileResponse `json:"user_profile"`
}

func journalInput(req journalRequest) journal.Input {
	return journal.Input{
		Date:           req.Date,
		Evaluation:     req.Evaluation,
		ForeignStocks:  holdingsFromDTO(req.ForeignStocks),
		DomesticStocks: holdingsFromDTO(req.DomesticStocks),
		Crypto:         holdingsFromDTO(req.Cryptocurrency),
		Cash:           domain.CashHolding{KRW: req.Cash.KRW, USD: req.Cash.USD},
		Trades:         req.Trades,
		MarketIssues:   req.MarketIssues,
		Memo:           req.Memo,
		Psychology: domain.PsychologySnapshot{
			FearGreedIndex:   req.PsychologyCheck.FearGreedIndex,
			ConfidenceLevel:  req.PsychologyCheck.ConfidenceLevel,
			M2MoneySupply:    req.PsychologyCheck.M2MoneySupply,
			MarginDebt:       req.PsychologyCheck.MarginDebt,
			MarginRatio:      req.PsychologyCheck.MarginRatio,
			MarketSentiments: req.PsychologyCheck.MarketSentiments,
		},
		BullChecklist: checklistFromDTO(req.BullMarketChecklist),
		BearChecklist: checklistFromDTO(req.BearMarketChecklist),
	}
}

func journalToResponse(rec *domain.JournalRecord) journalResponse {
	return journalResponse{
		ID:             rec.ID.String(),
		UserID:         rec.UserID.String(),
		Date:           rec.Date,
		TotalAssets:    rec.TotalAssets.String(),
		Evaluation:     rec.Evaluation.String(),
		ForeignStocks:  holdingsToDTO(rec.ForeignStocks),
		DomesticStocks: holdingsToDTO(rec.DomesticStocks),
		Cryptocurrency: holdingsToDTO(rec.Crypto),
		Cash:           cashDTO{KRW: rec.Cash.KRW, USD: rec.Cash.USD},
		Trades:         rec.Trades,
		MarketIssues:   rec.MarketIssues,
		Memo:           rec.Memo,
		PsychologyCheck: psychologyDTO{
			FearGreedIndex:   rec.Psychology.FearGreedIndex,
			ConfidenceLevel:  rec.Psychology.ConfidenceLevel,
			M2MoneySupply:    rec.Psychology.M2MoneySupply,
			MarginDebt:       rec.Psychology.MarginDebt,
			MarginRatio:      rec.Psychology.MarginRatio,
			MarketSentiments: rec.Psychology.MarketSentiments,
		},
		BullMarketChecklist: checklistToDTO(rec.BullChecklist),
		BearMarketChecklist: checklistToDTO(rec.BearChecklist),
		CreatedAt:           rec.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:           rec.UpdatedAt.UTC().Format(timeLayout),
	}
}

func profileToResponse(p *domain.UserProfile) profileResponse {
	return profileResponse{
		ID:          p.ID.String(),
		UserID:      p.UserID.String(),
		Nickname:    p.Nickname,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		IsPublic:    p.IsPublic,
		CreatedAt:   p.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:   p.UpdatedAt.UTC().Format(timeLayout),
	}
}

func chartToResponse(out *chart.AssetChart) chartResponse {
	points := make([]chartPointResponse, 0, len(out.Points))
	for _, p := range out.Points {
		point := chartPointResponse{
			Date:          p.Date,
			TotalAssets:   p.TotalAssets.String(),
			PercentChange: p.PercentChange.StringFixed(2),
			Memo:          p.Memo,
			MarketIssues:  p.MarketIssues,
		}
		if p.BenchmarkPercent != nil {
			fixed := p.BenchmarkPercent.StringFixed(2)
			point.BenchmarkPercent = &fixed
		}
		points = append(points, point)
	}
	return chartResponse{
		Window:             string(out.Window),
		Points:             points,
		BenchmarkAvailable: out.BenchmarkAvailable,
	}
}

func searchResultsToResponse(results []search.Result) []searchResultResponse {
	out := make([]searchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, searchResultResponse{
			Journal: journalToResponse(r.Journal),
			Profile: profileToResponse(r.Profile),
		})
	}
	return out
}

func holdingsFromDTO(dtos []holdingDTO) []domain.HoldingLine {
	lines := make([]domain.HoldingLine, 0, len(dtos))
	for _, d := range dtos {
		lines = append(lines, domain.HoldingLine{Symbol: d.Symbol, UnitPrice: d.Price, Quantity: d.Quantity})
	}
	return lines
}

func holdingsToDTO(lines []domain.HoldingLine) []holdingDTO {
	dtos := make([]holdingDTO, 0, len(lines))
	for _, line := range lines {
		dtos = append(dtos, holdingDTO{Symbol: line.Symbol, Price: line.UnitPrice, Quantity: line.Quantity})
	}
	return dtos
}

func checklistFromDTO(dtos []checklistItemDTO) []domain.ChecklistItem {
	items := make([]domain.ChecklistItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, domain.ChecklistItem(d))
	}
	return items
}

func checklistToDTO(items []domain.ChecklistItem) []checklistItemDTO {
	dtos := make([]checklistItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, checklistItemDTO(item))
	}
	return dtos
}
