package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/minsukang/investlog-backend/internal/domain"
)

// TotalValue values a single journal record in KRW at the given USD-to-KRW
// exchange rate:
//
//	total = Σ(foreign p×q)×rate + Σ(domestic p×q) + Σ(crypto p×q)×rate
//	      + cash.KRW + cash.USD×rate
//
// Foreign stocks and crypto are USD-denominated; domestic stocks and KRW cash
// need no conversion. Zero-valued fields contribute zero and negative
// quantities or prices pass through uncorrected. No rounding happens here:
// flooring to whole KRW is a display/persist concern, applied only at the
// final step to avoid compounding rounding error across holding types.
func TotalValue(rec *domain.JournalRecord, rate decimal.Decimal) decimal.Decimal {
	total := sumLines(rec.ForeignStocks).Mul(rate)
	total = total.Add(sumLines(rec.DomesticStocks))
	total = total.Add(sumLines(rec.Crypto).Mul(rate))
	total = total.Add(rec.Cash.KRW)
	total = total.Add(rec.Cash.USD.Mul(rate))
	return total
}

// sumLines sums price×quantity over a holdings list.
func sumLines(lines []domain.HoldingLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.UnitPrice.Mul(line.Quantity))
	}
	return sum
}
