package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const yahooBaseURL = "https://query2.finance.yahoo.com"

// YahooExchanger fetches the current USD-to-KRW rate from the Yahoo chart v8
// endpoint (USDKRW=X). It implements domain.RateSource.
type YahooExchanger struct {
	baseURL string
	cli     *http.Client
}

// NewYahooExchanger creates a new Yahoo FX client.
func NewYahooExchanger() *YahooExchanger {
	return &YahooExchanger{
		baseURL: yahooBaseURL,
		cli:     &http.Client{Timeout: 8 * time.Second},
	}
}

// USDKRW returns how many KRW one USD buys right now.
func (y *YahooExchanger) USDKRW(ctx context.Context) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/USDKRW=X?interval=1h&range=1d", y.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("User-Agent", "investlog-backend/1.0")

	resp, err := y.cli.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("yahoo fx http %d", resp.StatusCode)
	}

	var raw struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice float64 `json:"regularMarketPrice"`
				} `json:"meta"`
			} `json:"result"`
		} `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return decimal.Zero, err
	}
	if len(raw.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("fx rate not found")
	}

	rate := decimal.NewFromFloat(raw.Chart.Result[0].Meta.RegularMarketPrice)
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid fx rate %s", rate)
	}

	return rate, nil
}
