package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minsukang/investlog-backend/internal/domain"
)

const (
	alphaVantageBaseURL    = "https://www.alphavantage.co"
	defaultBenchmarkSymbol = "SPY"
)

// ErrRateLimited signals that Alpha Vantage rejected the call with a usage
// note instead of data. Treated as benchmark-unavailable upstream.
var ErrRateLimited = errors.New("alpha vantage rate limit or information note")

// AlphaVantageClient fetches the benchmark index's daily closing series from
// the Alpha Vantage TIME_SERIES_DAILY endpoint. It implements
// domain.BenchmarkSource.
type AlphaVantageClient struct {
	apiKey  string
	symbol  string
	baseURL string
	cli     *http.Client
}

// NewAlphaVantageClient creates a client for the given API key and benchmark
// symbol. An empty symbol defaults to SPY.
func NewAlphaVantageClient(apiKey, symbol string) *AlphaVantageClient {
	if symbol == "" {
		symbol = defaultBenchmarkSymbol
	}
	return &AlphaVantageClient{
		apiKey:  apiKey,
		symbol:  symbol,
		baseURL: alphaVantageBaseURL,
		cli:     &http.Client{Timeout: 8 * time.Second},
	}
}

type alphaVantageResponse struct {
	Note            string `json:"Note"`
	Information     string `json:"Information"`
	TimeSeriesDaily map[string]struct {
		Open   string `json:"1. open"`
		High   string `json:"2. high"`
		Low    string `json:"3. low"`
		Close  string `json:"4. close"`
		Volume string `json:"5. volume"`
	} `json:"Time Series (Daily)"`
}

// DailyCloses returns the benchmark's date -> close mapping.
// All failure modes collapse into errors wrapping
// domain.ErrBenchmarkUnavailable so callers can disable the overlay with a
// single errors.Is check.
func (c *AlphaVantageClient) DailyCloses(ctx context.Context) (domain.ReferenceSeries, error) {
	url := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&symbol=%s&outputsize=full&apikey=%s",
		c.baseURL, c.symbol, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, unavailable(err)
	}
	req.Header.Set("User-Agent", "investlog-backend/1.0")

	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unavailable(fmt.Errorf("alphavantage http %d", resp.StatusCode))
	}

	var raw alphaVantageResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, unavailable(err)
	}
	if raw.Note != "" || raw.Information != "" {
		return nil, unavailable(ErrRateLimited)
	}
	if len(raw.TimeSeriesDaily) == 0 {
		return nil, unavailable(errors.New("empty daily series"))
	}

	series := make(domain.ReferenceSeries, len(raw.TimeSeriesDaily))
	for date, day := range raw.TimeSeriesDaily {
		closePrice, err := decimal.NewFromString(day.Close)
		if err != nil || !closePrice.IsPositive() {
			continue // skip unparseable entries rather than failing the series
		}
		series[date] = closePrice
	}
	if len(series) == 0 {
		return nil, unavailable(errors.New("no parseable closes in daily series"))
	}

	return series, nil
}

func unavailable(cause error) error {
	return fmt.Errorf("%w: %v", domain.ErrBenchmarkUnavailable, cause)
}
