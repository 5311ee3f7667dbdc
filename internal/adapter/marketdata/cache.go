package marketdata

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"github.com/minsukang/investlog-backend/internal/domain"
)

const (
	rateCacheKey   = "fx:usdkrw"
	rateCacheTTL   = 5 * time.Minute
	seriesCacheTTL = 24 * time.Hour
)

// CachedRates decorates a RateSource with a short-lived Redis cache.
// Cache failures degrade to a direct fetch, never to an error.
type CachedRates struct {
	source domain.RateSource
	rdb    *redis.Client
}

// NewCachedRates creates a caching decorator around source.
func NewCachedRates(source domain.RateSource, rdb *redis.Client) *CachedRates {
	return &CachedRates{source: source, rdb: rdb}
}

// USDKRW returns the cached rate when fresh, otherwise fetches and caches it.
func (c *CachedRates) USDKRW(ctx context.Context) (decimal.Decimal, error) {
	if cached, err := c.rdb.Get(ctx, rateCacheKey).Result(); err == nil {
		if rate, err := decimal.NewFromString(cached); err == nil {
			return rate, nil
		}
	}

	rate, err := c.source.USDKRW(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	if err := c.rdb.Set(ctx, rateCacheKey, rate.String(), rateCacheTTL).Err(); err != nil {
		log.Printf("failed to cache fx rate: %v", err)
	}

	return rate, nil
}

// CachedBenchmark decorates a BenchmarkSource with a daily Redis cache, since
// the upstream daily series only changes once per trading day and the API is
// aggressively rate-limited.
type CachedBenchmark struct {
	source domain.BenchmarkSource
	rdb    *redis.Client
	key    string
}

// NewCachedBenchmark creates a caching decorator around source for the given
// benchmark symbol.
func NewCachedBenchmark(source domain.BenchmarkSource, rdb *redis.Client, symbol string) *CachedBenchmark {
	if symbol == "" {
		symbol = defaultBenchmarkSymbol
	}
	return &CachedBenchmark{source: source, rdb: rdb, key: "benchmark:" + symbol + ":daily"}
}

// DailyCloses returns the cached series when present, otherwise fetches and
// caches it. Only successful fetches are cached; an unavailable series is
// retried on the next call.
func (c *CachedBenchmark) DailyCloses(ctx context.Context) (domain.ReferenceSeries, error) {
	if cached, err := c.rdb.Get(ctx, c.key).Result(); err == nil {
		var series domain.ReferenceSeries
		if err := json.Unmarshal([]byte(cached), &series); err == nil && len(series) > 0 {
			return series, nil
		}
	}

	series, err := c.source.DailyCloses(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(series); err == nil {
		if err := c.rdb.Set(ctx, c.key, raw, seriesCacheTTL).Err(); err != nil {
			log.Printf("failed to cache benchmark series: %v", err)
		}
	}

	return series, nil
}
