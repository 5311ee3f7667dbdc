package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	httpadapter "github.com/minsukang/investlog-backend/internal/adapter/http"
	"github.com/minsukang/investlog-backend/internal/adapter/marketdata"
	"github.com/minsukang/investlog-backend/internal/adapter/repository/postgres"
	"github.com/minsukang/investlog-backend/internal/domain"
	"github.com/minsukang/investlog-backend/internal/usecase/chart"
	"github.com/minsukang/investlog-backend/internal/usecase/journal"
	"github.com/minsukang/investlog-backend/internal/usecase/profile"
	"github.com/minsukang/investlog-backend/internal/usecase/search"
)

const (
	defaultAPIToken  = "dev-token"
	defaultHTTPPort  = "8080"
	defaultBenchmark = "SPY"

	shutdownTimeout = 10 * time.Second
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// 1. Setup Database
	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		user := envOr("DB_USER", "postgres")
		password := envOr("DB_PASSWORD", "postgres")
		dbname := envOr("DB_NAME", "investlog")

		dbConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	db, err := postgres.NewDB(dbConnStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to apply database schema: %v", err)
	}

	// 2. Initialize Repositories (Postgres)
	journalRepo := postgres.NewJournalRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	// 3. Market data sources, cached in Redis when available
	rates, benchmark := buildMarketData()

	// 4. Initialize Services (Use Cases)
	journalService := journal.NewService(journalRepo, rates)
	chartService := chart.NewService(journalRepo, rates, benchmark)
	searchService := search.NewService(journalRepo, profileRepo)
	profileService := profile.NewService(profileRepo)

	// 5. Start HTTP Server
	apiToken := envOr("API_TOKEN", defaultAPIToken)
	addr := ":" + envOr("HTTP_PORT", defaultHTTPPort)

	server := httpadapter.NewServer(journalService, chartService, searchService, profileService, rates, apiToken)
	srv := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(srv)
}

// buildMarketData wires the exchange rate and benchmark sources. Redis is
// optional; without it every request hits the upstream APIs directly.
func buildMarketData() (domain.RateSource, domain.BenchmarkSource) {
	symbol := envOr("BENCHMARK_SYMBOL", defaultBenchmark)

	var rates domain.RateSource = marketdata.NewYahooExchanger()
	var benchmark domain.BenchmarkSource = marketdata.NewAlphaVantageClient(os.Getenv("ALPHAVANTAGE_API_KEY"), symbol)

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Println("REDIS_ADDR not set; market data caching disabled")
		return rates, benchmark
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unreachable at %s, caching disabled: %v", redisAddr, err)
		return rates, benchmark
	}

	return marketdata.NewCachedRates(rates, rdb), marketdata.NewCachedBenchmark(benchmark, rdb, symbol)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
