package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"metaldash/internal/config"
	"metaldash/internal/history"
	"metaldash/internal/httpx"
	"metaldash/internal/pricefeed"
	"metaldash/internal/provider"
	"metaldash/internal/provider/fmp"
	"metaldash/internal/provider/fmpadapter"
	"metaldash/internal/provider/ratelimit"
	"metaldash/internal/provider/yahoochart"
	"metaldash/internal/provider/yahooquote"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

	byKey := map[string]provider.PriceProvider{}
	if cfg.FMP.Enabled {
		if cfg.FMP.APIKey == "" {
			log.Warn("fmp enabled but FMP_API_KEY not set; provider will report unavailable")
		}
		client := fmp.NewClient(cfg.FMP.APIKey,
			fmp.WithBaseURL(cfg.FMP.BaseURL),
			fmp.WithHTTPClient(httpClient.HTTP),
			fmp.WithHeader(http.Header{"User-Agent": []string{httpClient.UserAgent}}),
		)
		adapter := fmpadapter.New(fmpadapter.Config{APIKey: cfg.FMP.APIKey}, client, log)
		byKey["fmp"] = limited(adapter, cfg.FMP.MaxRequestsPerMinute, cfg.FMP.Burst, cfg.FMP.MinRequestIntervalSec)
	}
	if cfg.YahooQuote.Enabled {
		p := yahooquote.New(yahooquote.Config{BaseURL: cfg.YahooQuote.BaseURL}, httpClient, log)
		byKey["yahoo"] = limited(p, cfg.YahooQuote.MaxRequestsPerMinute, cfg.YahooQuote.Burst, cfg.YahooQuote.MinRequestIntervalSec)
	}

	// the chart provider serves both latest-quote fallback and history
	chart := yahoochart.New(yahoochart.Config{
		BaseURL:        cfg.YahooChart.BaseURL,
		MaxConcurrency: cfg.YahooChart.MaxConcurrency,
	}, httpClient, log)
	if cfg.YahooChart.Enabled {
		byKey["yahoo-direct"] = limited(chart, cfg.YahooChart.MaxRequestsPerMinute, cfg.YahooChart.Burst, cfg.YahooChart.MinRequestIntervalSec)
	}

	chain := pricefeed.Chain(cfg.Feed.Preferred, cfg.Feed.EnableFallback, byKey, pricefeed.DefaultOrder, log)
	feed := pricefeed.NewCache(
		pricefeed.NewService(chain, log),
		time.Duration(cfg.Feed.CacheTTLSec)*time.Second,
	)

	histTTL := time.Duration(cfg.Feed.HistoryCacheTTLSec) * time.Second
	a := &app{
		feed:      feed,
		history:   history.NewService(chart, log),
		histCache: gocache.New(histTTL, 2*histTTL),
		log:       log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("GET /metals", a.handleMetals)
	mux.HandleFunc("GET /metals/{id}/history", a.handleHistory)
	mux.HandleFunc("GET /news", a.handleNews)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           withJSONHeaders(withGzip(recoverPanic(mux, log))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server", zap.Error(err))
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// limited wraps p in a rate limiter. Token bucket with burst when an RPM cap
// is set, otherwise a minimum interval, otherwise bare.
func limited(p provider.PriceProvider, rpm, burst, minIntervalSec int) provider.PriceProvider {
	if rpm > 0 {
		if burst <= 0 {
			burst = 1
		}
		return &ratelimit.TokenBucketProvider{P: p, TB: ratelimit.NewTokenBucket(float64(rpm)/60.0, burst)}
	}
	if minIntervalSec > 0 {
		return &ratelimit.MinInterval{P: p, Interval: time.Duration(minIntervalSec) * time.Second}
	}
	return p
}
