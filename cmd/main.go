package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"internmatch/internal/adapters/catalog"
	"internmatch/internal/adapters/http/api"
	"internmatch/internal/adapters/http/site"
	"internmatch/internal/adapters/http/swagger"
	app "internmatch/internal/app"
	"internmatch/internal/config"
	"internmatch/internal/domain/filter"
	"internmatch/internal/domain/ranker"
	"internmatch/internal/domain/vectorizer"
	"internmatch/pkg/logger"
	"internmatch/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Load a local .env if present; real environments set variables directly.
	_ = godotenv.Load()

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create the recommendation service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithVectorizer(vectorizer.New(
			vectorizer.WithMaxFeatures(cfg.MaxFeatures),
			vectorizer.WithMinDocFreq(cfg.MinDocFreq),
			vectorizer.WithMaxDocFreqRatio(cfg.MaxDocFreqRatio),
		)),
		app.WithPipeline(filter.NewPipeline(filter.Default(cfg.EnrollmentRule))),
		app.WithRanker(ranker.New(
			ranker.WithDomainBoost(cfg.DomainBoost),
			ranker.WithDomainPenalty(cfg.DomainPenalty),
			ranker.WithRegularization(cfg.Regularization),
		)),
		app.WithTopKDefault(cfg.TopKDefault),
		app.WithMaxTopK(cfg.MaxTopK),
		app.WithFallbackPolicy(cfg.FallbackPolicy, cfg.FallbackSliceSize),
		app.WithBatchWorkers(cfg.BatchWorkers),
	)

	// Load the catalogs and fit the vector space before serving traffic.
	loader := catalog.New(catalog.WithLogger(loggerInstance))
	candidates, err := loader.LoadCandidates(ctx, cfg.CandidatesPath)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load candidate catalog", logger.String("path", cfg.CandidatesPath), logger.Error(err))
		return
	}
	opportunities, err := loader.LoadOpportunities(ctx, cfg.OpportunitiesPath)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load opportunity catalog", logger.String("path", cfg.OpportunitiesPath), logger.Error(err))
		return
	}
	if err := svc.Load(ctx, candidates, opportunities); err != nil {
		loggerInstance.Error(ctx, "failed to build recommendation snapshot", logger.Error(err))
		return
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register the API reference under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, cfg.MaxTopK, cfg.TopKDefault)
	apiServer.Register(ctx, mux)

	// Register the demo console last; it owns the catch-all root pattern.
	site.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
