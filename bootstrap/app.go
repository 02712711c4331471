package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"news-indexer/config"
	"news-indexer/crawler"
	"news-indexer/driver"
	"news-indexer/gateway"
	"news-indexer/logger"
	"news-indexer/telemetry"
	"news-indexer/usecase"

	"github.com/cenkalti/backoff/v5"
	"github.com/labstack/echo/v4"
)

// App holds all components of the news-indexer service.
type App struct {
	echo         *echo.Echo
	addr         string
	otelShutdown telemetry.ShutdownFunc
}

// Run initializes all components and starts the service. It blocks until ctx
// is cancelled, then performs graceful shutdown. With reconcileOnly set it
// runs the duplicate reconciliation sweep once and exits instead.
func Run(ctx context.Context, reconcileOnly bool) error {
	// ── OpenTelemetry ──
	otelCfg := telemetry.ConfigFromEnv()
	otelShutdown, err := telemetry.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("Starting news-indexer",
		"service", otelCfg.ServiceName,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Load config ──
	appCfg, err := config.Load()
	if err != nil {
		logger.Logger.Error("Failed to load config", "err", err)
		return err
	}

	// ── Driver (infrastructure layer) ──
	msClient, err := initMeilisearchClient(ctx, appCfg)
	if err != nil {
		logger.Logger.Error("Failed to initialize Meilisearch", "err", err)
		return err
	}
	storeDriver := driver.NewMeilisearchDriver(msClient, appCfg.Meilisearch.IndexName)

	// ── Gateway (anti-corruption layer) ──
	store := gateway.NewDocumentStoreGateway(storeDriver)

	if err := store.EnsureIndex(ctx); err != nil {
		logger.Logger.Error("Failed to ensure index", "err", err)
		return err
	}

	// ── Use cases (application layer) ──
	ingestUsecase := usecase.NewIngestArticleUsecase(store, logger.Logger)
	listUsecase := usecase.NewListArticlesUsecase(store)
	getUsecase := usecase.NewGetArticleUsecase(store)
	reconcileUsecase := usecase.NewReconcileDuplicatesUsecase(store, logger.Logger)

	if reconcileOnly {
		result, err := reconcileUsecase.Execute(ctx)
		if err != nil {
			logger.Logger.Error("reconciliation failed", "err", err)
			return err
		}
		logger.Logger.Info("reconciliation complete",
			"duplicate_urls", result.DuplicateURLs,
			"deleted", result.Deleted,
		)
		return nil
	}

	var ready atomic.Bool

	// ── Crawler ──
	if appCfg.Crawler.Enabled {
		spider := crawler.NewSpider(crawler.Config{
			StartURL:       appCfg.Crawler.StartURL,
			AllowedDomains: appCfg.Crawler.AllowedDomains,
			UserAgent:      appCfg.Crawler.UserAgent,
			Parallelism:    appCfg.Crawler.Parallelism,
			Delay:          appCfg.Crawler.Delay,
			MaxPages:       appCfg.Crawler.MaxPages,
		}, ingestUsecase, logger.Logger)
		go runCrawlLoop(ctx, spider, appCfg.Crawler.Interval)
	} else {
		logger.Logger.Info("crawler disabled")
	}

	// ── HTTP server ──
	app := &App{
		echo:         newEchoServer(appCfg, listUsecase, getUsecase, ready.Load),
		addr:         appCfg.HTTP.Addr,
		otelShutdown: otelShutdown,
	}

	go func() {
		logger.Logger.Info("http listen", "addr", app.addr)
		if err := app.echo.Start(app.addr); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("http", "err", err)
		}
	}()
	ready.Store(true)

	// ── Wait for shutdown signal ──
	<-ctx.Done()
	app.shutdown()
	return nil
}

// shutdown performs graceful shutdown of all components.
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("http shutdown error", "err", err)
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := a.otelShutdown(otelCtx); err != nil {
		fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
	}
}

// newRetryBackoff creates an exponential backoff policy for crawl retries.
func newRetryBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 5 * time.Second
	bo.MaxInterval = 5 * time.Minute
	bo.Multiplier = 2
	return bo
}

// runCrawlLoop runs the crawler on a fixed interval. A failed run is retried
// with exponential backoff; one bad traversal never stops the loop.
func runCrawlLoop(ctx context.Context, spider *crawler.Spider, interval time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logger.Error("crawl loop panic", "err", r)
		}
	}()

	bo := newRetryBackoff()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		stats, err := spider.Run(ctx)
		if err != nil {
			delay := bo.NextBackOff()
			logger.Logger.Error("crawl error, retrying", "err", err, "retry_in", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
			continue
		}
		bo.Reset()

		logger.Logger.Info("crawl cycle done",
			"discovered", stats.Discovered,
			"inserted", stats.Inserted,
			"skipped", stats.Skipped,
			"failed", stats.Failed,
		)

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return
		}
	}
}
