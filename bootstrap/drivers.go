package bootstrap

import (
	"context"
	"fmt"
	"time"

	"news-indexer/config"
	"news-indexer/logger"

	"github.com/meilisearch/meilisearch-go"
)

// initMeilisearchClient initializes the Meilisearch client with retry logic.
func initMeilisearchClient(ctx context.Context, cfg *config.Config) (meilisearch.ServiceManager, error) {
	host := cfg.Meilisearch.Host
	if host == "" {
		return nil, fmt.Errorf("MEILISEARCH_HOST environment variable is not set")
	}

	logger.Logger.Info("Connecting to Meilisearch", "host", host)

	msClient := meilisearch.New(host, meilisearch.WithAPIKey(cfg.Meilisearch.APIKey))

	bo := newRetryBackoff()
	for attempt := 1; ; attempt++ {
		_, healthErr := msClient.Health()
		if healthErr == nil {
			logger.Logger.Info("Connected to Meilisearch successfully")
			return msClient, nil
		}

		if attempt >= cfg.Meilisearch.MaxRetries {
			return nil, fmt.Errorf("failed to connect to Meilisearch after %d attempts: %w", attempt, healthErr)
		}

		delay := bo.NextBackOff()
		logger.Logger.Warn("Meilisearch not ready, retrying",
			"attempt", attempt,
			"max", cfg.Meilisearch.MaxRetries,
			"retry_in", delay,
			"err", healthErr,
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
