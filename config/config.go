package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Meilisearch MeilisearchConfig
	HTTP        HTTPConfig
	Crawler     CrawlerConfig
	Summarizer  SummarizerConfig
}

type MeilisearchConfig struct {
	Host       string
	APIKey     string
	IndexName  string
	Timeout    time.Duration
	MaxRetries int
}

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
}

type CrawlerConfig struct {
	Enabled        bool
	StartURL       string
	AllowedDomains []string
	UserAgent      string
	Parallelism    int
	Delay          time.Duration
	Interval       time.Duration
	MaxPages       int
}

type SummarizerConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Meilisearch: MeilisearchConfig{
			Host:       getEnvRequired("MEILISEARCH_HOST"),
			APIKey:     getEnvOrDefault("MEILISEARCH_API_KEY", ""),
			IndexName:  getEnvOrDefault("MEILISEARCH_INDEX", "cybernews"),
			Timeout:    15 * time.Second,
			MaxRetries: getEnvInt("MEILISEARCH_MAX_RETRIES", 5),
		},
		HTTP: HTTPConfig{
			Addr:              getEnvOrDefault("HTTP_ADDR", ":8010"),
			ReadHeaderTimeout: 5 * time.Second,
		},
		Crawler: CrawlerConfig{
			Enabled:        getEnvBool("CRAWLER_ENABLED", true),
			StartURL:       getEnvOrDefault("CRAWLER_START_URL", "https://thehackernews.com/"),
			AllowedDomains: splitCSV(getEnvOrDefault("CRAWLER_ALLOWED_DOMAINS", "thehackernews.com")),
			UserAgent:      getEnvOrDefault("CRAWLER_USER_AGENT", "Mozilla/5.0 (compatible; news-indexer/1.0)"),
			Parallelism:    getEnvInt("CRAWLER_PARALLELISM", 4),
			Delay:          getEnvDuration("CRAWLER_DELAY", 1*time.Second),
			Interval:       getEnvDuration("CRAWLER_INTERVAL", 30*time.Minute),
			MaxPages:       getEnvInt("CRAWLER_MAX_PAGES", 3),
		},
		Summarizer: SummarizerConfig{
			BaseURL: getEnvOrDefault("SUMMARIZER_BASE_URL", "https://api.aimlapi.com/v1"),
			APIKey:  getEnvOrDefault("SUMMARIZER_API_KEY", ""),
			Model:   getEnvOrDefault("SUMMARIZER_MODEL", "mistralai/Mistral-7B-Instruct-v0.2"),
		},
	}

	slog.Info("Configuration loaded",
		"meilisearch_host", cfg.Meilisearch.Host,
		"index", cfg.Meilisearch.IndexName,
		"http_addr", cfg.HTTP.Addr,
		"crawler_enabled", cfg.Crawler.Enabled,
	)

	return cfg, nil
}

func getEnvRequired(key string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid integer environment variable, using default", "key", key, "value", raw)
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("invalid duration environment variable, using default", "key", key, "value", raw)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid boolean environment variable, using default", "key", key, "value", raw)
		return defaultValue
	}
	return value
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
