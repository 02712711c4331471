package crawler

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"
	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"

	"news-indexer/domain"
	"news-indexer/usecase"
)

// Ingestor consumes fully enriched article records.
type Ingestor interface {
	Execute(ctx context.Context, article domain.Article) (usecase.IngestStatus, error)
}

// Config controls one crawl traversal.
type Config struct {
	StartURL       string
	AllowedDomains []string
	UserAgent      string
	Parallelism    int
	Delay          time.Duration
	MaxPages       int
}

// Spider crawls the news site's listing pages, follows each article's detail
// link to enrich the record with its full body, and hands the result to the
// ingestion pipeline. Detail fetches for distinct articles run concurrently;
// a failed fetch drops only that record.
type Spider struct {
	cfg    Config
	ingest Ingestor
	log    *slog.Logger
}

func NewSpider(cfg Config, ingest Ingestor, log *slog.Logger) *Spider {
	return &Spider{cfg: cfg, ingest: ingest, log: log}
}

// RunStats summarizes one crawl traversal.
type RunStats struct {
	Discovered int
	Inserted   int
	Skipped    int
	Failed     int
}

// Run performs one full traversal starting from the configured listing page.
// Collectors are rebuilt per run so repeated runs revisit the same pages.
func (s *Spider) Run(ctx context.Context) (*RunStats, error) {
	runID := uuid.NewString()
	stats := &RunStats{}
	var mu sync.Mutex
	pagesFollowed := 0

	listing := colly.NewCollector(
		colly.AllowedDomains(s.cfg.AllowedDomains...),
		colly.UserAgent(s.cfg.UserAgent),
		colly.Async(true),
	)
	_ = listing.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: s.cfg.Parallelism,
		Delay:       s.cfg.Delay,
	})
	detail := listing.Clone()

	listing.OnHTML("div.body-post.clear", func(e *colly.HTMLElement) {
		article := parseListing(e)
		if !strings.HasPrefix(article.URL, "http") {
			return
		}

		mu.Lock()
		stats.Discovered++
		mu.Unlock()

		reqCtx := colly.NewContext()
		reqCtx.Put("article", &article)
		if err := detail.Request("GET", article.URL, nil, reqCtx, nil); err != nil {
			s.log.Warn("detail request failed", "run_id", runID, "url", article.URL, "err", err)
			mu.Lock()
			stats.Failed++
			mu.Unlock()
		}
	})

	listing.OnHTML("a.blog-pager-older-link-mobile", func(e *colly.HTMLElement) {
		mu.Lock()
		pagesFollowed++
		follow := pagesFollowed < s.cfg.MaxPages
		mu.Unlock()
		if follow {
			_ = e.Request.Visit(e.Attr("href"))
		}
	})

	detail.OnHTML("html", func(e *colly.HTMLElement) {
		carried, ok := e.Request.Ctx.GetAny("article").(*domain.Article)
		if !ok {
			return
		}

		content := extractBody(e.DOM)
		if content == "" {
			content = readabilityFallback(e.Response.Body, e.Request.URL)
		}
		if content == "" {
			s.log.Warn("enrichment produced no content, dropping record", "run_id", runID, "url", carried.URL)
			mu.Lock()
			stats.Failed++
			mu.Unlock()
			return
		}
		carried.Content = content

		status, err := s.ingest.Execute(ctx, *carried)
		if err != nil {
			s.log.Error("ingestion failed", "run_id", runID, "url", carried.URL, "err", err)
		}

		mu.Lock()
		switch status {
		case usecase.StatusInserted:
			stats.Inserted++
		case usecase.StatusSkippedDuplicate:
			stats.Skipped++
		default:
			stats.Failed++
		}
		mu.Unlock()
	})

	for _, c := range []*colly.Collector{listing, detail} {
		c.OnError(func(r *colly.Response, err error) {
			s.log.Warn("fetch failed", "run_id", runID, "url", r.Request.URL.String(), "status", r.StatusCode, "err", err)
			mu.Lock()
			stats.Failed++
			mu.Unlock()
		})
	}

	s.log.Info("crawl started", "run_id", runID, "start_url", s.cfg.StartURL)
	if err := listing.Visit(s.cfg.StartURL); err != nil {
		return stats, err
	}
	listing.Wait()
	detail.Wait()

	s.log.Info("crawl finished",
		"run_id", runID,
		"discovered", stats.Discovered,
		"inserted", stats.Inserted,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return stats, nil
}

// parseListing extracts the partial article record from one listing entry.
// The body is only the teaser here; enrichment replaces it with the detail
// page's full text.
func parseListing(e *colly.HTMLElement) domain.Article {
	return domain.Article{
		Title:    strings.TrimSpace(e.ChildText("h2.home-title")),
		Content:  strings.TrimSpace(e.ChildText("div.home-desc")),
		Date:     parseListingDate(e.ChildText("span.h-datetime")),
		Tags:     e.ChildTexts("span.h-tags"),
		URL:      e.ChildAttr("a.story-link", "href"),
		ImageURL: e.ChildAttr("div.home-img img", "src"),
		Entities: []map[string]any{},
		Ngrams:   []string{},
	}
}

// parseListingDate converts the listing's display date ("Nov 05, 2024") to
// ISO-8601. The raw text carries a leading icon glyph on some layouts.
// Unparseable input passes through so the record is still stored.
func parseListingDate(raw string) string {
	raw = strings.TrimSpace(strings.TrimLeft(raw, "\uf017\ufeff\u00a0 "))
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(time.RFC3339)
}

// extractBody joins the article body paragraphs from the detail page.
func extractBody(root *goquery.Selection) string {
	var paragraphs []string
	root.Find("div.articlebody.clear.cf p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, " ")
}

// readabilityFallback extracts the main text when the body selector finds
// nothing, which happens when the site reworks its detail markup.
func readabilityFallback(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.TextContent)
}
