package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"news-indexer/domain"
	"news-indexer/usecase"
)

type recordingIngestor struct {
	mu       sync.Mutex
	articles []domain.Article
	status   usecase.IngestStatus
}

func (r *recordingIngestor) Execute(ctx context.Context, article domain.Article) (usecase.IngestStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles = append(r.articles, article)
	return r.status, nil
}

func listingPage(detailURL string) string {
	return fmt.Sprintf(`<html><body>
<div class="body-post clear">
  <a class="story-link" href="%s">
    <h2 class="home-title">Critical Flaw Discovered</h2>
    <div class="home-desc">Teaser text.</div>
    <span class="h-datetime">&#xf017;Nov 05, 2024</span>
    <span class="h-tags">Vulnerability</span>
    <div class="home-img"><img src="https://cdn.example.com/img.png"/></div>
  </a>
</div>
</body></html>`, detailURL)
}

const detailPage = `<html><body>
<div class="articlebody clear cf">
  <p>First paragraph of the full article.</p>
  <p>Second paragraph with details.</p>
</div>
</body></html>`

func TestSpiderRun(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingPage(srv.URL + "/2024/11/critical-flaw.html")))
	})
	mux.HandleFunc("/2024/11/critical-flaw.html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(detailPage))
	})

	ingest := &recordingIngestor{status: usecase.StatusInserted}
	spider := NewSpider(Config{
		StartURL:       srv.URL + "/",
		AllowedDomains: []string{"127.0.0.1"},
		UserAgent:      "test-agent",
		Parallelism:    2,
		MaxPages:       1,
	}, ingest, slog.New(slog.DiscardHandler))

	stats, err := spider.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Discovered != 1 {
		t.Errorf("discovered = %d, want 1", stats.Discovered)
	}
	if stats.Inserted != 1 {
		t.Errorf("inserted = %d, want 1", stats.Inserted)
	}

	ingest.mu.Lock()
	defer ingest.mu.Unlock()
	if len(ingest.articles) != 1 {
		t.Fatalf("ingested %d articles, want 1", len(ingest.articles))
	}

	article := ingest.articles[0]
	if article.Title != "Critical Flaw Discovered" {
		t.Errorf("title = %q", article.Title)
	}
	if !strings.Contains(article.Content, "First paragraph") || !strings.Contains(article.Content, "Second paragraph") {
		t.Errorf("content = %q, want joined body paragraphs", article.Content)
	}
	if len(article.Tags) != 1 || article.Tags[0] != "Vulnerability" {
		t.Errorf("tags = %v", article.Tags)
	}
	if article.ImageURL != "https://cdn.example.com/img.png" {
		t.Errorf("image url = %q", article.ImageURL)
	}

	wantDate := time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	if article.Date != wantDate {
		t.Errorf("date = %q, want %q", article.Date, wantDate)
	}
}

func TestSpiderSkipsRelativeLinks(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingPage("#fragment")))
	})

	ingest := &recordingIngestor{status: usecase.StatusInserted}
	spider := NewSpider(Config{
		StartURL:       srv.URL + "/",
		AllowedDomains: []string{"127.0.0.1"},
		UserAgent:      "test-agent",
		Parallelism:    1,
		MaxPages:       1,
	}, ingest, slog.New(slog.DiscardHandler))

	stats, err := spider.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Discovered != 0 {
		t.Errorf("discovered = %d, want 0", stats.Discovered)
	}
}

func TestParseListingDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain display date", raw: "Nov 05, 2024", want: "2024-11-05T00:00:00Z"},
		{name: "icon glyph prefix", raw: "\ufeffNov 05, 2024", want: "2024-11-05T00:00:00Z"},
		{name: "unparseable passthrough", raw: "last tuesday-ish", want: "last tuesday-ish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseListingDate(tt.raw); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
