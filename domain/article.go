package domain

import (
	"github.com/araddon/dateparse"
)

// Article is the record produced by a crawl discovery. It is enriched once
// with the detail-page body, then persisted at most once (or skipped as a
// duplicate). Entities and Ngrams are auxiliary enrichment fields the core
// passes through untouched.
type Article struct {
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Date     string           `json:"date"`
	Tags     []string         `json:"tags"`
	URL      string           `json:"url"`
	ImageURL string           `json:"image_url"`
	Entities []map[string]any `json:"entities"`
	Ngrams   []string         `json:"ngrams"`
}

// PublishedUnix resolves the publication timestamp from the ISO-8601 date
// string. Returns 0 when the date is absent or unparseable.
func (a Article) PublishedUnix() int64 {
	if a.Date == "" {
		return 0
	}
	t, err := dateparse.ParseAny(a.Date)
	if err != nil {
		return 0
	}
	return t.Unix()
}
