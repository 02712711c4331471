package domain

import (
	"strings"

	"github.com/araddon/dateparse"
)

const (
	CategoryFinance   = "finance"
	CategoryTechnical = "technical"
	CategoryGeneral   = "general"

	descriptionLimit  = 200
	sourceLabel       = "The Hacker News"
	placeholderImage  = "/placeholder.svg?height=100&width=200"
	dateDisplayLayout = "January 02, 2006 03:04 PM"
	svgDataURIPrefix  = "data:image/svg+xml;base64,"
)

// technicalTags are the exact tag values that classify an article as
// technical. The finance check runs first and wins on ties.
var technicalTags = map[string]struct{}{
	"tech":          {},
	"vulnerability": {},
	"security":      {},
	"ai":            {},
}

// ArticleView is the canonical, display-ready projection returned by the
// query endpoints. It is recomputed on every query and never persisted.
type ArticleView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Sources     []string  `json:"sources"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Rating      float64   `json:"rating"`
	Comments    []Comment `json:"comments"`
	URL         string    `json:"url"`
}

type Comment struct {
	ID      int    `json:"id"`
	User    string `json:"user"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// NewArticleView projects a stored document onto the client-facing shape.
// Every field has a defined fallback; this function never fails, whatever
// the document looks like.
func NewArticleView(doc StoredDocument) ArticleView {
	tags := NormalizeTags(doc.Tags.String())
	return ArticleView{
		ID:          doc.ID.String(),
		Title:       doc.Title.String(),
		Description: TruncateDescription(doc.Content.String()),
		Date:        FormatDisplayDate(doc.Date.String()),
		Sources:     []string{sourceLabel},
		Image:       ResolveImage(doc.ImageURL.String()),
		Category:    InferCategory(tags),
		Tags:        tags,
		Rating:      0,
		Comments:    []Comment{},
		URL:         doc.URL.String(),
	}
}

// NormalizeTags turns the extracted tag value into a flat slice of trimmed
// strings. Legacy records store all tags as one slash-delimited string.
func NormalizeTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	if !strings.Contains(raw, "/") {
		return []string{raw}
	}
	parts := strings.Split(raw, "/")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// TruncateDescription keeps the first 200 characters of the content. The
// ellipsis marker is appended only for non-empty content; empty content
// yields an empty description.
func TruncateDescription(content string) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	if len(runes) > descriptionLimit {
		runes = runes[:descriptionLimit]
	}
	return string(runes) + "..."
}

// FormatDisplayDate reformats an ISO-8601 date into its long human-readable
// form. Unparseable input passes through unchanged rather than raising.
func FormatDisplayDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	return t.Format(dateDisplayLayout)
}

// ResolveImage returns a safe image URL. Embedded base64 SVG payloads are
// rejected as display-unsafe and replaced with the fixed placeholder, as is
// an absent value.
func ResolveImage(raw string) string {
	if raw == "" || strings.HasPrefix(raw, svgDataURIPrefix) {
		return placeholderImage
	}
	return raw
}

// InferCategory classifies an article from its normalized tags. First match
// wins: any tag containing "financ" is finance, then any exact technical
// tag, then general.
func InferCategory(tags []string) string {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), "financ") {
			return CategoryFinance
		}
	}
	for _, t := range tags {
		if _, ok := technicalTags[strings.ToLower(t)]; ok {
			return CategoryTechnical
		}
	}
	return CategoryGeneral
}
