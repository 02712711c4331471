package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	SortByDate      = "date"
	SortByRelevance = "relevance"

	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SearchParams are the raw, client-supplied listing parameters. Zero values
// mean "not provided".
type SearchParams struct {
	Tag       string
	Search    string
	StartDate string
	EndDate   string
	Sort      string
	Page      int
	Size      int
}

// SearchPlan is a single structured query against the document store. All
// constraints combine with AND; an empty plan is a match-all query.
type SearchPlan struct {
	Query    string
	Tag      string
	DateFrom int64 // unix seconds, inclusive; zero pair means no range
	DateTo   int64
	ByDate   bool // descending date order; false leaves engine relevance order
	Page     int64
	Size     int64
	Offset   int64
}

// BuildSearchPlan validates the parameters and translates them into one
// structured query. Rules:
//
//   - all provided filters combine with AND; none at all is match-all
//   - the date range applies only when both bounds are present and parse; a
//     single bound is ignored entirely rather than treated as open-ended
//   - sort=relevance only takes effect together with a search term,
//     otherwise it silently falls back to descending date order
func BuildSearchPlan(p SearchParams) (*SearchPlan, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Size == 0 {
		p.Size = DefaultPageSize
	}
	if p.Sort == "" {
		p.Sort = SortByDate
	}

	if p.Page < 1 {
		return nil, &ValidationError{Field: "page", Reason: "must be at least 1"}
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return nil, &ValidationError{Field: "size", Reason: fmt.Sprintf("must be between 1 and %d", MaxPageSize)}
	}
	if p.Sort != SortByDate && p.Sort != SortByRelevance {
		return nil, &ValidationError{Field: "sort", Reason: `must be "date" or "relevance"`}
	}

	plan := &SearchPlan{
		Query:  strings.TrimSpace(p.Search),
		Tag:    strings.TrimSpace(p.Tag),
		Page:   int64(p.Page),
		Size:   int64(p.Size),
		Offset: int64(p.Page-1) * int64(p.Size),
	}

	if from, okFrom := parseDateBound(p.StartDate, false); okFrom {
		if to, okTo := parseDateBound(p.EndDate, true); okTo {
			plan.DateFrom, plan.DateTo = from, to
		}
	}

	plan.ByDate = p.Sort != SortByRelevance || plan.Query == ""

	return plan, nil
}

// parseDateBound parses an inclusive range bound. Date-only end bounds are
// widened to the last second of that day.
func parseDateBound(raw string, endOfDay bool) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Second)
		}
		return t.Unix(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Unix(), true
	}
	return 0, false
}

// HasDateRange reports whether both range bounds were accepted.
func (p *SearchPlan) HasDateRange() bool {
	return p.DateFrom != 0 || p.DateTo != 0
}

// PageCount is the ceiling of total over size; zero totals yield zero pages.
func PageCount(total, size int64) int64 {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
