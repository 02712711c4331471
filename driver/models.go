package driver

// IndexDocument is the write-side document shape sent to the search engine.
// PublishedTS duplicates the date as unix seconds so the engine can filter
// and sort on it numerically.
type IndexDocument struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Date        string           `json:"date"`
	PublishedTS int64            `json:"published_ts"`
	Tags        []string         `json:"tags"`
	URL         string           `json:"url"`
	ImageURL    string           `json:"image_url"`
	Entities    []map[string]any `json:"entities"`
	Ngrams      []string         `json:"ngrams"`
}

// SearchQuery is the engine-level query produced from a search plan.
type SearchQuery struct {
	Query  string
	Filter string
	Sort   []string
	Page   int64
	Size   int64
}

// SearchPage is one page of raw hits plus the exact match count.
type SearchPage struct {
	Hits  []map[string]any
	Total int64
}

// TermCount is one bucket of a term aggregation.
type TermCount struct {
	Key   string
	Count int
}

// DriverError represents an error from the driver layer.
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
