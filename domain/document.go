package domain

import (
	"encoding/json"

	"github.com/araddon/dateparse"
)

// StoredDocument is the read-side decoding of a document held by the store.
// Field shapes vary across ingestion generations, so every text field goes
// through FlexString resolution.
type StoredDocument struct {
	ID          FlexString `json:"id"`
	Title       FlexString `json:"title"`
	Content     FlexString `json:"content"`
	Date        FlexString `json:"date"`
	Tags        FlexString `json:"tags"`
	URL         FlexString `json:"url"`
	ImageURL    FlexString `json:"image_url"`
	PublishedTS int64      `json:"published_ts"`
}

// RawDocument is the untouched stored representation, returned as-is by the
// single-item endpoint.
type RawDocument map[string]any

// TermCount is one bucket of a term aggregation over a document field.
type TermCount struct {
	Key   string
	Count int
}

// SearchPage is one page of decoded hits plus the exact match count.
type SearchPage struct {
	Documents []StoredDocument
	Total     int64
}

// DecodeStoredDocument resolves a raw document map into the typed read-side
// shape. Decoding never fails; unrecognized values degrade to zero values.
func DecodeStoredDocument(raw map[string]any) StoredDocument {
	data, err := json.Marshal(raw)
	if err != nil {
		return StoredDocument{}
	}
	var doc StoredDocument
	_ = json.Unmarshal(data, &doc)
	return doc
}

// PublishedUnix resolves the publication instant, preferring the indexed
// numeric field and falling back to parsing the raw date string. Used to
// order duplicate groups during reconciliation.
func (d StoredDocument) PublishedUnix() int64 {
	if d.PublishedTS != 0 {
		return d.PublishedTS
	}
	if t, err := dateparse.ParseAny(d.Date.String()); err == nil {
		return t.Unix()
	}
	return 0
}
