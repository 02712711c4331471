package port

import (
	"context"

	"news-indexer/domain"
)

// DocumentStore is the capability set the core consumes from the external
// full-text document store.
type DocumentStore interface {
	// EnsureIndex creates the index if absent and applies its settings.
	EnsureIndex(ctx context.Context) error
	// IndexDocument writes one article under an explicit document id.
	IndexDocument(ctx context.Context, article domain.Article, id string) error
	// GetDocument returns the raw stored document or a NotFoundError.
	GetDocument(ctx context.Context, id string) (domain.RawDocument, error)
	// Search executes one structured query and returns a page of hits with
	// the exact match count.
	Search(ctx context.Context, plan domain.SearchPlan) (*domain.SearchPage, error)
	// FindByURL returns every stored document whose url field equals the
	// given URL, ordered by ascending publication date.
	FindByURL(ctx context.Context, url string) ([]domain.StoredDocument, error)
	// AggregateTermCounts buckets documents by the exact value of a field,
	// keeping buckets with at least minCount documents.
	AggregateTermCounts(ctx context.Context, field string, minCount int) ([]domain.TermCount, error)
	// DeleteByQuery removes the documents with the given ids.
	DeleteByQuery(ctx context.Context, ids []string) error
}
