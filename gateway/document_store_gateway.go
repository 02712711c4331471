package gateway

import (
	"context"
	"errors"

	"news-indexer/domain"
	"news-indexer/driver"
)

// maxURLGroupSize bounds how many documents a single URL group can hold
// during duplicate lookups. Legacy data never exceeds double digits.
const maxURLGroupSize = 1000

// StoreDriver is the engine-level surface the gateway adapts to the domain.
type StoreDriver interface {
	EnsureIndex(ctx context.Context) error
	IndexDocument(ctx context.Context, doc driver.IndexDocument) error
	GetDocument(ctx context.Context, id string) (map[string]any, error)
	Search(ctx context.Context, q driver.SearchQuery) (*driver.SearchPage, error)
	AggregateTermCounts(ctx context.Context, field string, minCount int) ([]driver.TermCount, error)
	DeleteDocuments(ctx context.Context, ids []string) error
}

// DocumentStoreGateway implements port.DocumentStore on top of the search
// engine driver, translating between domain and driver shapes and mapping
// driver failures onto domain errors.
type DocumentStoreGateway struct {
	driver StoreDriver
}

func NewDocumentStoreGateway(d StoreDriver) *DocumentStoreGateway {
	return &DocumentStoreGateway{driver: d}
}

func (g *DocumentStoreGateway) EnsureIndex(ctx context.Context) error {
	if err := g.driver.EnsureIndex(ctx); err != nil {
		return &domain.StoreUnavailableError{Op: "EnsureIndex", Err: err}
	}
	return nil
}

func (g *DocumentStoreGateway) IndexDocument(ctx context.Context, article domain.Article, id string) error {
	doc := driver.IndexDocument{
		ID:          id,
		Title:       article.Title,
		Content:     article.Content,
		Date:        article.Date,
		PublishedTS: article.PublishedUnix(),
		Tags:        article.Tags,
		URL:         article.URL,
		ImageURL:    article.ImageURL,
		Entities:    article.Entities,
		Ngrams:      article.Ngrams,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.Entities == nil {
		doc.Entities = []map[string]any{}
	}
	if doc.Ngrams == nil {
		doc.Ngrams = []string{}
	}

	if err := g.driver.IndexDocument(ctx, doc); err != nil {
		return &domain.StoreUnavailableError{Op: "IndexDocument", Err: err}
	}
	return nil
}

func (g *DocumentStoreGateway) GetDocument(ctx context.Context, id string) (domain.RawDocument, error) {
	doc, err := g.driver.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, driver.ErrDocumentNotFound) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, &domain.StoreUnavailableError{Op: "GetDocument", Err: err}
	}
	return domain.RawDocument(doc), nil
}

func (g *DocumentStoreGateway) Search(ctx context.Context, plan domain.SearchPlan) (*domain.SearchPage, error) {
	q := driver.SearchQuery{
		Query: plan.Query,
		Page:  plan.Page,
		Size:  plan.Size,
	}

	var tagExpr, rangeExpr string
	if plan.Tag != "" {
		tagExpr = driver.TagFilter(plan.Tag)
	}
	if plan.HasDateRange() {
		rangeExpr = driver.DateRangeFilter(plan.DateFrom, plan.DateTo)
	}
	q.Filter = driver.CombineFilters(tagExpr, rangeExpr)

	if plan.ByDate {
		q.Sort = []string{"published_ts:desc"}
	}

	page, err := g.driver.Search(ctx, q)
	if err != nil {
		return nil, &domain.StoreUnavailableError{Op: "Search", Err: err}
	}

	docs := make([]domain.StoredDocument, 0, len(page.Hits))
	for _, hit := range page.Hits {
		docs = append(docs, domain.DecodeStoredDocument(hit))
	}

	return &domain.SearchPage{Documents: docs, Total: page.Total}, nil
}

func (g *DocumentStoreGateway) FindByURL(ctx context.Context, url string) ([]domain.StoredDocument, error) {
	page, err := g.driver.Search(ctx, driver.SearchQuery{
		Filter: driver.URLFilter(url),
		Sort:   []string{"published_ts:asc"},
		Page:   1,
		Size:   maxURLGroupSize,
	})
	if err != nil {
		return nil, &domain.StoreUnavailableError{Op: "FindByURL", Err: err}
	}

	docs := make([]domain.StoredDocument, 0, len(page.Hits))
	for _, hit := range page.Hits {
		docs = append(docs, domain.DecodeStoredDocument(hit))
	}
	return docs, nil
}

func (g *DocumentStoreGateway) AggregateTermCounts(ctx context.Context, field string, minCount int) ([]domain.TermCount, error) {
	buckets, err := g.driver.AggregateTermCounts(ctx, field, minCount)
	if err != nil {
		return nil, &domain.StoreUnavailableError{Op: "AggregateTermCounts", Err: err}
	}

	counts := make([]domain.TermCount, len(buckets))
	for i, b := range buckets {
		counts[i] = domain.TermCount{Key: b.Key, Count: b.Count}
	}
	return counts, nil
}

func (g *DocumentStoreGateway) DeleteByQuery(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := g.driver.DeleteDocuments(ctx, ids); err != nil {
		return &domain.StoreUnavailableError{Op: "DeleteByQuery", Err: err}
	}
	return nil
}
