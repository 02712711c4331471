package usecase

import (
	"context"
	"sort"

	"news-indexer/domain"
	"news-indexer/port"
)

// fakeStore is an in-memory port.DocumentStore used across usecase tests.
type fakeStore struct {
	docs      map[string]domain.StoredDocument
	indexErr  error
	searchErr error
	writes    int
	deletes   int
}

var _ port.DocumentStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string]domain.StoredDocument{}}
}

func (f *fakeStore) put(id, url, date string, title string) {
	f.docs[id] = domain.StoredDocument{
		ID:    domain.FlexString(id),
		Title: domain.FlexString(title),
		URL:   domain.FlexString(url),
		Date:  domain.FlexString(date),
	}
}

func (f *fakeStore) EnsureIndex(ctx context.Context) error { return nil }

func (f *fakeStore) IndexDocument(ctx context.Context, article domain.Article, id string) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.writes++
	f.docs[id] = domain.StoredDocument{
		ID:      domain.FlexString(id),
		Title:   domain.FlexString(article.Title),
		Content: domain.FlexString(article.Content),
		URL:     domain.FlexString(article.URL),
		Date:    domain.FlexString(article.Date),
	}
	return nil
}

func (f *fakeStore) GetDocument(ctx context.Context, id string) (domain.RawDocument, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	return domain.RawDocument{
		"id":      doc.ID.String(),
		"title":   doc.Title.String(),
		"content": doc.Content.String(),
		"url":     doc.URL.String(),
		"date":    doc.Date.String(),
	}, nil
}

func (f *fakeStore) Search(ctx context.Context, plan domain.SearchPlan) (*domain.SearchPage, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	all := f.sortedDocs()
	total := int64(len(all))

	start := plan.Offset
	if start > total {
		start = total
	}
	end := start + plan.Size
	if end > total {
		end = total
	}
	return &domain.SearchPage{Documents: all[start:end], Total: total}, nil
}

func (f *fakeStore) FindByURL(ctx context.Context, url string) ([]domain.StoredDocument, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []domain.StoredDocument
	for _, doc := range f.sortedDocs() {
		if doc.URL.String() == url {
			out = append(out, doc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedUnix() < out[j].PublishedUnix()
	})
	return out, nil
}

func (f *fakeStore) AggregateTermCounts(ctx context.Context, field string, minCount int) ([]domain.TermCount, error) {
	counts := map[string]int{}
	for _, doc := range f.docs {
		counts[doc.URL.String()]++
	}

	var out []domain.TermCount
	for key, count := range counts {
		if count >= minCount {
			out = append(out, domain.TermCount{Key: key, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (f *fakeStore) DeleteByQuery(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(f.docs, id)
		f.deletes++
	}
	return nil
}

// sortedDocs returns all documents in a deterministic id order.
func (f *fakeStore) sortedDocs() []domain.StoredDocument {
	ids := make([]string, 0, len(f.docs))
	for id := range f.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.StoredDocument, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.docs[id])
	}
	return out
}
