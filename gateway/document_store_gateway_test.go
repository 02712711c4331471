package gateway

import (
	"context"
	"errors"
	"testing"

	"news-indexer/domain"
	"news-indexer/driver"
)

// stubDriver records calls and plays back canned responses.
type stubDriver struct {
	indexed     []driver.IndexDocument
	searchQuery driver.SearchQuery
	searchPage  *driver.SearchPage
	getDoc      map[string]any
	deleted     []string
	err         error
}

func (s *stubDriver) EnsureIndex(ctx context.Context) error { return s.err }

func (s *stubDriver) IndexDocument(ctx context.Context, doc driver.IndexDocument) error {
	if s.err != nil {
		return s.err
	}
	s.indexed = append(s.indexed, doc)
	return nil
}

func (s *stubDriver) GetDocument(ctx context.Context, id string) (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.getDoc, nil
}

func (s *stubDriver) Search(ctx context.Context, q driver.SearchQuery) (*driver.SearchPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.searchQuery = q
	if s.searchPage != nil {
		return s.searchPage, nil
	}
	return &driver.SearchPage{Hits: []map[string]any{}}, nil
}

func (s *stubDriver) AggregateTermCounts(ctx context.Context, field string, minCount int) ([]driver.TermCount, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []driver.TermCount{{Key: "https://example.com/a", Count: 2}}, nil
}

func (s *stubDriver) DeleteDocuments(ctx context.Context, ids []string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, ids...)
	return nil
}

func TestGatewayIndexDocumentDefaults(t *testing.T) {
	stub := &stubDriver{}
	g := NewDocumentStoreGateway(stub)

	article := domain.Article{
		Title: "t",
		URL:   "https://example.com/a",
		Date:  "2024-01-05T00:00:00Z",
	}
	if err := g.IndexDocument(context.Background(), article, "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stub.indexed) != 1 {
		t.Fatalf("indexed %d documents, want 1", len(stub.indexed))
	}
	doc := stub.indexed[0]
	if doc.ID != "doc-1" {
		t.Errorf("id = %q, want doc-1", doc.ID)
	}
	if doc.Tags == nil || doc.Entities == nil || doc.Ngrams == nil {
		t.Error("nil slices must be defaulted to empty")
	}
	if doc.PublishedTS == 0 {
		t.Error("published_ts should be derived from the date")
	}
}

func TestGatewaySearchComposesFilters(t *testing.T) {
	stub := &stubDriver{}
	g := NewDocumentStoreGateway(stub)

	plan := domain.SearchPlan{
		Query:    "ransomware",
		Tag:      "malware",
		DateFrom: 100,
		DateTo:   200,
		ByDate:   true,
		Page:     2,
		Size:     10,
	}
	if _, err := g.Search(context.Background(), plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFilter := `tags = "malware" AND published_ts >= 100 AND published_ts <= 200`
	if stub.searchQuery.Filter != wantFilter {
		t.Errorf("filter = %q, want %q", stub.searchQuery.Filter, wantFilter)
	}
	if len(stub.searchQuery.Sort) != 1 || stub.searchQuery.Sort[0] != "published_ts:desc" {
		t.Errorf("sort = %v, want [published_ts:desc]", stub.searchQuery.Sort)
	}
	if stub.searchQuery.Page != 2 || stub.searchQuery.Size != 10 {
		t.Errorf("page/size = %d/%d, want 2/10", stub.searchQuery.Page, stub.searchQuery.Size)
	}
}

func TestGatewaySearchRelevanceLeavesSortUnset(t *testing.T) {
	stub := &stubDriver{}
	g := NewDocumentStoreGateway(stub)

	if _, err := g.Search(context.Background(), domain.SearchPlan{Query: "x", Page: 1, Size: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.searchQuery.Sort != nil {
		t.Errorf("sort = %v, want nil for relevance order", stub.searchQuery.Sort)
	}
}

func TestGatewaySearchDecodesFlexibleHits(t *testing.T) {
	stub := &stubDriver{
		searchPage: &driver.SearchPage{
			Hits: []map[string]any{
				{"id": "a", "title": []any{"Array Title"}, "content": "body"},
			},
			Total: 1,
		},
	}
	g := NewDocumentStoreGateway(stub)

	page, err := g.Search(context.Background(), domain.SearchPlan{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Documents) != 1 {
		t.Fatalf("got %d documents, want 1", len(page.Documents))
	}
	if page.Documents[0].Title.String() != "Array Title" {
		t.Errorf("title = %q, want array element", page.Documents[0].Title.String())
	}
}

func TestGatewayErrorMapping(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		g := NewDocumentStoreGateway(&stubDriver{err: driver.ErrDocumentNotFound})
		_, err := g.GetDocument(context.Background(), "missing")
		var nfe *domain.NotFoundError
		if !errors.As(err, &nfe) {
			t.Fatalf("want NotFoundError, got %v", err)
		}
	})

	t.Run("driver failure", func(t *testing.T) {
		g := NewDocumentStoreGateway(&stubDriver{err: errors.New("connection refused")})
		_, err := g.Search(context.Background(), domain.SearchPlan{Page: 1, Size: 10})
		var sue *domain.StoreUnavailableError
		if !errors.As(err, &sue) {
			t.Fatalf("want StoreUnavailableError, got %v", err)
		}
		if sue.Op != "Search" {
			t.Errorf("op = %q, want Search", sue.Op)
		}
	})
}

func TestGatewayDeleteByQueryEmpty(t *testing.T) {
	stub := &stubDriver{}
	g := NewDocumentStoreGateway(stub)

	if err := g.DeleteByQuery(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stub.deleted) != 0 {
		t.Errorf("deleted %v, want no driver call", stub.deleted)
	}
}
