package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"news-indexer/domain"
)

func TestListArticlesPagination(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("doc-%02d", i)
		store.put(id, fmt.Sprintf("https://example.com/%d", i), "2024-01-05T00:00:00Z", fmt.Sprintf("Article %d", i))
	}
	u := NewListArticlesUsecase(store)

	result, err := u.Execute(context.Background(), domain.SearchParams{Page: 3, Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 25 {
		t.Errorf("total = %d, want 25", result.Total)
	}
	if result.Pages != 3 {
		t.Errorf("pages = %d, want 3", result.Pages)
	}
	if len(result.Articles) != 5 {
		t.Errorf("articles on last page = %d, want 5", len(result.Articles))
	}
	if result.Page != 3 || result.Size != 10 {
		t.Errorf("page/size echoed as %d/%d, want 3/10", result.Page, result.Size)
	}
}

func TestListArticlesNormalizesEveryHit(t *testing.T) {
	store := newFakeStore()
	store.put("doc-1", "https://example.com/a", "2024-11-05T14:30:00Z", "Title")
	u := NewListArticlesUsecase(store)

	result, err := u.Execute(context.Background(), domain.SearchParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(result.Articles))
	}

	view := result.Articles[0]
	if view.Date != "November 05, 2024 02:30 PM" {
		t.Errorf("date = %q, want display format", view.Date)
	}
	if view.Image == "" {
		t.Error("image must never be empty after normalization")
	}
	if view.Category == "" {
		t.Error("category must never be empty after normalization")
	}
}

func TestListArticlesInvalidParams(t *testing.T) {
	u := NewListArticlesUsecase(newFakeStore())

	_, err := u.Execute(context.Background(), domain.SearchParams{Page: -1})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestListArticlesStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.searchErr = &domain.StoreUnavailableError{Op: "Search", Err: errors.New("down")}
	u := NewListArticlesUsecase(store)

	_, err := u.Execute(context.Background(), domain.SearchParams{})
	var sue *domain.StoreUnavailableError
	if !errors.As(err, &sue) {
		t.Fatalf("want StoreUnavailableError, got %v", err)
	}
}
