package usecase

import (
	"context"
	"errors"
	"testing"

	"news-indexer/domain"
)

func TestGetArticle(t *testing.T) {
	store := newFakeStore()
	store.put("doc-1", "https://example.com/a", "2024-01-05T00:00:00Z", "Title")
	u := NewGetArticleUsecase(store)

	result, err := u.Execute(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Article["title"] != "Title" {
		t.Errorf("title = %v, want raw stored value", result.Article["title"])
	}
	if result.DisplayID != domain.NumericID("doc-1") {
		t.Errorf("display id = %d, want derived value", result.DisplayID)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	u := NewGetArticleUsecase(newFakeStore())

	_, err := u.Execute(context.Background(), "missing")
	var nfe *domain.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestGetArticleEmptyID(t *testing.T) {
	u := NewGetArticleUsecase(newFakeStore())

	_, err := u.Execute(context.Background(), "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}
