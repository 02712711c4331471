package usecase

import (
	"context"

	"news-indexer/domain"
	"news-indexer/port"
)

// GetArticleUsecase fetches one raw stored document by id.
type GetArticleUsecase struct {
	store port.DocumentStore
}

func NewGetArticleUsecase(store port.DocumentStore) *GetArticleUsecase {
	return &GetArticleUsecase{store: store}
}

type GetArticleResult struct {
	Article domain.RawDocument
	// DisplayID is the compact numeric fallback id derived from the
	// document id, for display contexts only.
	DisplayID int
}

func (u *GetArticleUsecase) Execute(ctx context.Context, id string) (*GetArticleResult, error) {
	if id == "" {
		return nil, &domain.ValidationError{Field: "id", Reason: "cannot be empty"}
	}

	doc, err := u.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GetArticleResult{
		Article:   doc,
		DisplayID: domain.NumericID(id),
	}, nil
}
