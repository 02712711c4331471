package usecase

import (
	"context"

	"news-indexer/domain"
	"news-indexer/port"
)

// ListArticlesUsecase executes the query-and-normalization path: one
// structured query against the store, every hit projected onto the canonical
// article view.
type ListArticlesUsecase struct {
	store port.DocumentStore
}

func NewListArticlesUsecase(store port.DocumentStore) *ListArticlesUsecase {
	return &ListArticlesUsecase{store: store}
}

type ListArticlesResult struct {
	Articles []domain.ArticleView
	Total    int64
	Page     int64
	Size     int64
	Pages    int64
}

func (u *ListArticlesUsecase) Execute(ctx context.Context, params domain.SearchParams) (*ListArticlesResult, error) {
	plan, err := domain.BuildSearchPlan(params)
	if err != nil {
		return nil, err
	}

	page, err := u.store.Search(ctx, *plan)
	if err != nil {
		return nil, err
	}

	views := make([]domain.ArticleView, 0, len(page.Documents))
	for _, doc := range page.Documents {
		views = append(views, domain.NewArticleView(doc))
	}

	return &ListArticlesResult{
		Articles: views,
		Total:    page.Total,
		Page:     plan.Page,
		Size:     plan.Size,
		Pages:    domain.PageCount(page.Total, plan.Size),
	}, nil
}
