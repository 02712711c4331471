package usecase

import (
	"context"
	"log/slog"

	"news-indexer/domain"
	"news-indexer/port"
)

// IngestStatus is the terminal state of one record's ingestion.
type IngestStatus int

const (
	StatusInserted IngestStatus = iota
	StatusSkippedDuplicate
	StatusFailed
)

func (s IngestStatus) String() string {
	switch s {
	case StatusInserted:
		return "inserted"
	case StatusSkippedDuplicate:
		return "skipped_duplicate"
	default:
		return "failed"
	}
}

// IngestArticleUsecase stores enriched article records idempotently: at most
// one stored document per canonical URL, exactly zero or one write per call.
type IngestArticleUsecase struct {
	store port.DocumentStore
	log   *slog.Logger
}

func NewIngestArticleUsecase(store port.DocumentStore, log *slog.Logger) *IngestArticleUsecase {
	return &IngestArticleUsecase{store: store, log: log}
}

// Execute checks for an existing document with the same URL and inserts the
// record under its derived id only when none exists. A duplicate is a normal
// skip, not an error. The check-then-insert pair is not transactional; a
// concurrent run can slip a second document in between, which the
// reconciliation sweep later removes.
func (u *IngestArticleUsecase) Execute(ctx context.Context, article domain.Article) (IngestStatus, error) {
	if article.URL == "" {
		return StatusFailed, &domain.ValidationError{Field: "url", Reason: "cannot be empty"}
	}

	existing, err := u.store.FindByURL(ctx, article.URL)
	if err != nil {
		return StatusFailed, err
	}
	if len(existing) > 0 {
		u.log.Info("duplicate article skipped", "url", article.URL)
		return StatusSkippedDuplicate, nil
	}

	id := domain.DocumentID(article.URL)
	if err := u.store.IndexDocument(ctx, article, id); err != nil {
		return StatusFailed, err
	}

	u.log.Info("article indexed", "url", article.URL, "id", id)
	return StatusInserted, nil
}
