package usecase

import (
	"context"
	"log/slog"
	"sort"

	"news-indexer/domain"
	"news-indexer/port"
)

// ReconcileDuplicatesUsecase is the one-shot maintenance sweep that removes
// documents inserted before URL-keyed deduplication was enforced: for every
// URL stored more than once, the earliest document survives and the rest are
// deleted. Running it again with no new duplicates deletes nothing.
type ReconcileDuplicatesUsecase struct {
	store port.DocumentStore
	log   *slog.Logger
}

func NewReconcileDuplicatesUsecase(store port.DocumentStore, log *slog.Logger) *ReconcileDuplicatesUsecase {
	return &ReconcileDuplicatesUsecase{store: store, log: log}
}

type ReconcileResult struct {
	DuplicateURLs int
	Deleted       int
}

func (u *ReconcileDuplicatesUsecase) Execute(ctx context.Context) (*ReconcileResult, error) {
	buckets, err := u.store.AggregateTermCounts(ctx, "url", 2)
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{}
	for _, bucket := range buckets {
		docs, err := u.store.FindByURL(ctx, bucket.Key)
		if err != nil {
			return result, err
		}
		// A group can shrink between aggregation and fetch; never delete a
		// sole remaining document.
		if len(docs) < 2 {
			continue
		}

		sortByPublication(docs)

		ids := make([]string, 0, len(docs)-1)
		for _, doc := range docs[1:] {
			if id := doc.ID.String(); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			continue
		}

		if err := u.store.DeleteByQuery(ctx, ids); err != nil {
			return result, err
		}

		result.DuplicateURLs++
		result.Deleted += len(ids)
		u.log.Info("removed duplicate documents", "url", bucket.Key, "deleted", len(ids))
	}

	return result, nil
}

// sortByPublication orders a URL group by ascending publication date; the
// document at index 0 is the one retained.
func sortByPublication(docs []domain.StoredDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].PublishedUnix() < docs[j].PublishedUnix()
	})
}
