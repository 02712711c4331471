package driver

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/meilisearch/meilisearch-go"
)

const (
	taskTimeout  = 15 * time.Second
	scanPageSize = 1000
)

// ErrDocumentNotFound reports a lookup of an unknown document id.
var ErrDocumentNotFound = errors.New("document not found")

// searchableAttributes order defines relevance weighting: title outranks
// content, content outranks tags.
var (
	searchableAttributes = []string{"title", "content", "tags"}
	filterableAttributes = []string{"tags", "url", "published_ts"}
	sortableAttributes   = []string{"published_ts"}
)

// MeilisearchDriver talks to one Meilisearch index.
type MeilisearchDriver struct {
	client meilisearch.ServiceManager
	index  meilisearch.IndexManager
}

func NewMeilisearchDriver(client meilisearch.ServiceManager, indexName string) *MeilisearchDriver {
	return &MeilisearchDriver{
		client: client,
		index:  client.Index(indexName),
	}
}

// EnsureIndex creates the index when absent and applies the searchable,
// filterable and sortable attribute settings. Meilisearch creates an index
// lazily on its first document, so creation goes through a throwaway
// initialization document.
func (d *MeilisearchDriver) EnsureIndex(ctx context.Context) error {
	if _, err := d.index.FetchInfo(); err != nil {
		initDoc := []map[string]any{
			{
				"id":      "init",
				"title":   "Initialization document",
				"content": "This document is used to create the index",
				"tags":    []string{},
			},
		}

		task, err := d.index.AddDocuments(initDoc)
		if err != nil {
			return &DriverError{Op: "EnsureIndex", Err: "failed to create index: " + err.Error()}
		}
		if _, err := d.index.WaitForTask(task.TaskUID, taskTimeout); err != nil {
			return &DriverError{Op: "EnsureIndex", Err: "failed to wait for index creation: " + err.Error()}
		}

		if deleteTask, err := d.index.DeleteDocument("init"); err == nil {
			_, _ = d.index.WaitForTask(deleteTask.TaskUID, taskTimeout)
		}
	}

	if _, err := d.index.UpdateSearchableAttributes(&searchableAttributes); err != nil {
		return &DriverError{Op: "EnsureIndex", Err: "failed to set searchable attributes: " + err.Error()}
	}
	if _, err := d.index.UpdateFilterableAttributes(&filterableAttributes); err != nil {
		return &DriverError{Op: "EnsureIndex", Err: "failed to set filterable attributes: " + err.Error()}
	}
	task, err := d.index.UpdateSortableAttributes(&sortableAttributes)
	if err != nil {
		return &DriverError{Op: "EnsureIndex", Err: "failed to set sortable attributes: " + err.Error()}
	}
	if _, err := d.index.WaitForTask(task.TaskUID, taskTimeout); err != nil {
		return &DriverError{Op: "EnsureIndex", Err: "failed to wait for settings update: " + err.Error()}
	}

	return nil
}

// IndexDocument writes one document and waits for the indexing task, so a
// subsequent search observes the write.
func (d *MeilisearchDriver) IndexDocument(ctx context.Context, doc IndexDocument) error {
	task, err := d.index.AddDocuments([]IndexDocument{doc})
	if err != nil {
		return &DriverError{Op: "IndexDocument", Err: err.Error()}
	}
	if _, err := d.index.WaitForTask(task.TaskUID, taskTimeout); err != nil {
		return &DriverError{Op: "IndexDocument", Err: "failed to wait for indexing task: " + err.Error()}
	}
	return nil
}

// GetDocument fetches one raw document by id.
func (d *MeilisearchDriver) GetDocument(ctx context.Context, id string) (map[string]any, error) {
	var doc map[string]any
	if err := d.index.GetDocument(id, nil, &doc); err != nil {
		var msErr *meilisearch.Error
		if errors.As(err, &msErr) && msErr.StatusCode == http.StatusNotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, &DriverError{Op: "GetDocument", Err: err.Error()}
	}
	return doc, nil
}

// Search executes one query. Page/HitsPerPage pagination is used so the
// engine reports the exact total rather than an estimate.
func (d *MeilisearchDriver) Search(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	searchRequest := &meilisearch.SearchRequest{
		Query:       q.Query,
		Page:        q.Page,
		HitsPerPage: q.Size,
	}
	if q.Filter != "" {
		searchRequest.Filter = q.Filter
	}
	if len(q.Sort) > 0 {
		searchRequest.Sort = q.Sort
	}

	result, err := d.index.Search(q.Query, searchRequest)
	if err != nil {
		return nil, &DriverError{Op: "Search", Err: err.Error()}
	}

	hits := make([]map[string]any, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]any)
		if !ok {
			continue
		}
		hits = append(hits, hitMap)
	}

	return &SearchPage{Hits: hits, Total: result.TotalHits}, nil
}

// AggregateTermCounts buckets all documents by the exact value of one field.
// Meilisearch has no server-side aggregations, so the driver pages through
// the documents endpoint and counts client-side. Buckets come back sorted by
// key for deterministic iteration.
func (d *MeilisearchDriver) AggregateTermCounts(ctx context.Context, field string, minCount int) ([]TermCount, error) {
	counts := make(map[string]int)

	var offset int64
	for {
		var page meilisearch.DocumentsResult
		err := d.index.GetDocuments(&meilisearch.DocumentsQuery{
			Offset: offset,
			Limit:  scanPageSize,
			Fields: []string{"id", field},
		}, &page)
		if err != nil {
			return nil, &DriverError{Op: "AggregateTermCounts", Err: err.Error()}
		}
		if len(page.Results) == 0 {
			break
		}

		for _, doc := range page.Results {
			if v, ok := doc[field].(string); ok && v != "" {
				counts[v]++
			}
		}

		offset += int64(len(page.Results))
		if offset >= page.Total {
			break
		}
	}

	buckets := make([]TermCount, 0)
	for key, count := range counts {
		if count >= minCount {
			buckets = append(buckets, TermCount{Key: key, Count: count})
		}
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })

	return buckets, nil
}

// DeleteDocuments removes documents by id and waits for the deletion task.
func (d *MeilisearchDriver) DeleteDocuments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	task, err := d.index.DeleteDocuments(ids)
	if err != nil {
		return &DriverError{Op: "DeleteDocuments", Err: err.Error()}
	}
	if _, err := d.index.WaitForTask(task.TaskUID, taskTimeout); err != nil {
		return &DriverError{Op: "DeleteDocuments", Err: "failed to wait for deletion task: " + err.Error()}
	}
	return nil
}
