package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"college-catalog-backend/utils"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// ErrDocumentMissing reports that a partial update targeted a document the
// index does not have. Callers repair by recreating the document wholesale.
var ErrDocumentMissing = errors.New("search index document missing")

type IndexingServiceInterface interface {
	IndexDocument(ctx context.Context, id string, document interface{}) error
	UpdateDocument(ctx context.Context, id string, partial interface{}) error
	DeleteDocument(ctx context.Context, id string) error
	BulkIndexDocuments(ctx context.Context, documents map[string]interface{}) error
	SearchIndex(ctx context.Context, query map[string]interface{}, size int) (*SearchResult, error)
}

// SearchResult is the trimmed-down search response surfaced to controllers.
type SearchResult struct {
	Total int64
	Hits  []json.RawMessage
}

// IndexingService talks to the external Elasticsearch index. The index is a
// derived, rebuildable cache of the relational store; none of these
// operations are transactional with it.
type IndexingService struct {
	client *elasticsearch.Client
	index  string
	logger *zap.Logger
}

func NewIndexingService(client *elasticsearch.Client, index string, logger *zap.Logger) *IndexingService {
	return &IndexingService{
		client: client,
		index:  index,
		logger: logger,
	}
}

func (s *IndexingService) IndexDocument(ctx context.Context, id string, document interface{}) error {
	body, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", id, err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return s.responseError("index", id, res)
	}

	s.logger.Info("Indexed document", zap.String("id", id), zap.String("index", s.index))
	return nil
}

// UpdateDocument applies a partial update. A 404 from the index is returned
// as ErrDocumentMissing so the caller can recreate the document instead of
// failing.
func (s *IndexingService) UpdateDocument(ctx context.Context, id string, partial interface{}) error {
	body, err := json.Marshal(map[string]interface{}{"doc": partial})
	if err != nil {
		return fmt.Errorf("marshal partial document %s: %w", id, err)
	}

	req := esapi.UpdateRequest{
		Index:      s.index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return ErrDocumentMissing
	}
	if res.IsError() {
		return s.responseError("update", id, res)
	}

	s.logger.Info("Updated document", zap.String("id", id), zap.String("index", s.index))
	return nil
}

// DeleteDocument removes a document by ID. A 404 is treated as success: the
// desired end state is "absent" either way.
func (s *IndexingService) DeleteDocument(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{
		Index:      s.index,
		DocumentID: id,
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		s.logger.Info("Document already absent on delete", zap.String("id", id))
		return nil
	}
	if res.IsError() {
		return s.responseError("delete", id, res)
	}

	s.logger.Info("Deleted document", zap.String("id", id), zap.String("index", s.index))
	return nil
}

// BulkIndexDocuments builds one bulk request from the given documents. The
// payload is assembled in sorted ID order so re-running the same batch
// produces an identical request.
func (s *IndexingService) BulkIndexDocuments(ctx context.Context, documents map[string]interface{}) error {
	if len(documents) == 0 {
		return nil
	}

	ids := make([]string, 0, len(documents))
	for id := range documents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf bytes.Buffer
	for _, id := range ids {
		meta := map[string]map[string]string{
			"index": {"_index": s.index, "_id": id},
		}
		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return err
		}
		if err := json.NewEncoder(&buf).Encode(documents[id]); err != nil {
			return fmt.Errorf("marshal document %s: %w", id, err)
		}
	}

	req := esapi.BulkRequest{Body: &buf}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return s.responseError("bulk_index", "", res)
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int    `json:"status"`
			Error  *struct {
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if bulkRes.Errors {
		// Partial failures are logged, not fatal: the nightly reindex picks
		// up whatever this batch missed.
		failed := 0
		for _, item := range bulkRes.Items {
			for _, op := range item {
				if op.Error != nil {
					failed++
				}
			}
		}
		s.logger.Error("Bulk index completed with item failures",
			zap.Int("failed", failed),
			zap.Int("total", len(ids)))
	}

	s.logger.Info("Bulk indexed documents", zap.Int("count", len(ids)), zap.String("index", s.index))
	return nil
}

func (s *IndexingService) SearchIndex(ctx context.Context, query map[string]interface{}, size int) (*SearchResult, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, s.responseError("search", "", res)
	}

	var searchRes struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchRes); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	result := &SearchResult{Total: searchRes.Hits.Total.Value}
	for _, hit := range searchRes.Hits.Hits {
		result.Hits = append(result.Hits, hit.Source)
	}
	return result, nil
}

func (s *IndexingService) responseError(operation, id string, res *esapi.Response) error {
	body, readErr := utils.ReadResponseBody(res)
	if readErr != nil {
		body = readErr.Error()
	}
	s.logger.Error("Elasticsearch request failed",
		zap.String("operation", operation),
		zap.String("id", id),
		zap.String("status", res.Status()),
		zap.String("body", body))
	return fmt.Errorf("elasticsearch %s failed: %s", operation, res.Status())
}
