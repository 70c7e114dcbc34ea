package services

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

type stubTransport struct {
	status   int
	body     string
	requests []recordedRequest
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	body := ""
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		body = string(raw)
	}
	s.requests = append(s.requests, recordedRequest{
		method: req.Method,
		path:   req.URL.Path,
		body:   body,
	})

	return &http.Response{
		StatusCode: s.status,
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}, "Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(s.body)),
	}, nil
}

func newStubService(t *testing.T, status int, body string) (*IndexingService, *stubTransport) {
	t.Helper()
	transport := &stubTransport{status: status, body: body}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
		Transport: transport,
	})
	require.NoError(t, err)
	return NewIndexingService(client, "colleges", zap.NewNop()), transport
}

func TestIndexDocumentPutsUnderID(t *testing.T) {
	svc, transport := newStubService(t, 201, `{"result":"created"}`)

	err := svc.IndexDocument(context.Background(), "42", map[string]interface{}{"name": "IIT Bombay"})
	require.NoError(t, err)

	require.Len(t, transport.requests, 1)
	assert.Equal(t, "/colleges/_doc/42", transport.requests[0].path)
	assert.Contains(t, transport.requests[0].body, `"IIT Bombay"`)
}

func TestUpdateDocumentMissingReturnsSentinel(t *testing.T) {
	svc, _ := newStubService(t, 404, `{"error":{"type":"document_missing_exception"}}`)

	err := svc.UpdateDocument(context.Background(), "42", map[string]interface{}{"name": "Renamed"})
	assert.ErrorIs(t, err, ErrDocumentMissing)
}

func TestUpdateDocumentWrapsPartialInDoc(t *testing.T) {
	svc, transport := newStubService(t, 200, `{"result":"updated"}`)

	err := svc.UpdateDocument(context.Background(), "7", map[string]interface{}{"is_active": false})
	require.NoError(t, err)

	require.Len(t, transport.requests, 1)
	assert.Equal(t, "/colleges/_update/7", transport.requests[0].path)
	assert.Contains(t, transport.requests[0].body, `"doc"`)
}

func TestDeleteDocumentTreatsMissingAsSuccess(t *testing.T) {
	svc, _ := newStubService(t, 404, `{"result":"not_found"}`)

	err := svc.DeleteDocument(context.Background(), "42")
	assert.NoError(t, err)
}

func TestBulkIndexIsDeterministicAcrossRuns(t *testing.T) {
	documents := map[string]interface{}{
		"3": map[string]interface{}{"name": "C"},
		"1": map[string]interface{}{"name": "A"},
		"2": map[string]interface{}{"name": "B"},
	}

	svc1, transport1 := newStubService(t, 200, `{"errors":false,"items":[]}`)
	require.NoError(t, svc1.BulkIndexDocuments(context.Background(), documents))

	svc2, transport2 := newStubService(t, 200, `{"errors":false,"items":[]}`)
	require.NoError(t, svc2.BulkIndexDocuments(context.Background(), documents))

	require.Len(t, transport1.requests, 1)
	require.Len(t, transport2.requests, 1)

	// Re-running the same batch must produce a byte-identical request: same
	// document IDs, same order, same content.
	assert.Equal(t, transport1.requests[0].body, transport2.requests[0].body)

	first := strings.Index(transport1.requests[0].body, `"_id":"1"`)
	second := strings.Index(transport1.requests[0].body, `"_id":"2"`)
	third := strings.Index(transport1.requests[0].body, `"_id":"3"`)
	assert.True(t, first < second && second < third)
}

func TestBulkIndexEmptyBatchIsNoop(t *testing.T) {
	svc, transport := newStubService(t, 200, `{}`)

	require.NoError(t, svc.BulkIndexDocuments(context.Background(), nil))
	assert.Empty(t, transport.requests)
}

func TestSearchIndexParsesHits(t *testing.T) {
	body := `{"hits":{"total":{"value":2},"hits":[{"_source":{"id":1,"name":"A"}},{"_source":{"id":2,"name":"B"}}]}}`
	svc, _ := newStubService(t, 200, body)

	result, err := svc.SearchIndex(context.Background(), map[string]interface{}{"query": map[string]interface{}{"match_all": map[string]interface{}{}}}, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Hits, 2)
	assert.JSONEq(t, `{"id":1,"name":"A"}`, string(result.Hits[0]))
}
