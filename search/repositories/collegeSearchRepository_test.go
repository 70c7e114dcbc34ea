package repositories

import (
	"context"
	"errors"
	"testing"

	"college-catalog-backend/db/models"
	searchservices "college-catalog-backend/search/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeIndexer struct {
	updateErr error
	indexErr  error
	deleteErr error

	indexed map[string]interface{}
	updated map[string]interface{}
	deleted []string
	bulked  []map[string]interface{}
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{
		indexed: map[string]interface{}{},
		updated: map[string]interface{}{},
	}
}

func (f *fakeIndexer) IndexDocument(_ context.Context, id string, doc interface{}) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed[id] = doc
	return nil
}

func (f *fakeIndexer) UpdateDocument(_ context.Context, id string, doc interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[id] = doc
	return nil
}

func (f *fakeIndexer) DeleteDocument(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndexer) BulkIndexDocuments(_ context.Context, documents map[string]interface{}) error {
	f.bulked = append(f.bulked, documents)
	return nil
}

func (f *fakeIndexer) SearchIndex(_ context.Context, _ map[string]interface{}, _ int) (*searchservices.SearchResult, error) {
	return &searchservices.SearchResult{}, nil
}

func testCollege() models.College {
	return models.College{
		ID:            42,
		Name:          "IIT Bombay",
		Slug:          "iit-bombay-42",
		CityID:        3,
		StateID:       1,
		StreamID:      2,
		InstituteType: "Government",
		Score:         decimal.NewFromFloat(91.5),
		IsActive:      true,
	}
}

func TestSyncCreateIndexesUnderPrimaryKey(t *testing.T) {
	indexer := newFakeIndexer()
	repo := NewCollegeSearchRepository(indexer, nil, zap.NewNop())

	require.NoError(t, repo.SyncCreate(context.Background(), testCollege()))

	doc, ok := indexer.indexed["42"].(CollegeDocument)
	require.True(t, ok)
	assert.Equal(t, uint(42), doc.ID)
	assert.Equal(t, "iit-bombay-42", doc.Slug)
}

func TestSyncUpdateRecreatesOnMissingDocument(t *testing.T) {
	indexer := newFakeIndexer()
	indexer.updateErr = searchservices.ErrDocumentMissing
	repo := NewCollegeSearchRepository(indexer, nil, zap.NewNop())

	require.NoError(t, repo.SyncUpdate(context.Background(), testCollege()))

	// The partial update missed, so the full document gets recreated.
	assert.Empty(t, indexer.updated)
	assert.Contains(t, indexer.indexed, "42")
}

func TestSyncUpdateSurfacesOtherErrors(t *testing.T) {
	indexer := newFakeIndexer()
	indexer.updateErr = errors.New("cluster unreachable")
	repo := NewCollegeSearchRepository(indexer, nil, zap.NewNop())

	err := repo.SyncUpdate(context.Background(), testCollege())
	require.Error(t, err)
	assert.Empty(t, indexer.indexed)
}

func TestSyncUpdateFailureRecordingSkipsNilDB(t *testing.T) {
	indexer := newFakeIndexer()
	indexer.updateErr = searchservices.ErrDocumentMissing
	indexer.indexErr = errors.New("cluster unreachable")
	repo := NewCollegeSearchRepository(indexer, nil, zap.NewNop())

	// Both the update and the repair attempt fail; with no db handle the
	// failure is only logged and the error still comes back.
	err := repo.SyncUpdate(context.Background(), testCollege())
	assert.Error(t, err)
}

func TestSyncDeleteUsesPrimaryKeyID(t *testing.T) {
	indexer := newFakeIndexer()
	repo := NewCollegeSearchRepository(indexer, nil, zap.NewNop())

	require.NoError(t, repo.SyncDelete(context.Background(), 7))
	assert.Equal(t, []string{"7"}, indexer.deleted)
}

func TestSyncBulkCreateBuildsOneBatch(t *testing.T) {
	indexer := newFakeIndexer()
	repo := NewCollegeSearchRepository(indexer, nil, zap.NewNop())

	colleges := []models.College{
		{ID: 1, Name: "A", Score: decimal.Zero},
		{ID: 2, Name: "B", Score: decimal.Zero},
	}
	require.NoError(t, repo.SyncBulkCreate(context.Background(), colleges))

	require.Len(t, indexer.bulked, 1)
	assert.Len(t, indexer.bulked[0], 2)
	assert.Contains(t, indexer.bulked[0], "1")
	assert.Contains(t, indexer.bulked[0], "2")
}

func TestSyncBulkCreateEmptyBatchIsNoop(t *testing.T) {
	indexer := newFakeIndexer()
	repo := NewCollegeSearchRepository(indexer, nil, zap.NewNop())

	require.NoError(t, repo.SyncBulkCreate(context.Background(), nil))
	assert.Empty(t, indexer.bulked)
}
