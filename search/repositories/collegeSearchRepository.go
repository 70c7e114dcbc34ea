package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"college-catalog-backend/db/models"
	searchservices "college-catalog-backend/search/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CollegeDocument is the search-index projection of a college. The document
// ID always equals the relational primary key.
type CollegeDocument struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	CityID        uint    `json:"city_id"`
	StateID       uint    `json:"state_id"`
	StreamID      uint    `json:"stream_id"`
	InstituteType string  `json:"institute_type"`
	Score         float64 `json:"score"`
	IsActive      bool    `json:"is_active"`
}

type CollegeSearchRepositoryInterface interface {
	SyncCreate(ctx context.Context, college models.College) error
	SyncUpdate(ctx context.Context, college models.College) error
	SyncDelete(ctx context.Context, collegeID uint) error
	SyncBulkCreate(ctx context.Context, colleges []models.College) error
	SearchColleges(ctx context.Context, queryString string, size int) (*searchservices.SearchResult, error)
}

// CollegeSearchRepository propagates relational writes to the search index.
// Every operation is best-effort: the relational store has already committed
// by the time these run, and a failure here is logged and recorded, never
// bubbled into the write path's response.
type CollegeSearchRepository struct {
	indexer searchservices.IndexingServiceInterface
	db      *gorm.DB
	logger  *zap.Logger
}

func NewCollegeSearchRepository(indexer searchservices.IndexingServiceInterface, db *gorm.DB, logger *zap.Logger) *CollegeSearchRepository {
	return &CollegeSearchRepository{
		indexer: indexer,
		db:      db,
		logger:  logger,
	}
}

// SyncCreate pushes the full row after a relational insert commits,
// slug already finalized.
func (r *CollegeSearchRepository) SyncCreate(ctx context.Context, college models.College) error {
	doc := buildCollegeDocument(college)
	if err := r.indexer.IndexDocument(ctx, docID(college.ID), doc); err != nil {
		r.recordFailure(ctx, college.ID, "index", doc, err)
		return err
	}
	return nil
}

// SyncUpdate attempts a partial document update. When the index reports the
// document missing, the row is recreated wholesale instead of surfacing an
// error (repair-on-miss).
func (r *CollegeSearchRepository) SyncUpdate(ctx context.Context, college models.College) error {
	doc := buildCollegeDocument(college)

	err := r.indexer.UpdateDocument(ctx, docID(college.ID), doc)
	if errors.Is(err, searchservices.ErrDocumentMissing) {
		r.logger.Warn("Index document missing on update, recreating",
			zap.Uint("college_id", college.ID))
		err = r.indexer.IndexDocument(ctx, docID(college.ID), doc)
	}
	if err != nil {
		r.recordFailure(ctx, college.ID, "update", doc, err)
		return err
	}
	return nil
}

func (r *CollegeSearchRepository) SyncDelete(ctx context.Context, collegeID uint) error {
	if err := r.indexer.DeleteDocument(ctx, docID(collegeID)); err != nil {
		r.recordFailure(ctx, collegeID, "delete", nil, err)
		return err
	}
	return nil
}

// SyncBulkCreate builds one bulk request from a batch of rows. Used after
// batch inserts and by the full-reindex job.
func (r *CollegeSearchRepository) SyncBulkCreate(ctx context.Context, colleges []models.College) error {
	if len(colleges) == 0 {
		return nil
	}

	documents := make(map[string]interface{}, len(colleges))
	for _, college := range colleges {
		documents[docID(college.ID)] = buildCollegeDocument(college)
	}

	if err := r.indexer.BulkIndexDocuments(ctx, documents); err != nil {
		r.recordFailure(ctx, 0, "bulk_index", nil, err)
		return err
	}
	return nil
}

func (r *CollegeSearchRepository) SearchColleges(ctx context.Context, queryString string, size int) (*searchservices.SearchResult, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     queryString,
				"fields":    []string{"name^3", "slug", "institute_type"},
				"fuzziness": "AUTO",
			},
		},
	}
	return r.indexer.SearchIndex(ctx, query, size)
}

// recordFailure captures a failed index operation as a row for operators and
// replay. Recording is itself best-effort.
func (r *CollegeSearchRepository) recordFailure(ctx context.Context, collegeID uint, operation string, doc interface{}, cause error) {
	r.logger.Error("Search index sync failed",
		zap.Uint("college_id", collegeID),
		zap.String("operation", operation),
		zap.Error(cause))

	if r.db == nil {
		return
	}

	var payload datatypes.JSON
	if doc != nil {
		if raw, err := json.Marshal(doc); err == nil {
			payload = datatypes.JSON(raw)
		}
	}

	failure := models.IndexSyncFailure{
		ID:        uuid.New(),
		CollegeID: collegeID,
		Operation: operation,
		Document:  payload,
		Reason:    cause.Error(),
	}
	if err := r.db.WithContext(ctx).Create(&failure).Error; err != nil {
		r.logger.Error("Failed to record index sync failure", zap.Error(err))
	}
}

func buildCollegeDocument(college models.College) CollegeDocument {
	return CollegeDocument{
		ID:            college.ID,
		Name:          college.Name,
		Slug:          college.Slug,
		CityID:        college.CityID,
		StateID:       college.StateID,
		StreamID:      college.StreamID,
		InstituteType: college.InstituteType,
		Score:         college.Score.InexactFloat64(),
		IsActive:      college.IsActive,
	}
}

func docID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
