package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"college-catalog-backend/colleges/services"
	"college-catalog-backend/db/models"
	"college-catalog-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// bulkInsertChunkSize is the fixed chunk size for bulk relational inserts.
const bulkInsertChunkSize = 500

var ErrCollegeNotFound = errors.New("college not found")

// ValidationError marks a write rejected before any relational change, e.g.
// a referenced location that does not exist. Surfaced as a client error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type CollegeRepository interface {
	services.PrimaryQueryExecutor
	services.FactRepository

	GetCollegeByID(ctx context.Context, id uint) (*models.College, error)
	CreateCollege(ctx context.Context, college *models.College) (*models.College, error)
	UpdateCollege(ctx context.Context, id uint, updates map[string]interface{}) (*models.College, error)
	DeleteCollege(ctx context.Context, id uint) error
	BulkCreateColleges(ctx context.Context, colleges []models.College) ([]models.College, error)
	RecordBulkUploadErrors(ctx context.Context, rows []models.BulkUploadErrorColleges) error
	ValidateReferences(ctx context.Context, cityID, stateID, streamID uint) error
	ReferenceNameIndex(ctx context.Context) (cityIDs, stateIDs, streamIDs map[string]uint, err error)
	ListActiveCollegesInBatches(ctx context.Context, batchSize int, fn func([]models.College) error) error
}

type collegeRepository struct {
	db       *gorm.DB
	feeRules []services.FeeRangeRule
}

// NewCollegeRepository wires the repository with its immutable fee-range rule
// table. The rules are injected here instead of read from ambient state so
// the query builder stays deterministic.
func NewCollegeRepository(db *gorm.DB, feeRules []services.FeeRangeRule) CollegeRepository {
	return &collegeRepository{
		db:       db,
		feeRules: feeRules,
	}
}

func (r *collegeRepository) GetCollegeByID(ctx context.Context, id uint) (*models.College, error) {
	var college models.College
	err := r.db.WithContext(ctx).
		Preload("City").
		Preload("State").
		Preload("Stream").
		Preload("Courses").
		Preload("Rankings").
		Preload("Placements").
		First(&college, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, err
	}
	return &college, nil
}

// provisionalSlug builds the placeholder slug a row carries between insert
// and the ID-embedding update. Plain Slugify(name) is not unique: distinct
// names can slugify identically ("IIT Bombay" / "IIT-Bombay") and the unique
// index would reject the second insert before its ID is known, so a random
// suffix keeps the placeholders disjoint.
func provisionalSlug(name string) string {
	return utils.Slugify(name) + "-" + uuid.NewString()
}

// CreateCollege inserts a college and finalizes its slug inside the same
// transaction. The slug embeds the generated ID, so a second update is
// unavoidable.
func (r *collegeRepository) CreateCollege(ctx context.Context, college *models.College) (*models.College, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		college.Slug = provisionalSlug(college.Name)
		if err := tx.Create(college).Error; err != nil {
			return err
		}

		college.Slug = utils.FinalizeSlug(college.Name, college.ID)
		return tx.Model(college).Update("slug", college.Slug).Error
	})
	if err != nil {
		return nil, err
	}
	return college, nil
}

func (r *collegeRepository) UpdateCollege(ctx context.Context, id uint, updates map[string]interface{}) (*models.College, error) {
	var college models.College
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&college, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCollegeNotFound
			}
			return err
		}

		if err := tx.Model(&college).Updates(updates).Error; err != nil {
			return err
		}

		// Re-read so the caller (and the index document) sees the final row.
		return tx.First(&college, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &college, nil
}

func (r *collegeRepository) DeleteCollege(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.College{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollegeNotFound
	}
	return nil
}

// BulkCreateColleges inserts all rows in fixed-size chunks inside one
// transaction, then finalizes every slug. The whole batch commits or none of
// it does; the subsequent index push is the caller's best-effort concern.
func (r *collegeRepository) BulkCreateColleges(ctx context.Context, colleges []models.College) ([]models.College, error) {
	if len(colleges) == 0 {
		return colleges, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range colleges {
			colleges[i].Slug = provisionalSlug(colleges[i].Name)
		}
		if err := tx.CreateInBatches(colleges, bulkInsertChunkSize).Error; err != nil {
			return err
		}

		for i := range colleges {
			colleges[i].Slug = utils.FinalizeSlug(colleges[i].Name, colleges[i].ID)
			if err := tx.Model(&colleges[i]).Update("slug", colleges[i].Slug).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return colleges, nil
}

func (r *collegeRepository) RecordBulkUploadErrors(ctx context.Context, rows []models.BulkUploadErrorColleges) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, bulkInsertChunkSize).Error
}

// ValidateReferences rejects a write whose city, state or stream does not
// exist. Runs before any relational change.
func (r *collegeRepository) ValidateReferences(ctx context.Context, cityID, stateID, streamID uint) error {
	checks := []struct {
		field string
		model interface{}
		id    uint
	}{
		{"city_id", &models.City{}, cityID},
		{"state_id", &models.State{}, stateID},
		{"stream_id", &models.Stream{}, streamID},
	}

	for _, check := range checks {
		var count int64
		if err := r.db.WithContext(ctx).Model(check.model).Where("id = ?", check.id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &ValidationError{Field: check.field, Reason: fmt.Sprintf("referenced record %d does not exist", check.id)}
		}
	}
	return nil
}

// ReferenceNameIndex loads every city, state and stream once and returns
// lowercase-name→ID maps. Bulk upload resolves its reference columns against
// these instead of issuing a lookup per row.
func (r *collegeRepository) ReferenceNameIndex(ctx context.Context) (map[string]uint, map[string]uint, map[string]uint, error) {
	type nameRow struct {
		ID   uint
		Name string
	}

	load := func(model interface{}) (map[string]uint, error) {
		var rows []nameRow
		if err := r.db.WithContext(ctx).Model(model).Select("id, name").Scan(&rows).Error; err != nil {
			return nil, err
		}
		index := make(map[string]uint, len(rows))
		for _, row := range rows {
			index[strings.ToLower(row.Name)] = row.ID
		}
		return index, nil
	}

	cityIDs, err := load(&models.City{})
	if err != nil {
		return nil, nil, nil, err
	}
	stateIDs, err := load(&models.State{})
	if err != nil {
		return nil, nil, nil, err
	}
	streamIDs, err := load(&models.Stream{})
	if err != nil {
		return nil, nil, nil, err
	}
	return cityIDs, stateIDs, streamIDs, nil
}

// ListActiveCollegesInBatches streams active colleges to fn in batches, used
// by the full-reindex job.
func (r *collegeRepository) ListActiveCollegesInBatches(ctx context.Context, batchSize int, fn func([]models.College) error) error {
	var batch []models.College
	result := r.db.WithContext(ctx).
		Where("is_active = true").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		})
	return result.Error
}
