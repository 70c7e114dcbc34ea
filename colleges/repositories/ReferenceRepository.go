package repositories

import (
	"context"
	"database/sql"
	"errors"

	"college-catalog-backend/colleges/services"
	"college-catalog-backend/db/models"

	"gorm.io/gorm"
)

// referenceRepository resolves reference-data descriptions by display name.
// Matching is case- and punctuation-insensitive, the same way the listing
// filters match, so the description found always corresponds to the filter
// that was applied.
type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) services.ReferenceLookup {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) StreamDescriptionByName(ctx context.Context, name string) (string, error) {
	return r.descriptionByName(ctx, &models.Stream{}, "streams.name", name)
}

func (r *referenceRepository) CityDescriptionByName(ctx context.Context, name string) (string, error) {
	return r.descriptionByName(ctx, &models.City{}, "cities.name", name)
}

func (r *referenceRepository) StateDescriptionByName(ctx context.Context, name string) (string, error) {
	return r.descriptionByName(ctx, &models.State{}, "states.name", name)
}

// descriptionByName returns "" for "no such record", "record without a
// description" and a NULL description column alike; the resolver treats any
// of them as a miss and moves to the next priority dimension.
func (r *referenceRepository) descriptionByName(ctx context.Context, model interface{}, column, name string) (string, error) {
	term := services.NormalizeTerm(name)
	if term == "" {
		return "", nil
	}

	var description sql.NullString
	err := r.db.WithContext(ctx).
		Model(model).
		Select("description").
		Where(normalizedEquals(column), term).
		Limit(1).
		Scan(&description).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return description.String, nil
}
