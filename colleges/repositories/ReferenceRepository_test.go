package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestDescriptionByNameNullColumnScansAsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	lookup := NewReferenceRepository(db)

	// A stored NULL description must behave like "no description", not error
	// out; the resolver moves on to the next priority dimension only when the
	// lookup itself succeeds.
	mock.ExpectQuery(`SELECT "description" FROM "streams"`).
		WithArgs("engineering", 1).
		WillReturnRows(sqlmock.NewRows([]string{"description"}).AddRow(nil))

	description, err := lookup.StreamDescriptionByName(context.Background(), "Engineering")
	require.NoError(t, err)
	assert.Equal(t, "", description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDescriptionByNameReturnsStoredValue(t *testing.T) {
	db, mock := newMockDB(t)
	lookup := NewReferenceRepository(db)

	mock.ExpectQuery(`SELECT "description" FROM "cities"`).
		WithArgs("pune", 1).
		WillReturnRows(sqlmock.NewRows([]string{"description"}).AddRow("Pune blurb"))

	description, err := lookup.CityDescriptionByName(context.Background(), "Pune!")
	require.NoError(t, err)
	assert.Equal(t, "Pune blurb", description)
	assert.NoError(t, mock.ExpectationsWereMet())
}
