package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IndexSyncFailure records a search-index operation that failed after the
// relational write had already committed. The relational store stays
// authoritative; these rows exist for operators and for replay.
type IndexSyncFailure struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CollegeID uint           `gorm:"index" json:"college_id"`
	Operation string         `gorm:"not null" json:"operation"` // index | update | delete | bulk_index
	Document  datatypes.JSON `json:"document,omitempty"`
	Reason    string         `gorm:"type:text" json:"reason"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// BulkUploadErrorColleges captures rows rejected during an Excel bulk upload.
type BulkUploadErrorColleges struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RowNumber   int       `json:"row_number"`
	CollegeName string    `json:"college_name"`
	Reason      string    `gorm:"type:text" json:"reason"`
	ErrorType   string    `json:"error_type"`
	AddedVia    string    `gorm:"default:'bulk_upload'" json:"added_via"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
