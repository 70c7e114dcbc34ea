package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// College is the primary catalog entity. Slug is finalized after insert so
// the generated ID can be embedded in it.
type College struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"not null;index" json:"name"`
	Slug          string `gorm:"uniqueIndex" json:"slug"`
	CityID        uint   `gorm:"not null;index" json:"city_id"`
	StateID       uint   `gorm:"not null;index" json:"state_id"`
	StreamID      uint   `gorm:"not null;index" json:"stream_id"`
	InstituteType string `gorm:"index" json:"institute_type"`

	// Score is the precomputed relevance ranking used as the default listing
	// sort key.
	Score decimal.Decimal `gorm:"type:decimal(10,4);default:0" json:"score"`

	EstablishedYear *int   `json:"established_year,omitempty"`
	Website         string `json:"website,omitempty"`
	LogoURL         string `json:"logo_url,omitempty"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	City   *City   `gorm:"foreignKey:CityID" json:"city,omitempty"`
	State  *State  `gorm:"foreignKey:StateID" json:"state,omitempty"`
	Stream *Stream `gorm:"foreignKey:StreamID" json:"stream,omitempty"`

	Contents   []CollegeContent   `gorm:"foreignKey:CollegeID" json:"contents,omitempty"`
	Courses    []CollegeCourse    `gorm:"foreignKey:CollegeID" json:"courses,omitempty"`
	Placements []CollegePlacement `gorm:"foreignKey:CollegeID" json:"placements,omitempty"`
	Rankings   []CollegeRanking   `gorm:"foreignKey:CollegeID" json:"rankings,omitempty"`

	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CollegeContent is editorial content attached to a college. A college is
// only listable while it has at least one active content row.
type CollegeContent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CollegeID uint           `gorm:"not null;index" json:"college_id"`
	Title     string         `gorm:"not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CollegeCourse carries the fee rows the fee-range filter runs its EXISTS
// checks against. Specialization counts are derived from these rows.
type CollegeCourse struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	CollegeID        uint            `gorm:"not null;index" json:"college_id"`
	SpecializationID *uint           `gorm:"index" json:"specialization_id,omitempty"`
	Name             string          `gorm:"not null" json:"name"`
	MinFee           decimal.Decimal `gorm:"type:decimal(12,2)" json:"min_fee"`
	MaxFee           decimal.Decimal `gorm:"type:decimal(12,2)" json:"max_fee"`
	DurationMonths   int             `json:"duration_months"`

	Specialization *Specialization `gorm:"foreignKey:SpecializationID" json:"specialization,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CollegePlacement records placement salary figures per year.
type CollegePlacement struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CollegeID uint            `gorm:"not null;index" json:"college_id"`
	Year      int             `gorm:"not null" json:"year"`
	MinSalary decimal.Decimal `gorm:"type:decimal(12,2)" json:"min_salary"`
	MaxSalary decimal.Decimal `gorm:"type:decimal(12,2)" json:"max_salary"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// CollegeRanking holds one agency's rank for a college in a given year. The
// listing only surfaces agencies on a fixed allow-list.
type CollegeRanking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CollegeID uint           `gorm:"not null;index" json:"college_id"`
	Agency    string         `gorm:"not null;index" json:"agency"`
	Rank      int            `gorm:"not null" json:"rank"`
	Year      int            `gorm:"not null" json:"year"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
