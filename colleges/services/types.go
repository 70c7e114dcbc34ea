package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// RankingAgencies is the fixed allow-list of ranking agencies surfaced in
// listings.
var RankingAgencies = []string{"NIRF", "India Today", "The Week", "Outlook"}

// PageRow is one college as selected by the paginated primary query, before
// facts are merged in.
type PageRow struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Stream        string          `json:"stream"`
	InstituteType string          `json:"institute_type"`
	LogoURL       string          `json:"logo_url,omitempty"`
	Score         decimal.Decimal `json:"score"`
}

// FacetRow is the light projection of one full-match-set member, carrying
// only the fields the facet counters consume.
type FacetRow struct {
	ID            uint
	City          string
	State         string
	Stream        string
	InstituteType string
}

// FeeStat is the min/max course fee aggregate for one college.
type FeeStat struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// SalaryStat is the min/max placement salary aggregate for one college.
type SalaryStat struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// FactBundle carries every batched lookup result, each keyed by college ID.
// A missing key means "no fact data" and merges as null/zero, never an error.
type FactBundle struct {
	Ranks           map[uint]map[string]int
	Fees            map[uint]FeeStat
	CourseCounts    map[uint]int
	Salaries        map[uint]SalaryStat
	Specializations map[uint]map[string]int
}

// ListingRow is the final denormalized row returned to the caller.
type ListingRow struct {
	ID              uint             `json:"id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	City            string           `json:"city"`
	State           string           `json:"state"`
	Stream          string           `json:"stream"`
	InstituteType   string           `json:"institute_type"`
	LogoURL         string           `json:"logo_url,omitempty"`
	Score           decimal.Decimal  `json:"score"`
	Rankings        map[string]int   `json:"rankings,omitempty"`
	MinFee          *decimal.Decimal `json:"min_fee,omitempty"`
	MaxFee          *decimal.Decimal `json:"max_fee,omitempty"`
	CourseCount     int              `json:"course_count"`
	MinSalary       *decimal.Decimal `json:"min_salary,omitempty"`
	MaxSalary       *decimal.Decimal `json:"max_salary,omitempty"`
	Specializations map[string]int   `json:"specializations,omitempty"`
}

// FacetBucket is one count-by-value entry of a facet dimension.
type FacetBucket struct {
	Key   string
	Count int
}

// Facets holds one bucket list per dimension, each sorted by count
// descending with first-seen order preserved on ties.
type Facets struct {
	Cities          []FacetBucket
	States          []FacetBucket
	Streams         []FacetBucket
	InstituteTypes  []FacetBucket
	Specializations []FacetBucket
}

// Per-dimension response shapes for the filter section.

type CityFacet struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

type StateFacet struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

type StreamFacet struct {
	Stream string `json:"stream"`
	Count  int    `json:"count"`
}

type InstituteTypeFacet struct {
	TypeOfInstitute string `json:"type_of_institute"`
	Count           int    `json:"count"`
}

type SpecializationFacet struct {
	Specialization string `json:"specialization"`
	Count          int    `json:"count"`
}

// FilterSection is the facet block of the listing response.
type FilterSection struct {
	CityFilter            []CityFacet           `json:"city_filter"`
	StateFilter           []StateFacet          `json:"state_filter"`
	StreamFilter          []StreamFacet         `json:"stream_filter"`
	TypeOfInstituteFilter []InstituteTypeFacet  `json:"type_of_institute_filter"`
	SpecializationFilter  []SpecializationFacet `json:"specialization_filter"`
}

// ListingResult is the complete listing response payload.
type ListingResult struct {
	Colleges            []ListingRow  `json:"colleges"`
	FilterSection       FilterSection `json:"filter_section"`
	TotalCollegesCount  int64         `json:"total_colleges_count"`
	SelectedDescription string        `json:"selected_description,omitempty"`
}

// PrimaryQueryExecutor issues the filtered query in its two modes. Both
// methods must apply predicate-identical filters or the facets and the page
// will disagree.
type PrimaryQueryExecutor interface {
	FetchPage(ctx context.Context, criteria ListingCriteria) ([]PageRow, error)
	FetchFullMatchSet(ctx context.Context, criteria ListingCriteria) ([]FacetRow, error)
	ResolveStreamColleges(ctx context.Context, streamID uint) ([]uint, error)
}

// FactRepository runs the independent grouped-aggregate batch lookups, each
// reduced into a map keyed by college ID.
type FactRepository interface {
	BestRanksByAgency(ctx context.Context, collegeIDs []uint) (map[uint]map[string]int, error)
	FeeRangeByCollege(ctx context.Context, collegeIDs []uint) (map[uint]FeeStat, error)
	CourseCountByCollege(ctx context.Context, collegeIDs []uint) (map[uint]int, error)
	PlacementRangeByCollege(ctx context.Context, collegeIDs []uint) (map[uint]SalaryStat, error)
	SpecializationCountsByCollege(ctx context.Context, collegeIDs []uint) (map[uint]map[string]int, error)
}

// ReferenceLookup resolves reference-data descriptions by display name. An
// empty string means the record exists without a description, or not at all.
type ReferenceLookup interface {
	StreamDescriptionByName(ctx context.Context, name string) (string, error)
	CityDescriptionByName(ctx context.Context, name string) (string, error)
	StateDescriptionByName(ctx context.Context, name string) (string, error)
}
