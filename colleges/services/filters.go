package services

import (
	"strings"
)

// ListingCriteria is the normalized filter set for a college listing request.
// Absence of a dimension means "no constraint". The comma-lists are parsed in
// full even though the query layer only honors the first element of the
// city/state/stream/instituteType lists; see EffectiveTerm.
type ListingCriteria struct {
	TextQuery        string
	CitySubstrings   []string
	StateSubstrings  []string
	StreamSubstrings []string
	InstituteTypes   []string
	FeeRangeNames    []string
	ActiveOnly       bool
	Page             int
	PageSize         int

	// CollegeIDs restricts the whole pipeline to a pre-resolved ID set. Used
	// by the by-stream entry point; empty means unrestricted.
	CollegeIDs []uint
}

// RawListingQuery carries the loosely-typed query parameters as received.
// Active is a pointer so "not sent" and "false" stay distinguishable.
type RawListingQuery struct {
	Name          string
	City          string
	State         string
	Stream        string
	InstituteType string
	FeeRange      string
	Active        *bool
	Page          int
	PageSize      int
}

// ParseListingQuery normalizes raw query parameters into a ListingCriteria.
// Malformed or missing optional filters are treated as absent, never as an
// error.
func ParseListingQuery(raw RawListingQuery) ListingCriteria {
	criteria := ListingCriteria{
		TextQuery:        cleanParam(raw.Name),
		CitySubstrings:   splitCommaList(raw.City),
		StateSubstrings:  splitCommaList(raw.State),
		StreamSubstrings: splitCommaList(raw.Stream),
		InstituteTypes:   splitCommaList(raw.InstituteType),
		FeeRangeNames:    splitCommaList(raw.FeeRange),
		ActiveOnly:       true,
		Page:             raw.Page,
		PageSize:         raw.PageSize,
	}

	// Only an explicit false disables the active-only default.
	if raw.Active != nil {
		criteria.ActiveOnly = *raw.Active
	}

	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = 10
	}

	return criteria
}

// Offset returns the page offset implied by Page and PageSize.
func (c ListingCriteria) Offset() int {
	return (c.Page - 1) * c.PageSize
}

// EffectiveTerm returns the single honored match term of a parsed comma-list:
// its first element. The upstream product behavior only ever matched on the
// first value of each name filter, so the rest of the list is carried but not
// consumed.
func EffectiveTerm(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// NormalizeTerm lowercases a term and strips every non-alphanumeric rune.
// Both sides of a name comparison are normalized this way, which makes the
// match case- and punctuation-insensitive.
func NormalizeTerm(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitCommaList(raw string) []string {
	raw = cleanParam(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func cleanParam(param string) string {
	param = strings.TrimSpace(param)
	if param == "" || strings.EqualFold(param, "null") {
		return ""
	}
	return param
}
