package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListingQuerySplitsCommaLists(t *testing.T) {
	criteria := ParseListingQuery(RawListingQuery{
		City:     "Pune, Mumbai , ,Nagpur",
		Stream:   "Engineering",
		FeeRange: "below50k,above500k",
		Page:     2,
		PageSize: 20,
	})

	assert.Equal(t, []string{"Pune", "Mumbai", "Nagpur"}, criteria.CitySubstrings)
	assert.Equal(t, []string{"Engineering"}, criteria.StreamSubstrings)
	assert.Equal(t, []string{"below50k", "above500k"}, criteria.FeeRangeNames)
	assert.Equal(t, 2, criteria.Page)
	assert.Equal(t, 20, criteria.PageSize)
	assert.Equal(t, 20, criteria.Offset())
}

func TestParseListingQueryTreatsMissingFiltersAsAbsent(t *testing.T) {
	criteria := ParseListingQuery(RawListingQuery{})

	assert.Empty(t, criteria.CitySubstrings)
	assert.Empty(t, criteria.StateSubstrings)
	assert.Empty(t, criteria.StreamSubstrings)
	assert.Empty(t, criteria.InstituteTypes)
	assert.Empty(t, criteria.FeeRangeNames)
	assert.Equal(t, "", criteria.TextQuery)
	assert.Equal(t, 1, criteria.Page)
	assert.Equal(t, 10, criteria.PageSize)
}

func TestParseListingQueryNullLiteralIsAbsent(t *testing.T) {
	criteria := ParseListingQuery(RawListingQuery{
		Name: "null",
		City: "NULL",
	})

	assert.Equal(t, "", criteria.TextQuery)
	assert.Empty(t, criteria.CitySubstrings)
}

func TestParseListingQueryActiveDefaultsTrue(t *testing.T) {
	assert.True(t, ParseListingQuery(RawListingQuery{}).ActiveOnly)

	explicitFalse := false
	assert.False(t, ParseListingQuery(RawListingQuery{Active: &explicitFalse}).ActiveOnly)

	explicitTrue := true
	assert.True(t, ParseListingQuery(RawListingQuery{Active: &explicitTrue}).ActiveOnly)
}

func TestEffectiveTermHonorsFirstValueOnly(t *testing.T) {
	assert.Equal(t, "Pune", EffectiveTerm([]string{"Pune", "Mumbai"}))
	assert.Equal(t, "", EffectiveTerm(nil))
}

func TestNormalizeTermStripsCaseAndPunctuation(t *testing.T) {
	assert.Equal(t, "iitbombay", NormalizeTerm("I.I.T. Bombay"))
	assert.Equal(t, "newdelhi", NormalizeTerm("  New-Delhi  "))
	assert.Equal(t, "bits2024", NormalizeTerm("BITS 2024!"))
	assert.Equal(t, "", NormalizeTerm("---"))
}
