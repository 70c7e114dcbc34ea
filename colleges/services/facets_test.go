package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFacetsCountsByDimension(t *testing.T) {
	rows := []FacetRow{
		{ID: 1, City: "Pune", State: "Maharashtra", Stream: "Engineering", InstituteType: "Private"},
		{ID: 2, City: "Pune", State: "Maharashtra", Stream: "Medical", InstituteType: "Government"},
		{ID: 3, City: "Mumbai", State: "Maharashtra", Stream: "Engineering", InstituteType: "Private"},
	}

	facets := CalculateFacets(rows, nil)

	assert.Equal(t, []FacetBucket{{Key: "Pune", Count: 2}, {Key: "Mumbai", Count: 1}}, facets.Cities)
	assert.Equal(t, []FacetBucket{{Key: "Maharashtra", Count: 3}}, facets.States)
	assert.Equal(t, []FacetBucket{{Key: "Engineering", Count: 2}, {Key: "Medical", Count: 1}}, facets.Streams)
	assert.Equal(t, []FacetBucket{{Key: "Private", Count: 2}, {Key: "Government", Count: 1}}, facets.InstituteTypes)
}

func TestFacetBucketSumEqualsRowsWithValue(t *testing.T) {
	rows := []FacetRow{
		{ID: 1, City: "Pune"},
		{ID: 2, City: "Mumbai"},
		{ID: 3, City: ""}, // no city value; skipped for the city dimension
		{ID: 4, City: "Pune"},
	}

	facets := CalculateFacets(rows, nil)

	sum := 0
	for _, bucket := range facets.Cities {
		sum += bucket.Count
	}
	assert.Equal(t, 3, sum)
}

func TestFacetBucketsSortedDescendingTiesKeepEncounterOrder(t *testing.T) {
	rows := []FacetRow{
		{ID: 1, City: "Indore"},
		{ID: 2, City: "Bhopal"},
		{ID: 3, City: "Jaipur"},
		{ID: 4, City: "Jaipur"},
	}

	facets := CalculateFacets(rows, nil)

	require.Len(t, facets.Cities, 3)
	assert.Equal(t, "Jaipur", facets.Cities[0].Key)
	// Indore and Bhopal tie at 1; first-seen order must hold.
	assert.Equal(t, "Indore", facets.Cities[1].Key)
	assert.Equal(t, "Bhopal", facets.Cities[2].Key)
}

func TestSpecializationFacetFlattensAcrossColleges(t *testing.T) {
	rows := []FacetRow{{ID: 1}, {ID: 2}, {ID: 3}}
	specs := map[uint]map[string]int{
		1: {"Computer Science": 3, "Mechanical": 1},
		2: {"Computer Science": 2},
		// college 3 has no specialization data
	}

	facets := CalculateFacets(rows, specs)

	assert.Equal(t, []FacetBucket{
		{Key: "Computer Science", Count: 5},
		{Key: "Mechanical", Count: 1},
	}, facets.Specializations)
}

func TestBuildFilterSectionShapes(t *testing.T) {
	section := BuildFilterSection(Facets{
		Cities:          []FacetBucket{{Key: "Pune", Count: 1}},
		InstituteTypes:  []FacetBucket{{Key: "Private", Count: 4}},
		Specializations: []FacetBucket{{Key: "Law", Count: 2}},
	})

	assert.Equal(t, []CityFacet{{City: "Pune", Count: 1}}, section.CityFilter)
	assert.Equal(t, []InstituteTypeFacet{{TypeOfInstitute: "Private", Count: 4}}, section.TypeOfInstituteFilter)
	assert.Equal(t, []SpecializationFacet{{Specialization: "Law", Count: 2}}, section.SpecializationFilter)
	assert.NotNil(t, section.StateFilter)
	assert.Empty(t, section.StateFilter)
}
