package services

import (
	"sort"
)

// CalculateFacets derives the count-by-value breakdowns from the full match
// set. Rows with an empty value in a dimension are skipped for that
// dimension. The specialization facet flattens the per-college maps into one
// name→count list before sorting.
func CalculateFacets(rows []FacetRow, specializations map[uint]map[string]int) Facets {
	cities := newFacetCounter()
	states := newFacetCounter()
	streams := newFacetCounter()
	instituteTypes := newFacetCounter()
	specs := newFacetCounter()

	for _, row := range rows {
		cities.Increment(row.City, 1)
		states.Increment(row.State, 1)
		streams.Increment(row.Stream, 1)
		instituteTypes.Increment(row.InstituteType, 1)

		for name, count := range specializations[row.ID] {
			specs.Increment(name, count)
		}
	}

	return Facets{
		Cities:          cities.Buckets(),
		States:          states.Buckets(),
		Streams:         streams.Buckets(),
		InstituteTypes:  instituteTypes.Buckets(),
		Specializations: specs.Buckets(),
	}
}

// facetCounter accumulates counts while remembering first-seen order so that
// equal-count buckets keep a deterministic position after sorting.
type facetCounter struct {
	counts map[string]int
	order  []string
}

func newFacetCounter() *facetCounter {
	return &facetCounter{counts: make(map[string]int)}
}

func (fc *facetCounter) Increment(key string, by int) {
	if key == "" {
		return
	}
	if _, seen := fc.counts[key]; !seen {
		fc.order = append(fc.order, key)
	}
	fc.counts[key] += by
}

func (fc *facetCounter) Buckets() []FacetBucket {
	buckets := make([]FacetBucket, 0, len(fc.order))
	for _, key := range fc.order {
		buckets = append(buckets, FacetBucket{Key: key, Count: fc.counts[key]})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}

// BuildFilterSection maps the generic facet buckets onto the per-dimension
// response shapes.
func BuildFilterSection(facets Facets) FilterSection {
	section := FilterSection{
		CityFilter:            make([]CityFacet, 0, len(facets.Cities)),
		StateFilter:           make([]StateFacet, 0, len(facets.States)),
		StreamFilter:          make([]StreamFacet, 0, len(facets.Streams)),
		TypeOfInstituteFilter: make([]InstituteTypeFacet, 0, len(facets.InstituteTypes)),
		SpecializationFilter:  make([]SpecializationFacet, 0, len(facets.Specializations)),
	}

	for _, b := range facets.Cities {
		section.CityFilter = append(section.CityFilter, CityFacet{City: b.Key, Count: b.Count})
	}
	for _, b := range facets.States {
		section.StateFilter = append(section.StateFilter, StateFacet{State: b.Key, Count: b.Count})
	}
	for _, b := range facets.Streams {
		section.StreamFilter = append(section.StreamFilter, StreamFacet{Stream: b.Key, Count: b.Count})
	}
	for _, b := range facets.InstituteTypes {
		section.TypeOfInstituteFilter = append(section.TypeOfInstituteFilter, InstituteTypeFacet{TypeOfInstitute: b.Key, Count: b.Count})
	}
	for _, b := range facets.Specializations {
		section.SpecializationFilter = append(section.SpecializationFilter, SpecializationFacet{Specialization: b.Key, Count: b.Count})
	}

	return section
}
