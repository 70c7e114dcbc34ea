package services

import (
	"context"
	"sort"
)

// MergeFacts joins the page rows with the fact maps by college ID. A row
// whose ID is missing from a map keeps null/zero facts; rows are never
// dropped. The merged list is re-sorted by score descending as a final
// guarantee against ordering drift introduced upstream.
func MergeFacts(page []PageRow, facts FactBundle) []ListingRow {
	rows := make([]ListingRow, 0, len(page))

	for _, p := range page {
		row := ListingRow{
			ID:            p.ID,
			Name:          p.Name,
			Slug:          p.Slug,
			City:          p.City,
			State:         p.State,
			Stream:        p.Stream,
			InstituteType: p.InstituteType,
			LogoURL:       p.LogoURL,
			Score:         p.Score,
			Rankings:      facts.Ranks[p.ID],
		}

		if fee, ok := facts.Fees[p.ID]; ok {
			minFee, maxFee := fee.Min, fee.Max
			row.MinFee = &minFee
			row.MaxFee = &maxFee
		}
		if count, ok := facts.CourseCounts[p.ID]; ok {
			row.CourseCount = count
		}
		if salary, ok := facts.Salaries[p.ID]; ok {
			minSalary, maxSalary := salary.Min, salary.Max
			row.MinSalary = &minSalary
			row.MaxSalary = &maxSalary
		}
		if specs, ok := facts.Specializations[p.ID]; ok {
			row.Specializations = specs
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score.GreaterThan(rows[j].Score)
	})

	return rows
}

// ResolveSelectedDescription picks the single description shown above the
// listing. Priority is strict: stream, then city, then state. For each
// dimension the first requested value is looked up, and the first non-empty
// description wins; later dimensions are not consulted after a hit, which is
// why the lookups run sequentially rather than in parallel.
func ResolveSelectedDescription(ctx context.Context, lookup ReferenceLookup, criteria ListingCriteria) (string, error) {
	type dimension struct {
		term    string
		resolve func(context.Context, string) (string, error)
	}

	dimensions := []dimension{
		{EffectiveTerm(criteria.StreamSubstrings), lookup.StreamDescriptionByName},
		{EffectiveTerm(criteria.CitySubstrings), lookup.CityDescriptionByName},
		{EffectiveTerm(criteria.StateSubstrings), lookup.StateDescriptionByName},
	}

	for _, dim := range dimensions {
		if dim.term == "" {
			continue
		}
		description, err := dim.resolve(ctx, dim.term)
		if err != nil {
			return "", err
		}
		if description != "" {
			return description, nil
		}
	}

	return "", nil
}
