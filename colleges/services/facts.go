package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// factLegTimeout bounds each batch lookup. A timed-out leg counts as a leg
// failure.
const factLegTimeout = 5 * time.Second

// FetchFacts fans out the independent batch lookups and joins them into one
// FactBundle. Rankings, fees, course counts and salaries are keyed on the
// page's IDs (facts are only rendered for visible rows); specialization
// counts are keyed on the full match set's IDs because the specialization
// facet is computed over the whole set.
//
// The fan-out is fail-fast: the first leg error cancels the rest and fails
// the aggregation, matching the reference behavior.
func FetchFacts(ctx context.Context, repo FactRepository, pageIDs, fullSetIDs []uint) (FactBundle, error) {
	bundle := FactBundle{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runFactLeg(ctx, "rankings", func(legCtx context.Context) error {
			ranks, err := repo.BestRanksByAgency(legCtx, pageIDs)
			bundle.Ranks = ranks
			return err
		})
	})

	g.Go(func() error {
		return runFactLeg(ctx, "fees", func(legCtx context.Context) error {
			fees, err := repo.FeeRangeByCollege(legCtx, pageIDs)
			bundle.Fees = fees
			return err
		})
	})

	g.Go(func() error {
		return runFactLeg(ctx, "course_counts", func(legCtx context.Context) error {
			counts, err := repo.CourseCountByCollege(legCtx, pageIDs)
			bundle.CourseCounts = counts
			return err
		})
	})

	g.Go(func() error {
		return runFactLeg(ctx, "placements", func(legCtx context.Context) error {
			salaries, err := repo.PlacementRangeByCollege(legCtx, pageIDs)
			bundle.Salaries = salaries
			return err
		})
	})

	g.Go(func() error {
		return runFactLeg(ctx, "specializations", func(legCtx context.Context) error {
			specs, err := repo.SpecializationCountsByCollege(legCtx, fullSetIDs)
			bundle.Specializations = specs
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return FactBundle{}, err
	}
	return bundle, nil
}

func runFactLeg(ctx context.Context, name string, fn func(context.Context) error) error {
	legCtx, cancel := context.WithTimeout(ctx, factLegTimeout)
	defer cancel()

	if err := fn(legCtx); err != nil {
		return fmt.Errorf("fact leg %s: %w", name, err)
	}
	return nil
}
