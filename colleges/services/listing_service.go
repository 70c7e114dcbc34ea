package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ListingService runs the whole listing pipeline: primary queries, fact
// fan-out, facet calculation and final assembly. It holds no per-request
// state; every call recomputes from the relational store.
type ListingService struct {
	executor PrimaryQueryExecutor
	facts    FactRepository
	lookup   ReferenceLookup
	logger   *zap.Logger
}

func NewListingService(
	executor PrimaryQueryExecutor,
	facts FactRepository,
	lookup ReferenceLookup,
	logger *zap.Logger,
) *ListingService {
	return &ListingService{
		executor: executor,
		facts:    facts,
		lookup:   lookup,
		logger:   logger,
	}
}

// GetListing executes one listing request. The page and full-match-set
// queries run concurrently over identical predicates; an empty page
// short-circuits with an empty, well-formed result so the fact and facet
// stages never fan out for nothing.
func (s *ListingService) GetListing(ctx context.Context, criteria ListingCriteria) (*ListingResult, error) {
	var (
		page    []PageRow
		fullSet []FacetRow
	)

	g, queryCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.executor.FetchPage(queryCtx, criteria)
		if err != nil {
			return fmt.Errorf("page query: %w", err)
		}
		page = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.executor.FetchFullMatchSet(queryCtx, criteria)
		if err != nil {
			return fmt.Errorf("full match set query: %w", err)
		}
		fullSet = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(page) == 0 {
		return emptyListingResult(), nil
	}

	pageIDs := make([]uint, 0, len(page))
	for _, row := range page {
		pageIDs = append(pageIDs, row.ID)
	}
	fullSetIDs := make([]uint, 0, len(fullSet))
	for _, row := range fullSet {
		fullSetIDs = append(fullSetIDs, row.ID)
	}

	facts, err := FetchFacts(ctx, s.facts, pageIDs, fullSetIDs)
	if err != nil {
		return nil, err
	}

	facets := CalculateFacets(fullSet, facts.Specializations)
	rows := MergeFacts(page, facts)

	description, err := ResolveSelectedDescription(ctx, s.lookup, criteria)
	if err != nil {
		// The description is decorative; a lookup failure must not take the
		// listing down with it.
		s.logger.Warn("selected description lookup failed", zap.Error(err))
		description = ""
	}

	return &ListingResult{
		Colleges:            rows,
		FilterSection:       BuildFilterSection(facets),
		TotalCollegesCount:  int64(len(fullSet)),
		SelectedDescription: description,
	}, nil
}

// GetListingByStream resolves a numeric stream classification ID to its
// college ID set, then runs the same pipeline restricted to that set. An
// empty resolution short-circuits like an empty page.
func (s *ListingService) GetListingByStream(ctx context.Context, streamID uint, criteria ListingCriteria) (*ListingResult, error) {
	collegeIDs, err := s.executor.ResolveStreamColleges(ctx, streamID)
	if err != nil {
		return nil, fmt.Errorf("resolve stream colleges: %w", err)
	}
	if len(collegeIDs) == 0 {
		return emptyListingResult(), nil
	}

	criteria.CollegeIDs = collegeIDs
	return s.GetListing(ctx, criteria)
}

func emptyListingResult() *ListingResult {
	return &ListingResult{
		Colleges:           []ListingRow{},
		FilterSection:      BuildFilterSection(Facets{}),
		TotalCollegesCount: 0,
	}
}
