package controllers

import (
	"strconv"

	"college-catalog-backend/colleges/services"
	"college-catalog-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredCollegesController serves the faceted listing. Internal fan-out
// failures are never exposed; the caller only ever sees a well-formed payload
// or a generic 500.
func (cc *CollegeController) GetFilteredCollegesController(c *fiber.Ctx) error {
	criteria, err := parseListingRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := cc.Listing.GetListing(c.UserContext(), criteria)
	if err != nil {
		config.Logger.Error("Failed to build college listing", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch colleges"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// GetCollegesByStreamController lists colleges restricted to a numeric stream
// classification ID, honoring the same query parameters as the main listing.
func (cc *CollegeController) GetCollegesByStreamController(c *fiber.Ctx) error {
	streamID, err := strconv.ParseUint(c.Params("streamId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid stream id"})
	}

	criteria, err := parseListingRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := cc.Listing.GetListingByStream(c.UserContext(), uint(streamID), criteria)
	if err != nil {
		config.Logger.Error("Failed to build stream college listing",
			zap.Uint64("stream_id", streamID),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch colleges"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func parseListingRequest(c *fiber.Ctx) (services.ListingCriteria, error) {
	pageSize := c.QueryInt("page_size", 10)
	if pageSize <= 0 {
		return services.ListingCriteria{}, fiber.NewError(fiber.StatusBadRequest, "Invalid page_size parameter")
	}
	page := c.QueryInt("page", 1)
	if page <= 0 {
		return services.ListingCriteria{}, fiber.NewError(fiber.StatusBadRequest, "Invalid page parameter")
	}

	raw := services.RawListingQuery{
		Name:          c.Query("name"),
		City:          c.Query("city"),
		State:         c.Query("state"),
		Stream:        c.Query("stream"),
		InstituteType: c.Query("institute_type"),
		FeeRange:      c.Query("fee_range"),
		Page:          page,
		PageSize:      pageSize,
	}

	// Absent and malformed both fall back to the active-only default; only an
	// explicit boolean is passed through.
	if activeStr := c.Query("active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			raw.Active = &active
		}
	}

	return services.ParseListingQuery(raw), nil
}
