package controllers

import (
	"errors"
	"strconv"

	"college-catalog-backend/colleges/repositories"
	"college-catalog-backend/config"
	"college-catalog-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateCollegeRequest struct {
	Name            string          `json:"name"`
	CityID          uint            `json:"city_id"`
	StateID         uint            `json:"state_id"`
	StreamID        uint            `json:"stream_id"`
	InstituteType   string          `json:"institute_type"`
	Score           decimal.Decimal `json:"score"`
	EstablishedYear *int            `json:"established_year"`
	Website         string          `json:"website"`
	LogoURL         string          `json:"logo_url"`
	ContentTitle    string          `json:"content_title"`
	ContentBody     string          `json:"content_body"`
	CreatedBy       string          `json:"created_by"`
}

type UpdateCollegeRequest struct {
	Name          *string          `json:"name"`
	CityID        *uint            `json:"city_id"`
	StateID       *uint            `json:"state_id"`
	StreamID      *uint            `json:"stream_id"`
	InstituteType *string          `json:"institute_type"`
	Score         *decimal.Decimal `json:"score"`
	Website       *string          `json:"website"`
	LogoURL       *string          `json:"logo_url"`
	IsActive      *bool            `json:"is_active"`
}

func (cc *CollegeController) GetCollegeController(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid college id"})
	}

	college, err := cc.CollegeRepo.GetCollegeByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrCollegeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "College not found"})
		}
		config.Logger.Error("Failed to fetch college", zap.Uint("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch college"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": college})
}

// CreateCollegeController validates references, commits the relational
// insert (slug finalized inside the transaction), then pushes the row to the
// search index best-effort. An index failure never rolls back the insert.
func (cc *CollegeController) CreateCollegeController(c *fiber.Ctx) error {
	var req CreateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing college name"})
	}

	ctx := c.UserContext()
	if err := cc.CollegeRepo.ValidateReferences(ctx, req.CityID, req.StateID, req.StreamID); err != nil {
		var validationErr *repositories.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
		}
		config.Logger.Error("Reference validation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create college"})
	}

	college := &models.College{
		Name:            req.Name,
		CityID:          req.CityID,
		StateID:         req.StateID,
		StreamID:        req.StreamID,
		InstituteType:   req.InstituteType,
		Score:           req.Score,
		EstablishedYear: req.EstablishedYear,
		Website:         req.Website,
		LogoURL:         req.LogoURL,
		IsActive:        true,
		CreatedBy:       req.CreatedBy,
	}
	if req.ContentTitle != "" {
		college.Contents = []models.CollegeContent{
			{Title: req.ContentTitle, Body: req.ContentBody, IsActive: true},
		}
	}

	created, err := cc.CollegeRepo.CreateCollege(ctx, college)
	if err != nil {
		config.Logger.Error("Failed to create college", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create college"})
	}

	// Best-effort: failure is logged and recorded inside the sync repo.
	_ = cc.SearchRepo.SyncCreate(ctx, *created)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": created})
}

// UpdateCollegeController commits the relational update, then attempts a
// partial index update; a missing document is recreated by the sync repo.
func (cc *CollegeController) UpdateCollegeController(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid college id"})
	}

	var req UpdateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	ctx := c.UserContext()
	updates := buildCollegeUpdates(req)
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No fields to update"})
	}

	if req.CityID != nil || req.StateID != nil || req.StreamID != nil {
		existing, err := cc.CollegeRepo.GetCollegeByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrCollegeNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "College not found"})
			}
			config.Logger.Error("Failed to fetch college for update", zap.Uint("id", id), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update college"})
		}

		cityID, stateID, streamID := existing.CityID, existing.StateID, existing.StreamID
		if req.CityID != nil {
			cityID = *req.CityID
		}
		if req.StateID != nil {
			stateID = *req.StateID
		}
		if req.StreamID != nil {
			streamID = *req.StreamID
		}
		if err := cc.CollegeRepo.ValidateReferences(ctx, cityID, stateID, streamID); err != nil {
			var validationErr *repositories.ValidationError
			if errors.As(err, &validationErr) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
			}
			config.Logger.Error("Reference validation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update college"})
		}
	}

	updated, err := cc.CollegeRepo.UpdateCollege(ctx, id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrCollegeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "College not found"})
		}
		config.Logger.Error("Failed to update college", zap.Uint("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update college"})
	}

	_ = cc.SearchRepo.SyncUpdate(ctx, *updated)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": updated})
}

func (cc *CollegeController) DeleteCollegeController(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid college id"})
	}

	ctx := c.UserContext()
	if err := cc.CollegeRepo.DeleteCollege(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCollegeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "College not found"})
		}
		config.Logger.Error("Failed to delete college", zap.Uint("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete college"})
	}

	_ = cc.SearchRepo.SyncDelete(ctx, id)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "College deleted"})
}

func buildCollegeUpdates(req UpdateCollegeRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.CityID != nil {
		updates["city_id"] = *req.CityID
	}
	if req.StateID != nil {
		updates["state_id"] = *req.StateID
	}
	if req.StreamID != nil {
		updates["stream_id"] = *req.StreamID
	}
	if req.InstituteType != nil {
		updates["institute_type"] = *req.InstituteType
	}
	if req.Score != nil {
		updates["score"] = *req.Score
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	return updates
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
