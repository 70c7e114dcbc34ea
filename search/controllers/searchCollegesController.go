package controllers

import (
	"college-catalog-backend/config"
	"college-catalog-backend/internal/jobs"
	searchrepositories "college-catalog-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type SearchController struct {
	Repo        searchrepositories.CollegeSearchRepositoryInterface
	AsynqClient *asynq.Client
}

// SearchCollegesController serves full-text college search straight from the
// external index.
func (sc *SearchController) SearchCollegesController(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing 'q' parameter"})
	}

	size := ctx.QueryInt("size", 20)
	if size <= 0 || size > 100 {
		size = 20
	}

	result, err := sc.Repo.SearchColleges(ctx.UserContext(), query, size)
	if err != nil {
		config.Logger.Error("College search failed", zap.String("q", query), zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Search failed"})
	}

	return ctx.JSON(fiber.Map{
		"results": result.Hits,
		"total":   result.Total,
	})
}

// TriggerReindexController enqueues a full reindex of the search index from
// the relational store. The index is a rebuildable cache, so this is always
// safe to run.
func (sc *SearchController) TriggerReindexController(ctx *fiber.Ctx) error {
	info, err := sc.AsynqClient.Enqueue(jobs.NewReindexAllTask())
	if err != nil {
		config.Logger.Error("Failed to enqueue reindex task", zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enqueue reindex"})
	}

	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Reindex enqueued",
		"task_id": info.ID,
	})
}
