package routes

import (
	"college-catalog-backend/search/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitSearchRoutes(app *fiber.App, controller *controllers.SearchController) {
	api := app.Group("/api/v1/search")

	api.Get("/colleges", controller.SearchCollegesController)
	api.Post("/reindex", controller.TriggerReindexController)
}
