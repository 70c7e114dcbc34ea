package routes

import (
	"college-catalog-backend/colleges/controllers"
	"college-catalog-backend/colleges/repositories"
	"college-catalog-backend/colleges/services"
	searchrepositories "college-catalog-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CollegeRouterInit(
	app *fiber.App,
	db *gorm.DB,
	collegeRepository repositories.CollegeRepository,
	searchRepository searchrepositories.CollegeSearchRepositoryInterface,
	listingService *services.ListingService,
) {
	collegeController := &controllers.CollegeController{
		CollegeRepo: collegeRepository,
		SearchRepo:  searchRepository,
		Listing:     listingService,
		DB:          db,
	}

	collegeRoutes := app.Group("/api/v1/colleges")
	collegeRoutes.Get("/filtered", collegeController.GetFilteredCollegesController)
	collegeRoutes.Get("/by-stream/:streamId", collegeController.GetCollegesByStreamController)
	collegeRoutes.Get("/:id", collegeController.GetCollegeController)
	collegeRoutes.Post("/", collegeController.CreateCollegeController)
	collegeRoutes.Put("/:id", collegeController.UpdateCollegeController)
	collegeRoutes.Delete("/:id", collegeController.DeleteCollegeController)
	collegeRoutes.Post("/bulk-upload", collegeController.BulkUploadCollegesController)
}
