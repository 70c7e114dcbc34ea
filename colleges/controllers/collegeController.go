package controllers

import (
	"college-catalog-backend/colleges/repositories"
	"college-catalog-backend/colleges/services"
	searchrepositories "college-catalog-backend/search/repositories"

	"gorm.io/gorm"
)

type CollegeController struct {
	CollegeRepo repositories.CollegeRepository
	SearchRepo  searchrepositories.CollegeSearchRepositoryInterface
	Listing     *services.ListingService
	DB          *gorm.DB
}
