package main

import (
	"context"

	"college-catalog-backend/config"
	"college-catalog-backend/middleware"

	// Repositories
	colleges_repositories "college-catalog-backend/colleges/repositories"
	search_repositories "college-catalog-backend/search/repositories"

	// Services
	colleges_services "college-catalog-backend/colleges/services"
	search_services "college-catalog-backend/search/services"

	// Routes
	college_routes "college-catalog-backend/colleges/routes"
	search_routes "college-catalog-backend/search/routes"

	// Controllers
	search_controllers "college-catalog-backend/search/controllers"

	// Jobs
	"college-catalog-backend/internal/jobs"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file loaded, relying on process environment", zap.Error(err))
	}

	app := fiber.New()
	middleware.InitCors(app)

	ctx := context.Background()

	// Stores and clients
	db := config.ConfigureDatabase()
	esClient := config.InitElasticsearch()
	redisClient := config.InitRedisServer(ctx)

	redisAddr := config.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379")
	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: config.GetEnv("REDIS_PASSWORD"),
		DB:       0,
	}
	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	// Search index plumbing
	indexName := config.GetEnvOrDefault("ELASTICSEARCH_COLLEGE_INDEX", "colleges")
	indexingService := search_services.NewIndexingService(esClient, indexName, config.Logger)
	collegeSearchRepo := search_repositories.NewCollegeSearchRepository(indexingService, db, config.Logger)

	// Catalog plumbing. The fee-range rule table is loaded once and injected;
	// it stays immutable for the process lifetime.
	feeRules := colleges_services.DefaultFeeRangeRules()
	collegeRepo := colleges_repositories.NewCollegeRepository(db, feeRules)
	referenceLookup := colleges_repositories.NewReferenceRepository(db)
	listingService := colleges_services.NewListingService(collegeRepo, collegeRepo, referenceLookup, config.Logger)

	// Routes
	college_routes.CollegeRouterInit(app, db, collegeRepo, collegeSearchRepo, listingService)
	search_routes.InitSearchRoutes(app, &search_controllers.SearchController{
		Repo:        collegeSearchRepo,
		AsynqClient: asynqClient,
	})

	// Background worker: full reindex task
	reindexProcessor := &jobs.ReindexProcessor{
		CollegeRepo: collegeRepo,
		SearchRepo:  collegeSearchRepo,
		Redis:       redisClient,
	}
	asynqServer := asynq.NewServer(asynqRedisOpt, asynq.Config{Concurrency: 2})
	mux := asynq.NewServeMux()
	mux.Handle(jobs.TypeReindexAll, reindexProcessor)
	go func() {
		if err := asynqServer.Run(mux); err != nil {
			config.Logger.Fatal("Asynq server stopped", zap.Error(err))
		}
	}()

	// Nightly reindex keeps the index honest even when per-write sync failed
	cronRunner := cron.New()
	if err := jobs.RegisterCron(cronRunner, asynqClient); err != nil {
		config.Logger.Fatal("Failed to register cron jobs", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	port := config.GetEnvOrDefault("PORT", "8080")
	config.Logger.Info("Starting server", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		config.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
