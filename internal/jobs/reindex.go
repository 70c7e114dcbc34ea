package jobs

import (
	"context"
	"time"

	"college-catalog-backend/colleges/repositories"
	"college-catalog-backend/config"
	"college-catalog-backend/db/models"
	searchrepositories "college-catalog-backend/search/repositories"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	TypeReindexAll = "search:reindex_all"

	reindexBatchSize = 500
	reindexLockKey   = "jobs:reindex_all:running"
	reindexLockTTL   = 30 * time.Minute
)

func NewReindexAllTask() *asynq.Task {
	return asynq.NewTask(TypeReindexAll, nil)
}

// ReindexProcessor rebuilds the search index from the relational store, the
// single source of truth. A redis lock prevents overlapping runs.
type ReindexProcessor struct {
	CollegeRepo repositories.CollegeRepository
	SearchRepo  searchrepositories.CollegeSearchRepositoryInterface
	Redis       *redis.Client
}

func (p *ReindexProcessor) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	locked, err := p.Redis.SetNX(ctx, reindexLockKey, "true", reindexLockTTL).Result()
	if err != nil {
		return err
	}
	if !locked {
		config.Logger.Warn("Reindex already running, skipping")
		return nil
	}
	defer p.Redis.Del(ctx, reindexLockKey)

	start := time.Now()
	total := 0
	err = p.CollegeRepo.ListActiveCollegesInBatches(ctx, reindexBatchSize, func(batch []models.College) error {
		total += len(batch)
		return p.SearchRepo.SyncBulkCreate(ctx, batch)
	})
	if err != nil {
		config.Logger.Error("Full reindex failed", zap.Int("indexed", total), zap.Error(err))
		return err
	}

	config.Logger.Info("Full reindex complete",
		zap.Int("indexed", total),
		zap.Duration("took", time.Since(start)))
	return nil
}

// RegisterCron schedules the nightly full reindex. Drift between the store
// and the index self-heals here even when per-write sync failed and nobody
// replayed the failure rows.
func RegisterCron(c *cron.Cron, client *asynq.Client) error {
	_, err := c.AddFunc("0 2 * * *", func() {
		if _, err := client.Enqueue(NewReindexAllTask()); err != nil {
			config.Logger.Error("Failed to enqueue nightly reindex", zap.Error(err))
		}
	})
	return err
}
