package jobs

import (
	"context"
	"os"
	"time"

	"go-storefront/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultCleanupSchedule runs the sweep once an hour.
const DefaultCleanupSchedule = "@hourly"

// CleanupJob runs the order cleanup sweep on a schedule. The sweep itself
// is idempotent, so overlapping or repeated runs are harmless.
type CleanupJob struct {
	service *services.CleanupService
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewCleanupJob creates a scheduled wrapper around the cleanup service.
func NewCleanupJob(service *services.CleanupService, logger *zap.Logger) *CleanupJob {
	return &CleanupJob{
		service: service,
		cron:    cron.New(),
		logger:  logger.With(zap.String("component", "cleanup_job")),
	}
}

// Start registers the sweep with the scheduler and starts it. The
// schedule comes from CLEANUP_SCHEDULE when set.
func (j *CleanupJob) Start() error {
	schedule := os.Getenv("CLEANUP_SCHEDULE")
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}

	_, err := j.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if _, err := j.service.Run(ctx); err != nil {
			j.logger.Error("cleanup sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("cleanup job started", zap.String("schedule", schedule))
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *CleanupJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("cleanup job stopped")
}
