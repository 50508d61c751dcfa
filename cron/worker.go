package cron

import (
	"context"
	"fmt"
	"time"

	"rosa/config"
	"rosa/models"
	"rosa/services/booking"
	"rosa/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// IntegrityChecker is the booking operation the job runs.
type IntegrityChecker interface {
	Today() string
	CheckIntegrity(ctx context.Context, date string) (*models.IntegrityReport, error)
}

// IntegrityWorker runs the scheduled integrity check through asynq.
type IntegrityWorker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	logger    *zap.Logger
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitIntegrityWorker registers the cron entry and starts the worker and
// scheduler in the background.
func InitIntegrityWorker(svc booking.BookingService, logger *zap.Logger) (*IntegrityWorker, error) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{
		Location: config.Location(),
		Logger:   logger.Sugar(),
	})
	task, err := tasks.NewIntegrityCheckTask(tasks.IntegrityCheckPayload{})
	if err != nil {
		return nil, err
	}
	entryID, err := scheduler.Register(config.AppConfig.IntegrityCron, task)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule integrity check %q: %w", config.AppConfig.IntegrityCron, err)
	}
	logger.Info("Integrity check scheduled", zap.String("cron", config.AppConfig.IntegrityCron), zap.String("entryId", entryID))

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeIntegrityCheck, HandleIntegrityTask(svc, logger))

	w := &IntegrityWorker{server: srv, scheduler: scheduler, logger: logger}

	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Integrity worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
		logger.Error("Integrity worker gave up; scheduled checks are disabled")
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("Integrity scheduler stopped", zap.Error(err))
		}
	}()

	return w, nil
}

// Shutdown stops the scheduler and drains the worker.
func (w *IntegrityWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	w.logger.Info("Integrity worker stopped")
}

// HandleIntegrityTask scans the payload date, or today when it is empty.
func HandleIntegrityTask(svc IntegrityChecker, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseIntegrityCheckPayload(task)
		if err != nil {
			logger.Error("Invalid integrity task payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		date := p.Date
		if date == "" {
			date = svc.Today()
		}

		report, err := svc.CheckIntegrity(ctx, date)
		if err != nil {
			logger.Error("Integrity check failed", zap.String("date", date), zap.Error(err))
			return err
		}
		logger.Info("Integrity check finished",
			zap.String("date", date),
			zap.Int("scanned", report.Scanned),
			zap.Int("conflicts", len(report.Conflicts)))
		return nil
	}
}
