package jobs

import (
	"context"
	"log/slog"
	"time"

	"foodflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AssignmentExpiryJob periodically expires broadcast offers that no rider
// accepted within the broadcast window. Runs every 30 seconds.
type AssignmentExpiryJob struct {
	handler commands.ExpireAssignmentsCommandHandler
	window  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAssignmentExpiryJob creates a new job sweeping stale broadcasts.
// Broadcasts older than the given window are expired on each run.
func NewAssignmentExpiryJob(
	handler commands.ExpireAssignmentsCommandHandler,
	window time.Duration,
	logger *slog.Logger,
) *AssignmentExpiryJob {
	return &AssignmentExpiryJob{
		handler: handler,
		window:  window,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "assignment_expiry_job"),
	}
}

// Start begins the expiry sweep, running every 30 seconds.
func (j *AssignmentExpiryJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireAssignmentsCommand(j.window)
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment expiry job misconfigured", "error", err)
			return
		}

		count, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment expiry job failed", "error", err)
			return
		}

		if count > 0 {
			j.logger.InfoContext(ctx, "Expired stale broadcasts", "count", count)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment expiry job started (running every 30 seconds)")
	return nil
}

// Stop stops the expiry sweep.
func (j *AssignmentExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment expiry job stopped")
}
