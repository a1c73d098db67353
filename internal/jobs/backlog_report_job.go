package jobs

import (
	"context"

	"grameego/internal/core/application/usecases/queries"
	"grameego/internal/core/domain/model/delivery"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultBacklogReportSchedule runs the report every five minutes.
const DefaultBacklogReportSchedule = "0 */5 * * * *"

// BacklogReportJob periodically logs how many requests sit in each delivery
// status.
type BacklogReportJob struct {
	handler  queries.CountDeliveriesByStatusQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewBacklogReportJob creates the job. schedule is a cron expression with a
// seconds field; an empty one falls back to DefaultBacklogReportSchedule.
func NewBacklogReportJob(
	handler queries.CountDeliveriesByStatusQueryHandler,
	schedule string,
	logger *zap.Logger,
) *BacklogReportJob {
	if schedule == "" {
		schedule = DefaultBacklogReportSchedule
	}
	return &BacklogReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "backlog_report_job")),
	}
}

// Start registers the report on the schedule and starts the scheduler.
func (j *BacklogReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Backlog report job started", zap.String("schedule", j.schedule))
	return nil
}

// Run produces one report. Failures are logged and left to the next tick.
func (j *BacklogReportJob) Run(ctx context.Context) {
	counts, err := j.handler.Handle(ctx, queries.NewCountDeliveriesByStatusQuery())
	if err != nil {
		j.logger.Error("Backlog report failed", zap.Error(err))
		return
	}

	j.logger.Info("Delivery backlog",
		zap.Int64(delivery.Pending.String(), counts[delivery.Pending]),
		zap.Int64(delivery.Assigned.String(), counts[delivery.Assigned]),
		zap.Int64(delivery.Picked.String(), counts[delivery.Picked]),
		zap.Int64(delivery.Delivered.String(), counts[delivery.Delivered]),
	)
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *BacklogReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Backlog report job stopped")
}
