// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// BacklogReportJob counts delivery requests per status and logs the result.
// Its schedule is a six-field cron expression (seconds first) taken from
// BACKLOG_REPORT_SCHEDULE, every five minutes by default.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(countHandler, cfg.BacklogReportSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed report is logged with the error and retried on the next tick only.
package jobs
