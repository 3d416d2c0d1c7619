// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. AssignmentExpiryJob - Periodically closes broadcast offers no rider
// accepted within the broadcast window, freeing the shop orders for a
// rebroadcast.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireAssignmentsHandler, window, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The expiry sweep is a single conditional update racing safely with
// concurrent accepts, so a failed run is only logged; the next tick retries.
package jobs
