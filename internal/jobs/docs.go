// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with seconds resolution.
//
// # Available Jobs
//
// OutboxRelayJob runs every second and publishes the domain events that
// command handlers committed to the outbox table.
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(publishOutboxEventsHandler, cfg.OutboxBatchSize, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Messages published
// before the failure are marked published; the rest stay in the outbox.
package jobs
