package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

// NewJobManager creates the job manager. batchSize bounds the messages one
// relay run publishes.
func NewJobManager(relayHandler OutboxRelayHandler, batchSize int, logger *slog.Logger) (*JobManager, error) {
	relay, err := NewOutboxRelayJob(relayHandler, batchSize, logger)
	if err != nil {
		return nil, err
	}
	return &JobManager{outboxRelayJob: relay}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
