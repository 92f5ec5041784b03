package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxRelayHandler is satisfied by commands.PublishOutboxEventsCommandHandler.
type OutboxRelayHandler interface {
	Handle(ctx context.Context, command commands.PublishOutboxEventsCommand) (int, error)
}

// OutboxRelayJob publishes committed domain events to the broker every second.
// A run that is still publishing when the next tick fires makes that tick a no-op.
type OutboxRelayJob struct {
	handler OutboxRelayHandler
	command commands.PublishOutboxEventsCommand
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOutboxRelayJob(handler OutboxRelayHandler, batchSize int, logger *slog.Logger) (*OutboxRelayJob, error) {
	command, err := commands.NewPublishOutboxEventsCommand(batchSize)
	if err != nil {
		return nil, err
	}
	return &OutboxRelayJob{
		handler: handler,
		command: command,
		timeout: 30 * time.Second,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "outbox_relay_job"),
	}, nil
}

// Start schedules the relay to run every second.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc("* * * * * *", j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	published, err := j.handler.Handle(ctx, j.command)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err, "published", published)
		return
	}
	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "count", published)
	}
}
