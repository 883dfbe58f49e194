package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// dispatchBatchSize caps how many outbox rows one tick drains.
const dispatchBatchSize = 100

// NotificationDispatchJob drains the transactional outbox. Every second it
// reads unpublished messages oldest first, hands each to the broker publisher
// and stamps the row only after the broker acknowledged it. A crash between
// publish and stamp re-delivers the message on the next tick, so consumers
// must tolerate duplicates.
type NotificationDispatchJob struct {
	outbox    ports.OutboxRepository
	publisher ports.NotificationPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewNotificationDispatchJob creates the outbox dispatch job.
func NewNotificationDispatchJob(
	outbox ports.OutboxRepository,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		outbox:    outbox,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "notification_dispatch_job"),
	}
}

// Start begins the dispatch job to run every second.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.dispatchOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started (running every second)")
	return nil
}

// Stop stops the dispatch job.
func (j *NotificationDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}

// dispatchOnce drains one batch. A publish failure stops the batch so the
// remaining messages keep their order on the next tick.
func (j *NotificationDispatchJob) dispatchOnce(ctx context.Context) error {
	messages, err := j.outbox.GetUnpublished(ctx, dispatchBatchSize)
	if err != nil {
		return err
	}

	for _, message := range messages {
		if err := j.publisher.Publish(ctx, message); err != nil {
			return err
		}
		if err := j.outbox.MarkPublished(ctx, message.ID); err != nil {
			return err
		}
	}

	return nil
}
