package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOutboxRepository struct {
	mock.Mock
}

func (m *mockOutboxRepository) Add(ctx context.Context, message ports.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *mockOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func queuedMessage(topic string) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		Topic:     topic,
		Key:       kernel.NewUUID().String(),
		Payload:   []byte(`{}`),
		CreatedAt: time.Now().UTC(),
	}
}

func TestDispatchOnce_PublishesAndMarksEachMessage(t *testing.T) {
	first := queuedMessage("storefront.order.placed")
	second := queuedMessage("storefront.order.paid")

	outbox := new(mockOutboxRepository)
	publisher := new(mockPublisher)

	outbox.On("GetUnpublished", mock.Anything, dispatchBatchSize).
		Return([]ports.OutboxMessage{first, second}, nil).Once()
	publisher.On("Publish", mock.Anything, first).Return(nil).Once()
	outbox.On("MarkPublished", mock.Anything, first.ID).Return(nil).Once()
	publisher.On("Publish", mock.Anything, second).Return(nil).Once()
	outbox.On("MarkPublished", mock.Anything, second.ID).Return(nil).Once()

	job := NewNotificationDispatchJob(outbox, publisher, slog.Default())

	err := job.dispatchOnce(context.Background())
	require.NoError(t, err)

	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDispatchOnce_EmptyOutbox_NoPublishes(t *testing.T) {
	outbox := new(mockOutboxRepository)
	publisher := new(mockPublisher)

	outbox.On("GetUnpublished", mock.Anything, dispatchBatchSize).
		Return([]ports.OutboxMessage{}, nil).Once()

	job := NewNotificationDispatchJob(outbox, publisher, slog.Default())

	err := job.dispatchOnce(context.Background())
	require.NoError(t, err)

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	outbox.AssertExpectations(t)
}

func TestDispatchOnce_PublishFailure_StopsBatchAndKeepsMessageUnpublished(t *testing.T) {
	first := queuedMessage("storefront.order.placed")
	second := queuedMessage("storefront.order.paid")
	brokerDown := errors.New("broker unreachable")

	outbox := new(mockOutboxRepository)
	publisher := new(mockPublisher)

	outbox.On("GetUnpublished", mock.Anything, dispatchBatchSize).
		Return([]ports.OutboxMessage{first, second}, nil).Once()
	publisher.On("Publish", mock.Anything, first).Return(brokerDown).Once()

	job := NewNotificationDispatchJob(outbox, publisher, slog.Default())

	err := job.dispatchOnce(context.Background())
	require.ErrorIs(t, err, brokerDown)

	outbox.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, second)
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
