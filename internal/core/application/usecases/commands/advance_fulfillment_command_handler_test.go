package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fulfillmentMocks() (*MockOrderRepository, *MockOutboxRepository, *MockUoW, *MockFulfillmentUoWFactory) {
	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)

	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("OutboxRepository").Return(outboxRepo)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow)

	return orderRepo, outboxRepo, uow, factory
}

func TestAdvanceFulfillmentCommandHandler_Handle_Stages(t *testing.T) {
	tests := []struct {
		name       string
		from       order.Status
		stage      commands.Stage
		want       order.Status
		wantsEvent bool
	}{
		{"confirm paid order", order.Paid, commands.StageConfirm, order.Confirmed, false},
		{"ship confirmed order", order.Confirmed, commands.StageShip, order.Shipped, true},
		{"deliver shipped order", order.Shipped, commands.StageDeliver, order.Delivered, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()

			ord := testOrderWithStatus(t, kernel.NewUUID(), tc.from)
			cmd, err := commands.NewAdvanceFulfillmentCommand(ord.ID(), testPrincipal(t, services.RoleSeller), tc.stage)
			require.NoError(t, err)

			orderRepo, outboxRepo, uow, factory := fulfillmentMocks()

			uow.On("Begin", ctx).Return(nil).Once()
			orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
			orderRepo.On("Update", ctx, ord).Return(nil).Once()
			if tc.wantsEvent {
				outboxRepo.On("Add", ctx, mock.AnythingOfType("ports.OutboxMessage")).Return(nil).Once()
			}
			uow.On("Commit", ctx).Return(nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			handler := commands.NewAdvanceFulfillmentCommandHandler(factory)
			err = handler.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tc.want, ord.Status())
			if !tc.wantsEvent {
				outboxRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
			}
			uow.AssertExpectations(t)
		})
	}
}

func TestAdvanceFulfillmentCommandHandler_Handle_SkippedStageRejected(t *testing.T) {
	ctx := t.Context()

	ord := testOrderWithStatus(t, kernel.NewUUID(), order.Paid)
	cmd, err := commands.NewAdvanceFulfillmentCommand(ord.ID(), testPrincipal(t, services.RoleSeller), commands.StageShip)
	require.NoError(t, err)

	orderRepo, _, uow, factory := fulfillmentMocks()

	uow.On("Begin", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAdvanceFulfillmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidStateTransition)
	assert.Equal(t, order.Paid, ord.Status())
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestAdvanceFulfillmentCommandHandler_Handle_CustomerDenied(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewAdvanceFulfillmentCommand(
		kernel.NewUUID(), testPrincipal(t, services.RoleCustomer), commands.StageConfirm)
	require.NoError(t, err)

	factory := new(MockFulfillmentUoWFactory)
	handler := commands.NewAdvanceFulfillmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrAccessDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestStageFromString(t *testing.T) {
	t.Run("parses stage names", func(t *testing.T) {
		for name, want := range map[string]commands.Stage{
			"Confirm": commands.StageConfirm,
			"Ship":    commands.StageShip,
			"Deliver": commands.StageDeliver,
		} {
			stage, err := commands.StageFromString(name)
			require.NoError(t, err)
			assert.Equal(t, want, stage)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := commands.StageFromString("Teleport")
		require.Error(t, err)
	})
}
