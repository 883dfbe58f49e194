package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmCodPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	ord := testOrderWithStatus(t, kernel.NewUUID(), order.Placed)
	record := testPaymentWithStatus(t, ord.ID(), payment.MethodCOD, payment.Pending, "")

	cmd, err := commands.NewConfirmCodPaymentCommand(ord.ID(), testPrincipal(t, services.RoleSeller))
	require.NoError(t, err)

	orderRepo, paymentRepo, outboxRepo, uow, factory := verifyMocks()

	uow.On("Begin", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	paymentRepo.On("GetByOrderID", ctx, ord.ID()).Return(record, nil).Once()
	paymentRepo.On("Update", ctx, record).Return(nil).Once()
	orderRepo.On("Update", ctx, ord).Return(nil).Once()
	outboxRepo.On("Add", ctx, mock.AnythingOfType("ports.OutboxMessage")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewConfirmCodPaymentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, payment.Success, record.Status())
	assert.Empty(t, record.CorrelationToken(), "plain COD settles without a gateway token")
	assert.Equal(t, order.Paid, ord.Status())
	uow.AssertExpectations(t)
}

func TestConfirmCodPaymentCommandHandler_Handle_ReplayIsNoOp(t *testing.T) {
	ctx := t.Context()

	ord := testOrderWithStatus(t, kernel.NewUUID(), order.Paid)
	record := testPaymentWithStatus(t, ord.ID(), payment.MethodCOD, payment.Success, "")

	cmd, err := commands.NewConfirmCodPaymentCommand(ord.ID(), testPrincipal(t, services.RoleAdmin))
	require.NoError(t, err)

	orderRepo, paymentRepo, _, uow, factory := verifyMocks()

	uow.On("Begin", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	paymentRepo.On("GetByOrderID", ctx, ord.ID()).Return(record, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewConfirmCodPaymentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	paymentRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestConfirmCodPaymentCommandHandler_Handle_CustomerDenied(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewConfirmCodPaymentCommand(kernel.NewUUID(), testPrincipal(t, services.RoleCustomer))
	require.NoError(t, err)

	factory := new(MockPaymentUoWFactory)
	handler := commands.NewConfirmCodPaymentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrAccessDenied)
	factory.AssertNotCalled(t, "Create")
}
