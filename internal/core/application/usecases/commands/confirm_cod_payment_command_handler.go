package commands

import (
	"context"

	"storefront/internal/core/domain/services"
)

// ConfirmCodPaymentCommandHandler settles a cash-on-delivery payment on
// operator confirmation. The payment keeps whatever correlation token it has
// (none for plain COD) and the order moves to Paid in the same transaction.
// Confirming an already settled payment is a no-op.
type ConfirmCodPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewConfirmCodPaymentCommandHandler creates a handler for COD settlement.
func NewConfirmCodPaymentCommandHandler(uowFactory PaymentUoWFactory) ConfirmCodPaymentCommandHandler {
	return ConfirmCodPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the confirmation command.
func (h ConfirmCodPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmCodPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := services.NewAccessPolicy().AuthorizeOperator(cmd.Principal()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	record, err := uow.PaymentRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if record.IsSettled() {
		return nil
	}

	if err = record.Settle(""); err != nil {
		return err
	}
	if err = ord.Pay(); err != nil {
		return err
	}

	if err = uow.PaymentRepository().Update(ctx, record); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	message, err := newOrderMessage(TopicOrderPaid, ord)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
