package commands

import (
	"context"

	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/retry"
)

// RefundPaymentCommandHandler returns a settled payment: the payment moves to
// Refunded, the order to Refunded, and every reserved line goes back to the
// stock pool, all in one transaction. The order's owner or an admin may
// refund. Only a Success payment can be refunded; anything else fails with
// payment.ErrInvalidStateTransition.
type RefundPaymentCommandHandler struct {
	uowFactory SettlementUoWFactory
	ledger     InventoryLedger
}

// NewRefundPaymentCommandHandler creates a handler for refund operations.
func NewRefundPaymentCommandHandler(uowFactory SettlementUoWFactory, ledger InventoryLedger) RefundPaymentCommandHandler {
	return RefundPaymentCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
	}
}

// Handle processes the refund command. Stock releases ride the same
// optimistic-retry loop as reservations.
func (h RefundPaymentCommandHandler) Handle(ctx context.Context, cmd RefundPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retry.Optimistic(ctx, retry.DefaultMaxAttempts, func(ctx context.Context) error {
		return h.refundOnce(ctx, cmd)
	})
}

func (h RefundPaymentCommandHandler) refundOnce(ctx context.Context, cmd RefundPaymentCommand) error {
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
	if err = services.NewAccessPolicy().Authorize(cmd.Principal(), ord.OwnerID()); err != nil {
		return err
	}

	record, err := uow.PaymentRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = record.Refund(); err != nil {
		return err
	}
	if err = ord.Refund(); err != nil {
		return err
	}

	stockRepo := uow.InventoryRepository()
	for _, item := range ord.Items() {
		if err = h.ledger.Release(ctx, stockRepo, item.ProductID(), item.Quantity()); err != nil {
			return err
		}
	}

	if err = uow.PaymentRepository().Update(ctx, record); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
