package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/retry"
)

// CancelOrderCommandHandler abandons an order. What happens to the money
// depends on how far the order got:
//
//   - Created/Placed: the order is cancelled, the pending payment is marked
//     Failed, nothing to refund.
//   - Paid/Confirmed/Shipped: the settled payment is refunded and the order
//     moves to Refunded.
//   - Delivered and terminal states: rejected with
//     order.ErrInvalidStateTransition.
//
// Either branch releases every reserved line back to stock in the same
// transaction.
type CancelOrderCommandHandler struct {
	uowFactory SettlementUoWFactory
	ledger     InventoryLedger
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
func NewCancelOrderCommandHandler(uowFactory SettlementUoWFactory, ledger InventoryLedger) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retry.Optimistic(ctx, retry.DefaultMaxAttempts, func(ctx context.Context) error {
		return h.cancelOnce(ctx, cmd)
	})
}

func (h CancelOrderCommandHandler) cancelOnce(ctx context.Context, cmd CancelOrderCommand) error {
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

	switch ord.Status() {
	case order.Created, order.Placed:
		if err = ord.Cancel(); err != nil {
			return err
		}
		if err = record.MarkFailed(); err != nil {
			return err
		}
	case order.Paid, order.Confirmed, order.Shipped:
		if err = record.Refund(); err != nil {
			return err
		}
		if err = ord.Refund(); err != nil {
			return err
		}
	default:
		// Delivered, Cancelled, Refunded. Cancel() produces the uniform
		// transition error for the current status.
		return ord.Cancel()
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
