package commands

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/pkg/retry"
)

// PlaceOrderCommandHandler runs checkout: it turns the buyer's cart into a
// placed order in one transaction. Stock is reserved per line, the total is
// frozen from the cart's price snapshots, a pending COD payment is created,
// and the cart is cleared. A concurrent reservation on the same product
// retries the whole transaction up to retry.DefaultMaxAttempts times.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, ledger)
//	cmd, _ := NewPlaceOrderCommand(kernel.NewUUID(), buyerID)
//	switch err := handler.Handle(ctx, cmd); {
//	case errors.Is(err, cart.ErrEmptyCart):
//	    // nothing to check out
//	case errors.Is(err, inventory.ErrInsufficientStock):
//	    // a line cannot be covered
//	case errors.Is(err, retry.ErrAttemptsExhausted):
//	    // contended stock, ask the buyer to retry
//	}
type PlaceOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	ledger     InventoryLedger
}

// NewPlaceOrderCommandHandler creates a handler for checkout operations.
func NewPlaceOrderCommandHandler(uowFactory CheckoutUoWFactory, ledger InventoryLedger) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
	}
}

// Handle processes the checkout command. Each optimistic-lock retry runs a
// fresh transaction against freshly read stock records.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retry.Optimistic(ctx, retry.DefaultMaxAttempts, func(ctx context.Context) error {
		return h.placeOnce(ctx, cmd)
	})
}

func (h PlaceOrderCommandHandler) placeOnce(ctx context.Context, cmd PlaceOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	buyerCart, err := uow.CartRepository().GetByOwner(ctx, cmd.BuyerID())
	if err != nil {
		return err
	}
	if buyerCart.IsEmpty() {
		return cart.ErrEmptyCart
	}

	stockRepo := uow.InventoryRepository()
	items := make([]order.Item, 0, len(buyerCart.Items()))
	for _, line := range buyerCart.Items() {
		if err = h.ledger.Reserve(ctx, stockRepo, line.ProductID(), line.Quantity()); err != nil {
			return err
		}

		item, itemErr := order.NewItem(line.ProductID(), line.Quantity(), line.UnitPrice())
		if itemErr != nil {
			return itemErr
		}
		items = append(items, item)
	}

	ord, err := order.NewOrder(cmd.OrderID(), cmd.BuyerID(), items)
	if err != nil {
		return err
	}
	if err = ord.Place(); err != nil {
		return err
	}
	if err = uow.OrderRepository().Add(ctx, ord); err != nil {
		return err
	}

	record, err := payment.NewPayment(kernel.NewUUID(), ord.ID(), payment.MethodCOD, ord.TotalAmount())
	if err != nil {
		return err
	}
	if err = uow.PaymentRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.CartRepository().Clear(ctx, cmd.BuyerID()); err != nil {
		return err
	}

	message, err := newOrderMessage(TopicOrderPlaced, ord)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
