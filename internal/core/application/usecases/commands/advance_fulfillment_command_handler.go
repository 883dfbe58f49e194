package commands

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
)

// AdvanceFulfillmentCommandHandler moves a paid order along
// Paid -> Confirmed -> Shipped -> Delivered. Each stage is a separate
// operator action; skipping a stage fails with
// order.ErrInvalidStateTransition. Shipped and Delivered transitions queue a
// buyer notification.
type AdvanceFulfillmentCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewAdvanceFulfillmentCommandHandler creates a handler for fulfillment
// transitions.
func NewAdvanceFulfillmentCommandHandler(uowFactory FulfillmentUoWFactory) AdvanceFulfillmentCommandHandler {
	return AdvanceFulfillmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the fulfillment command.
func (h AdvanceFulfillmentCommandHandler) Handle(ctx context.Context, cmd AdvanceFulfillmentCommand) error {
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

	topic := ""
	switch cmd.Stage() {
	case StageConfirm:
		err = ord.Confirm()
	case StageShip:
		err = ord.Ship()
		topic = TopicOrderShipped
	case StageDeliver:
		err = ord.Deliver()
		topic = TopicOrderDelivered
	default:
		err = fmt.Errorf("%w: unknown fulfillment stage %d", order.ErrInvalidStateTransition, cmd.Stage())
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	if topic != "" {
		message, msgErr := newOrderMessage(topic, ord)
		if msgErr != nil {
			return msgErr
		}
		if err = uow.OutboxRepository().Add(ctx, message); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
