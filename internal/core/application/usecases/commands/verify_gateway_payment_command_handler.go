package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

var (
	// ErrInvalidGatewaySignature reports a callback whose signature does not
	// match the provider's HMAC. The payment is marked Failed.
	ErrInvalidGatewaySignature = errors.New("invalid gateway signature")

	// ErrGatewayOrderMismatch reports a callback whose remote order id does
	// not match the one bound to the payment. Nothing changes.
	ErrGatewayOrderMismatch = errors.New("gateway order does not match payment")
)

// VerifyGatewayPaymentCommandHandler settles an online payment from the
// provider's checkout callback. On a valid signature the payment settles and
// the order moves to Paid in the same transaction; the correlation token is
// replaced by the provider's payment id. On an invalid signature the payment
// is marked Failed, and that failure is committed.
//
// Replays of an already settled payment are a no-op: the callback may arrive
// more than once.
type VerifyGatewayPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGateway
	sessions   ports.GatewaySessionStore
}

// NewVerifyGatewayPaymentCommandHandler creates a handler for gateway
// settlement callbacks.
func NewVerifyGatewayPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
	sessions ports.GatewaySessionStore,
) VerifyGatewayPaymentCommandHandler {
	return VerifyGatewayPaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		sessions:   sessions,
	}
}

// Handle processes the verification command.
func (h VerifyGatewayPaymentCommandHandler) Handle(ctx context.Context, cmd VerifyGatewayPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
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
	if err = services.NewAccessPolicy().Authorize(cmd.Principal(), ord.OwnerID()); err != nil {
		return err
	}

	record, err := uow.PaymentRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// The provider retries callbacks; a settled payment needs no further work.
	if record.IsSettled() {
		return nil
	}

	// Signature first: a forged callback must fail the payment no matter what
	// else is wrong with it. The token and session checks below only run for
	// callbacks the provider actually signed.
	if !h.gateway.VerifySignature(cmd.ExternalOrderID(), cmd.ExternalPaymentID(), cmd.Signature()) {
		return h.rejectSettlement(ctx, uow, record, ord)
	}

	if record.CorrelationToken() != cmd.ExternalOrderID() {
		return ErrGatewayOrderMismatch
	}

	// Session entries expire on their own; a missing session falls back to
	// the correlation token check above. A session bound to a different
	// order is an attack or a bug either way.
	sessionOrderID, err := h.sessions.Get(ctx, cmd.ExternalOrderID())
	if err == nil && !sessionOrderID.IsEqual(cmd.OrderID()) {
		return ErrGatewayOrderMismatch
	}
	if err != nil && !errors.Is(err, ports.ErrSessionNotFound) {
		return err
	}

	if err = record.Settle(cmd.ExternalPaymentID()); err != nil {
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

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.sessions.Delete(ctx, cmd.ExternalOrderID())

	return nil
}

// rejectSettlement records the failed attempt. The Failed status and its
// notification are committed even though the command itself errors.
func (h VerifyGatewayPaymentCommandHandler) rejectSettlement(
	ctx context.Context,
	uow PaymentUoW,
	record *payment.Payment,
	ord *order.Order,
) error {
	if err := record.MarkFailed(); err != nil {
		return err
	}
	if err := uow.PaymentRepository().Update(ctx, record); err != nil {
		return err
	}

	message, err := newOrderMessage(TopicPaymentFailed, ord)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return ErrInvalidGatewaySignature
}
