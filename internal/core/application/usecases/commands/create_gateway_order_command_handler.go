package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// DefaultGatewaySessionTTL bounds how long a created remote order stays
// verifiable. Razorpay checkout sessions go stale well within this window.
const DefaultGatewaySessionTTL = 30 * time.Minute

// CreateGatewayOrderResult carries what the storefront client needs to open
// the provider's checkout widget.
type CreateGatewayOrderResult struct {
	ExternalOrderID  string
	AmountMinorUnits int64
	Currency         string
}

// CreateGatewayOrderCommandHandler registers a remote order with the payment
// provider and attaches its id to the order's payment record as the pending
// correlation token. The payment method flips to ONLINE and a previously
// failed payment reopens; a settled payment is rejected. The call is
// repeatable: each invocation supersedes the previous remote order.
//
// The remote call happens before the payment row is updated; a transport
// failure surfaces ports.ErrGatewayUnavailable and leaves the payment
// untouched.
type CreateGatewayOrderCommandHandler struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGateway
	sessions   ports.GatewaySessionStore
	sessionTTL time.Duration
}

// NewCreateGatewayOrderCommandHandler creates a handler for opening the
// online payment flow. A non-positive sessionTTL falls back to
// DefaultGatewaySessionTTL.
func NewCreateGatewayOrderCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
	sessions ports.GatewaySessionStore,
	sessionTTL time.Duration,
) CreateGatewayOrderCommandHandler {
	if sessionTTL <= 0 {
		sessionTTL = DefaultGatewaySessionTTL
	}

	return CreateGatewayOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Handle processes the command and returns the remote order details for the
// client checkout widget.
func (h CreateGatewayOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateGatewayOrderCommand,
) (CreateGatewayOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateGatewayOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateGatewayOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return CreateGatewayOrderResult{}, err
	}
	if err = services.NewAccessPolicy().Authorize(cmd.Principal(), ord.OwnerID()); err != nil {
		return CreateGatewayOrderResult{}, err
	}

	record, err := uow.PaymentRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return CreateGatewayOrderResult{}, err
	}
	if record.IsSettled() {
		return CreateGatewayOrderResult{}, payment.ErrPaymentAlreadySettled
	}

	amount := ord.TotalAmount()
	externalOrderID, err := h.gateway.CreateRemoteOrder(
		ctx,
		amount.MinorUnits(),
		amount.Currency(),
		"order_"+ord.ID().String(),
		map[string]string{
			"order_id":   ord.ID().String(),
			"payment_id": record.ID().String(),
		},
	)
	if err != nil {
		return CreateGatewayOrderResult{}, err
	}

	if err = record.AttachGatewayOrder(externalOrderID); err != nil {
		return CreateGatewayOrderResult{}, err
	}
	if err = uow.PaymentRepository().Update(ctx, record); err != nil {
		return CreateGatewayOrderResult{}, err
	}

	if err = h.sessions.Put(ctx, externalOrderID, ord.ID(), h.sessionTTL); err != nil {
		return CreateGatewayOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateGatewayOrderResult{}, err
	}

	return CreateGatewayOrderResult{
		ExternalOrderID:  externalOrderID,
		AmountMinorUnits: amount.MinorUnits(),
		Currency:         amount.Currency(),
	}, nil
}
