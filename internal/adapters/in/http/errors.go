package http

import (
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/retry"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps application errors onto HTTP statuses. Conflicting writes
// and disallowed transitions are 409, validation problems 400, rejected
// gateway callbacks 422, gateway trouble 502/503.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, cart.ErrEmptyCart):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, inventory.ErrInsufficientStock):
		status = http.StatusConflict
	case errors.Is(err, retry.ErrAttemptsExhausted):
		status = http.StatusConflict
	case errors.Is(err, order.ErrInvalidStateTransition),
		errors.Is(err, payment.ErrInvalidStateTransition),
		errors.Is(err, payment.ErrPaymentAlreadySettled),
		errors.Is(err, payment.ErrPaymentAlreadyExists),
		errors.Is(err, commands.ErrGatewayOrderMismatch):
		status = http.StatusConflict
	case errors.Is(err, commands.ErrInvalidGatewaySignature):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrGatewayUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, ports.ErrGatewayDisabled):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}
