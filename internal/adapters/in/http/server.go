// Package http exposes the checkout and settlement pipeline over REST.
// Handlers translate between the wire format and application commands and
// queries; all business rules live below this layer.
package http

import (
	"net/http"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler           commands.PlaceOrderCommandHandler
	createGatewayOrderHandler   commands.CreateGatewayOrderCommandHandler
	verifyGatewayPaymentHandler commands.VerifyGatewayPaymentCommandHandler
	confirmCodPaymentHandler    commands.ConfirmCodPaymentCommandHandler
	refundPaymentHandler        commands.RefundPaymentCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	advanceFulfillmentHandler   commands.AdvanceFulfillmentCommandHandler

	// Query handlers
	getOrderHandler           queries.GetOrderQueryHandler
	getOrdersByUserHandler    queries.GetOrdersByUserQueryHandler
	getPaymentByOrderHandler  queries.GetPaymentByOrderQueryHandler
	getAvailableStockHandler  queries.GetAvailableStockQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	createGatewayOrderHandler commands.CreateGatewayOrderCommandHandler,
	verifyGatewayPaymentHandler commands.VerifyGatewayPaymentCommandHandler,
	confirmCodPaymentHandler commands.ConfirmCodPaymentCommandHandler,
	refundPaymentHandler commands.RefundPaymentCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	advanceFulfillmentHandler commands.AdvanceFulfillmentCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByUserHandler queries.GetOrdersByUserQueryHandler,
	getPaymentByOrderHandler queries.GetPaymentByOrderQueryHandler,
	getAvailableStockHandler queries.GetAvailableStockQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:           placeOrderHandler,
		createGatewayOrderHandler:   createGatewayOrderHandler,
		verifyGatewayPaymentHandler: verifyGatewayPaymentHandler,
		confirmCodPaymentHandler:    confirmCodPaymentHandler,
		refundPaymentHandler:        refundPaymentHandler,
		cancelOrderHandler:          cancelOrderHandler,
		advanceFulfillmentHandler:   advanceFulfillmentHandler,
		getOrderHandler:             getOrderHandler,
		getOrdersByUserHandler:      getOrdersByUserHandler,
		getPaymentByOrderHandler:    getPaymentByOrderHandler,
		getAvailableStockHandler:    getAvailableStockHandler,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/checkout", s.Checkout)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/refund", s.RefundPayment)
	api.POST("/orders/:orderID/fulfillment/:stage", s.AdvanceFulfillment)
	api.GET("/orders/:orderID/payment", s.GetPayment)
	api.POST("/orders/:orderID/payment/gateway-order", s.CreateGatewayOrder)
	api.POST("/orders/:orderID/payment/verify", s.VerifyGatewayPayment)
	api.POST("/orders/:orderID/payment/cod-confirm", s.ConfirmCodPayment)
	api.GET("/users/:userID/orders", s.GetUserOrders)
	api.GET("/products/:productID/stock", s.GetAvailableStock)
}

// CheckoutResponse returns the identifier of the newly placed order.
type CheckoutResponse struct {
	OrderID string `json:"order_id"`
}

// Checkout handles POST /api/v1/checkout - converts the caller's cart into a
// placed order.
func (s *Server) Checkout(ctx echo.Context) error {
	principal, err := principalFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, principal.UserID())
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{OrderID: orderID.String()})
}

// GatewayOrderResponse carries what the storefront frontend needs to open the
// provider's checkout widget.
type GatewayOrderResponse struct {
	ExternalOrderID  string `json:"external_order_id"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency"`
}

// CreateGatewayOrder handles POST /api/v1/orders/:orderID/payment/gateway-order.
func (s *Server) CreateGatewayOrder(ctx echo.Context) error {
	principal, err := principalFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateGatewayOrderCommand(orderID, principal)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.createGatewayOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, GatewayOrderResponse{
		ExternalOrderID:  result.ExternalOrderID,
		AmountMinorUnits: result.AmountMinorUnits,
		Currency:         result.Currency,
	})
}

// VerifyPaymentRequest is the callback payload the frontend relays from the
// payment provider after the buyer completes the widget flow.
type VerifyPaymentRequest struct {
	ExternalOrderID   string `json:"external_order_id"`
	ExternalPaymentID string `json:"external_payment_id"`
	Signature         string `json:"signature"`
}

// VerifyGatewayPayment handles POST /api/v1/orders/:orderID/payment/verify.
func (s *Server) VerifyGatewayPayment(ctx echo.Context) error {
	principal, err := principalFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req VerifyPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewVerifyGatewayPaymentCommand(
		orderID, principal, req.ExternalOrderID, req.ExternalPaymentID, req.Signature)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.verifyGatewayPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmCodPayment handles POST /api/v1/orders/:orderID/payment/cod-confirm.
func (s *Server) ConfirmCodPayment(ctx echo.Context) error {
	principal, err := principalFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmCodPaymentCommand(orderID, principal)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.confirmCodPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RefundPayment handles POST /api/v1/orders/:orderID/refund.
func (s *Server) RefundPayment(ctx echo.Context) error {
	principal, err := principalFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRefundPaymentCommand(orderID, principal)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.refundPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	principal, err := principalFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, principal)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceFulfillment handles POST /api/v1/orders/:orderID/fulfillment/:stage.
// The stage segment is one of confirm, ship, deliver.
func (s *Server) AdvanceFulfillment(ctx echo.Context) error {
	principal, err := principalFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	stage, err := commands.StageFromString(ctx.Param("stage"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAdvanceFulfillmentCommand(orderID, principal, stage)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.advanceFulfillmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OrderItemResponse is one line of an order.
type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderResponse is the order read model on the wire. Amounts travel as
// decimal strings to avoid float rounding in clients.
type OrderResponse struct {
	ID          string              `json:"id"`
	OwnerID     string              `json:"owner_id"`
	TotalAmount string              `json:"total_amount"`
	Currency    string              `json:"currency"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []OrderItemResponse `json:"items,omitempty"`
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	principal, err := principalFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, principal)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// GetUserOrders handles GET /api/v1/users/:userID/orders.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	principal, err := principalFromRequest(ctx)
	if err != nil {
		return err
	}

	userID, err := kernel.UUIDFromString(ctx.Param("userID"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrdersByUserQuery(userID, principal)
	if err != nil {
		return respondError(ctx, err)
	}

	results, err := s.getOrdersByUserHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderResponse, len(results))
	for i, result := range results {
		response[i] = toOrderResponse(result)
	}

	return ctx.JSON(http.StatusOK, response)
}

// PaymentResponse is the payment read model on the wire.
type PaymentResponse struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	Method           string `json:"method"`
	Status           string `json:"status"`
	CorrelationToken string `json:"correlation_token,omitempty"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
}

// GetPayment handles GET /api/v1/orders/:orderID/payment.
func (s *Server) GetPayment(ctx echo.Context) error {
	principal, err := principalFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetPaymentByOrderQuery(orderID, principal)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getPaymentByOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PaymentResponse{
		ID:               result.ID.String(),
		OrderID:          result.OrderID.String(),
		Method:           result.Method.String(),
		Status:           result.Status.String(),
		CorrelationToken: result.CorrelationToken,
		Amount:           result.Amount.StringFixed(2),
		Currency:         result.Currency,
	})
}

// StockResponse reports a product's availability.
type StockResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GetAvailableStock handles GET /api/v1/products/:productID/stock.
// Availability is public and needs no identity headers.
func (s *Server) GetAvailableStock(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("productID"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetAvailableStockQuery(productID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getAvailableStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StockResponse{
		ProductID: result.ProductID.String(),
		Quantity:  result.Quantity,
	})
}

func toOrderResponse(result queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		}
	}

	return OrderResponse{
		ID:          result.ID.String(),
		OwnerID:     result.OwnerID.String(),
		TotalAmount: result.TotalAmount.StringFixed(2),
		Currency:    result.Currency,
		Status:      result.Status.String(),
		CreatedAt:   result.CreatedAt,
		Items:       items,
	}
}
