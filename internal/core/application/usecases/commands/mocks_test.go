package commands_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByOwner(ctx context.Context, ownerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, record *payment.Payment) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, record *payment.Payment) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, record *inventory.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockInventoryRepository) Get(ctx context.Context, productID kernel.UUID) (*inventory.Record, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) Save(ctx context.Context, record *inventory.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, ownerID kernel.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, message ports.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Exists(ctx context.Context, productID kernel.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateRemoteOrder(
	ctx context.Context,
	amountMinorUnits int64,
	currency string,
	receipt string,
	notes map[string]string,
) (string, error) {
	args := m.Called(ctx, amountMinorUnits, currency, receipt, notes)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) VerifySignature(externalOrderID, externalPaymentID, signature string) bool {
	args := m.Called(externalOrderID, externalPaymentID, signature)
	return args.Bool(0)
}

type MockGatewaySessionStore struct{ mock.Mock }

func (m *MockGatewaySessionStore) Put(
	ctx context.Context,
	externalOrderID string,
	orderID kernel.UUID,
	ttl time.Duration,
) error {
	args := m.Called(ctx, externalOrderID, orderID, ttl)
	return args.Error(0)
}

func (m *MockGatewaySessionStore) Get(ctx context.Context, externalOrderID string) (kernel.UUID, error) {
	args := m.Called(ctx, externalOrderID)
	if args.Get(0) == nil {
		return kernel.UUID{}, args.Error(1)
	}
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockGatewaySessionStore) Delete(ctx context.Context, externalOrderID string) error {
	args := m.Called(ctx, externalOrderID)
	return args.Error(0)
}

// MockUoW implements every command unit-of-work interface so one mock type
// serves all handlers. Repository accessors are registered outside
// mock.InOrder chains since handlers call them more than once.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.PaymentUoW)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

// Test data helpers shared by the handler tests.

func testMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	d, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	m, err := kernel.NewMoney(d, "INR")
	require.NoError(t, err)
	return m
}

func testPrincipal(t *testing.T, roles ...services.Role) services.Principal {
	t.Helper()
	p, err := services.NewPrincipal(kernel.NewUUID(), roles...)
	require.NoError(t, err)
	return p
}

func principalFor(t *testing.T, userID kernel.UUID, roles ...services.Role) services.Principal {
	t.Helper()
	p, err := services.NewPrincipal(userID, roles...)
	require.NoError(t, err)
	return p
}

func testOrderWithStatus(t *testing.T, ownerID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 2, testMoney(t, "149.99"))
	require.NoError(t, err)
	ord, err := order.RestoreOrder(
		kernel.NewUUID(), ownerID, []order.Item{item},
		item.Subtotal(), status, time.Now().UTC(),
	)
	require.NoError(t, err)
	return ord
}

func testPaymentWithStatus(
	t *testing.T,
	orderID kernel.UUID,
	method payment.Method,
	status payment.Status,
	token string,
) *payment.Payment {
	t.Helper()
	record, err := payment.RestorePayment(
		kernel.NewUUID(), orderID, method, status, token, testMoney(t, "299.98"),
	)
	require.NoError(t, err)
	return record
}
