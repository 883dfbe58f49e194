package paymentrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/paymentrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// PaymentRepositoryIntegrationTestSuite provides integration tests for
// PaymentRepository using PostgreSQL containers. The connection is opened with
// TranslateError so the unique index on order_id surfaces as
// gorm.ErrDuplicatedKey, which the repository maps to the domain error.
type PaymentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *paymentrepo.GormPaymentRepository
	tracker    *MockAggregateTracker
}

func (suite *PaymentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&paymentrepo.PaymentDTO{}))
}

func (suite *PaymentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE payments").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = paymentrepo.NewGormPaymentRepository(suite.db, suite.tracker)
}

func (suite *PaymentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestAdd_ValidPayment_Success() {
	ctx := context.Background()

	record := suite.createTestPayment(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()

	err := suite.repository.Add(ctx, record)
	suite.Require().NoError(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestAdd_SecondPaymentForSameOrder_ReturnsAlreadyExists() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	first := suite.createTestPayment(orderID)
	second := suite.createTestPayment(orderID)

	suite.tracker.On("TrackAggregate", first.ID(), first).Once()

	err := suite.repository.Add(ctx, first)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, payment.ErrPaymentAlreadyExists)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestUpdate_SettledPayment_RoundTrips() {
	ctx := context.Background()

	record := suite.createTestPayment(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", record.ID(), record)

	err := suite.repository.Add(ctx, record)
	suite.Require().NoError(err)

	suite.Require().NoError(record.AttachGatewayOrder("order_ext_123"))
	suite.Require().NoError(record.Settle("pay_ext_456"))

	err = suite.repository.Update(ctx, record)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.Equal(payment.Success, retrieved.Status())
	suite.Equal(payment.MethodOnline, retrieved.Method())
	suite.Equal("pay_ext_456", retrieved.CorrelationToken())
	suite.True(record.Amount().IsEqual(retrieved.Amount()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestUpdate_NonExistentPayment_ReturnsError() {
	ctx := context.Background()

	missing := suite.createTestPayment(kernel.NewUUID())

	err := suite.repository.Update(ctx, missing)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestGetByOrderID_ExistingPayment_ReturnsPayment() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	record := suite.createTestPayment(orderID)
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()

	err := suite.repository.Add(ctx, record)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(record.ID(), retrieved.ID())
	suite.Equal(orderID, retrieved.OrderID())
	suite.Equal(payment.Pending, retrieved.Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestGetByOrderID_NoPayment_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetByOrderID(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestPayment creates a pending COD payment for the given order.
func (suite *PaymentRepositoryIntegrationTestSuite) createTestPayment(orderID kernel.UUID) *payment.Payment {
	amount, err := kernel.NewMoney(decimal.RequireFromString("299.98"), "INR")
	suite.Require().NoError(err)

	record, err := payment.NewPayment(kernel.NewUUID(), orderID, payment.MethodCOD, amount)
	suite.Require().NoError(err)
	return record
}

func TestPaymentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentRepositoryIntegrationTestSuite))
}
