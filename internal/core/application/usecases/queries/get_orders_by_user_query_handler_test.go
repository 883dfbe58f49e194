package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrdersByUserQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrdersByUserQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrdersByUserQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TestHandle_NoOrders_ReturnsEmptySlice() {
	ownerID := kernel.NewUUID()
	principal, err := services.NewPrincipal(ownerID, services.RoleCustomer)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrdersByUserQuery(ownerID, principal)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TestHandle_ReturnsOnlyOwnersOrdersNewestFirst() {
	ownerID := kernel.NewUUID()
	strangerID := kernel.NewUUID()

	older := suite.seedOrderAt(ownerID, time.Now().UTC().Add(-2*time.Hour))
	newer := suite.seedOrderAt(ownerID, time.Now().UTC().Add(-1*time.Hour))
	suite.seedOrderAt(strangerID, time.Now().UTC())

	principal, err := services.NewPrincipal(ownerID, services.RoleCustomer)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrdersByUserQuery(ownerID, principal)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal(older.ID(), result[1].ID)
	for _, r := range result {
		suite.Equal(ownerID, r.OwnerID)
	}
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrdersByUserQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)
	suite.Require().ErrorIs(err, queries.ErrGetOrdersByUserQueryIsNotConstructed)
	suite.Nil(result)
}

// seedOrderAt persists an order restored with a fixed creation time so the
// newest-first ordering is deterministic.
func (suite *GetOrdersByUserQueryHandlerTestSuite) seedOrderAt(
	ownerID kernel.UUID, createdAt time.Time,
) *order.Order {
	unitPrice, err := kernel.NewMoney(decimal.RequireFromString("149.99"), "INR")
	suite.Require().NoError(err)

	item, err := order.NewItem(kernel.NewUUID(), 2, unitPrice)
	suite.Require().NoError(err)

	total := unitPrice.Mul(2)
	testOrder, err := order.RestoreOrder(
		kernel.NewUUID(), ownerID, []order.Item{item}, total, order.Placed, createdAt)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), testOrder))
	return testOrder
}

func TestGetOrdersByUserQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrdersByUserQueryHandlerTestSuite))
}
