package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/inventoryrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAvailableStockQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAvailableStockQueryHandler
	stockRepo *inventoryrepo.GormInventoryRepository
}

func (suite *GetAvailableStockQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&inventoryrepo.StockRecordDTO{}, &productrepo.ProductDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAvailableStockQueryHandler(db)
	suite.stockRepo = inventoryrepo.NewGormInventoryRepository(db)
}

func (suite *GetAvailableStockQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAvailableStockQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE stock_records, products").Error
	suite.Require().NoError(err)
}

func (suite *GetAvailableStockQueryHandlerTestSuite) seedProduct(productID kernel.UUID) {
	err := suite.db.Create(&productrepo.ProductDTO{
		ID:       productID.Bytes(),
		Name:     "Steel water bottle",
		Price:    decimal.RequireFromString("299.00"),
		Currency: "INR",
	}).Error
	suite.Require().NoError(err)
}

func (suite *GetAvailableStockQueryHandlerTestSuite) TestHandle_StockedProduct_ReturnsQuantity() {
	productID := kernel.NewUUID()
	suite.seedProduct(productID)
	record, err := inventory.RestoreRecord(productID, 7, 0)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.stockRepo.Add(context.Background(), record))

	query, err := queries.NewGetAvailableStockQuery(productID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(productID, result.ProductID)
	suite.Equal(7, result.Quantity)
}

func (suite *GetAvailableStockQueryHandlerTestSuite) TestHandle_NeverStockedProduct_ReturnsZero() {
	productID := kernel.NewUUID()
	suite.seedProduct(productID)

	query, err := queries.NewGetAvailableStockQuery(productID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(productID, result.ProductID)
	suite.Equal(0, result.Quantity)
}

func (suite *GetAvailableStockQueryHandlerTestSuite) TestHandle_UnknownProduct_ReturnsNotFound() {
	query, err := queries.NewGetAvailableStockQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *GetAvailableStockQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAvailableStockQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)
	suite.Require().ErrorIs(err, queries.ErrGetAvailableStockQueryIsNotConstructed)
}

func TestGetAvailableStockQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAvailableStockQueryHandlerTestSuite))
}
