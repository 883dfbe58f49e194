package cmd

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/outboxrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/adapters/out/razorpay"
	"storefront/internal/adapters/out/redisstore"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	gateway    ports.PaymentGateway
	sessions   ports.GatewaySessionStore
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	enabled, _ := strconv.ParseBool(config.RazorpayEnabled)

	sessionTTL, err := time.ParseDuration(config.GatewaySessionTTL)
	if err != nil {
		sessionTTL = commands.DefaultGatewaySessionTTL
	}

	redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddr})

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:    razorpay.NewClient(config.RazorpayKeyID, config.RazorpayKeySecret, enabled),
		sessions:   redisstore.NewSessionStore(redisClient),
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.createInventoryLedger())
}

func (c *CompositionRoot) CreateCreateGatewayOrderCommandHandler() commands.CreateGatewayOrderCommandHandler {
	return commands.NewCreateGatewayOrderCommandHandler(
		c.createPaymentUoWFactory(), c.gateway, c.sessions, c.sessionTTL)
}

func (c *CompositionRoot) CreateVerifyGatewayPaymentCommandHandler() commands.VerifyGatewayPaymentCommandHandler {
	return commands.NewVerifyGatewayPaymentCommandHandler(
		c.createPaymentUoWFactory(), c.gateway, c.sessions)
}

func (c *CompositionRoot) CreateConfirmCodPaymentCommandHandler() commands.ConfirmCodPaymentCommandHandler {
	return commands.NewConfirmCodPaymentCommandHandler(c.createPaymentUoWFactory())
}

func (c *CompositionRoot) CreateRefundPaymentCommandHandler() commands.RefundPaymentCommandHandler {
	return commands.NewRefundPaymentCommandHandler(
		c.createSettlementUoWFactory(), c.createInventoryLedger())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		c.createSettlementUoWFactory(), c.createInventoryLedger())
}

func (c *CompositionRoot) CreateAdvanceFulfillmentCommandHandler() commands.AdvanceFulfillmentCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceFulfillmentCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByUserQueryHandler() queries.GetOrdersByUserQueryHandler {
	return queries.NewGetOrdersByUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPaymentByOrderQueryHandler() queries.GetPaymentByOrderQueryHandler {
	return queries.NewGetPaymentByOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableStockQueryHandler() queries.GetAvailableStockQueryHandler {
	return queries.NewGetAvailableStockQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateCreateGatewayOrderCommandHandler(),
		c.CreateVerifyGatewayPaymentCommandHandler(),
		c.CreateConfirmCodPaymentCommandHandler(),
		c.CreateRefundPaymentCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateAdvanceFulfillmentCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrdersByUserQueryHandler(),
		c.CreateGetPaymentByOrderQueryHandler(),
		c.CreateGetAvailableStockQueryHandler(),
	)
}

// CreateJobManager builds the outbox dispatcher. The outbox repository here
// runs outside any unit of work; each MarkPublished auto-commits on its own.
func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	publisher := kafka.NewPublisher(strings.Split(config.KafkaBrokers, ","))
	outbox := outboxrepo.NewGormOutboxRepository(c.gormDB)
	return jobs.NewJobManager(outbox, publisher, c.logger)
}

func (c *CompositionRoot) createInventoryLedger() commands.InventoryLedger {
	return commands.NewInventoryLedger(productrepo.NewGormProductRepository(c.gormDB))
}

func (c *CompositionRoot) createPaymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createSettlementUoWFactory() commands.SettlementUoWFactory {
	return FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}
