package cmd

import (
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpin "foodflow/internal/adapters/in/http"
	"foodflow/internal/adapters/out/kafkabus"
	"foodflow/internal/adapters/out/postgres"
	"foodflow/internal/adapters/out/postgres/directoryrepo"
	"foodflow/internal/adapters/out/postmarkmail"
	"foodflow/internal/adapters/out/razorpay"
	"foodflow/internal/adapters/out/redisgeo"
	"foodflow/internal/core/application/usecases/commands"
	"foodflow/internal/core/application/usecases/queries"
	"foodflow/internal/core/ports"
	"foodflow/internal/jobs"
)

// CompositionRoot wires adapters to use cases. It owns the shared
// infrastructure clients and hands out fully constructed handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	directory  ports.Directory
	geo        ports.GeoIndex
	publisher  *kafkabus.KafkaEventPublisher
	gateway    ports.PaymentGateway
	codeSender ports.CodeSender
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddr})

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:  directoryrepo.NewGormDirectory(gormDB),
		geo:        redisgeo.NewRedisGeoIndex(redisClient),
		publisher:  kafkabus.NewKafkaEventPublisher(strings.Split(config.KafkaHost, ","), config.KafkaEventsTopic),
		gateway:    razorpay.NewRazorpayGateway(config.RazorpayKeyID, config.RazorpayKeySecret),
		codeSender: postmarkmail.NewPostmarkCodeSender(config.PostmarkServerToken, config.PostmarkFromEmail),
		logger:     logger,
	}
}

// Close releases infrastructure clients that hold connections.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(
		c.orderUoWFactory(), c.directory, c.gateway, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(
		c.orderUoWFactory(), c.gateway, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateTransitionShopOrderCommandHandler() commands.TransitionShopOrderCommandHandler {
	return commands.NewTransitionShopOrderCommandHandler(
		c.dispatchUoWFactory(), c.geo, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRebroadcastShopOrderCommandHandler() commands.RebroadcastShopOrderCommandHandler {
	return commands.NewRebroadcastShopOrderCommandHandler(
		c.dispatchUoWFactory(), c.geo, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelShopOrderCommandHandler() commands.CancelShopOrderCommandHandler {
	return commands.NewCancelShopOrderCommandHandler(
		c.dispatchUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(
		c.dispatchUoWFactory(), c.geo, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateIssueDeliveryCodeCommandHandler() commands.IssueDeliveryCodeCommandHandler {
	return commands.NewIssueDeliveryCodeCommandHandler(
		c.orderUoWFactory(), c.directory, c.codeSender, c.logger)
}

func (c *CompositionRoot) CreateVerifyDeliveryCodeCommandHandler() commands.VerifyDeliveryCodeCommandHandler {
	return commands.NewVerifyDeliveryCodeCommandHandler(
		c.dispatchUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdatePresenceCommandHandler() commands.UpdatePresenceCommandHandler {
	return commands.NewUpdatePresenceCommandHandler(
		c.dispatchUoWFactory(), c.geo, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSetRiderAvailabilityCommandHandler() commands.SetRiderAvailabilityCommandHandler {
	return commands.NewSetRiderAvailabilityCommandHandler(c.geo)
}

func (c *CompositionRoot) CreateExpireAssignmentsCommandHandler() commands.ExpireAssignmentsCommandHandler {
	return commands.NewExpireAssignmentsCommandHandler(
		c.dispatchUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOwnerOrdersQueryHandler() queries.GetOwnerOrdersQueryHandler {
	return queries.NewGetOwnerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderBroadcastsQueryHandler() queries.GetRiderBroadcastsQueryHandler {
	return queries.NewGetRiderBroadcastsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCurrentDeliveryQueryHandler() queries.GetCurrentDeliveryQueryHandler {
	return queries.NewGetCurrentDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderDeliveredOrdersQueryHandler() queries.GetRiderDeliveredOrdersQueryHandler {
	return queries.NewGetRiderDeliveredOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderStatsQueryHandler() queries.GetRiderStatsQueryHandler {
	return queries.NewGetRiderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderLocationQueryHandler() queries.GetRiderLocationQueryHandler {
	return queries.NewGetRiderLocationQueryHandler(c.gormDB, c.geo)
}

// CreateHTTPServer builds the REST API server over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateConfirmPaymentCommandHandler(),
		c.CreateTransitionShopOrderCommandHandler(),
		c.CreateRebroadcastShopOrderCommandHandler(),
		c.CreateCancelShopOrderCommandHandler(),
		c.CreateAcceptAssignmentCommandHandler(),
		c.CreateIssueDeliveryCodeCommandHandler(),
		c.CreateVerifyDeliveryCodeCommandHandler(),
		c.CreateUpdatePresenceCommandHandler(),
		c.CreateSetRiderAvailabilityCommandHandler(),
		c.CreateGetCustomerOrdersQueryHandler(),
		c.CreateGetOrderByIDQueryHandler(),
		c.CreateGetOwnerOrdersQueryHandler(),
		c.CreateGetRiderBroadcastsQueryHandler(),
		c.CreateGetCurrentDeliveryQueryHandler(),
		c.CreateGetRiderDeliveredOrdersQueryHandler(),
		c.CreateGetRiderStatsQueryHandler(),
		c.CreateGetRiderLocationQueryHandler(),
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireAssignmentsCommandHandler(), c.config.BroadcastWindow, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
