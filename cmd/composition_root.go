package cmd

import (
	"context"
	"io"

	httpadapter "grameego/internal/adapters/in/http"
	"grameego/internal/adapters/out/catalog"
	"grameego/internal/adapters/out/events"
	"grameego/internal/adapters/out/memory"
	"grameego/internal/adapters/out/postgres"
	"grameego/internal/adapters/out/postgres/deliveryrepo"
	"grameego/internal/core/application/usecases/commands"
	"grameego/internal/core/application/usecases/queries"
	"grameego/internal/core/domain/services"
	"grameego/internal/core/ports"
	"grameego/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type eventPublisher interface {
	ports.EventPublisher
	io.Closer
}

type CompositionRoot struct {
	config     Config
	logger     *zap.Logger
	uowFactory ports.UnitOfWorkFactory
	reader     ports.DeliveryReader
	directory  ports.ShopDirectory
	pricing    services.PriceCalculator
	publisher  eventPublisher
	now        commands.Clock
}

// NewCompositionRoot picks the store for cfg.DBDriver. gormDB is ignored for
// the memory driver and may be nil.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	pricing, err := services.NewPriceCalculator(cfg.Tariff())
	if err != nil {
		return nil, err
	}

	directory, err := catalog.NewDefaultDirectory()
	if err != nil {
		return nil, err
	}

	var publisher eventPublisher
	if cfg.KafkaBrokers == "" {
		publisher = events.NewLogPublisher(logger)
	} else {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaDeliveryEventsTopic)
	}

	root := &CompositionRoot{
		config:    cfg,
		logger:    logger,
		directory: directory,
		pricing:   pricing,
		publisher: publisher,
		now:       commands.SystemClock,
	}

	if cfg.DBDriver == DriverMemory {
		store := memory.NewStore()
		root.uowFactory = memory.NewUnitOfWorkFactory(store, publisher)
		root.reader = memory.NewReader(store)
	} else {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher)
		root.reader = deliveryrepo.NewGormDeliveryReader(gormDB)
	}

	return root, nil
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.pricing, c.now)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(c.deliveryUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateAdvanceDeliveryStatusCommandHandler() commands.AdvanceDeliveryStatusCommandHandler {
	return commands.NewAdvanceDeliveryStatusCommandHandler(c.deliveryUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateUnassignDeliveryCommandHandler() commands.UnassignDeliveryCommandHandler {
	return commands.NewUnassignDeliveryCommandHandler(c.deliveryUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.deliveryUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateConfirmShopOrderCommandHandler() commands.ConfirmShopOrderCommandHandler {
	return commands.NewConfirmShopOrderCommandHandler(c.deliveryUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateCountDeliveriesByStatusQueryHandler() queries.CountDeliveriesByStatusQueryHandler {
	return queries.NewCountDeliveriesByStatusQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateListShopsQueryHandler() queries.ListShopsQueryHandler {
	return queries.NewListShopsQueryHandler(c.directory)
}

func (c *CompositionRoot) CreateGetShopQueryHandler() queries.GetShopQueryHandler {
	return queries.NewGetShopQueryHandler(c.directory)
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		Create:    c.CreateCreateDeliveryCommandHandler(),
		Accept:    c.CreateAcceptDeliveryCommandHandler(),
		Advance:   c.CreateAdvanceDeliveryStatusCommandHandler(),
		Unassign:  c.CreateUnassignDeliveryCommandHandler(),
		Cancel:    c.CreateCancelDeliveryCommandHandler(),
		Confirm:   c.CreateConfirmShopOrderCommandHandler(),
		List:      c.CreateListDeliveriesQueryHandler(),
		ListShops: c.CreateListShopsQueryHandler(),
		GetShop:   c.CreateGetShopQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCountDeliveriesByStatusQueryHandler(),
		c.config.BacklogReportSchedule,
		c.logger,
	)
}

// CreateHTTPServer builds the echo instance with every route registered.
func (c *CompositionRoot) CreateHTTPServer(ctx context.Context) (*echo.Echo, error) {
	verifier, err := httpadapter.NewTokenVerifier(c.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	return httpadapter.NewEcho(ctx, c.CreateServer(), httpadapter.Options{
		Logger:         c.logger,
		Verifier:       verifier,
		RateLimit:      c.config.RateLimit,
		RateBurst:      c.config.RateBurst,
		AllowedOrigins: c.config.CORSAllowedOrigins,
	})
}

// Close releases the event publisher.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
