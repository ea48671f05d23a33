package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	appaudit "github.com/JostinQuilca/FoodApp/internal/application/audit"
	appbilling "github.com/JostinQuilca/FoodApp/internal/application/billing"
	apptrade "github.com/JostinQuilca/FoodApp/internal/application/trade"
	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/cache"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/config"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/event"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/logger"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/persistence"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const meterName = "foodapp-billing"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting invoice engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)
	meter := meterProvider.Meter(meterName)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to enable database tracing", zap.Error(err))
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access connection pool", zap.Error(err))
	}
	poolMetrics, err := telemetry.NewDBPoolMetrics(meter, sqlDB)
	if err != nil {
		log.Fatal("Failed to register pool metrics", zap.Error(err))
	}
	defer func() { _ = poolMetrics.Stop() }()

	billingMetrics, err := telemetry.NewBillingMetrics(meter)
	if err != nil {
		log.Fatal("Failed to register billing metrics", zap.Error(err))
	}

	billingCfg, err := invoiceConfig(cfg.Billing)
	if err != nil {
		log.Fatal("Invalid billing configuration", zap.Error(err))
	}

	idempotencyStore, err := cache.NewIdempotencyStore(ctx, cfg.App.Env, cfg.Event, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Failed to close idempotency store", zap.Error(err))
		}
	}()

	app := newApplication(db.DB, billingCfg, idempotencyStore, shared.IdempotencyConfig{
		Enabled: cfg.Event.IdempotencyEnabled,
		TTL:     cfg.Event.IdempotencyTTL,
	}, billingMetrics, log)

	if err := app.bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	log.Info("Invoice engine ready",
		zap.String("number_prefix", billingCfg.NumberPrefix),
		zap.String("tax_rate", billingCfg.TaxRate.String()),
		zap.String("timezone", billingCfg.Location.String()),
	)

	<-ctx.Done()
	log.Info("Shutting down invoice engine...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.bus.Stop(stopCtx); err != nil {
		log.Error("Failed to stop event bus", zap.Error(err))
	}
	log.Info("Invoice engine stopped")
}

// application holds the wired services sharing one event bus
type application struct {
	bus      *event.InMemoryEventBus
	audit    *appaudit.AuditService
	invoices *appbilling.InvoiceService
	orders   *apptrade.OrderStatusService
	invoicer *event.IdempotentHandler
}

// newApplication builds repositories and services on db. Order status
// changes publish onto the bus, where approved orders are invoiced
// automatically and redelivered events are skipped.
func newApplication(
	db *gorm.DB,
	billingCfg appbilling.Config,
	store shared.IdempotencyStore,
	idempotency shared.IdempotencyConfig,
	metrics appbilling.InvoiceMetrics,
	log *zap.Logger,
) *application {
	userRepo := persistence.NewGormUserRepository(db)
	itemRepo := persistence.NewGormItemRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	auditRepo := persistence.NewGormAuditRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	app := &application{
		bus:   event.NewInMemoryEventBus(log),
		audit: appaudit.NewAuditService(auditRepo, log),
	}
	app.invoices = appbilling.NewInvoiceService(
		userRepo, itemRepo, invoiceRepo, txScope, app.audit, log,
		appbilling.WithConfig(billingCfg),
		appbilling.WithEventPublisher(app.bus),
		appbilling.WithMetrics(metrics),
	)
	app.orders = apptrade.NewOrderStatusService(orderRepo, log,
		apptrade.WithEventPublisher(app.bus),
	)

	app.invoicer = event.NewIdempotentHandler(
		appbilling.NewOrderApprovedHandler(app.invoices, log),
		store,
		log,
		event.WithConsumerName("order-invoicer"),
		event.WithIdempotencyConfig(idempotency),
	)
	app.bus.Subscribe(app.invoicer)
	return app
}

// invoiceConfig maps the file/env settings onto the service configuration
func invoiceConfig(c config.BillingConfig) (appbilling.Config, error) {
	out := appbilling.DefaultConfig()

	rate, err := c.TaxRateDecimal()
	if err != nil {
		return out, err
	}
	loc, err := c.Location()
	if err != nil {
		return out, err
	}

	out.TaxRate = rate
	out.Location = loc
	out.RequireAuthorizedOrder = c.RequireAuthorizedOrder
	if c.NumberPrefix != "" {
		out.NumberPrefix = c.NumberPrefix
	}
	if c.PaymentTermDays > 0 {
		out.PaymentTermDays = c.PaymentTermDays
	}
	if c.MaxAllocationAttempts > 0 {
		out.MaxAllocationAttempts = c.MaxAllocationAttempts
	}
	return out, nil
}

func shutdown(log *zap.Logger, name string, fn func(context.Context) error) {
	if err := fn(context.Background()); err != nil {
		log.Error("Failed to shutdown "+name, zap.Error(err))
	}
}
