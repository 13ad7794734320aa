package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	salesmemory "github.com/Apurer/sales-order-api/internal/domains/sales/adapters/memory"
	salespostgres "github.com/Apurer/sales-order-api/internal/domains/sales/adapters/persistence/postgres"
	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	salesports "github.com/Apurer/sales-order-api/internal/domains/sales/ports"
	"github.com/Apurer/sales-order-api/internal/platform/database"
	platformobservability "github.com/Apurer/sales-order-api/internal/platform/observability"
)

// Repositories bundles the sales persistence adapters chosen at startup.
type Repositories struct {
	Orders  salesports.OrderRepository
	Catalog salesports.CatalogRepository
	Backend string
}

// BackendMemory is the Repositories.Backend value when no database is in use.
const BackendMemory = "memory"

// BuildRepositories connects the configured database or falls back to memory. Demo data is
// seeded when enabled: always for memory, and only into an empty order table for SQL backends.
func BuildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (Repositories, func()) {
	db, cleanup := database.Connect(ctx, cfg.DatabaseSettings(), logger)
	if db == nil {
		catalog := salesmemory.NewCatalog()
		orders := salesmemory.NewOrderRepository()
		if cfg.SeedDemoData {
			if err := salesmemory.SeedDemo(ctx, catalog, orders, time.Now()); err != nil {
				logger.Warn("failed to seed demo data", slog.String("error", err.Error()))
			}
		}
		return Repositories{Orders: orders, Catalog: catalog, Backend: BackendMemory}, cleanup
	}
	repos := Repositories{
		Orders:  salespostgres.NewOrderRepository(db),
		Catalog: salespostgres.NewCatalogRepository(db),
		Backend: cfg.DBDriver,
	}
	if cfg.SeedDemoData {
		if err := seedDatabase(ctx, db); err != nil {
			logger.Warn("failed to seed demo data", slog.String("error", err.Error()))
		}
	}
	logger.Info("sales repositories configured", slog.String("backend", repos.Backend))
	return repos, cleanup
}

// demoData is the fixed demo catalog and order set copied into an empty SQL backend.
type demoData struct {
	customers []domain.Customer
	stores    []domain.Store
	items     []domain.Item
	orders    []*domain.Order
}

func loadDemoData(ctx context.Context, now time.Time) (demoData, error) {
	catalog := salesmemory.NewCatalog()
	orders := salesmemory.NewOrderRepository()
	if err := salesmemory.SeedDemo(ctx, catalog, orders, now); err != nil {
		return demoData{}, err
	}
	var (
		data demoData
		err  error
	)
	if data.customers, err = catalog.ListCustomers(ctx); err != nil {
		return demoData{}, fmt.Errorf("list demo customers: %w", err)
	}
	if data.stores, err = catalog.ListStores(ctx); err != nil {
		return demoData{}, fmt.Errorf("list demo stores: %w", err)
	}
	if data.items, err = catalog.ListItems(ctx); err != nil {
		return demoData{}, fmt.Errorf("list demo items: %w", err)
	}
	if data.orders, err = orders.List(ctx); err != nil {
		return demoData{}, fmt.Errorf("list demo orders: %w", err)
	}
	return data, nil
}

func seedDatabase(ctx context.Context, db *gorm.DB) error {
	orders := salespostgres.NewOrderRepository(db)
	catalog := salespostgres.NewCatalogRepository(db)

	demo, err := loadDemoData(ctx, time.Now())
	if err != nil {
		return err
	}
	if err := catalog.UpsertCustomers(ctx, demo.customers...); err != nil {
		return err
	}
	if err := catalog.UpsertStores(ctx, demo.stores...); err != nil {
		return err
	}
	if err := catalog.UpsertItems(ctx, demo.items...); err != nil {
		return err
	}

	existing, err := orders.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, order := range demo.orders {
		if _, err := orders.Save(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

// ConnectTemporalClient dials Temporal with tracing and structured logging, unless disabled.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
