package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"

	salesorderserver "github.com/Apurer/sales-order-api/go"

	salesobs "github.com/Apurer/sales-order-api/internal/domains/sales/adapters/observability"
	salesworkflows "github.com/Apurer/sales-order-api/internal/domains/sales/adapters/workflows"
	salesapp "github.com/Apurer/sales-order-api/internal/domains/sales/application"
	salesports "github.com/Apurer/sales-order-api/internal/domains/sales/ports"
	platformobservability "github.com/Apurer/sales-order-api/internal/platform/observability"
)

const serviceName = "sales-order-api"

// Run boots the sales order HTTP API with observability, repositories, and workflows wired.
// It serves until ctx is cancelled and then drains in-flight requests.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.SettingsFromEnv(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos := BuildRepositories(ctx, cfg, logger)
	defer cleanupRepos()
	coreService := salesapp.NewService(repos.Orders, repos.Catalog, salesapp.WithInvoicePrefix(cfg.InvoicePrefix))
	salesService := salesobs.New(
		coreService,
		salesobs.WithLogger(logger),
		salesobs.WithTracer(instruments.Tracer("internal.sales.application")),
		salesobs.WithMeter(instruments.Meter("internal.sales.application")),
	)
	orderWorkflows, closeWorkflows := buildOrderWorkflows(cfg, repos.Backend, salesService, instruments, ConnectTemporalClient)
	defer closeWorkflows()

	handlers := salesorderserver.ApiHandleFunctions{
		SalesOrderAPI: salesorderserver.NewSalesOrderAPI(salesService, orderWorkflows, time.Local),
		CatalogAPI:    salesorderserver.NewCatalogAPI(salesService),
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := salesorderserver.NewRouterWithGinEngine(engine, handlers)

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Sales order API listening", slog.String("addr", addr), slog.String("backend", repos.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-serveErr:
		logger.Error("Sales order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", slog.String("error", err.Error()))
	}
	wg.Wait()
	logger.Info("Sales order API stopped")
	return nil
}

type temporalDialer func(Config, *platformobservability.Instruments) (client.Client, error)

// buildOrderWorkflows picks the Temporal orchestrator when a client can be dialed. A memory backend
// always creates inline: the worker process would persist into its own memory and the API would
// never list the order.
func buildOrderWorkflows(cfg Config, backend string, service salesports.Service, instruments *platformobservability.Instruments, dial temporalDialer) (salesports.WorkflowOrchestrator, func()) {
	logger := effectiveLogger(instruments)
	inline := salesworkflows.NewInlineOrderWorkflows(service)
	if backend == BackendMemory {
		logger.Warn("in-memory repositories in use, running CreateOrder inline instead of through Temporal")
		return inline, func() {}
	}
	temporalClient, err := dial(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running inline CreateOrder", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return salesworkflows.NewTemporalOrderWorkflows(temporalClient), temporalClient.Close
}
