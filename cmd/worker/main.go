package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/sales-order-api/internal/app/api"
	salesobs "github.com/Apurer/sales-order-api/internal/domains/sales/adapters/observability"
	salesapp "github.com/Apurer/sales-order-api/internal/domains/sales/application"
	platformobservability "github.com/Apurer/sales-order-api/internal/platform/observability"
	salesactivities "github.com/Apurer/sales-order-api/internal/platform/temporal/activities/sales"
	salesworkflows "github.com/Apurer/sales-order-api/internal/platform/temporal/workflows/sales"
)

func main() {
	ctx := context.Background()
	const serviceName = "sales-order-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.SettingsFromEnv(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	repos, cleanupRepos := api.BuildRepositories(ctx, cfg, logger)
	defer cleanupRepos()
	if repos.Backend == api.BackendMemory {
		logger.Warn("worker is persisting to memory; orders will not be visible to the API process")
	}
	salesService := salesobs.New(
		salesapp.NewService(repos.Orders, repos.Catalog, salesapp.WithInvoicePrefix(cfg.InvoicePrefix)),
		salesobs.WithLogger(logger),
		salesobs.WithTracer(instruments.Tracer("internal.sales.application")),
		salesobs.WithMeter(instruments.Meter("internal.sales.application")),
	)
	salesActivities := salesactivities.NewActivities(salesService)

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, salesworkflows.OrderCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(salesworkflows.OrderCreationWorkflow, workflow.RegisterOptions{Name: salesworkflows.OrderCreationWorkflowName})
	w.RegisterActivityWithOptions(salesActivities.PersistOrder, activity.RegisterOptions{Name: salesactivities.PersistOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", salesworkflows.OrderCreationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
