package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	cartmemory "github.com/Apurer/go-shop-api/internal/domains/cart/adapters/memory"
	cartpostgres "github.com/Apurer/go-shop-api/internal/domains/cart/adapters/persistence/postgres"
	cartports "github.com/Apurer/go-shop-api/internal/domains/cart/ports"
	catalogmemory "github.com/Apurer/go-shop-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-shop-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
	checkoutcart "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/cartsource"
	checkoutinventory "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/inventory"
	checkoutmemory "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/observability"
	checkoutorderspostgres "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/persistence/postgres"
	checkoutpricing "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/pricing"
	checkoutapp "github.com/Apurer/go-shop-api/internal/domains/checkout/application"
	checkoutports "github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
	"github.com/Apurer/go-shop-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-shop-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-shop-api/internal/platform/postgres"
	checkoutactivities "github.com/Apurer/go-shop-api/internal/platform/temporal/activities/checkout"
	checkoutworkflows "github.com/Apurer/go-shop-api/internal/platform/temporal/workflows/checkout"
)

func main() {
	ctx := context.Background()
	const serviceName = "shop-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	products, carts, orders := buildRepositories(db)

	coreCheckout := checkoutapp.NewService(
		checkoutcart.NewSource(carts),
		checkoutinventory.NewLedger(products),
		checkoutpricing.NewCatalogResolver(products),
		orders,
		checkoutapp.WithLogger(logger),
	)
	checkoutService := checkoutobs.New(
		coreCheckout,
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)
	activities := checkoutactivities.NewActivities(checkoutService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, checkoutworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(activities.RunCheckout, activity.RegisterOptions{Name: checkoutactivities.RunCheckoutActivityName})

	logger.Info("worker listening", slog.String("taskQueue", checkoutworkflows.CheckoutTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(db *gorm.DB) (catalogports.Repository, cartports.Repository, checkoutports.OrderRepository) {
	if db == nil {
		return catalogmemory.NewRepository(), cartmemory.NewRepository(), checkoutmemory.NewRepository()
	}
	return catalogpostgres.NewRepository(db), cartpostgres.NewRepository(db), checkoutorderspostgres.NewRepository(db)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
