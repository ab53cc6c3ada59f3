package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	shopserver "github.com/Apurer/go-shop-api/go"

	cartmemory "github.com/Apurer/go-shop-api/internal/domains/cart/adapters/memory"
	cartpostgres "github.com/Apurer/go-shop-api/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/Apurer/go-shop-api/internal/domains/cart/application"
	cartports "github.com/Apurer/go-shop-api/internal/domains/cart/ports"

	catalogmemory "github.com/Apurer/go-shop-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-shop-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-shop-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-shop-api/internal/domains/catalog/ports"

	checkoutcart "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/cartsource"
	checkoutinventory "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/inventory"
	checkoutmemory "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/observability"
	checkoutpostgres "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/persistence/postgres"
	checkoutpricing "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/pricing"
	checkoutworkflowsadapter "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/Apurer/go-shop-api/internal/domains/checkout/application"
	checkoutports "github.com/Apurer/go-shop-api/internal/domains/checkout/ports"

	usermemory "github.com/Apurer/go-shop-api/internal/domains/users/adapters/memory"
	userpostgres "github.com/Apurer/go-shop-api/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/go-shop-api/internal/domains/users/application"
	userports "github.com/Apurer/go-shop-api/internal/domains/users/ports"

	"github.com/Apurer/go-shop-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-shop-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-shop-api/internal/platform/postgres"
)

// Run boots the shop HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "shop-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	repos := buildRepositories(db)

	catalogService := catalogapp.NewService(repos.products)
	cartService := cartapp.NewService(repos.carts, repos.products)
	userService := userapp.NewService(repos.users, repos.sessions)

	coreCheckout := checkoutapp.NewService(
		checkoutcart.NewSource(repos.carts),
		checkoutinventory.NewLedger(repos.products),
		checkoutpricing.NewCatalogResolver(repos.products),
		repos.orders,
		checkoutapp.WithLogger(logger),
	)
	checkoutService := checkoutobs.New(
		coreCheckout,
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)
	var checkoutWorkflows checkoutports.CheckoutOrchestrator = checkoutworkflowsadapter.NewInlineCheckout(checkoutService)
	if temporalClient, err := connectTemporalClient(instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		checkoutWorkflows = checkoutworkflowsadapter.NewTemporalCheckout(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)))
	}

	handlers := shopserver.ApiHandleFunctions{
		UserAPI:     shopserver.NewUserAPI(userService),
		CatalogAPI:  shopserver.NewCatalogAPI(catalogService),
		CartAPI:     shopserver.NewCartAPI(cartService),
		CheckoutAPI: shopserver.NewCheckoutAPI(checkoutService, checkoutWorkflows),
	}

	router := shopserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := listenAddr()
	logger.Info("shop API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("shop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// repositories bundles the persistence ports of every bounded context.
type repositories struct {
	products catalogports.Repository
	carts    cartports.Repository
	orders   checkoutports.OrderRepository
	users    userports.Repository
	sessions userports.SessionStore
}

// buildRepositories selects PostgreSQL adapters when a DB is available and
// falls back to the in-memory adapters otherwise.
func buildRepositories(db *gorm.DB) repositories {
	if db == nil {
		return repositories{
			products: catalogmemory.NewRepository(),
			carts:    cartmemory.NewRepository(),
			orders:   checkoutmemory.NewRepository(),
			users:    usermemory.NewRepository(),
			sessions: usermemory.NewSessionStore(),
		}
	}
	return repositories{
		products: catalogpostgres.NewRepository(db),
		carts:    cartpostgres.NewRepository(db),
		orders:   checkoutpostgres.NewRepository(db),
		users:    userpostgres.NewRepository(db),
		sessions: userpostgres.NewSessionStoreWithTTL(db, sessionTTL()),
	}
}

func connectTemporalClient(instruments *platformobservability.Instruments) (client.Client, error) {
	if os.Getenv("TEMPORAL_DISABLED") == "1" {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	address := os.Getenv("TEMPORAL_ADDRESS")
	if address == "" {
		address = client.DefaultHostPort
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  address,
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    logger,
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
