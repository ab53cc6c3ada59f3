//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/go-shop-api/test/pact"

	shopserver "github.com/Apurer/go-shop-api/go"
	cartmemory "github.com/Apurer/go-shop-api/internal/domains/cart/adapters/memory"
	cartapp "github.com/Apurer/go-shop-api/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-shop-api/internal/domains/cart/domain"
	catalogmemory "github.com/Apurer/go-shop-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-shop-api/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-shop-api/internal/domains/catalog/domain"
	checkoutcartsource "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/cartsource"
	checkoutinventory "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/inventory"
	checkoutmemory "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/observability"
	checkoutpricing "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/pricing"
	checkoutworkflows "github.com/Apurer/go-shop-api/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/Apurer/go-shop-api/internal/domains/checkout/application"
	usermemory "github.com/Apurer/go-shop-api/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/go-shop-api/internal/domains/users/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestShopProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t, pacttest.ExistingProductID, 25)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateCheckoutReady: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t, pacttest.ExistingProductID, 25)
				app.seedCart(t, pacttest.CheckoutUserID, pacttest.ExistingProductID, pacttest.CheckoutQuantity)
			}
			return nil, nil
		},
		pacttest.StateStockDepleted: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t, pacttest.ExistingProductID, 1)
				app.seedCart(t, pacttest.DepletedUserID, pacttest.ExistingProductID, 5)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	products *catalogmemory.Repository
	carts    *cartmemory.Repository
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	productRepo := catalogmemory.NewRepository()
	cartRepo := cartmemory.NewRepository()
	orderRepo := checkoutmemory.NewRepository()
	userRepo := usermemory.NewRepository()

	catalogService := catalogapp.NewService(productRepo)
	cartService := cartapp.NewService(cartRepo, productRepo)
	userService := userapp.NewService(userRepo, usermemory.NewSessionStore())

	checkoutService := checkoutobs.New(checkoutapp.NewService(
		checkoutcartsource.NewSource(cartRepo),
		checkoutinventory.NewLedger(productRepo),
		checkoutpricing.NewCatalogResolver(productRepo),
		orderRepo,
	))
	workflows := checkoutworkflows.NewInlineCheckout(checkoutService)

	handlers := shopserver.ApiHandleFunctions{
		UserAPI:     shopserver.NewUserAPI(userService),
		CatalogAPI:  shopserver.NewCatalogAPI(catalogService),
		CartAPI:     shopserver.NewCartAPI(cartService),
		CheckoutAPI: shopserver.NewCheckoutAPI(checkoutService, workflows),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = shopserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		products: productRepo,
		carts:    cartRepo,
		server:   server,
	}
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	products, err := a.products.List(ctx)
	require.NoError(t, err)
	for _, product := range products {
		_ = a.products.Delete(ctx, product.ID)
	}
	require.NoError(t, a.carts.Clear(ctx, pacttest.CheckoutUserID))
	require.NoError(t, a.carts.Clear(ctx, pacttest.DepletedUserID))
}

func (a *contractProviderApp) seedProduct(t testing.TB, id, stock int64) {
	t.Helper()
	name, description, price, _ := pacttest.ExampleProductFields()
	product, err := catalogdomain.NewProduct(id, name, description, price, stock)
	require.NoError(t, err)
	_, err = a.products.Save(context.Background(), product)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedCart(t testing.TB, userID, productID, quantity int64) {
	t.Helper()
	cart := cartdomain.NewCart(userID)
	require.NoError(t, cart.Add(productID, quantity))
	require.NoError(t, a.carts.Put(context.Background(), cart))
}
