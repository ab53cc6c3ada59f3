//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shop-api"
	ConsumerName = "shop-portal"

	StateCatalogBaseline = "catalog baseline"
	StateProductExists   = "product with id 101 exists"
	StateProductMissing  = "no product with id 404"
	StateCheckoutReady   = "user 7 has a stocked cart"
	StateStockDepleted   = "user 8 wants more units than product 101 has"
)

const (
	ExistingProductID int64 = 101
	MissingProductID  int64 = 404
	CheckoutUserID    int64 = 7
	DepletedUserID    int64 = 8

	CheckoutQuantity int64 = 2
)

const (
	exampleProductName  = "Pact Mechanical Keyboard"
	exampleProductDesc  = "Tenkeyless, hot-swappable switches"
	exampleProductPrice = 129.99
	exampleProductStock = int64(25)
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the shop portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductPayload provides stable test data for catalog interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":          ExistingProductID,
		"name":        exampleProductName,
		"description": exampleProductDesc,
		"price":       exampleProductPrice,
		"stock":       exampleProductStock,
	}
}

// ExampleProductFields exposes the product test data as typed values.
func ExampleProductFields() (name, description string, price float64, stock int64) {
	return exampleProductName, exampleProductDesc, exampleProductPrice, exampleProductStock
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
