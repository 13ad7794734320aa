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
	ProviderName = "sales-order-api"
	ConsumerName = "sales-order-portal"

	StateOrdersBaseline = "sales orders baseline"
	StateOrderExists    = "sales order ord-pact-1 exists"
	StateOrderMissing   = "no sales order ord-missing"
)

const (
	ExistingOrderID = "ord-pact-1"
	MissingOrderID  = "ord-missing"

	CustomerID = "cust-pact"
	StoreID    = "store-pact"
	ItemID     = "item-pact"

	ExampleInvoice   = "SO-WS1-1718186400000"
	ExampleOrderDate = "2024-06-12T10:00:00Z"
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

// PactFile returns the canonical pact file path for the portal consumer.
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

// ExampleCreatePayload provides stable test data for the create interaction.
func ExampleCreatePayload() map[string]any {
	return map[string]any{
		"customerId": CustomerID,
		"storeId":    StoreID,
		"orderDate":  ExampleOrderDate,
		"items": []map[string]any{
			{"itemId": ItemID, "quantity": 2, "unitPrice": "125.00"},
		},
	}
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
