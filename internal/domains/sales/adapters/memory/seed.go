package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
)

// SeedDemo fills the catalog and order repository with a small data set for local runs.
// Orders are dated relative to now so today's metrics are populated.
func SeedDemo(ctx context.Context, catalog *Catalog, orders *OrderRepository, now time.Time) error {
	catalog.PutCustomers(
		domain.Customer{ID: "cust-001", FirstName: "Asha", LastName: "Verma", Phone: "+91 98450 11111"},
		domain.Customer{ID: "cust-002", FirstName: "Rahul", LastName: "Nair", Phone: "+91 99000 22222"},
		domain.Customer{ID: "cust-003", FirstName: "Meera", LastName: "Iyer", Phone: "+91 98860 33333"},
	)
	catalog.PutStores(
		domain.Store{ID: "store-001", Name: "Indiranagar Outlet", Address: "12 100 Feet Rd, Bengaluru"},
		domain.Store{ID: "store-002", Name: "Koramangala Hub", Address: "4th Block, Koramangala, Bengaluru"},
	)
	catalog.PutItems(
		domain.Item{ID: "item-001", Name: "Basmati Rice 5kg", UnitPrice: decimal.RequireFromString("640.00")},
		domain.Item{ID: "item-002", Name: "Sunflower Oil 1L", UnitPrice: decimal.RequireFromString("155.50")},
		domain.Item{ID: "item-003", Name: "Toor Dal 1kg", UnitPrice: decimal.RequireFromString("182.00")},
	)

	seed := []struct {
		id, invoice, customer, store string
		status                       domain.Status
		date                         time.Time
		items                        []domain.LineItem
	}{
		{"ord-001", "SO-WS1-1001", "cust-001", "store-001", domain.StatusPending, now,
			[]domain.LineItem{{ItemID: "item-001", Quantity: 2, UnitPrice: decimal.RequireFromString("640.00")}}},
		{"ord-002", "SO-WS1-1002", "cust-002", "store-002", domain.StatusCompleted, now.Add(-2 * time.Hour),
			[]domain.LineItem{{ItemID: "item-002", Quantity: 4, UnitPrice: decimal.RequireFromString("155.50")}}},
		{"ord-003", "SO-WS1-1003", "cust-003", "store-001", domain.StatusDraft, now.AddDate(0, 0, -1),
			[]domain.LineItem{{ItemID: "item-003", Quantity: 3, UnitPrice: decimal.RequireFromString("182.00")}}},
		{"ord-004", "SO-WS1-1004", "cust-001", "store-002", domain.StatusCancelled, now.AddDate(0, 0, -7),
			[]domain.LineItem{
				{ItemID: "item-001", Quantity: 1, UnitPrice: decimal.RequireFromString("640.00")},
				{ItemID: "item-003", Quantity: 1, UnitPrice: decimal.RequireFromString("182.00")},
			}},
	}
	for _, s := range seed {
		order, err := domain.NewOrder(s.id, s.invoice, s.date, s.customer, s.store, s.items, decimal.Zero)
		if err != nil {
			return err
		}
		order.Status = s.status
		if _, err := orders.Save(ctx, order); err != nil {
			return err
		}
	}
	return nil
}
