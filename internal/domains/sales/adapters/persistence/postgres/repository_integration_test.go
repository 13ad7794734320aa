//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	"github.com/Apurer/sales-order-api/internal/domains/sales/ports"
)

func setupSalesPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("sales_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(Models()...)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func sampleOrder(t *testing.T, id string, date time.Time) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(id, "SO-IT-"+id, date, "cust-1", "store-1", []domain.LineItem{
		{ItemID: "item-1", Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")},
	}, decimal.Zero)
	require.NoError(t, err)
	return order
}

func TestOrderRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := sampleOrder(t, "o-1", time.Now().UTC().Truncate(time.Second))
	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
	assert.Equal(t, domain.StatusDraft, saved.Status)
	assert.True(t, decimal.RequireFromString("59.97").Equal(saved.TotalAmount))
	require.Len(t, saved.Items, 1)
	assert.Equal(t, int32(3), saved.Items[0].Quantity)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := sampleOrder(t, "o-1", time.Now())
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	require.NoError(t, order.MarkStatus(domain.StatusCancelled))
	updated, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
}

func TestOrderRepository_ListNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-72 * time.Hour)
	for i, id := range []string{"o-1", "o-2", "o-3"} {
		_, err := repo.Save(ctx, sampleOrder(t, id, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "o-3", list[0].ID)
}

func TestOrderRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, sampleOrder(t, "o-1", time.Now()))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "o-1"))
	_, err = repo.GetByID(ctx, "o-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "o-1"), ports.ErrNotFound)
}

func TestOrderRepository_CreateRejectsDuplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	original := sampleOrder(t, "o-1", time.Now())
	_, err := repo.Create(ctx, original)
	require.NoError(t, err)
	require.NoError(t, original.MarkStatus(domain.StatusCompleted))
	_, err = repo.Save(ctx, original)
	require.NoError(t, err)

	_, err = repo.Create(ctx, sampleOrder(t, "o-1", time.Now()))
	assert.ErrorIs(t, err, ports.ErrConflict)

	sameInvoice := sampleOrder(t, "o-2", time.Now())
	sameInvoice.InvoiceNumber = original.InvoiceNumber
	_, err = repo.Create(ctx, sameInvoice)
	assert.ErrorIs(t, err, ports.ErrConflict)

	stored, err := repo.GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
}

func TestCatalogRepository_UpsertAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewCatalogRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertCustomers(ctx,
		domain.Customer{ID: "c-1", FirstName: "Asha", LastName: "Verma", Phone: "111"},
		domain.Customer{ID: "c-2", FirstName: "Rahul", LastName: "Nair", Phone: "222"},
	))
	require.NoError(t, repo.UpsertCustomers(ctx, domain.Customer{ID: "c-1", FirstName: "Asha", LastName: "Verma", Phone: "333"}))
	require.NoError(t, repo.UpsertStores(ctx, domain.Store{ID: "s-1", Name: "Hub", Address: "Main St"}))
	require.NoError(t, repo.UpsertItems(ctx, domain.Item{ID: "i-1", Name: "Rice", UnitPrice: decimal.RequireFromString("640.00")}))

	customers, err := repo.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Nair", customers[0].LastName)
	assert.Equal(t, "333", customers[1].Phone)

	stores, err := repo.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, decimal.RequireFromString("640").Equal(items[0].UnitPrice))
}
