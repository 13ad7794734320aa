package ports

import (
	"context"
	"errors"

	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
)

var (
	ErrNotFound = errors.New("sales order not found")
	// ErrConflict reports an order id or invoice number that is already taken.
	ErrConflict = errors.New("sales order conflicts with an existing order")
)

// OrderRepository persists sales orders. Create only inserts; Save inserts or replaces by id.
// Both reject an invoice number held by another order with ErrConflict.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Order, error)
}

// CatalogRepository exposes the read-only reference data orders point at.
type CatalogRepository interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	ListStores(ctx context.Context) ([]domain.Store, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
}
