package ports

import (
	"context"

	"github.com/Apurer/sales-order-api/internal/domains/sales/application/types"
	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	"github.com/Apurer/sales-order-api/internal/domains/sales/orderview"
)

// Service exposes sales order use cases to adapters.
type Service interface {
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*orderview.EnrichedOrder, error)
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	OrderView(ctx context.Context, criteria orderview.Criteria) (*orderview.View, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	ListStores(ctx context.Context) ([]domain.Store, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
}
