package memory

import (
	"context"
	"sync"

	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	"github.com/Apurer/sales-order-api/internal/domains/sales/ports"
)

var _ ports.CatalogRepository = (*Catalog)(nil)

// Catalog holds customers, stores and items in memory.
type Catalog struct {
	mu        sync.RWMutex
	customers []domain.Customer
	stores    []domain.Store
	items     []domain.Item
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

// PutCustomers replaces the customer set.
func (c *Catalog) PutCustomers(customers ...domain.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customers = append([]domain.Customer(nil), customers...)
}

// PutStores replaces the store set.
func (c *Catalog) PutStores(stores ...domain.Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores = append([]domain.Store(nil), stores...)
}

// PutItems replaces the item set.
func (c *Catalog) PutItems(items ...domain.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]domain.Item(nil), items...)
}

func (c *Catalog) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Customer{}, c.customers...), nil
}

func (c *Catalog) ListStores(_ context.Context) ([]domain.Store, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Store{}, c.stores...), nil
}

func (c *Catalog) ListItems(_ context.Context) ([]domain.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Item{}, c.items...), nil
}
