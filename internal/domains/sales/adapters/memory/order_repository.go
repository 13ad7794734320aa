package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	"github.com/Apurer/sales-order-api/internal/domains/sales/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository is an in-memory sales order persistence adapter.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	now    func() time.Time
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: map[string]*domain.Order{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *OrderRepository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Create stores a new order, refusing an id or invoice number that is already taken.
func (r *OrderRepository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	clone, err := prepare(order)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[clone.ID]; ok {
		return nil, fmt.Errorf("%w: order %q already exists", ports.ErrConflict, clone.ID)
	}
	if err := r.checkInvoiceLocked(clone); err != nil {
		return nil, err
	}
	now := r.now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *OrderRepository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	clone, err := prepare(order)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkInvoiceLocked(clone); err != nil {
		return nil, err
	}
	now := r.now()
	if existing, ok := r.orders[clone.ID]; ok {
		clone.CreatedAt = existing.CreatedAt
	} else {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func prepare(order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if order.ID == "" {
		return nil, errors.New("order id is required")
	}
	clone := order.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	return clone, nil
}

// checkInvoiceLocked mirrors the unique invoice index of the SQL schema. Callers hold r.mu.
func (r *OrderRepository) checkInvoiceLocked(order *domain.Order) error {
	if order.InvoiceNumber == "" {
		return nil
	}
	for id, existing := range r.orders {
		if id != order.ID && existing.InvoiceNumber == order.InvoiceNumber {
			return fmt.Errorf("%w: invoice %q belongs to order %q", ports.ErrConflict, order.InvoiceNumber, id)
		}
	}
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

// List returns orders newest first, ties broken by id.
func (r *OrderRepository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, order.Clone())
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		if !list[i].OrderDate.Equal(list[j].OrderDate) {
			return list[i].OrderDate.After(list[j].OrderDate)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}
