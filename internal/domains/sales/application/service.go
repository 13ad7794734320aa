package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/sales-order-api/internal/domains/sales/application/types"
	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	"github.com/Apurer/sales-order-api/internal/domains/sales/orderview"
	"github.com/Apurer/sales-order-api/internal/domains/sales/ports"
)

// DefaultInvoicePrefix is the workspace segment used in generated invoice numbers.
const DefaultInvoicePrefix = "WS1"

// Service orchestrates the sales order use cases.
type Service struct {
	orders        ports.OrderRepository
	catalog       ports.CatalogRepository
	now           func() time.Time
	newID         func() string
	invoicePrefix string
}

// Option configures optional collaborators.
type Option func(*Service)

// WithClock overrides the time source used for invoice numbers and today's metrics.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how new order ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithInvoicePrefix sets the workspace segment of generated invoice numbers.
func WithInvoicePrefix(prefix string) Option {
	return func(s *Service) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			s.invoicePrefix = prefix
		}
	}
}

// NewService wires the sales service with its repositories.
func NewService(orders ports.OrderRepository, catalog ports.CatalogRepository, opts ...Option) *Service {
	s := &Service{
		orders:        orders,
		catalog:       catalog,
		now:           time.Now,
		newID:         uuid.NewString,
		invoicePrefix: DefaultInvoicePrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListOrders returns every order without enrichment.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// GetOrder loads one order joined with its customer and store for the detail drawer.
func (s *Service) GetOrder(ctx context.Context, id string) (*orderview.EnrichedOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customers, stores, err := s.parties(ctx)
	if err != nil {
		return nil, err
	}
	enriched := orderview.NewIndex(customers, stores).EnrichOne(order)
	return &enriched, nil
}

// CreateOrder validates the references and persists a new draft order. An id or invoice number
// already in use yields ports.ErrConflict.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error) {
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, mapError(err)
	}
	items := make([]domain.LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, domain.LineItem{
			ItemID:    strings.TrimSpace(item.ItemID),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = s.newID()
	}
	invoice := strings.TrimSpace(input.InvoiceNumber)
	if invoice == "" {
		invoice = fmt.Sprintf("SO-%s-%d", s.invoicePrefix, s.now().UnixMilli())
	}
	order, err := domain.NewOrder(id, invoice, input.OrderDate, input.CustomerID, input.StoreID, items, input.TotalAmount)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateOrderStatus marks an order completed or cancelled.
func (s *Service) UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*domain.Order, error) {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, mapError(err)
	}
	order, err := s.orders.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := order.MarkStatus(status); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.orders.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// OrderView reads one snapshot of orders, customers and stores and derives the screen listing.
func (s *Service) OrderView(ctx context.Context, criteria orderview.Criteria) (*orderview.View, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	customers, stores, err := s.parties(ctx)
	if err != nil {
		return nil, err
	}
	view := orderview.Build(orderview.Snapshot{Orders: orders, Customers: customers, Stores: stores}, criteria, s.now())
	return &view, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.catalog.ListCustomers(ctx)
}

func (s *Service) ListStores(ctx context.Context) ([]domain.Store, error) {
	return s.catalog.ListStores(ctx)
}

func (s *Service) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.catalog.ListItems(ctx)
}

func (s *Service) parties(ctx context.Context) ([]domain.Customer, []domain.Store, error) {
	customers, err := s.catalog.ListCustomers(ctx)
	if err != nil {
		return nil, nil, err
	}
	stores, err := s.catalog.ListStores(ctx)
	if err != nil {
		return nil, nil, err
	}
	return customers, stores, nil
}

// checkReferences rejects ids the catalog does not know. Empty ids are left to domain validation.
func (s *Service) checkReferences(ctx context.Context, input types.CreateOrderInput) error {
	customers, stores, err := s.parties(ctx)
	if err != nil {
		return err
	}
	idx := orderview.NewIndex(customers, stores)
	if id := strings.TrimSpace(input.CustomerID); id != "" && idx.Customer(id) == nil {
		return fmt.Errorf("%w: customer %q", ErrUnknownReference, id)
	}
	if id := strings.TrimSpace(input.StoreID); id != "" && idx.Store(id) == nil {
		return fmt.Errorf("%w: store %q", ErrUnknownReference, id)
	}
	if len(input.Items) == 0 {
		return nil
	}
	items, err := s.catalog.ListItems(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(items))
	for _, item := range items {
		known[item.ID] = struct{}{}
	}
	for _, line := range input.Items {
		id := strings.TrimSpace(line.ItemID)
		if id == "" {
			continue
		}
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: item %q", ErrUnknownReference, id)
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
