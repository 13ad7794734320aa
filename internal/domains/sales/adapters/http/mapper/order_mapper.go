package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	salestypes "github.com/Apurer/sales-order-api/internal/domains/sales/application/types"
	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	"github.com/Apurer/sales-order-api/internal/domains/sales/orderview"
)

// Customer is the transport shape of a customer.
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
}

// Store is the transport shape of a store.
type Store struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Item is the transport shape of a catalog item.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
}

// LineItem is a persisted order row.
type LineItem struct {
	ItemID    string `json:"itemId"`
	Quantity  int32  `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

// Order is the transport shape of a sales order. Amounts are fixed two-decimal strings.
type Order struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoiceNumber"`
	OrderDate     time.Time  `json:"orderDate"`
	CustomerID    string     `json:"customerId"`
	StoreID       string     `json:"storeId"`
	Status        string     `json:"status"`
	StatusLabel   string     `json:"statusLabel"`
	TotalAmount   string     `json:"totalAmount"`
	Items         []LineItem `json:"items"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// OrderRow is an order with its resolved customer and store, null when unresolved.
type OrderRow struct {
	Order
	Customer *Customer `json:"customer"`
	Store    *Store    `json:"store"`
}

// Metrics counts today's orders.
type Metrics struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// OrderView is the response of the filtered listing.
type OrderView struct {
	Orders  []OrderRow `json:"orders"`
	Metrics Metrics    `json:"metrics"`
	Total   int        `json:"total"`
}

// LineItemRequest is a requested order row. UnitPrice accepts JSON numbers or strings.
type LineItemRequest struct {
	ItemID    string          `json:"itemId" binding:"required"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateOrderRequest is the body of POST /sales-orders.
type CreateOrderRequest struct {
	ID            string            `json:"id,omitempty"`
	InvoiceNumber string            `json:"invoiceNumber,omitempty"`
	CustomerID    string            `json:"customerId" binding:"required"`
	StoreID       string            `json:"storeId" binding:"required"`
	OrderDate     time.Time         `json:"orderDate" binding:"required"`
	Items         []LineItemRequest `json:"items,omitempty"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
}

// UpdateStatusRequest is the body of PATCH /sales-orders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ToCreateOrderInput converts a transport request into the application input.
func ToCreateOrderInput(req CreateOrderRequest) salestypes.CreateOrderInput {
	items := make([]salestypes.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, salestypes.LineItemInput{
			ItemID:    item.ItemID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return salestypes.CreateOrderInput{
		ID:            req.ID,
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    req.CustomerID,
		StoreID:       req.StoreID,
		OrderDate:     req.OrderDate,
		Items:         items,
		TotalAmount:   req.TotalAmount,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItem{
			ItemID:    item.ItemID,
			Quantity:  item.Quantity,
			UnitPrice: money(item.UnitPrice),
			LineTotal: money(item.LineTotal()),
		})
	}
	return Order{
		ID:            order.ID,
		InvoiceNumber: order.InvoiceNumber,
		OrderDate:     order.OrderDate,
		CustomerID:    order.CustomerID,
		StoreID:       order.StoreID,
		Status:        string(order.Status),
		StatusLabel:   order.Status.Label(),
		TotalAmount:   money(order.TotalAmount),
		Items:         items,
		CreatedAt:     optionalTime(order.CreatedAt),
		UpdatedAt:     optionalTime(order.UpdatedAt),
	}
}

// FromDomainOrders converts a list of domain orders.
func FromDomainOrders(orders []*domain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		if order == nil {
			continue
		}
		result = append(result, FromDomainOrder(order))
	}
	return result
}

// FromEnrichedOrder converts a joined order.
func FromEnrichedOrder(order orderview.EnrichedOrder) OrderRow {
	row := OrderRow{Order: FromDomainOrder(order.Order)}
	if order.Customer != nil {
		customer := FromCustomer(*order.Customer)
		row.Customer = &customer
	}
	if order.Store != nil {
		store := FromStore(*order.Store)
		row.Store = &store
	}
	return row
}

// FromView converts the derived listing.
func FromView(view *orderview.View) OrderView {
	if view == nil {
		return OrderView{Orders: []OrderRow{}}
	}
	rows := make([]OrderRow, 0, len(view.Orders))
	for _, order := range view.Orders {
		rows = append(rows, FromEnrichedOrder(order))
	}
	return OrderView{
		Orders: rows,
		Metrics: Metrics{
			Total:     view.Metrics.Total,
			Pending:   view.Metrics.Pending,
			Completed: view.Metrics.Completed,
			Cancelled: view.Metrics.Cancelled,
		},
		Total: view.Total,
	}
}

func FromCustomer(c domain.Customer) Customer {
	return Customer{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName(), Phone: c.Phone}
}

func FromCustomers(customers []domain.Customer) []Customer {
	result := make([]Customer, 0, len(customers))
	for _, c := range customers {
		result = append(result, FromCustomer(c))
	}
	return result
}

func FromStore(s domain.Store) Store {
	return Store{ID: s.ID, Name: s.Name, Address: s.Address}
}

func FromStores(stores []domain.Store) []Store {
	result := make([]Store, 0, len(stores))
	for _, s := range stores {
		result = append(result, FromStore(s))
	}
	return result
}

func FromItems(items []domain.Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		result = append(result, Item{ID: item.ID, Name: item.Name, UnitPrice: money(item.UnitPrice)})
	}
	return result
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
