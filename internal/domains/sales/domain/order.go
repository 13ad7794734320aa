package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates sales order progression.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var (
	ErrMissingCustomer  = errors.New("customer id is required")
	ErrMissingStore     = errors.New("store id is required")
	ErrMissingOrderDate = errors.New("order date is required")
	ErrInvalidStatus    = errors.New("order status is invalid")
	ErrNegativeTotal    = errors.New("total amount must not be negative")
	ErrInvalidQuantity  = errors.New("line item quantity must be greater than zero")
	ErrNegativePrice    = errors.New("line item unit price must not be negative")
	ErrMissingItem      = errors.New("line item requires an item id")
	ErrStatusTransition = errors.New("orders can only be marked completed or cancelled")
)

// Statuses lists the closed set in display order.
func Statuses() []Status {
	return []Status{StatusDraft, StatusPending, StatusCompleted, StatusCancelled}
}

// ParseStatus normalizes user input into a known status.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Valid reports whether the status belongs to the closed set.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Label is the human readable form used by listings and reports.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// LineItem is a single item row of a sales order.
type LineItem struct {
	ItemID    string
	Quantity  int32
	UnitPrice decimal.Decimal
}

// LineTotal is quantity times unit price.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

// Validate enforces line item invariants.
func (l LineItem) Validate() error {
	if strings.TrimSpace(l.ItemID) == "" {
		return ErrMissingItem
	}
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if l.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Order models the sales order aggregate.
type Order struct {
	ID            string
	InvoiceNumber string
	OrderDate     time.Time
	CustomerID    string
	StoreID       string
	Status        Status
	TotalAmount   decimal.Decimal
	Items         []LineItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder validates and constructs a draft order. When items are supplied the total is
// derived from them and any explicit total is ignored.
func NewOrder(id, invoiceNumber string, orderDate time.Time, customerID, storeID string, items []LineItem, total decimal.Decimal) (*Order, error) {
	order := &Order{
		ID:            id,
		InvoiceNumber: strings.TrimSpace(invoiceNumber),
		OrderDate:     orderDate,
		CustomerID:    strings.TrimSpace(customerID),
		StoreID:       strings.TrimSpace(storeID),
		Status:        StatusDraft,
		TotalAmount:   total,
		Items:         append([]LineItem(nil), items...),
	}
	if len(order.Items) > 0 {
		order.TotalAmount = order.ItemsTotal()
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// ItemsTotal sums the line totals.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.CustomerID == "" {
		return ErrMissingCustomer
	}
	if o.StoreID == "" {
		return ErrMissingStore
	}
	if o.OrderDate.IsZero() {
		return ErrMissingOrderDate
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	for _, item := range o.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	if o.TotalAmount.IsNegative() {
		return ErrNegativeTotal
	}
	return nil
}

// MarkStatus applies a user-initiated transition. Only completion and cancellation are
// exposed; the source state is not restricted.
func (o *Order) MarkStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if status != StatusCompleted && status != StatusCancelled {
		return ErrStatusTransition
	}
	o.Status = status
	return nil
}

// Clone returns a deep copy safe to hand across adapter boundaries.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]LineItem(nil), o.Items...)
	return &clone
}
