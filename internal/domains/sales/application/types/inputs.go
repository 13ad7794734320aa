package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemInput is a requested order row.
type LineItemInput struct {
	ItemID    string
	Quantity  int32
	UnitPrice decimal.Decimal
}

// CreateOrderInput carries the fields collected by the order creation form.
// InvoiceNumber is generated when empty. TotalAmount is only honored when Items is empty.
type CreateOrderInput struct {
	ID            string
	InvoiceNumber string
	CustomerID    string
	StoreID       string
	OrderDate     time.Time
	Items         []LineItemInput
	TotalAmount   decimal.Decimal
}

// UpdateStatusInput requests a completion or cancellation.
type UpdateStatusInput struct {
	ID     string
	Status string
}
