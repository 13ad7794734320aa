// Package postgres persists the sales context with GORM. The records only use portable column
// types, so the same adapter also runs against the MySQL dialect.
package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
)

// Models lists the GORM records owned by the sales context, for migrations.
func Models() []any {
	return []any{&orderRecord{}, &customerRecord{}, &storeRecord{}, &itemRecord{}}
}

// orderRecord maps the sales order aggregate to a relational table.
type orderRecord struct {
	ID            string           `gorm:"primaryKey;column:id;size:64"`
	InvoiceNumber string           `gorm:"column:invoice_number;size:64;uniqueIndex"`
	OrderDate     time.Time        `gorm:"column:order_date;index"`
	CustomerID    string           `gorm:"column:customer_id;size:64;index"`
	StoreID       string           `gorm:"column:store_id;size:64;index"`
	Status        string           `gorm:"column:status;type:varchar(16);index"`
	TotalAmount   decimal.Decimal  `gorm:"column:total_amount;type:numeric(14,2)"`
	Items         []lineItemRecord `gorm:"column:items;serializer:json"`
	CreatedAt     time.Time        `gorm:"column:created_at;index"`
	UpdatedAt     time.Time        `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "sales_orders" }

type lineItemRecord struct {
	ItemID    string          `json:"itemId"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type customerRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Phone     string    `gorm:"column:phone;size:32"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

type storeRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Name      string    `gorm:"column:name"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (storeRecord) TableName() string { return "stores" }

type itemRecord struct {
	ID        string          `gorm:"primaryKey;column:id;size:64"`
	Name      string          `gorm:"column:name"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "items" }

func toOrderRecord(order *domain.Order) orderRecord {
	items := make([]lineItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemRecord{ItemID: item.ItemID, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	return orderRecord{
		ID:            order.ID,
		InvoiceNumber: order.InvoiceNumber,
		OrderDate:     order.OrderDate,
		CustomerID:    order.CustomerID,
		StoreID:       order.StoreID,
		Status:        string(order.Status),
		TotalAmount:   order.TotalAmount,
		Items:         items,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	var items []domain.LineItem
	for _, item := range r.Items {
		items = append(items, domain.LineItem{ItemID: item.ItemID, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	return &domain.Order{
		ID:            r.ID,
		InvoiceNumber: r.InvoiceNumber,
		OrderDate:     r.OrderDate,
		CustomerID:    r.CustomerID,
		StoreID:       r.StoreID,
		Status:        domain.Status(r.Status),
		TotalAmount:   r.TotalAmount,
		Items:         items,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
