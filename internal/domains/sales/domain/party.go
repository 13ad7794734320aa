package domain

import "github.com/shopspring/decimal"

// Customer is the buyer referenced by an order.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
}

// FullName joins first and last name with a single space.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Store is the selling location referenced by an order.
type Store struct {
	ID      string
	Name    string
	Address string
}

// Item is a sellable catalog entry.
type Item struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
}
