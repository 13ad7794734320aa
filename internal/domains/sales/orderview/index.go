package orderview

import "github.com/Apurer/sales-order-api/internal/domains/sales/domain"

// Index resolves customer and store references by identifier. Build it once per data refresh
// and reuse it for every enrichment of that snapshot.
type Index struct {
	customers map[string]*domain.Customer
	stores    map[string]*domain.Store
}

// NewIndex copies the entities into lookup maps. When identifiers repeat, the first entry wins,
// matching a front-to-back scan.
func NewIndex(customers []domain.Customer, stores []domain.Store) Index {
	idx := Index{
		customers: make(map[string]*domain.Customer, len(customers)),
		stores:    make(map[string]*domain.Store, len(stores)),
	}
	for i := range customers {
		if _, ok := idx.customers[customers[i].ID]; ok {
			continue
		}
		c := customers[i]
		idx.customers[c.ID] = &c
	}
	for i := range stores {
		if _, ok := idx.stores[stores[i].ID]; ok {
			continue
		}
		s := stores[i]
		idx.stores[s.ID] = &s
	}
	return idx
}

// Customer returns the customer with the given id, or nil.
func (idx Index) Customer(id string) *domain.Customer {
	return idx.customers[id]
}

// Store returns the store with the given id, or nil.
func (idx Index) Store(id string) *domain.Store {
	return idx.stores[id]
}

// Enrich joins each order with its customer and store. Nil orders are skipped.
func (idx Index) Enrich(orders []*domain.Order) []EnrichedOrder {
	result := make([]EnrichedOrder, 0, len(orders))
	for _, order := range orders {
		if order == nil {
			continue
		}
		result = append(result, idx.EnrichOne(order))
	}
	return result
}

// EnrichOne joins a single order.
func (idx Index) EnrichOne(order *domain.Order) EnrichedOrder {
	return EnrichedOrder{
		Order:    order,
		Customer: idx.Customer(order.CustomerID),
		Store:    idx.Store(order.StoreID),
	}
}

// Enrich is a convenience for a one-off join without keeping the index.
func Enrich(orders []*domain.Order, customers []domain.Customer, stores []domain.Store) []EnrichedOrder {
	return NewIndex(customers, stores).Enrich(orders)
}
