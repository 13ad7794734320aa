package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/sales-order-api/internal/domains/sales/domain"
	"github.com/Apurer/sales-order-api/internal/domains/sales/ports"
)

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository reads customers, stores and items from the database.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []customerRecord
	if err := r.db.WithContext(ctx).Order("last_name").Order("first_name").Find(&records).Error; err != nil {
		return nil, err
	}
	customers := make([]domain.Customer, 0, len(records))
	for _, rec := range records {
		customers = append(customers, domain.Customer{ID: rec.ID, FirstName: rec.FirstName, LastName: rec.LastName, Phone: rec.Phone})
	}
	return customers, nil
}

func (r *CatalogRepository) ListStores(ctx context.Context) ([]domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []storeRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	stores := make([]domain.Store, 0, len(records))
	for _, rec := range records {
		stores = append(stores, domain.Store{ID: rec.ID, Name: rec.Name, Address: rec.Address})
	}
	return stores, nil
}

func (r *CatalogRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, domain.Item{ID: rec.ID, Name: rec.Name, UnitPrice: rec.UnitPrice})
	}
	return items, nil
}

// UpsertCustomers inserts or refreshes customers keyed by id.
func (r *CatalogRepository) UpsertCustomers(ctx context.Context, customers ...domain.Customer) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if len(customers) == 0 {
		return nil
	}
	records := make([]customerRecord, 0, len(customers))
	for _, c := range customers {
		records = append(records, customerRecord{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Phone: c.Phone})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "phone", "updated_at"}),
	}).Create(&records).Error
}

// UpsertStores inserts or refreshes stores keyed by id.
func (r *CatalogRepository) UpsertStores(ctx context.Context, stores ...domain.Store) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if len(stores) == 0 {
		return nil
	}
	records := make([]storeRecord, 0, len(stores))
	for _, s := range stores {
		records = append(records, storeRecord{ID: s.ID, Name: s.Name, Address: s.Address})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "address", "updated_at"}),
	}).Create(&records).Error
}

// UpsertItems inserts or refreshes items keyed by id.
func (r *CatalogRepository) UpsertItems(ctx context.Context, items ...domain.Item) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	records := make([]itemRecord, 0, len(items))
	for _, it := range items {
		records = append(records, itemRecord{ID: it.ID, Name: it.Name, UnitPrice: it.UnitPrice})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "unit_price", "updated_at"}),
	}).Create(&records).Error
}

func (r *CatalogRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("sales catalog repository not configured")
	}
	return nil
}
