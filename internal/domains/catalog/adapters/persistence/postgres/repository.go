package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

type productRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name;index"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	Stock       int64     `gorm:"column:stock"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a product.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"description": record.Description,
				"price":       record.Price,
				"stock":       record.Stock,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a product by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all products.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// ConditionalDecrementStock relies on a single guarded UPDATE; the database
// serializes concurrent statements on the same row, so the stock check and the
// subtraction cannot interleave with another decrement.
func (r *Repository) ConditionalDecrementStock(ctx context.Context, productID int64, quantity int64) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	if quantity <= 0 {
		return 0, errors.New("quantity must be positive")
	}
	var remaining int64
	result := r.db.WithContext(ctx).Raw(
		`UPDATE products SET stock = stock - ?, updated_at = NOW() WHERE id = ? AND stock >= ? RETURNING stock`,
		quantity, productID, quantity,
	).Scan(&remaining)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from a stock shortfall.
		var record productRecord
		if err := r.db.WithContext(ctx).Select("stock").First(&record, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ports.ErrNotFound
			}
			return 0, err
		}
		return record.Stock, ports.ErrInsufficientStock
	}
	return remaining, nil
}

// IncrementStock re-adds quantity unconditionally.
func (r *Repository) IncrementStock(ctx context.Context, productID int64, quantity int64) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	if quantity <= 0 {
		return 0, errors.New("quantity must be positive")
	}
	var stock int64
	result := r.db.WithContext(ctx).Raw(
		`UPDATE products SET stock = stock + ?, updated_at = NOW() WHERE id = ? RETURNING stock`,
		quantity, productID,
	).Scan(&stock)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ports.ErrNotFound
	}
	return stock, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}
