// Package postgres persists completed orders.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	"github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
)

var _ ports.OrderRepository = (*Repository)(nil)

// Repository is the PostgreSQL order ledger. Rows are only ever inserted.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

type orderRecord struct {
	ID     int64             `gorm:"primaryKey;column:id"`
	UserID int64             `gorm:"column:user_id;index"`
	Lines  []orderLineRecord `gorm:"column:lines;serializer:json;type:jsonb"`
	// ProductIDs duplicates the line product ids as an array column so
	// "orders containing product X" stays a single indexed query.
	ProductIDs pq.Int64Array `gorm:"column:product_ids;type:bigint[]"`
	Total      float64       `gorm:"column:total"`
	Status     string        `gorm:"column:status"`
	CreatedAt  time.Time     `gorm:"column:created_at"`
}

type orderLineRecord struct {
	ProductID int64   `json:"productId"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

func (orderRecord) TableName() string { return "orders" }

func (r *Repository) Append(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	lines := make([]orderLineRecord, 0, len(order.Lines))
	productIDs := make(pq.Int64Array, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderLineRecord{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
		productIDs = append(productIDs, line.ProductID)
	}
	return orderRecord{
		ID:         order.ID,
		UserID:     order.UserID,
		Lines:      lines,
		ProductIDs: productIDs,
		Total:      order.Total,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	lines := make([]domain.OrderLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}
	return &domain.Order{
		ID:        r.ID,
		UserID:    r.UserID,
		Lines:     lines,
		Total:     r.Total,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
