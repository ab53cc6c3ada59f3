package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-shop-api/internal/domains/cart/domain"
	"github.com/Apurer/go-shop-api/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists carts in PostgreSQL using GORM, one row per cart line.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&cartLineRecord{})
	}
	return repo
}

type cartLineRecord struct {
	UserID    int64     `gorm:"primaryKey;column:user_id;autoIncrement:false"`
	ProductID int64     `gorm:"primaryKey;column:product_id;autoIncrement:false"`
	Quantity  int64     `gorm:"column:quantity"`
	Position  int       `gorm:"column:position"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartLineRecord) TableName() string { return "cart_lines" }

// Get loads the user's cart lines in insertion order. No rows means an empty
// cart, not an error.
func (r *Repository) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartLineRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position").
		Find(&records).Error; err != nil {
		return nil, err
	}
	cart := domain.NewCart(userID)
	for _, rec := range records {
		cart.Lines = append(cart.Lines, domain.CartLine{ProductID: rec.ProductID, Quantity: rec.Quantity})
	}
	return cart, nil
}

// Put replaces the stored lines with the cart's lines in one transaction.
func (r *Repository) Put(ctx context.Context, cart *domain.Cart) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if cart == nil {
		return errors.New("cart is nil")
	}
	if err := cart.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", cart.UserID).Delete(&cartLineRecord{}).Error; err != nil {
			return err
		}
		if len(cart.Lines) == 0 {
			return nil
		}
		records := make([]cartLineRecord, 0, len(cart.Lines))
		for i, line := range cart.Lines {
			records = append(records, cartLineRecord{
				UserID:    cart.UserID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Position:  i,
			})
		}
		return tx.Create(&records).Error
	})
}

// Clear removes all lines for the user. Deleting zero rows is still success.
func (r *Repository) Clear(ctx context.Context, userID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&cartLineRecord{}).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}
