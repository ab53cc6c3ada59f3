package migrations

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&cartLineRecord{},
		&orderRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
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

// Cart schema mirrors the cart Postgres adapter, one row per line.
type cartLineRecord struct {
	UserID    int64     `gorm:"primaryKey;column:user_id;autoIncrement:false"`
	ProductID int64     `gorm:"primaryKey;column:product_id;autoIncrement:false"`
	Quantity  int64     `gorm:"column:quantity"`
	Position  int       `gorm:"column:position"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartLineRecord) TableName() string { return "cart_lines" }

// Order schema mirrors the checkout Postgres adapter.
type orderRecord struct {
	ID         int64           `gorm:"primaryKey;column:id"`
	UserID     int64           `gorm:"column:user_id;index"`
	Lines      json.RawMessage `gorm:"column:lines;type:jsonb"`
	ProductIDs pq.Int64Array   `gorm:"column:product_ids;type:bigint[]"`
	Total      float64         `gorm:"column:total"`
	Status     string          `gorm:"column:status;type:varchar(32)"`
	CreatedAt  time.Time       `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Email     string    `gorm:"primaryKey;column:email"`
	Token     string    `gorm:"column:token"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
