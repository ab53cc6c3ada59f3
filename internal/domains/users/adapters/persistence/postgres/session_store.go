package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-shop-api/internal/domains/users/ports"
)

// DefaultSessionTTL bounds how long an issued token stays valid.
const DefaultSessionTTL = 24 * time.Hour

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps issued login tokens in PostgreSQL so restarts do not
// log everyone out. One active session per email.
type SessionStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewSessionStore wires a PostgreSQL-backed session store with the default TTL.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return NewSessionStoreWithTTL(db, DefaultSessionTTL)
}

// NewSessionStoreWithTTL wires a PostgreSQL-backed session store.
func NewSessionStoreWithTTL(db *gorm.DB, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	store := &SessionStore{db: db, ttl: ttl, now: time.Now}
	if db != nil {
		_ = db.AutoMigrate(&sessionRecord{})
	}
	return store
}

type sessionRecord struct {
	Email     string    `gorm:"primaryKey;column:email"`
	Token     string    `gorm:"column:token"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Save upserts the session for an email, replacing any previous token.
func (s *SessionStore) Save(ctx context.Context, email, token string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := sessionRecord{
		Email:     email,
		Token:     token,
		ExpiresAt: s.now().Add(s.ttl),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at", "updated_at"}),
		}).
		Create(&record).Error
}

// Delete removes the session for an email. Missing sessions are not an error.
func (s *SessionStore) Delete(ctx context.Context, email string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "email = ?", email).Error
}

// PurgeExpired deletes sessions past their expiry and reports how many went.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Delete(&sessionRecord{}, "expires_at < ?", s.now())
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}
