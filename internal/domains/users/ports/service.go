package ports

import (
	"context"

	"github.com/Apurer/go-shop-api/internal/domains/users/domain"
)

// Session is the result of a successful login.
type Session struct {
	UserID int64
	Token  string
}

// Service exposes user bounded context use cases.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, email string)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
