package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-shop-api/internal/domains/users/domain"
	"github.com/Apurer/go-shop-api/internal/domains/users/ports"
)

const minPasswordLength = 8

// Service exposes user bounded context use cases. Passwords are hashed with
// bcrypt before they reach any store; plaintext is never persisted.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
}

func NewService(repo ports.Repository, sessions ports.SessionStore) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions}
}

// Register creates a new user with a hashed password. Duplicate emails are
// rejected with ports.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(0, name, email)
	if err != nil {
		return nil, mapError(err)
	}
	if len(strings.TrimSpace(password)) < minPasswordLength {
		return nil, mapError(ErrWeakPassword)
	}
	if existing, err := s.repo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, ports.ErrEmailTaken
	} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	return s.repo.Save(ctx, user)
}

// Login verifies the password against the stored bcrypt hash and issues a
// session token.
func (s *Service) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrInvalidCredentials)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	token := fmt.Sprintf("%s:%d", user.Email, time.Now().UnixNano())
	if err := s.sessions.Save(ctx, user.Email, token); err != nil {
		return nil, err
	}
	return &ports.Session{UserID: user.ID, Token: token}, nil
}

// Logout drops the user's session if one exists.
func (s *Service) Logout(ctx context.Context, email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return
	}
	_ = s.sessions.Delete(ctx, email)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	_ = s.sessions.Delete(ctx, user.Email)
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
