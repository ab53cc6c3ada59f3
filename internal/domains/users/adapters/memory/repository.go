package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-shop-api/internal/domains/users/domain"
	"github.com/Apurer/go-shop-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	users   map[int64]*domain.User
	byEmail map[string]int64
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{users: map[int64]*domain.User{}, byEmail: map[string]int64{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	if existingID, ok := r.byEmail[clone.Email]; ok && existingID != clone.ID {
		return nil, ports.ErrEmailTaken
	}
	if stored, ok := r.users[clone.ID]; ok && stored.Email != clone.Email {
		delete(r.byEmail, stored.Email)
	}
	r.users[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.users[id]
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byEmail, user.Email)
	delete(r.users, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		list = append(list, &clone)
	}
	return list, nil
}
