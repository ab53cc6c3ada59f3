package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("name is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrEmptyHash    = errors.New("password hash is required")
)

// User represents a registered shopper.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}

// NewUser builds a user ensuring required invariants. The password hash is set
// by the application service after hashing; the domain never sees plaintext.
func NewUser(id int64, name, email string) (*User, error) {
	user := &User{ID: id}
	if err := user.SetName(name); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	return user, nil
}

// SetName trims and validates the display name.
func (u *User) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// SetEmail normalizes and validates the email address.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetName(u.Name); err != nil {
		return err
	}
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if strings.TrimSpace(u.PasswordHash) == "" {
		return ErrEmptyHash
	}
	return nil
}
