package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-shop-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/go-shop-api/internal/domains/users/ports"
)

func newUserService(t *testing.T) *Service {
	t.Helper()
	return NewService(memory.NewRepository(), memory.NewSessionStore())
}

func TestRegister_HashesPassword(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "correct horse", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register(context.Background(), "Ada", "  Ada@Example.COM ", "correct horse")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", user.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Other", "ada@example.com", "different pass")
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "short")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestLogin_IssuesSession(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	session, err := svc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, registered.ID, session.UserID)
	require.NotEmpty(t, session.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestDelete_RemovesAccount(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	_, err = svc.GetByID(ctx, user.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
