package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

const testSecret = "test-secret"

func newTestAuthService(users *stubUserRepo, sessions *stubSessionStore) *AuthService {
	return NewAuthService(users, sessions, testValidator, testSecret, time.Hour, discardLogger)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_CreatesUserRole(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubSessionStore())

	u, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "  Anna@Example.COM ",
		Name:     "Anna",
		Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, "anna@example.com", u.Email)
	assert.NotEqual(t, "secret-pass", u.PasswordHash)
	assert.NotEmpty(t, u.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "anna@example.com", Role: domain.RoleUser})
	svc := newTestAuthService(users, newStubSessionStore())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "anna@example.com", Name: "Anna", Password: "secret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_InvalidInputReportsAllFields(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(users, newStubSessionStore())

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "nope", Password: "short"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, users.calls, "store must not be touched on invalid input")
}

func TestLoginResolveLogout(t *testing.T) {
	users := newStubUserRepo(&domain.User{
		ID: "u1", Email: "anna@example.com", Name: "Anna",
		PasswordHash: hashed(t, "secret-pass"), Role: domain.RoleManager,
	})
	sessions := newStubSessionStore()
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	issued, err := svc.Login(ctx, ports.LoginInput{Email: "Anna@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)

	sess, sid, err := svc.Resolve(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, domain.RoleManager, sess.Role)
	assert.Equal(t, "Anna", sess.Name)

	require.NoError(t, svc.Logout(ctx, sid))
	_, _, err = svc.Resolve(ctx, issued.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogin_Failures(t *testing.T) {
	users := newStubUserRepo(
		&domain.User{ID: "u1", Email: "anna@example.com", PasswordHash: hashed(t, "secret-pass"), Role: domain.RoleUser},
		&domain.User{ID: "u2", Email: "oauth@example.com", Role: domain.RoleUser},
	)
	svc := newTestAuthService(users, newStubSessionStore())

	tests := []struct {
		name  string
		input ports.LoginInput
	}{
		{"wrong password", ports.LoginInput{Email: "anna@example.com", Password: "wrong-pass"}},
		{"unknown email", ports.LoginInput{Email: "ghost@example.com", Password: "secret-pass"}},
		{"no password set", ports.LoginInput{Email: "oauth@example.com", Password: "secret-pass"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		})
	}
}

func TestResolve_RejectsBadTokens(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "anna@example.com", PasswordHash: hashed(t, "secret-pass"), Role: domain.RoleUser})
	sessions := newStubSessionStore()
	svc := newTestAuthService(users, sessions)
	ctx := context.Background()

	issued, err := svc.Login(ctx, ports.LoginInput{Email: "anna@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, _, err := svc.Resolve(ctx, "not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewAuthService(users, sessions, testValidator, "other-secret", time.Hour, discardLogger)
		_, _, err := other.Resolve(ctx, issued.Token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		later := newTestAuthService(users, sessions)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, _, err := later.Resolve(ctx, issued.Token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("revoked for user", func(t *testing.T) {
		require.NoError(t, sessions.RevokeUser(ctx, "u1"))
		_, _, err := svc.Resolve(ctx, issued.Token)
		assert.True(t, errors.Is(err, domain.ErrSessionRevoked))
	})
}
