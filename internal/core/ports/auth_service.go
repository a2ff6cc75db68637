package ports

import (
	"context"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

type RegisterInput struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// IssuedSession is the result of a successful login.
type IssuedSession struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*IssuedSession, error)
	Logout(ctx context.Context, sessionID string) error
	// Resolve turns a token into a session; it fails with domain.ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (*access.Session, string, error)
}
