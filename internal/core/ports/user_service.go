package ports

import (
	"context"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

type UpdateProfileInput struct {
	Name            *string `json:"name"            validate:"omitempty,min=2,max=100"`
	Email           *string `json:"email"           validate:"omitempty,email,max=254"`
	CurrentPassword string  `json:"currentPassword" validate:"omitempty,max=72"`
	NewPassword     *string `json:"newPassword"     validate:"omitempty,min=8,max=72"`
}

type UpdateRoleInput struct {
	Role string `json:"role" validate:"required,role"`
}

type ListUsersInput struct {
	Role   string `query:"role"   validate:"omitempty,role"`
	Search string `query:"search" validate:"omitempty,max=100"`
	PageQuery
}

type UserService interface {
	Profile(ctx context.Context, s *access.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, s *access.Session, in UpdateProfileInput) (*domain.User, error)
	List(ctx context.Context, s *access.Session, in ListUsersInput) (Page[*domain.User], error)
	UpdateRole(ctx context.Context, s *access.Session, userID string, in UpdateRoleInput) (*domain.User, error)
	Delete(ctx context.Context, s *access.Session, userID string) error
}
