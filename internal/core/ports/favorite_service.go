package ports

import (
	"context"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

type AddFavoriteInput struct {
	TourID string `json:"tourId" validate:"required"`
}

type FavoriteService interface {
	Add(ctx context.Context, s *access.Session, in AddFavoriteInput) (*domain.Favorite, error)
	List(ctx context.Context, s *access.Session) ([]*domain.Favorite, error)
	Remove(ctx context.Context, s *access.Session, id string) error
}
