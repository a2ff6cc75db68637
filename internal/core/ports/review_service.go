package ports

import (
	"context"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

type CreateReviewInput struct {
	Rating  int    `json:"rating"  validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,min=10,max=1000"`
}

type ModerateReviewInput struct {
	IsApproved *bool `json:"isApproved" validate:"required"`
}

type ListReviewsInput struct {
	Approved *bool // nil lists both states
	PageQuery
}

type ReviewService interface {
	// ListForTour returns approved reviews, plus the caller's own when s is non-nil.
	ListForTour(ctx context.Context, s *access.Session, tourSlug string) ([]*domain.Review, error)
	Create(ctx context.Context, s *access.Session, tourSlug string, in CreateReviewInput) (*domain.Review, error)
	ListOwn(ctx context.Context, s *access.Session, in PageQuery) (Page[*domain.Review], error)
	ListAll(ctx context.Context, s *access.Session, in ListReviewsInput) (Page[*domain.Review], error)
	Moderate(ctx context.Context, s *access.Session, id string, in ModerateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, s *access.Session, id string) error
}
