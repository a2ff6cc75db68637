package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type ReviewService struct {
	reviews  ports.ReviewRepository
	tours    ports.TourRepository
	validate ports.InputValidator
	log      zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, tours ports.TourRepository, validate ports.InputValidator, log zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, tours: tours, validate: validate, log: log}
}

// ListForTour returns what the caller may see: approved reviews, and for a
// signed-in author their own pending ones too.
func (s *ReviewService) ListForTour(ctx context.Context, sess *access.Session, tourSlug string) ([]*domain.Review, error) {
	if err := access.Check(sess, access.ActionReviewListApproved); err != nil {
		return nil, err
	}
	tour, err := s.tours.FindBySlug(ctx, tourSlug)
	if err != nil {
		return nil, err
	}
	viewer := sessionUserID(sess)
	reviews, err := s.reviews.ListVisible(ctx, tour.ID, viewer)
	if err != nil {
		return nil, err
	}

	visible := reviews[:0]
	for _, r := range reviews {
		if r.VisibleTo(viewer) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// Create submits a review awaiting moderation. One review per user and tour.
func (s *ReviewService) Create(ctx context.Context, sess *access.Session, tourSlug string, in ports.CreateReviewInput) (*domain.Review, error) {
	if err := access.Check(sess, access.ActionReviewCreate); err != nil {
		return nil, err
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	tour, err := s.tours.FindBySlug(ctx, tourSlug)
	if err != nil {
		return nil, err
	}

	if _, err := s.reviews.FindByUserAndTour(ctx, sess.UserID, tour.ID); err == nil {
		return nil, domain.ErrReviewExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:         uuid.NewString(),
		TourID:     tour.ID,
		UserID:     sess.UserID,
		AuthorName: sess.Name,
		Rating:     in.Rating,
		Comment:    in.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	// The unique (user_id, tour_id) index rejects a concurrent duplicate
	// that slipped past the lookup above.
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.log.Info().Str("review_id", review.ID).Str("tour_id", tour.ID).Str("user_id", sess.UserID).Msg("review submitted")
	return review, nil
}

func (s *ReviewService) ListOwn(ctx context.Context, sess *access.Session, in ports.PageQuery) (ports.Page[*domain.Review], error) {
	if err := access.Authorize(sess, access.ActionReviewListOwn, access.Resource{OwnerID: sessionUserID(sess)}); err != nil {
		return ports.Page[*domain.Review]{}, err
	}
	if err := s.validate.Struct(in); err != nil {
		return ports.Page[*domain.Review]{}, err
	}
	q := in.Normalize()
	reviews, total, err := s.reviews.List(ctx, ports.ReviewFilter{UserID: sess.UserID, PageQuery: q})
	if err != nil {
		return ports.Page[*domain.Review]{}, err
	}
	return ports.NewPage(reviews, total, q), nil
}

func (s *ReviewService) ListAll(ctx context.Context, sess *access.Session, in ports.ListReviewsInput) (ports.Page[*domain.Review], error) {
	if err := access.Check(sess, access.ActionReviewListAll); err != nil {
		return ports.Page[*domain.Review]{}, err
	}
	if err := s.validate.Struct(in); err != nil {
		return ports.Page[*domain.Review]{}, err
	}
	q := in.PageQuery.Normalize()
	reviews, total, err := s.reviews.List(ctx, ports.ReviewFilter{Approved: in.Approved, PageQuery: q})
	if err != nil {
		return ports.Page[*domain.Review]{}, err
	}
	return ports.NewPage(reviews, total, q), nil
}

func (s *ReviewService) Moderate(ctx context.Context, sess *access.Session, id string, in ports.ModerateReviewInput) (*domain.Review, error) {
	if err := access.Check(sess, access.ActionReviewApprove); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	review, err := s.reviews.SetApproved(ctx, id, *in.IsApproved)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("review_id", id).Bool("approved", *in.IsApproved).Str("by", sess.UserID).Msg("review moderated")
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, sess *access.Session, id string) error {
	if err := access.Check(sess, access.ActionReviewDelete); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("review_id", id).Str("by", sess.UserID).Msg("review deleted")
	return nil
}
