package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type FavoriteService struct {
	favorites ports.FavoriteRepository
	tours     ports.TourRepository
	validate  ports.InputValidator
	log       zerolog.Logger
}

func NewFavoriteService(favorites ports.FavoriteRepository, tours ports.TourRepository, validate ports.InputValidator, log zerolog.Logger) *FavoriteService {
	return &FavoriteService{favorites: favorites, tours: tours, validate: validate, log: log}
}

func (s *FavoriteService) Add(ctx context.Context, sess *access.Session, in ports.AddFavoriteInput) (*domain.Favorite, error) {
	if err := access.Check(sess, access.ActionFavoriteCreate); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.tours.FindByID(ctx, in.TourID); err != nil {
		return nil, err
	}

	fav := &domain.Favorite{
		ID:        uuid.NewString(),
		UserID:    sess.UserID,
		TourID:    in.TourID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.favorites.Create(ctx, fav); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrFavoriteExists
		}
		return nil, err
	}
	return fav, nil
}

func (s *FavoriteService) List(ctx context.Context, sess *access.Session) ([]*domain.Favorite, error) {
	if err := access.Authorize(sess, access.ActionFavoriteList, access.Resource{OwnerID: sessionUserID(sess)}); err != nil {
		return nil, err
	}
	return s.favorites.ListByUser(ctx, sess.UserID)
}

func (s *FavoriteService) Remove(ctx context.Context, sess *access.Session, id string) error {
	if err := access.Check(sess, access.ActionFavoriteDelete); err != nil {
		return err
	}
	fav, err := s.favorites.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(sess, access.ActionFavoriteDelete, access.Resource{OwnerID: fav.UserID}); err != nil {
		return err
	}
	return s.favorites.Delete(ctx, id)
}
