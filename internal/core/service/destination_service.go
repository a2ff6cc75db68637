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
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ranking"
)

// DestinationService manages destinations and their popularity listing.
type DestinationService struct {
	destinations ports.DestinationRepository
	tours        ports.TourRepository
	reviews      ports.ReviewRepository
	favorites    ports.FavoriteRepository
	demand       demandSource
	validate     ports.InputValidator
	log          zerolog.Logger
}

func NewDestinationService(
	destinations ports.DestinationRepository,
	tours ports.TourRepository,
	reviews ports.ReviewRepository,
	favorites ports.FavoriteRepository,
	orders ports.OrderRepository,
	cache ports.DemandCache,
	validate ports.InputValidator,
	log zerolog.Logger,
) *DestinationService {
	return &DestinationService{
		destinations: destinations,
		tours:        tours,
		reviews:      reviews,
		favorites:    favorites,
		demand:       demandSource{orders: orders, cache: cache, log: log},
		validate:     validate,
		log:          log,
	}
}

// List returns all destinations with demand figures. When in.Popular is set
// they are ranked by demand; otherwise store order is kept.
func (s *DestinationService) List(ctx context.Context, in ports.ListDestinationsInput) ([]ports.DestinationSummary, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	dests, err := s.destinations.List(ctx)
	if err != nil {
		return nil, err
	}
	tours, _, err := s.tours.List(ctx, ports.TourFilter{})
	if err != nil {
		return nil, err
	}
	counts, err := s.demand.counts(ctx)
	if err != nil {
		return nil, err
	}

	demand := ranking.DestinationDemands(dests, tours, counts)
	if in.Popular {
		demand = ranking.RankDestinations(demand)
	}
	demand = ranking.Top(demand, in.Limit)

	out := make([]ports.DestinationSummary, len(demand))
	for i, d := range demand {
		out[i] = ports.DestinationSummary{Destination: d.Destination, TourCount: d.Tours, OrderCount: d.Orders}
	}
	return out, nil
}

func (s *DestinationService) Get(ctx context.Context, slug string) (*ports.DestinationDetail, error) {
	dest, err := s.destinations.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	tours, _, err := s.tours.List(ctx, ports.TourFilter{DestinationID: dest.ID})
	if err != nil {
		return nil, err
	}
	return &ports.DestinationDetail{Destination: dest, Tours: tours}, nil
}

func (s *DestinationService) Create(ctx context.Context, sess *access.Session, in ports.DestinationInput) (*domain.Destination, error) {
	if err := access.Check(sess, access.ActionDestinationCreate); err != nil {
		return nil, err
	}
	in = trimDestination(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.destinations.FindBySlug(ctx, in.Slug); err == nil {
		return nil, domain.ErrSlugTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	dest := &domain.Destination{
		ID:          uuid.NewString(),
		Slug:        in.Slug,
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.destinations.Create(ctx, dest); err != nil {
		return nil, err
	}

	s.log.Info().Str("destination_id", dest.ID).Str("slug", dest.Slug).Str("by", sess.UserID).Msg("destination created")
	return dest, nil
}

func (s *DestinationService) Update(ctx context.Context, sess *access.Session, id string, in ports.DestinationInput) (*domain.Destination, error) {
	if err := access.Check(sess, access.ActionDestinationUpdate); err != nil {
		return nil, err
	}
	in = trimDestination(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Slug != dest.Slug {
		if _, err := s.destinations.FindBySlug(ctx, in.Slug); err == nil {
			return nil, domain.ErrSlugTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	dest.Slug = in.Slug
	dest.Name = in.Name
	dest.Description = in.Description
	dest.ImageURL = in.ImageURL
	dest.UpdatedAt = time.Now().UTC()
	if err := s.destinations.Update(ctx, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

// Delete is the manager path: it refuses while the destination has tours.
func (s *DestinationService) Delete(ctx context.Context, sess *access.Session, id string) error {
	if err := access.Check(sess, access.ActionDestinationDelete); err != nil {
		return err
	}
	if _, err := s.destinations.FindByID(ctx, id); err != nil {
		return err
	}

	n, err := s.tours.CountByDestination(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrDestinationHasTours.WithDetails(map[string]any{"tourCount": n})
	}

	if err := s.destinations.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("destination_id", id).Str("by", sess.UserID).Msg("destination deleted")
	return nil
}

// DeleteCascade is the admin path: reviews and favorites of every tour go
// first, then the tours, then the destination.
func (s *DestinationService) DeleteCascade(ctx context.Context, sess *access.Session, id string) error {
	if err := access.Check(sess, access.ActionDestinationDeleteCascade); err != nil {
		return err
	}
	if _, err := s.destinations.FindByID(ctx, id); err != nil {
		return err
	}

	tourIDs, err := s.tours.IDsByDestination(ctx, id)
	if err != nil {
		return err
	}
	var reviews, favorites, tours int64
	if len(tourIDs) > 0 {
		if reviews, err = s.reviews.DeleteByTours(ctx, tourIDs); err != nil {
			return err
		}
		if favorites, err = s.favorites.DeleteByTours(ctx, tourIDs); err != nil {
			return err
		}
		if tours, err = s.tours.DeleteByDestination(ctx, id); err != nil {
			return err
		}
	}
	if err := s.destinations.Delete(ctx, id); err != nil {
		return err
	}
	s.demand.invalidate(ctx)

	s.log.Info().
		Str("destination_id", id).
		Int64("tours", tours).
		Int64("reviews", reviews).
		Int64("favorites", favorites).
		Str("by", sess.UserID).
		Msg("destination deleted with dependents")
	return nil
}

func trimDestination(in ports.DestinationInput) ports.DestinationInput {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in
}
