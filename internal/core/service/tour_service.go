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

// TourService manages tours and their popularity listing.
type TourService struct {
	tours        ports.TourRepository
	destinations ports.DestinationRepository
	reviews      ports.ReviewRepository
	favorites    ports.FavoriteRepository
	demand       demandSource
	validate     ports.InputValidator
	log          zerolog.Logger
}

func NewTourService(
	tours ports.TourRepository,
	destinations ports.DestinationRepository,
	reviews ports.ReviewRepository,
	favorites ports.FavoriteRepository,
	orders ports.OrderRepository,
	cache ports.DemandCache,
	validate ports.InputValidator,
	log zerolog.Logger,
) *TourService {
	return &TourService{
		tours:        tours,
		destinations: destinations,
		reviews:      reviews,
		favorites:    favorites,
		demand:       demandSource{orders: orders, cache: cache, log: log},
		validate:     validate,
		log:          log,
	}
}

// List pages through tours. With in.Popular the whole match set is ranked
// by demand before the page is cut.
func (s *TourService) List(ctx context.Context, in ports.ListToursInput) (ports.Page[ports.TourSummary], error) {
	if err := s.validate.Struct(in); err != nil {
		return ports.Page[ports.TourSummary]{}, err
	}
	q := in.PageQuery.Normalize()

	filter := ports.TourFilter{Search: strings.TrimSpace(in.Search)}
	if in.Destination != "" {
		dest, err := s.destinations.FindBySlug(ctx, in.Destination)
		if err != nil {
			return ports.Page[ports.TourSummary]{}, err
		}
		filter.DestinationID = dest.ID
	}

	counts, err := s.demand.counts(ctx)
	if err != nil {
		return ports.Page[ports.TourSummary]{}, err
	}

	if !in.Popular {
		filter.PageQuery = q
		tours, total, err := s.tours.List(ctx, filter)
		if err != nil {
			return ports.Page[ports.TourSummary]{}, err
		}
		return ports.NewPage(summaries(ranking.TourDemands(tours, counts)), total, q), nil
	}

	tours, total, err := s.tours.List(ctx, filter)
	if err != nil {
		return ports.Page[ports.TourSummary]{}, err
	}
	ranked := ranking.RankTours(ranking.TourDemands(tours, counts))
	start := int(q.Skip())
	if start > len(ranked) {
		start = len(ranked)
	}
	end := min(start+q.Limit, len(ranked))
	return ports.NewPage(summaries(ranked[start:end]), total, q), nil
}

func summaries(in []ranking.TourDemand) []ports.TourSummary {
	out := make([]ports.TourSummary, len(in))
	for i, d := range in {
		out[i] = ports.TourSummary{Tour: d.Tour, OrderCount: d.Orders}
	}
	return out
}

func (s *TourService) Get(ctx context.Context, slug string) (*ports.TourDetail, error) {
	tour, err := s.tours.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	dest, err := s.destinations.FindByID(ctx, tour.DestinationID)
	if err != nil {
		return nil, err
	}
	rating, err := s.reviews.RatingSummary(ctx, tour.ID)
	if err != nil {
		return nil, err
	}
	return &ports.TourDetail{Tour: tour, Destination: dest, Rating: rating}, nil
}

func (s *TourService) Create(ctx context.Context, sess *access.Session, in ports.TourInput) (*domain.Tour, error) {
	if err := access.Check(sess, access.ActionTourCreate); err != nil {
		return nil, err
	}
	in = trimTour(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.destinations.FindByID(ctx, in.DestinationID); err != nil {
		return nil, err
	}
	if _, err := s.tours.FindBySlug(ctx, in.Slug); err == nil {
		return nil, domain.ErrSlugTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	tour := &domain.Tour{ID: uuid.NewString(), CreatedAt: now}
	applyTour(tour, in, now)
	if err := s.tours.Create(ctx, tour); err != nil {
		return nil, err
	}

	s.log.Info().Str("tour_id", tour.ID).Str("slug", tour.Slug).Str("by", sess.UserID).Msg("tour created")
	return tour, nil
}

func (s *TourService) Update(ctx context.Context, sess *access.Session, id string, in ports.TourInput) (*domain.Tour, error) {
	if err := access.Check(sess, access.ActionTourUpdate); err != nil {
		return nil, err
	}
	in = trimTour(in)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	tour, err := s.tours.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.DestinationID != tour.DestinationID {
		if _, err := s.destinations.FindByID(ctx, in.DestinationID); err != nil {
			return nil, err
		}
	}
	if in.Slug != tour.Slug {
		if _, err := s.tours.FindBySlug(ctx, in.Slug); err == nil {
			return nil, domain.ErrSlugTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	applyTour(tour, in, time.Now().UTC())
	if err := s.tours.Update(ctx, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

// Delete removes a tour together with its reviews and favorites.
func (s *TourService) Delete(ctx context.Context, sess *access.Session, id string) error {
	if err := access.Check(sess, access.ActionTourDelete); err != nil {
		return err
	}
	if _, err := s.tours.FindByID(ctx, id); err != nil {
		return err
	}

	ids := []string{id}
	if _, err := s.reviews.DeleteByTours(ctx, ids); err != nil {
		return err
	}
	if _, err := s.favorites.DeleteByTours(ctx, ids); err != nil {
		return err
	}
	if err := s.tours.Delete(ctx, id); err != nil {
		return err
	}
	s.demand.invalidate(ctx)

	s.log.Info().Str("tour_id", id).Str("by", sess.UserID).Msg("tour deleted")
	return nil
}

func trimTour(in ports.TourInput) ports.TourInput {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	return in
}

func applyTour(t *domain.Tour, in ports.TourInput, now time.Time) {
	t.Slug = in.Slug
	t.DestinationID = in.DestinationID
	t.Name = in.Name
	t.Description = in.Description
	t.ImageURL = in.ImageURL
	t.Price = in.Price
	t.Currency = in.Currency
	t.DurationDays = in.DurationDays
	t.AvailableSeats = in.AvailableSeats
	t.NextTourDate = in.NextTourDate
	t.UpdatedAt = now
}
