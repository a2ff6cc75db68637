package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ranking"
)

const topN = 5

type StatsService struct {
	users        ports.UserRepository
	destinations ports.DestinationRepository
	tours        ports.TourRepository
	orders       ports.OrderRepository
	reviews      ports.ReviewRepository
	tickets      ports.TicketRepository
	demand       demandSource
}

func NewStatsService(
	users ports.UserRepository,
	destinations ports.DestinationRepository,
	tours ports.TourRepository,
	orders ports.OrderRepository,
	reviews ports.ReviewRepository,
	tickets ports.TicketRepository,
	cache ports.DemandCache,
	log zerolog.Logger,
) *StatsService {
	return &StatsService{
		users:        users,
		destinations: destinations,
		tours:        tours,
		orders:       orders,
		reviews:      reviews,
		tickets:      tickets,
		demand:       demandSource{orders: orders, cache: cache, log: log},
	}
}

func (s *StatsService) Overview(ctx context.Context, sess *access.Session) (*ports.Stats, error) {
	if err := access.Check(sess, access.ActionStatsRead); err != nil {
		return nil, err
	}

	var (
		st  ports.Stats
		err error
	)
	if st.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if st.Destinations, err = s.destinations.Count(ctx); err != nil {
		return nil, err
	}
	if st.Tours, err = s.tours.Count(ctx); err != nil {
		return nil, err
	}
	if st.OrdersByStatus, err = s.orders.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if st.OrdersByStatus == nil {
		st.OrdersByStatus = make(map[domain.OrderStatus]int64, len(domain.OrderStatuses))
	}
	for _, status := range domain.OrderStatuses {
		if _, ok := st.OrdersByStatus[status]; !ok {
			st.OrdersByStatus[status] = 0
		}
	}
	if st.Revenue, err = s.orders.Revenue(ctx, domain.OrderCompleted); err != nil {
		return nil, err
	}
	if st.PendingReviews, err = s.reviews.CountPending(ctx); err != nil {
		return nil, err
	}
	if st.OpenTickets, err = s.tickets.CountByStatus(ctx, domain.TicketOpen); err != nil {
		return nil, err
	}

	counts, err := s.demand.counts(ctx)
	if err != nil {
		return nil, err
	}
	tours, _, err := s.tours.List(ctx, ports.TourFilter{})
	if err != nil {
		return nil, err
	}
	dests, err := s.destinations.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, d := range ranking.Top(ranking.RankTours(ranking.TourDemands(tours, counts)), topN) {
		st.TopTours = append(st.TopTours, ports.TourSummary{Tour: d.Tour, OrderCount: d.Orders})
	}
	for _, d := range ranking.Top(ranking.RankDestinations(ranking.DestinationDemands(dests, tours, counts)), topN) {
		st.TopDestinations = append(st.TopDestinations, ports.DestinationSummary{
			Destination: d.Destination,
			TourCount:   d.Tours,
			OrderCount:  d.Orders,
		})
	}
	return &st, nil
}
