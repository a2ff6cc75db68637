package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

// Stats is the back-office overview.
type Stats struct {
	Users           int64
	Destinations    int64
	Tours           int64
	OrdersByStatus  map[domain.OrderStatus]int64
	Revenue         decimal.Decimal
	PendingReviews  int64
	OpenTickets     int64
	TopTours        []TourSummary
	TopDestinations []DestinationSummary
}

type StatsService interface {
	Overview(ctx context.Context, s *access.Session) (*Stats, error)
}
