// Package ranking orders catalog entries by demand.
package ranking

import (
	"cmp"
	"slices"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

// TourDemand annotates a tour with its order count.
type TourDemand struct {
	Tour   *domain.Tour
	Orders int64
}

// DestinationDemand annotates a destination with the summed order count of
// its tours and the number of tours it has.
type DestinationDemand struct {
	Destination *domain.Destination
	Orders      int64
	Tours       int
}

// RankTours sorts by descending order count. Ties keep input order.
// The input slice is left untouched.
func RankTours(in []TourDemand) []TourDemand {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b TourDemand) int {
		return cmp.Compare(b.Orders, a.Orders)
	})
	return out
}

// RankDestinations sorts by descending order count, then by descending tour
// count. Remaining ties keep input order.
func RankDestinations(in []DestinationDemand) []DestinationDemand {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b DestinationDemand) int {
		if c := cmp.Compare(b.Orders, a.Orders); c != 0 {
			return c
		}
		return cmp.Compare(b.Tours, a.Tours)
	})
	return out
}

// DestinationDemands folds per-tour order counts into per-destination demand,
// preserving the order of destinations.
func DestinationDemands(destinations []*domain.Destination, tours []*domain.Tour, ordersByTour map[string]int64) []DestinationDemand {
	idx := make(map[string]int, len(destinations))
	out := make([]DestinationDemand, len(destinations))
	for i, d := range destinations {
		idx[d.ID] = i
		out[i] = DestinationDemand{Destination: d}
	}
	for _, t := range tours {
		i, ok := idx[t.DestinationID]
		if !ok {
			continue
		}
		out[i].Tours++
		out[i].Orders += ordersByTour[t.ID]
	}
	return out
}

// TourDemands pairs tours with their order counts, preserving tour order.
func TourDemands(tours []*domain.Tour, ordersByTour map[string]int64) []TourDemand {
	out := make([]TourDemand, len(tours))
	for i, t := range tours {
		out[i] = TourDemand{Tour: t, Orders: ordersByTour[t.ID]}
	}
	return out
}

// Top returns at most n leading elements; n <= 0 returns all of them.
func Top[T any](ranked []T, n int) []T {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
