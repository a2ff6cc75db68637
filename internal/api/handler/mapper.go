package handler

import (
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

// mapSlice converts every element with fn; the result is never nil so lists
// render as [] rather than null.
func mapSlice[S, D any](in []S, fn func(S) D) []D {
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func toPageResponse[S, D any](p ports.Page[S], fn func(S) D) pageResponse[D] {
	return pageResponse[D]{
		Items:      mapSlice(p.Items, fn),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		HasPassword: u.HasPassword(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toDestinationResponse(d *domain.Destination) destinationResponse {
	return destinationResponse{
		ID:          d.ID,
		Slug:        d.Slug,
		Name:        d.Name,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDestinationSummaryResponse(s ports.DestinationSummary) destinationSummaryResponse {
	return destinationSummaryResponse{
		destinationResponse: toDestinationResponse(s.Destination),
		TourCount:           s.TourCount,
		OrderCount:          s.OrderCount,
	}
}

func toTourResponse(t *domain.Tour) tourResponse {
	return tourResponse{
		ID:             t.ID,
		Slug:           t.Slug,
		DestinationID:  t.DestinationID,
		Name:           t.Name,
		Description:    t.Description,
		ImageURL:       t.ImageURL,
		Price:          t.Price,
		Currency:       t.Currency,
		DurationDays:   t.DurationDays,
		AvailableSeats: t.AvailableSeats,
		NextTourDate:   t.NextTourDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toTourSummaryResponse(s ports.TourSummary) tourSummaryResponse {
	return tourSummaryResponse{tourResponse: toTourResponse(s.Tour), OrderCount: s.OrderCount}
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		TourID:     o.TourID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Currency:   o.Currency,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:         r.ID,
		TourID:     r.TourID,
		UserID:     r.UserID,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
	}
}

func toTicketResponse(t *domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:      t.ID,
		UserID:  t.UserID,
		Subject: t.Subject,
		Message: t.Message,
		Status:  string(t.Status),
		Responses: mapSlice(t.Responses, func(r domain.TicketResponse) ticketMessageResponse {
			return ticketMessageResponse{
				ID:          r.ID,
				UserID:      r.UserID,
				Message:     r.Message,
				IsFromStaff: r.IsFromStaff,
				CreatedAt:   r.CreatedAt,
			}
		}),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toFavoriteResponse(f *domain.Favorite) favoriteResponse {
	return favoriteResponse{ID: f.ID, TourID: f.TourID, CreatedAt: f.CreatedAt}
}

func toStatsResponse(s *ports.Stats) statsResponse {
	byStatus := make(map[string]int64, len(s.OrdersByStatus))
	for status, n := range s.OrdersByStatus {
		byStatus[string(status)] = n
	}
	return statsResponse{
		Users:           s.Users,
		Destinations:    s.Destinations,
		Tours:           s.Tours,
		OrdersByStatus:  byStatus,
		Revenue:         s.Revenue,
		PendingReviews:  s.PendingReviews,
		OpenTickets:     s.OpenTickets,
		TopTours:        mapSlice(s.TopTours, toTourSummaryResponse),
		TopDestinations: mapSlice(s.TopDestinations, toDestinationSummaryResponse),
	}
}
