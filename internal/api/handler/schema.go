package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// Response-only types owned by the transport layer.
// These are separate from ports/domain types so the JSON contract is not
// coupled to internal changes.

type pageResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type destinationResponse struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type destinationSummaryResponse struct {
	destinationResponse
	TourCount  int   `json:"tourCount"`
	OrderCount int64 `json:"orderCount"`
}

type destinationDetailResponse struct {
	destinationResponse
	Tours []tourResponse `json:"tours"`
}

type tourResponse struct {
	ID             string          `json:"id"`
	Slug           string          `json:"slug"`
	DestinationID  string          `json:"destinationId"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
	DurationDays   int             `json:"durationDays"`
	AvailableSeats int             `json:"availableSeats"`
	NextTourDate   *time.Time      `json:"nextTourDate,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type tourSummaryResponse struct {
	tourResponse
	OrderCount int64 `json:"orderCount"`
}

type ratingResponse struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type tourDetailResponse struct {
	tourResponse
	Destination destinationResponse `json:"destination"`
	Rating      ratingResponse      `json:"rating"`
}

type orderResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	TourID     string          `json:"tourId"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type reviewResponse struct {
	ID         string    `json:"id"`
	TourID     string    `json:"tourId"`
	UserID     string    `json:"userId"`
	AuthorName string    `json:"authorName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ticketMessageResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Message     string    `json:"message"`
	IsFromStaff bool      `json:"isFromStaff"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ticketResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Subject   string                  `json:"subject"`
	Message   string                  `json:"message"`
	Status    string                  `json:"status"`
	Responses []ticketMessageResponse `json:"responses"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

type favoriteResponse struct {
	ID        string    `json:"id"`
	TourID    string    `json:"tourId"`
	CreatedAt time.Time `json:"createdAt"`
}

type statsResponse struct {
	Users           int64                        `json:"users"`
	Destinations    int64                        `json:"destinations"`
	Tours           int64                        `json:"tours"`
	OrdersByStatus  map[string]int64             `json:"ordersByStatus"`
	Revenue         decimal.Decimal              `json:"revenue"`
	PendingReviews  int64                        `json:"pendingReviews"`
	OpenTickets     int64                        `json:"openTickets"`
	TopTours        []tourSummaryResponse        `json:"topTours"`
	TopDestinations []destinationSummaryResponse `json:"topDestinations"`
}
