package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

type DestinationInput struct {
	Slug        string `json:"slug"        validate:"required,slug,max=100"`
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"required,min=10,max=5000"`
	ImageURL    string `json:"imageUrl"    validate:"omitempty,url,max=500"`
}

type TourInput struct {
	Slug           string          `json:"slug"           validate:"required,slug,max=100"`
	DestinationID  string          `json:"destinationId"  validate:"required"`
	Name           string          `json:"name"           validate:"required,min=2,max=150"`
	Description    string          `json:"description"    validate:"required,min=10,max=5000"`
	ImageURL       string          `json:"imageUrl"       validate:"omitempty,url,max=500"`
	Price          decimal.Decimal `json:"price"          validate:"gt=0"`
	Currency       string          `json:"currency"       validate:"required,len=3"`
	DurationDays   int             `json:"durationDays"   validate:"gte=1,lte=365"`
	AvailableSeats int             `json:"availableSeats" validate:"gte=0,lte=10000"`
	NextTourDate   *time.Time      `json:"nextTourDate"`
}

type ListToursInput struct {
	Destination string `query:"destination" validate:"omitempty,slug"`
	Search      string `query:"search"      validate:"omitempty,max=100"`
	Popular     bool   `query:"popular"`
	PageQuery
}

type ListDestinationsInput struct {
	Popular bool `query:"popular"`
	Limit   int  `query:"limit" validate:"omitempty,gte=1,lte=100"`
}

// DestinationSummary is a destination with its demand figures.
type DestinationSummary struct {
	Destination *domain.Destination
	TourCount   int
	OrderCount  int64
}

// DestinationDetail is a destination together with its tours.
type DestinationDetail struct {
	Destination *domain.Destination
	Tours       []*domain.Tour
}

// TourSummary is a tour with its demand figure.
type TourSummary struct {
	Tour       *domain.Tour
	OrderCount int64
}

// TourDetail is a tour with its destination and rating.
type TourDetail struct {
	Tour        *domain.Tour
	Destination *domain.Destination
	Rating      domain.RatingSummary
}

type DestinationService interface {
	List(ctx context.Context, in ListDestinationsInput) ([]DestinationSummary, error)
	Get(ctx context.Context, slug string) (*DestinationDetail, error)
	Create(ctx context.Context, s *access.Session, in DestinationInput) (*domain.Destination, error)
	Update(ctx context.Context, s *access.Session, id string, in DestinationInput) (*domain.Destination, error)
	// Delete refuses while tours exist; the error carries tourCount.
	Delete(ctx context.Context, s *access.Session, id string) error
	// DeleteCascade removes the destination, its tours and their reviews and favorites.
	DeleteCascade(ctx context.Context, s *access.Session, id string) error
}

type TourService interface {
	List(ctx context.Context, in ListToursInput) (Page[TourSummary], error)
	Get(ctx context.Context, slug string) (*TourDetail, error)
	Create(ctx context.Context, s *access.Session, in TourInput) (*domain.Tour, error)
	Update(ctx context.Context, s *access.Session, id string, in TourInput) (*domain.Tour, error)
	Delete(ctx context.Context, s *access.Session, id string) error
}
