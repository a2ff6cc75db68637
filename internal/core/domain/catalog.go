package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Destination is a place tours are offered in.
type Destination struct {
	ID          string    `json:"id" bson:"_id"`
	Slug        string    `json:"slug" bson:"slug"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	ImageURL    string    `json:"image_url" bson:"image_url"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Tour belongs to exactly one Destination.
type Tour struct {
	ID             string          `json:"id" bson:"_id"`
	Slug           string          `json:"slug" bson:"slug"`
	DestinationID  string          `json:"destination_id" bson:"destination_id"`
	Name           string          `json:"name" bson:"name"`
	Description    string          `json:"description" bson:"description"`
	ImageURL       string          `json:"image_url" bson:"image_url"`
	Price          decimal.Decimal `json:"price" bson:"price"`
	Currency       string          `json:"currency" bson:"currency"`
	DurationDays   int             `json:"duration_days" bson:"duration_days"`
	AvailableSeats int             `json:"available_seats" bson:"available_seats"`
	NextTourDate   *time.Time      `json:"next_tour_date,omitempty" bson:"next_tour_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" bson:"updated_at"`
}
