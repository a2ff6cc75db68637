package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is unique per (UserID, TourID). Public only once approved.
type Review struct {
	ID         string    `json:"id" bson:"_id"`
	TourID     string    `json:"tour_id" bson:"tour_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment" bson:"comment"`
	IsApproved bool      `json:"is_approved" bson:"is_approved"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// VisibleTo reports whether viewerID may see the review. An empty viewerID
// is an anonymous visitor.
func (r *Review) VisibleTo(viewerID string) bool {
	return r.IsApproved || (viewerID != "" && r.UserID == viewerID)
}

// RatingSummary aggregates approved reviews of one tour.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
