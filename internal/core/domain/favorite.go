package domain

import "time"

// Favorite links a user to a tour. The pair is unique.
type Favorite struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	TourID    string    `json:"tour_id" bson:"tour_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
