package domain

import "time"

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketClosed     TicketStatus = "CLOSED"
)

var TicketStatuses = []TicketStatus{TicketOpen, TicketInProgress, TicketResolved, TicketClosed}

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// AcceptsResponses reports whether responses may still be appended.
func (s TicketStatus) AcceptsResponses() bool {
	return s != TicketClosed && s != TicketResolved
}

// TicketResponse is one message in a ticket thread, ordered by CreatedAt.
type TicketResponse struct {
	ID          string    `json:"id" bson:"id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Message     string    `json:"message" bson:"message"`
	IsFromStaff bool      `json:"is_from_staff" bson:"is_from_staff"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Ticket is a support request owned by UserID.
type Ticket struct {
	ID        string           `json:"id" bson:"_id"`
	UserID    string           `json:"user_id" bson:"user_id"`
	Subject   string           `json:"subject" bson:"subject"`
	Message   string           `json:"message" bson:"message"`
	Status    TicketStatus     `json:"status" bson:"status"`
	Responses []TicketResponse `json:"responses" bson:"responses"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}
