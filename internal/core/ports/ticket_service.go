package ports

import (
	"context"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

type CreateTicketInput struct {
	Subject string `json:"subject" validate:"required,min=3,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

type TicketResponseInput struct {
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

type UpdateTicketStatusInput struct {
	Status string `json:"status" validate:"required,ticket_status"`
}

type ListTicketsInput struct {
	Status string `query:"status" validate:"omitempty,ticket_status"`
	PageQuery
}

type TicketService interface {
	Create(ctx context.Context, s *access.Session, in CreateTicketInput) (*domain.Ticket, error)
	Get(ctx context.Context, s *access.Session, id string) (*domain.Ticket, error)
	ListOwn(ctx context.Context, s *access.Session, in ListTicketsInput) (Page[*domain.Ticket], error)
	ListAll(ctx context.Context, s *access.Session, in ListTicketsInput) (Page[*domain.Ticket], error)
	Respond(ctx context.Context, s *access.Session, id string, in TicketResponseInput) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, s *access.Session, id string, in UpdateTicketStatusInput) (*domain.Ticket, error)
}
