package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type TicketService struct {
	tickets  ports.TicketRepository
	validate ports.InputValidator
	log      zerolog.Logger
}

func NewTicketService(tickets ports.TicketRepository, validate ports.InputValidator, log zerolog.Logger) *TicketService {
	return &TicketService{tickets: tickets, validate: validate, log: log}
}

func (s *TicketService) Create(ctx context.Context, sess *access.Session, in ports.CreateTicketInput) (*domain.Ticket, error) {
	if err := access.Check(sess, access.ActionTicketCreate); err != nil {
		return nil, err
	}
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ticket := &domain.Ticket{
		ID:        uuid.NewString(),
		UserID:    sess.UserID,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    domain.TicketOpen,
		Responses: []domain.TicketResponse{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.log.Info().Str("ticket_id", ticket.ID).Str("user_id", sess.UserID).Msg("ticket opened")
	return ticket, nil
}

func (s *TicketService) Get(ctx context.Context, sess *access.Session, id string) (*domain.Ticket, error) {
	if err := access.Check(sess, access.ActionTicketRead); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(sess, access.ActionTicketRead, access.Resource{OwnerID: ticket.UserID}); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) ListOwn(ctx context.Context, sess *access.Session, in ports.ListTicketsInput) (ports.Page[*domain.Ticket], error) {
	if err := access.Authorize(sess, access.ActionTicketListOwn, access.Resource{OwnerID: sessionUserID(sess)}); err != nil {
		return ports.Page[*domain.Ticket]{}, err
	}
	return s.list(ctx, sess.UserID, in)
}

func (s *TicketService) ListAll(ctx context.Context, sess *access.Session, in ports.ListTicketsInput) (ports.Page[*domain.Ticket], error) {
	if err := access.Check(sess, access.ActionTicketListAll); err != nil {
		return ports.Page[*domain.Ticket]{}, err
	}
	return s.list(ctx, "", in)
}

func (s *TicketService) list(ctx context.Context, userID string, in ports.ListTicketsInput) (ports.Page[*domain.Ticket], error) {
	if err := s.validate.Struct(in); err != nil {
		return ports.Page[*domain.Ticket]{}, err
	}
	q := in.PageQuery.Normalize()
	tickets, total, err := s.tickets.List(ctx, ports.TicketFilter{
		UserID:    userID,
		Status:    domain.TicketStatus(in.Status),
		PageQuery: q,
	})
	if err != nil {
		return ports.Page[*domain.Ticket]{}, err
	}
	return ports.NewPage(tickets, total, q), nil
}

// Respond appends a message to the thread. Staff answer as staff and move an
// OPEN ticket to IN_PROGRESS; owners answer as themselves. Closed or
// resolved tickets take no responses.
func (s *TicketService) Respond(ctx context.Context, sess *access.Session, id string, in ports.TicketResponseInput) (*domain.Ticket, error) {
	action := access.ActionTicketReply
	if sess.IsStaff() {
		action = access.ActionTicketRespondStaff
	}
	if err := access.Check(sess, action); err != nil {
		return nil, err
	}

	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(sess, action, access.Resource{OwnerID: ticket.UserID}); err != nil {
		return nil, err
	}

	in.Message = strings.TrimSpace(in.Message)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if !ticket.Status.AcceptsResponses() {
		return nil, domain.ErrTicketClosed
	}

	fromStaff := action == access.ActionTicketRespondStaff
	resp := domain.TicketResponse{
		ID:          uuid.NewString(),
		UserID:      sess.UserID,
		Message:     in.Message,
		IsFromStaff: fromStaff,
		CreatedAt:   time.Now().UTC(),
	}
	updated, err := s.tickets.AppendResponse(ctx, id, resp, fromStaff)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("ticket_id", id).Bool("staff", fromStaff).Str("status", string(updated.Status)).Msg("ticket response added")
	return updated, nil
}

func (s *TicketService) UpdateStatus(ctx context.Context, sess *access.Session, id string, in ports.UpdateTicketStatusInput) (*domain.Ticket, error) {
	if err := access.Check(sess, access.ActionTicketUpdateStatus); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.UpdateStatus(ctx, id, domain.TicketStatus(in.Status))
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("ticket_id", id).Str("status", in.Status).Str("by", sess.UserID).Msg("ticket status changed")
	return ticket, nil
}
