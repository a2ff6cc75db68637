package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

func newTicketFixture() (*TicketService, *stubTicketRepo) {
	tickets := &stubTicketRepo{items: []*domain.Ticket{
		{ID: "k1", UserID: "u1", Subject: "Refund", Status: domain.TicketOpen},
		{ID: "k2", UserID: "u1", Subject: "Visa", Status: domain.TicketResolved},
		{ID: "k3", UserID: "u1", Subject: "Dates", Status: domain.TicketClosed},
	}}
	return NewTicketService(tickets, testValidator, discardLogger), tickets
}

func TestTicketCreate(t *testing.T) {
	svc, tickets := newTicketFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, userSession("u2"), ports.CreateTicketInput{Subject: "Hi", Message: "short"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	k, err := svc.Create(ctx, userSession("u2"), ports.CreateTicketInput{Subject: "Booking", Message: "Please move my booking"})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketOpen, k.Status)
	assert.Empty(t, k.Responses)
	assert.Len(t, tickets.items, 4)
}

func TestTicketRespond_StaffPromotesOpen(t *testing.T) {
	svc, _ := newTicketFixture()

	k, err := svc.Respond(context.Background(), managerSession("m1"), "k1", ports.TicketResponseInput{Message: "Looking into it"})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketInProgress, k.Status)
	require.Len(t, k.Responses, 1)
	assert.True(t, k.Responses[0].IsFromStaff)
	assert.Equal(t, "m1", k.Responses[0].UserID)
}

func TestTicketRespond_OwnerReply(t *testing.T) {
	svc, _ := newTicketFixture()

	k, err := svc.Respond(context.Background(), userSession("u1"), "k1", ports.TicketResponseInput{Message: "Any news?"})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketOpen, k.Status)
	require.Len(t, k.Responses, 1)
	assert.False(t, k.Responses[0].IsFromStaff)
}

func TestTicketRespond_NonOwnerForbiddenRegardlessOfInput(t *testing.T) {
	svc, tickets := newTicketFixture()

	_, err := svc.Respond(context.Background(), userSession("u2"), "k1", ports.TicketResponseInput{})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, tickets.items[0].Responses)
}

func TestTicketRespond_ClosedOrResolvedRejected(t *testing.T) {
	for _, id := range []string{"k2", "k3"} {
		t.Run(id, func(t *testing.T) {
			svc, tickets := newTicketFixture()
			for _, tc := range []struct {
				name string
				fn   func() error
			}{
				{"staff", func() error {
					_, err := svc.Respond(context.Background(), adminSession("a1"), id, ports.TicketResponseInput{Message: "Reopening"})
					return err
				}},
				{"owner", func() error {
					_, err := svc.Respond(context.Background(), userSession("u1"), id, ports.TicketResponseInput{Message: "Hello?"})
					return err
				}},
			} {
				assert.ErrorIs(t, tc.fn(), domain.ErrInvalidOperation, tc.name)
			}
			k := tickets.find(id)
			assert.Empty(t, k.Responses)
		})
	}
}

func TestTicketRespond_ClosedBetweenReadAndWrite(t *testing.T) {
	tickets := &racingTicketRepo{stubTicketRepo: stubTicketRepo{items: []*domain.Ticket{
		{ID: "k1", UserID: "u1", Status: domain.TicketOpen},
	}}}
	svc := NewTicketService(tickets, testValidator, discardLogger)

	_, err := svc.Respond(context.Background(), managerSession("m1"), "k1", ports.TicketResponseInput{Message: "Late answer"})
	require.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Empty(t, tickets.items[0].Responses)
}

// racingTicketRepo closes the ticket right after it is read.
type racingTicketRepo struct {
	stubTicketRepo
}

func (r *racingTicketRepo) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := r.stubTicketRepo.FindByID(ctx, id)
	if err == nil {
		r.find(id).Status = domain.TicketClosed
	}
	return t, err
}

func TestTicketVisibility(t *testing.T) {
	svc, _ := newTicketFixture()
	ctx := context.Background()

	_, err := svc.Get(ctx, userSession("u2"), "k1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	k, err := svc.Get(ctx, managerSession("m1"), "k1")
	require.NoError(t, err)
	assert.Equal(t, "k1", k.ID)

	own, err := svc.ListOwn(ctx, userSession("u2"), ports.ListTicketsInput{})
	require.NoError(t, err)
	assert.Empty(t, own.Items)

	_, err = svc.ListAll(ctx, userSession("u1"), ports.ListTicketsInput{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	all, err := svc.ListAll(ctx, managerSession("m1"), ports.ListTicketsInput{Status: "OPEN"})
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)
}

func TestTicketUpdateStatus(t *testing.T) {
	svc, _ := newTicketFixture()
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, userSession("u1"), "k1", ports.UpdateTicketStatusInput{Status: "CLOSED"})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.UpdateStatus(ctx, managerSession("m1"), "k1", ports.UpdateTicketStatusInput{Status: "DONE"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	k, err := svc.UpdateStatus(ctx, managerSession("m1"), "k1", ports.UpdateTicketStatusInput{Status: "RESOLVED"})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketResolved, k.Status)
}
