package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

// Repositories report domain.ErrNotFound-kind errors for missing records and
// domain.ErrConflict-kind errors when a unique index rejects a write.

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role   domain.Role
	Search string // partial match on email or name
	PageQuery
}

// ProfileChanges lists profile fields to overwrite; nil means unchanged.
type ProfileChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, f UserFilter) ([]*domain.User, int64, error)
	UpdateProfile(ctx context.Context, id string, ch ProfileChanges) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type DestinationRepository interface {
	Create(ctx context.Context, d *domain.Destination) error
	FindByID(ctx context.Context, id string) (*domain.Destination, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Destination, error)
	List(ctx context.Context) ([]*domain.Destination, error)
	Update(ctx context.Context, d *domain.Destination) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// TourFilter narrows the tour listing. Empty fields do not filter.
type TourFilter struct {
	DestinationID string
	Search        string
	PageQuery
}

type TourRepository interface {
	Create(ctx context.Context, t *domain.Tour) error
	FindByID(ctx context.Context, id string) (*domain.Tour, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Tour, error)
	// List returns a page of tours; a zero Limit returns every match.
	List(ctx context.Context, f TourFilter) ([]*domain.Tour, int64, error)
	Update(ctx context.Context, t *domain.Tour) error
	Delete(ctx context.Context, id string) error
	CountByDestination(ctx context.Context, destinationID string) (int64, error)
	IDsByDestination(ctx context.Context, destinationID string) ([]string, error)
	DeleteByDestination(ctx context.Context, destinationID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// OrderFilter narrows order listings. Empty fields do not filter.
type OrderFilter struct {
	UserID string
	Status domain.OrderStatus
	PageQuery
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	// CountByTour counts orders in the given status per tour id.
	CountByTour(ctx context.Context, status domain.OrderStatus) (map[string]int64, error)
	CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error)
	Revenue(ctx context.Context, status domain.OrderStatus) (decimal.Decimal, error)
}

// ReviewFilter narrows the moderation listing. Nil Approved lists all.
type ReviewFilter struct {
	Approved *bool
	UserID   string
	PageQuery
}

type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	FindByUserAndTour(ctx context.Context, userID, tourID string) (*domain.Review, error)
	// ListVisible returns approved reviews of a tour plus viewerID's own.
	ListVisible(ctx context.Context, tourID, viewerID string) ([]*domain.Review, error)
	List(ctx context.Context, f ReviewFilter) ([]*domain.Review, int64, error)
	SetApproved(ctx context.Context, id string, approved bool) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
	DeleteByTours(ctx context.Context, tourIDs []string) (int64, error)
	RatingSummary(ctx context.Context, tourID string) (domain.RatingSummary, error)
	CountPending(ctx context.Context) (int64, error)
}

// TicketFilter narrows ticket listings. Empty fields do not filter.
type TicketFilter struct {
	UserID string
	Status domain.TicketStatus
	PageQuery
}

type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, f TicketFilter) ([]*domain.Ticket, int64, error)
	// AppendResponse adds resp only while the ticket accepts responses. When
	// promote is true an OPEN ticket moves to IN_PROGRESS in the same write.
	// Returns domain.ErrTicketClosed if the ticket no longer accepts responses.
	AppendResponse(ctx context.Context, ticketID string, resp domain.TicketResponse, promote bool) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error)
	CountByStatus(ctx context.Context, status domain.TicketStatus) (int64, error)
}

type FavoriteRepository interface {
	Create(ctx context.Context, f *domain.Favorite) error
	FindByID(ctx context.Context, id string) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error)
	Delete(ctx context.Context, id string) error
	DeleteByTours(ctx context.Context, tourIDs []string) (int64, error)
}
