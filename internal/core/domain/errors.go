package domain

import "errors"

// Error kinds. Every error returned by the core wraps exactly one of these.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("access forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Error carries a user-facing message on top of an error kind.
// Details, when set, is rendered next to the message in the HTTP envelope.
type Error struct {
	Kind    error
	Msg     string
	Details map[string]any
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds an Error of the given kind.
func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details map[string]any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

var (
	ErrInvalidCredentials = NewError(ErrUnauthenticated, "invalid credentials")
	ErrSessionRevoked     = NewError(ErrUnauthenticated, "session expired")

	ErrUserNotFound        = NewError(ErrNotFound, "user not found")
	ErrDestinationNotFound = NewError(ErrNotFound, "destination not found")
	ErrTourNotFound        = NewError(ErrNotFound, "tour not found")
	ErrOrderNotFound       = NewError(ErrNotFound, "order not found")
	ErrReviewNotFound      = NewError(ErrNotFound, "review not found")
	ErrTicketNotFound      = NewError(ErrNotFound, "ticket not found")
	ErrFavoriteNotFound    = NewError(ErrNotFound, "favorite not found")

	ErrEmailTaken     = NewError(ErrConflict, "email already registered")
	ErrSlugTaken      = NewError(ErrConflict, "slug already in use")
	ErrReviewExists   = NewError(ErrConflict, "you have already reviewed this tour")
	ErrFavoriteExists = NewError(ErrConflict, "tour is already in favorites")

	ErrSelfDelete          = NewError(ErrInvalidOperation, "you cannot delete your own account")
	ErrTicketClosed        = NewError(ErrInvalidOperation, "ticket is closed")
	ErrNotEnoughSeats      = NewError(ErrInvalidOperation, "not enough seats available")
	ErrDestinationHasTours = NewError(ErrInvalidOperation, "destination still has tours")
	ErrPasswordRequired    = NewError(ErrInvalidOperation, "current password is required")
	ErrWrongPassword       = NewError(ErrInvalidOperation, "current password is incorrect")
)
