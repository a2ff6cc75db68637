package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/validation"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. Each counts calls so tests can assert that a
// rejected request never reached the store.
// ---------------------------------------------------------------------------

var (
	discardLogger = zerolog.Nop()
	testValidator = validation.New()
)

func page[T any](items []T, q ports.PageQuery) []T {
	if q.Limit <= 0 {
		return items
	}
	start := int(q.Skip())
	if start > len(items) {
		return nil
	}
	return items[start:min(start+q.Limit, len(items))]
}

type stubUserRepo struct {
	byID  map[string]*domain.User
	order []string
	calls int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		r.byID[u.ID] = u
		r.order = append(r.order, u.ID)
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.calls++
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	clone := *u
	r.byID[u.ID] = &clone
	r.order = append(r.order, u.ID)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.calls++
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.calls++
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, int64, error) {
	r.calls++
	var out []*domain.User
	for _, id := range r.order {
		u, ok := r.byID[id]
		if !ok {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" && !strings.Contains(u.Email+u.Name, f.Search) {
			continue
		}
		out = append(out, u)
	}
	return page(out, f.PageQuery), int64(len(out)), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, ch ports.ProfileChanges) (*domain.User, error) {
	r.calls++
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if ch.Name != nil {
		u.Name = *ch.Name
	}
	if ch.Email != nil {
		u.Email = *ch.Email
	}
	if ch.PasswordHash != nil {
		u.PasswordHash = *ch.PasswordHash
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.calls++
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.calls++
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) {
	r.calls++
	return int64(len(r.byID)), nil
}

type stubDestinationRepo struct {
	items   []*domain.Destination
	calls   int
	slugErr error
}

func (r *stubDestinationRepo) Create(_ context.Context, d *domain.Destination) error {
	r.calls++
	for _, e := range r.items {
		if e.Slug == d.Slug {
			return domain.ErrSlugTaken
		}
	}
	clone := *d
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubDestinationRepo) FindByID(_ context.Context, id string) (*domain.Destination, error) {
	r.calls++
	for _, d := range r.items {
		if d.ID == id {
			clone := *d
			return &clone, nil
		}
	}
	return nil, domain.ErrDestinationNotFound
}

func (r *stubDestinationRepo) FindBySlug(_ context.Context, slug string) (*domain.Destination, error) {
	r.calls++
	if r.slugErr != nil {
		return nil, r.slugErr
	}
	for _, d := range r.items {
		if d.Slug == slug {
			clone := *d
			return &clone, nil
		}
	}
	return nil, domain.ErrDestinationNotFound
}

func (r *stubDestinationRepo) List(context.Context) ([]*domain.Destination, error) {
	r.calls++
	return slices.Clone(r.items), nil
}

func (r *stubDestinationRepo) Update(_ context.Context, d *domain.Destination) error {
	r.calls++
	for i, e := range r.items {
		if e.ID == d.ID {
			clone := *d
			r.items[i] = &clone
			return nil
		}
	}
	return domain.ErrDestinationNotFound
}

func (r *stubDestinationRepo) Delete(_ context.Context, id string) error {
	r.calls++
	for i, d := range r.items {
		if d.ID == id {
			r.items = slices.Delete(r.items, i, i+1)
			return nil
		}
	}
	return domain.ErrDestinationNotFound
}

func (r *stubDestinationRepo) Count(context.Context) (int64, error) {
	r.calls++
	return int64(len(r.items)), nil
}

type stubTourRepo struct {
	items   []*domain.Tour
	calls   int
	slugErr error
}

func (r *stubTourRepo) Create(_ context.Context, t *domain.Tour) error {
	r.calls++
	clone := *t
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubTourRepo) FindByID(_ context.Context, id string) (*domain.Tour, error) {
	r.calls++
	for _, t := range r.items {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTourNotFound
}

func (r *stubTourRepo) FindBySlug(_ context.Context, slug string) (*domain.Tour, error) {
	r.calls++
	if r.slugErr != nil {
		return nil, r.slugErr
	}
	for _, t := range r.items {
		if t.Slug == slug {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTourNotFound
}

func (r *stubTourRepo) List(_ context.Context, f ports.TourFilter) ([]*domain.Tour, int64, error) {
	r.calls++
	var out []*domain.Tour
	for _, t := range r.items {
		if f.DestinationID != "" && t.DestinationID != f.DestinationID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, t)
	}
	return page(out, f.PageQuery), int64(len(out)), nil
}

func (r *stubTourRepo) Update(_ context.Context, t *domain.Tour) error {
	r.calls++
	for i, e := range r.items {
		if e.ID == t.ID {
			clone := *t
			r.items[i] = &clone
			return nil
		}
	}
	return domain.ErrTourNotFound
}

func (r *stubTourRepo) Delete(_ context.Context, id string) error {
	r.calls++
	for i, t := range r.items {
		if t.ID == id {
			r.items = slices.Delete(r.items, i, i+1)
			return nil
		}
	}
	return domain.ErrTourNotFound
}

func (r *stubTourRepo) CountByDestination(_ context.Context, destinationID string) (int64, error) {
	r.calls++
	var n int64
	for _, t := range r.items {
		if t.DestinationID == destinationID {
			n++
		}
	}
	return n, nil
}

func (r *stubTourRepo) IDsByDestination(_ context.Context, destinationID string) ([]string, error) {
	r.calls++
	var ids []string
	for _, t := range r.items {
		if t.DestinationID == destinationID {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

func (r *stubTourRepo) DeleteByDestination(_ context.Context, destinationID string) (int64, error) {
	r.calls++
	before := len(r.items)
	r.items = slices.DeleteFunc(r.items, func(t *domain.Tour) bool { return t.DestinationID == destinationID })
	return int64(before - len(r.items)), nil
}

func (r *stubTourRepo) Count(context.Context) (int64, error) {
	r.calls++
	return int64(len(r.items)), nil
}

type stubOrderRepo struct {
	items []*domain.Order
	calls int
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.calls++
	clone := *o
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.calls++
	for _, o := range r.items {
		if o.ID == id {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) List(_ context.Context, f ports.OrderFilter) ([]*domain.Order, int64, error) {
	r.calls++
	var out []*domain.Order
	for _, o := range r.items {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	return page(out, f.PageQuery), int64(len(out)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	r.calls++
	for _, o := range r.items {
		if o.ID == id {
			o.Status = status
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) CountByTour(_ context.Context, status domain.OrderStatus) (map[string]int64, error) {
	r.calls++
	out := make(map[string]int64)
	for _, o := range r.items {
		if o.Status == status {
			out[o.TourID]++
		}
	}
	return out, nil
}

func (r *stubOrderRepo) CountByStatus(context.Context) (map[domain.OrderStatus]int64, error) {
	r.calls++
	out := make(map[domain.OrderStatus]int64)
	for _, o := range r.items {
		out[o.Status]++
	}
	return out, nil
}

func (r *stubOrderRepo) Revenue(_ context.Context, status domain.OrderStatus) (decimal.Decimal, error) {
	r.calls++
	sum := decimal.Zero
	for _, o := range r.items {
		if o.Status == status {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum, nil
}

type stubReviewRepo struct {
	items []*domain.Review
	calls int
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) error {
	r.calls++
	for _, e := range r.items {
		if e.UserID == rv.UserID && e.TourID == rv.TourID {
			return domain.ErrReviewExists
		}
	}
	clone := *rv
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	r.calls++
	for _, rv := range r.items {
		if rv.ID == id {
			clone := *rv
			return &clone, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) FindByUserAndTour(_ context.Context, userID, tourID string) (*domain.Review, error) {
	r.calls++
	for _, rv := range r.items {
		if rv.UserID == userID && rv.TourID == tourID {
			clone := *rv
			return &clone, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) ListVisible(_ context.Context, tourID, viewerID string) ([]*domain.Review, error) {
	r.calls++
	var out []*domain.Review
	for _, rv := range r.items {
		if rv.TourID == tourID && rv.VisibleTo(viewerID) {
			clone := *rv
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) List(_ context.Context, f ports.ReviewFilter) ([]*domain.Review, int64, error) {
	r.calls++
	var out []*domain.Review
	for _, rv := range r.items {
		if f.Approved != nil && rv.IsApproved != *f.Approved {
			continue
		}
		if f.UserID != "" && rv.UserID != f.UserID {
			continue
		}
		out = append(out, rv)
	}
	return page(out, f.PageQuery), int64(len(out)), nil
}

func (r *stubReviewRepo) SetApproved(_ context.Context, id string, approved bool) (*domain.Review, error) {
	r.calls++
	for _, rv := range r.items {
		if rv.ID == id {
			rv.IsApproved = approved
			clone := *rv
			return &clone, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) Delete(_ context.Context, id string) error {
	r.calls++
	for i, rv := range r.items {
		if rv.ID == id {
			r.items = slices.Delete(r.items, i, i+1)
			return nil
		}
	}
	return domain.ErrReviewNotFound
}

func (r *stubReviewRepo) DeleteByTours(_ context.Context, tourIDs []string) (int64, error) {
	r.calls++
	before := len(r.items)
	r.items = slices.DeleteFunc(r.items, func(rv *domain.Review) bool { return slices.Contains(tourIDs, rv.TourID) })
	return int64(before - len(r.items)), nil
}

func (r *stubReviewRepo) RatingSummary(_ context.Context, tourID string) (domain.RatingSummary, error) {
	r.calls++
	var sum, n int
	for _, rv := range r.items {
		if rv.TourID == tourID && rv.IsApproved {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return domain.RatingSummary{}, nil
	}
	return domain.RatingSummary{Average: float64(sum) / float64(n), Count: int64(n)}, nil
}

func (r *stubReviewRepo) CountPending(context.Context) (int64, error) {
	r.calls++
	var n int64
	for _, rv := range r.items {
		if !rv.IsApproved {
			n++
		}
	}
	return n, nil
}

type stubTicketRepo struct {
	items []*domain.Ticket
	calls int
}

func (r *stubTicketRepo) Create(_ context.Context, t *domain.Ticket) error {
	r.calls++
	clone := *t
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubTicketRepo) find(id string) *domain.Ticket {
	for _, t := range r.items {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (r *stubTicketRepo) FindByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.calls++
	t := r.find(id)
	if t == nil {
		return nil, domain.ErrTicketNotFound
	}
	clone := *t
	clone.Responses = slices.Clone(t.Responses)
	return &clone, nil
}

func (r *stubTicketRepo) List(_ context.Context, f ports.TicketFilter) ([]*domain.Ticket, int64, error) {
	r.calls++
	var out []*domain.Ticket
	for _, t := range r.items {
		if f.UserID != "" && t.UserID != f.UserID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}
	return page(out, f.PageQuery), int64(len(out)), nil
}

func (r *stubTicketRepo) AppendResponse(_ context.Context, id string, resp domain.TicketResponse, promote bool) (*domain.Ticket, error) {
	r.calls++
	t := r.find(id)
	if t == nil {
		return nil, domain.ErrTicketNotFound
	}
	if !t.Status.AcceptsResponses() {
		return nil, domain.ErrTicketClosed
	}
	t.Responses = append(t.Responses, resp)
	if promote && t.Status == domain.TicketOpen {
		t.Status = domain.TicketInProgress
	}
	clone := *t
	return &clone, nil
}

func (r *stubTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	r.calls++
	t := r.find(id)
	if t == nil {
		return nil, domain.ErrTicketNotFound
	}
	t.Status = status
	clone := *t
	return &clone, nil
}

func (r *stubTicketRepo) CountByStatus(_ context.Context, status domain.TicketStatus) (int64, error) {
	r.calls++
	var n int64
	for _, t := range r.items {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

type stubFavoriteRepo struct {
	items []*domain.Favorite
	calls int
}

func (r *stubFavoriteRepo) Create(_ context.Context, f *domain.Favorite) error {
	r.calls++
	for _, e := range r.items {
		if e.UserID == f.UserID && e.TourID == f.TourID {
			return domain.NewError(domain.ErrConflict, "duplicate key")
		}
	}
	clone := *f
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubFavoriteRepo) FindByID(_ context.Context, id string) (*domain.Favorite, error) {
	r.calls++
	for _, f := range r.items {
		if f.ID == id {
			clone := *f
			return &clone, nil
		}
	}
	return nil, domain.ErrFavoriteNotFound
}

func (r *stubFavoriteRepo) ListByUser(_ context.Context, userID string) ([]*domain.Favorite, error) {
	r.calls++
	var out []*domain.Favorite
	for _, f := range r.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *stubFavoriteRepo) Delete(_ context.Context, id string) error {
	r.calls++
	for i, f := range r.items {
		if f.ID == id {
			r.items = slices.Delete(r.items, i, i+1)
			return nil
		}
	}
	return domain.ErrFavoriteNotFound
}

func (r *stubFavoriteRepo) DeleteByTours(_ context.Context, tourIDs []string) (int64, error) {
	r.calls++
	before := len(r.items)
	r.items = slices.DeleteFunc(r.items, func(f *domain.Favorite) bool { return slices.Contains(tourIDs, f.TourID) })
	return int64(before - len(r.items)), nil
}

// ---------------------------------------------------------------------------
// Session store and demand cache stubs
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	sessions map[string]string // session id -> user id
	err      error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]string)}
}

func (s *stubSessionStore) Save(_ context.Context, sessionID, userID string, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.sessions[sessionID] = userID
	return nil
}

func (s *stubSessionStore) Active(_ context.Context, sessionID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.sessions[sessionID]
	return ok, nil
}

func (s *stubSessionStore) Revoke(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func (s *stubSessionStore) RevokeUser(_ context.Context, userID string) error {
	for id, uid := range s.sessions {
		if uid == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

type stubDemandCache struct {
	counts      map[string]int64
	gets        int
	invalidated int
}

func (c *stubDemandCache) Get(context.Context) (map[string]int64, bool, error) {
	c.gets++
	if c.counts == nil {
		return nil, false, nil
	}
	return c.counts, true, nil
}

func (c *stubDemandCache) Set(_ context.Context, counts map[string]int64) error {
	c.counts = counts
	return nil
}

func (c *stubDemandCache) Invalidate(context.Context) error {
	c.invalidated++
	c.counts = nil
	return nil
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

func userSession(id string) *access.Session {
	return &access.Session{UserID: id, Role: domain.RoleUser, Name: "User " + id}
}

func managerSession(id string) *access.Session {
	return &access.Session{UserID: id, Role: domain.RoleManager, Name: "Manager " + id}
}

func adminSession(id string) *access.Session {
	return &access.Session{UserID: id, Role: domain.RoleAdmin, Name: "Admin " + id}
}
