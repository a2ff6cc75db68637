package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type TicketRepository struct {
	col *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{col: db.Collection(collectionTickets)}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	if t.Responses == nil {
		t.Responses = []domain.TicketResponse{}
	}
	return insert(ctx, r.col, t, domain.NewError(domain.ErrConflict, "ticket already exists"))
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := findOne(ctx, r.col, bson.M{"_id": id}, &t, domain.ErrTicketNotFound); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) List(ctx context.Context, f ports.TicketFilter) ([]*domain.Ticket, int64, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	return findPage[domain.Ticket](ctx, r.col, filter, newestFirst, f.PageQuery)
}

// AppendResponse pushes resp onto the thread in one conditional update that
// only matches tickets still accepting responses. With promote set an OPEN
// ticket moves to IN_PROGRESS in the same write.
func (r *TicketRepository) AppendResponse(ctx context.Context, id string, resp domain.TicketResponse, promote bool) (*domain.Ticket, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": bson.A{string(domain.TicketOpen), string(domain.TicketInProgress)}},
	}

	// Pipeline form so the promotion can read the current status.
	status := any("$status")
	if promote {
		status = bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$status", string(domain.TicketOpen)}},
			string(domain.TicketInProgress),
			"$status",
		}}
	}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"responses": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$responses", bson.A{}}},
				bson.A{bson.M{"$literal": resp}},
			}},
			"status":     status,
			"updated_at": now,
		}}},
	}

	var t domain.Ticket
	err := updateOne(ctx, r.col, filter, update, &t, domain.ErrTicketNotFound)
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, domain.ErrTicketNotFound) {
		return nil, err
	}

	// Nothing matched: the ticket is gone or no longer takes responses.
	if _, ferr := r.FindByID(ctx, id); ferr != nil {
		return nil, ferr
	}
	return nil, domain.ErrTicketClosed
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}}
	var t domain.Ticket
	if err := updateOne(ctx, r.col, bson.M{"_id": id}, update, &t, domain.ErrTicketNotFound); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, status domain.TicketStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return n, nil
}
