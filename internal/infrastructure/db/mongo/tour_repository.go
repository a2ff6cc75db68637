package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type TourRepository struct {
	col *mongo.Collection
}

func NewTourRepository(db *mongo.Database) *TourRepository {
	return &TourRepository{col: db.Collection(collectionTours)}
}

func (r *TourRepository) Create(ctx context.Context, t *domain.Tour) error {
	return insert(ctx, r.col, t, domain.ErrSlugTaken)
}

func (r *TourRepository) FindByID(ctx context.Context, id string) (*domain.Tour, error) {
	var t domain.Tour
	if err := findOne(ctx, r.col, bson.M{"_id": id}, &t, domain.ErrTourNotFound); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TourRepository) FindBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	var t domain.Tour
	if err := findOne(ctx, r.col, bson.M{"slug": slug}, &t, domain.ErrTourNotFound); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns tours ordered by creation time. The order is stable so
// popularity ties keep the same relative position between requests.
func (r *TourRepository) List(ctx context.Context, f ports.TourFilter) ([]*domain.Tour, int64, error) {
	filter := bson.M{}
	if f.DestinationID != "" {
		filter["destination_id"] = f.DestinationID
	}
	if f.Search != "" {
		re := containsFold(f.Search)
		filter["$or"] = bson.A{bson.M{"name": re}, bson.M{"description": re}}
	}
	return findPage[domain.Tour](ctx, r.col, filter, newestFirst, f.PageQuery)
}

func (r *TourRepository) Update(ctx context.Context, t *domain.Tour) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("update tour: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTourNotFound
	}
	return nil
}

func (r *TourRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrTourNotFound)
}

func (r *TourRepository) CountByDestination(ctx context.Context, destinationID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"destination_id": destinationID})
	if err != nil {
		return 0, fmt.Errorf("count tours: %w", err)
	}
	return n, nil
}

func (r *TourRepository) IDsByDestination(ctx context.Context, destinationID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, bson.M{"destination_id": destinationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tour ids: %w", err)
	}
	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode tour ids: %w", err)
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

func (r *TourRepository) DeleteByDestination(ctx context.Context, destinationID string) (int64, error) {
	return deleteMany(ctx, r.col, bson.M{"destination_id": destinationID})
}

func (r *TourRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count tours: %w", err)
	}
	return n, nil
}
