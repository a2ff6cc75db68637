package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

type DestinationRepository struct {
	col *mongo.Collection
}

func NewDestinationRepository(db *mongo.Database) *DestinationRepository {
	return &DestinationRepository{col: db.Collection(collectionDestinations)}
}

func (r *DestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	return insert(ctx, r.col, d, domain.ErrSlugTaken)
}

func (r *DestinationRepository) FindByID(ctx context.Context, id string) (*domain.Destination, error) {
	var d domain.Destination
	if err := findOne(ctx, r.col, bson.M{"_id": id}, &d, domain.ErrDestinationNotFound); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DestinationRepository) FindBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	var d domain.Destination
	if err := findOne(ctx, r.col, bson.M{"slug": slug}, &d, domain.ErrDestinationNotFound); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns every destination ordered by name.
func (r *DestinationRepository) List(ctx context.Context) ([]*domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	return findAll[domain.Destination](ctx, r.col, bson.M{}, opts)
}

func (r *DestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("update destination: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDestinationNotFound
	}
	return nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrDestinationNotFound)
}

func (r *DestinationRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count destinations: %w", err)
	}
	return n, nil
}
