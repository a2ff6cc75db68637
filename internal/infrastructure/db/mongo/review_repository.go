package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

// Create relies on the unique (user_id, tour_id) index.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return insert(ctx, r.col, rv, domain.ErrReviewExists)
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	var rv domain.Review
	if err := findOne(ctx, r.col, bson.M{"_id": id}, &rv, domain.ErrReviewNotFound); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) FindByUserAndTour(ctx context.Context, userID, tourID string) (*domain.Review, error) {
	var rv domain.Review
	filter := bson.M{"user_id": userID, "tour_id": tourID}
	if err := findOne(ctx, r.col, filter, &rv, domain.ErrReviewNotFound); err != nil {
		return nil, err
	}
	return &rv, nil
}

// ListVisible returns approved reviews of a tour and, when viewerID is set,
// the viewer's own pending review.
func (r *ReviewRepository) ListVisible(ctx context.Context, tourID, viewerID string) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	visibility := bson.A{bson.M{"is_approved": true}}
	if viewerID != "" {
		visibility = append(visibility, bson.M{"user_id": viewerID})
	}
	filter := bson.M{"tour_id": tourID, "$or": visibility}
	return findAll[domain.Review](ctx, r.col, filter, options.Find().SetSort(newestFirst))
}

func (r *ReviewRepository) List(ctx context.Context, f ports.ReviewFilter) ([]*domain.Review, int64, error) {
	filter := bson.M{}
	if f.Approved != nil {
		filter["is_approved"] = *f.Approved
	}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	return findPage[domain.Review](ctx, r.col, filter, newestFirst, f.PageQuery)
}

func (r *ReviewRepository) SetApproved(ctx context.Context, id string, approved bool) (*domain.Review, error) {
	update := bson.M{"$set": bson.M{"is_approved": approved, "updated_at": time.Now().UTC()}}
	var rv domain.Review
	if err := updateOne(ctx, r.col, bson.M{"_id": id}, update, &rv, domain.ErrReviewNotFound); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrReviewNotFound)
}

func (r *ReviewRepository) DeleteByTours(ctx context.Context, tourIDs []string) (int64, error) {
	if len(tourIDs) == 0 {
		return 0, nil
	}
	return deleteMany(ctx, r.col, bson.M{"tour_id": bson.M{"$in": tourIDs}})
}

// RatingSummary averages approved ratings of a tour.
func (r *ReviewRepository) RatingSummary(ctx context.Context, tourID string) (domain.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tour_id": tourID, "is_approved": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}
	rows, err := aggregate[struct {
		Average float64 `bson:"average"`
		Count   int64   `bson:"count"`
	}](ctx, r.col, pipeline)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	if len(rows) == 0 {
		return domain.RatingSummary{}, nil
	}
	return domain.RatingSummary{Average: rows[0].Average, Count: rows[0].Count}, nil
}

func (r *ReviewRepository) CountPending(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"is_approved": false})
	if err != nil {
		return 0, fmt.Errorf("count pending reviews: %w", err)
	}
	return n, nil
}
