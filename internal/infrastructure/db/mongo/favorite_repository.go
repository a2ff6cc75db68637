package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

type FavoriteRepository struct {
	col *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{col: db.Collection(collectionFavorites)}
}

// Create relies on the unique (user_id, tour_id) index.
func (r *FavoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	return insert(ctx, r.col, f, domain.ErrFavoriteExists)
}

func (r *FavoriteRepository) FindByID(ctx context.Context, id string) (*domain.Favorite, error) {
	var f domain.Favorite
	if err := findOne(ctx, r.col, bson.M{"_id": id}, &f, domain.ErrFavoriteNotFound); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return findAll[domain.Favorite](ctx, r.col, bson.M{"user_id": userID}, options.Find().SetSort(newestFirst))
}

func (r *FavoriteRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrFavoriteNotFound)
}

func (r *FavoriteRepository) DeleteByTours(ctx context.Context, tourIDs []string) (int64, error) {
	if len(tourIDs) == 0 {
		return 0, nil
	}
	return deleteMany(ctx, r.col, bson.M{"tour_id": bson.M{"$in": tourIDs}})
}
