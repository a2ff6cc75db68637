package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return insert(ctx, r.col, u, domain.ErrEmailTaken)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := findOne(ctx, r.col, bson.M{"_id": id}, &u, domain.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := findOne(ctx, r.col, bson.M{"email": email}, &u, domain.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, f ports.UserFilter) ([]*domain.User, int64, error) {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = string(f.Role)
	}
	if f.Search != "" {
		re := containsFold(f.Search)
		filter["$or"] = bson.A{bson.M{"email": re}, bson.M{"name": re}}
	}
	return findPage[domain.User](ctx, r.col, filter, newestFirst, f.PageQuery)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, ch ports.ProfileChanges) (*domain.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if ch.Name != nil {
		set["name"] = *ch.Name
	}
	if ch.Email != nil {
		set["email"] = *ch.Email
	}
	if ch.PasswordHash != nil {
		set["password_hash"] = *ch.PasswordHash
	}

	var u domain.User
	err := updateOne(ctx, r.col, bson.M{"_id": id}, bson.M{"$set": set}, &u, domain.ErrUserNotFound)
	if err != nil {
		if ch.Email != nil && isConflict(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	update := bson.M{"$set": bson.M{"role": string(role), "updated_at": time.Now().UTC()}}
	var u domain.User
	if err := updateOne(ctx, r.col, bson.M{"_id": id}, update, &u, domain.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrUserNotFound)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
