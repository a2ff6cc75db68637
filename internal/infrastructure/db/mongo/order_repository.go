package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return insert(ctx, r.col, o, domain.NewError(domain.ErrConflict, "order already exists"))
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := findOne(ctx, r.col, bson.M{"_id": id}, &o, domain.ErrOrderNotFound); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, f ports.OrderFilter) ([]*domain.Order, int64, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	return findPage[domain.Order](ctx, r.col, filter, newestFirst, f.PageQuery)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}}
	var o domain.Order
	if err := updateOne(ctx, r.col, bson.M{"_id": id}, update, &o, domain.ErrOrderNotFound); err != nil {
		return nil, err
	}
	return &o, nil
}

// CountByTour groups orders in the given status by tour.
func (r *OrderRepository) CountByTour(ctx context.Context, status domain.OrderStatus) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(status)}}},
		{{Key: "$group", Value: bson.M{"_id": "$tour_id", "count": bson.M{"$sum": 1}}}},
	}
	rows, err := aggregate[groupCount](ctx, r.col, pipeline)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	rows, err := aggregate[groupCount](ctx, r.col, pipeline)
	if err != nil {
		return nil, err
	}

	out := make(map[domain.OrderStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.OrderStatus(row.ID)] = row.Count
	}
	return out, nil
}

// Revenue sums total_price over orders in the given status.
func (r *OrderRepository) Revenue(ctx context.Context, status domain.OrderStatus) (decimal.Decimal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(status)}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total_price"}}}},
	}
	rows, err := aggregate[struct {
		Total decimal.Decimal `bson:"total"`
	}](ctx, r.col, pipeline)
	if err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return rows[0].Total, nil
}

type groupCount struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

func aggregate[T any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", col.Name(), err)
	}
	var rows []T
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s aggregate: %w", col.Name(), err)
	}
	return rows, nil
}
