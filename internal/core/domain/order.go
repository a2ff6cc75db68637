package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderCompleted OrderStatus = "COMPLETED"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderCancelled, OrderCompleted}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCancelled, OrderCompleted:
		return true
	}
	return false
}

// Order is a purchase of seats on a tour. Only staff change its status.
type Order struct {
	ID         string          `json:"id" bson:"_id"`
	UserID     string          `json:"user_id" bson:"user_id"`
	TourID     string          `json:"tour_id" bson:"tour_id"`
	Quantity   int             `json:"quantity" bson:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price" bson:"total_price"`
	Currency   string          `json:"currency" bson:"currency"`
	Status     OrderStatus     `json:"status" bson:"status"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" bson:"updated_at"`
}
