package ports

import (
	"context"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
)

type CreateOrderInput struct {
	TourID   string `json:"tourId"   validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=50"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,order_status"`
}

type ListOrdersInput struct {
	Status string `query:"status" validate:"omitempty,order_status"`
	PageQuery
}

type OrderService interface {
	Create(ctx context.Context, s *access.Session, in CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, s *access.Session, id string) (*domain.Order, error)
	ListOwn(ctx context.Context, s *access.Session, in ListOrdersInput) (Page[*domain.Order], error)
	ListAll(ctx context.Context, s *access.Session, in ListOrdersInput) (Page[*domain.Order], error)
	UpdateStatus(ctx context.Context, s *access.Session, id string, in UpdateOrderStatusInput) (*domain.Order, error)
}
