package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type OrderService struct {
	orders   ports.OrderRepository
	tours    ports.TourRepository
	demand   demandSource
	validate ports.InputValidator
	log      zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	tours ports.TourRepository,
	cache ports.DemandCache,
	validate ports.InputValidator,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		tours:    tours,
		demand:   demandSource{orders: orders, cache: cache, log: log},
		validate: validate,
		log:      log,
	}
}

// Create places a PENDING order owned by the caller.
func (s *OrderService) Create(ctx context.Context, sess *access.Session, in ports.CreateOrderInput) (*domain.Order, error) {
	if err := access.Check(sess, access.ActionOrderCreate); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	tour, err := s.tours.FindByID(ctx, in.TourID)
	if err != nil {
		return nil, err
	}
	if in.Quantity > tour.AvailableSeats {
		return nil, domain.ErrNotEnoughSeats.WithDetails(map[string]any{"availableSeats": tour.AvailableSeats})
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:         uuid.NewString(),
		UserID:     sess.UserID,
		TourID:     tour.ID,
		Quantity:   in.Quantity,
		TotalPrice: tour.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Currency:   tour.Currency,
		Status:     domain.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", order.ID).Str("tour_id", tour.ID).Str("user_id", sess.UserID).Int("quantity", in.Quantity).Msg("order placed")
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, sess *access.Session, id string) (*domain.Order, error) {
	if err := access.Check(sess, access.ActionOrderRead); err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(sess, access.ActionOrderRead, access.Resource{OwnerID: order.UserID}); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOwn(ctx context.Context, sess *access.Session, in ports.ListOrdersInput) (ports.Page[*domain.Order], error) {
	if err := access.Authorize(sess, access.ActionOrderListOwn, access.Resource{OwnerID: sessionUserID(sess)}); err != nil {
		return ports.Page[*domain.Order]{}, err
	}
	return s.list(ctx, sess.UserID, in)
}

func (s *OrderService) ListAll(ctx context.Context, sess *access.Session, in ports.ListOrdersInput) (ports.Page[*domain.Order], error) {
	if err := access.Check(sess, access.ActionOrderListAll); err != nil {
		return ports.Page[*domain.Order]{}, err
	}
	return s.list(ctx, "", in)
}

func (s *OrderService) list(ctx context.Context, userID string, in ports.ListOrdersInput) (ports.Page[*domain.Order], error) {
	if err := s.validate.Struct(in); err != nil {
		return ports.Page[*domain.Order]{}, err
	}
	q := in.PageQuery.Normalize()
	orders, total, err := s.orders.List(ctx, ports.OrderFilter{
		UserID:    userID,
		Status:    domain.OrderStatus(in.Status),
		PageQuery: q,
	})
	if err != nil {
		return ports.Page[*domain.Order]{}, err
	}
	return ports.NewPage(orders, total, q), nil
}

// UpdateStatus is staff-only; owners never change their order's status.
func (s *OrderService) UpdateStatus(ctx context.Context, sess *access.Session, id string, in ports.UpdateOrderStatusInput) (*domain.Order, error) {
	if err := access.Check(sess, access.ActionOrderUpdateStatus); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	order, err := s.orders.UpdateStatus(ctx, id, domain.OrderStatus(in.Status))
	if err != nil {
		return nil, err
	}
	s.demand.invalidate(ctx)

	s.log.Info().Str("order_id", id).Str("status", in.Status).Str("by", sess.UserID).Msg("order status changed")
	return order, nil
}

func sessionUserID(s *access.Session) string {
	if s == nil {
		return ""
	}
	return s.UserID
}
