package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

// demandStatus is the order status that counts toward popularity.
const demandStatus = domain.OrderCompleted

// demandSource reads per-tour order counts through the cache.
type demandSource struct {
	orders ports.OrderRepository
	cache  ports.DemandCache
	log    zerolog.Logger
}

func (d demandSource) counts(ctx context.Context) (map[string]int64, error) {
	if d.cache != nil {
		counts, ok, err := d.cache.Get(ctx)
		if err != nil {
			d.log.Warn().Err(err).Msg("demand cache read failed, using store")
		} else if ok {
			return counts, nil
		}
	}

	counts, err := d.orders.CountByTour(ctx, demandStatus)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, counts); err != nil {
			d.log.Warn().Err(err).Msg("demand cache write failed")
		}
	}
	return counts, nil
}

func (d demandSource) invalidate(ctx context.Context) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Invalidate(ctx); err != nil {
		d.log.Warn().Err(err).Msg("demand cache invalidation failed")
	}
}
