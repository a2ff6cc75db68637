// Package metrics defines the custom Prometheus metrics of the tour agency
// API. HTTP request metrics come from echoprometheus; everything here is
// business level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agency"

// ── Access control ───────────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts route-level access decisions.
// Labels:
//   - action: the policy action name (e.g. "order.create")
//   - outcome: "allowed", "unauthenticated" or "forbidden"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of access control decisions, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// SessionsIssuedTotal counts successful logins.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued by login.",
	},
)

// ── Bookings and feedback ────────────────────────────────────────────────────

// OrdersCreatedTotal counts placed orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed.",
	},
)

// OrderStatusChangesTotal counts staff status changes.
// Label:
//   - status: the new order status (e.g. "COMPLETED")
var OrderStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_changes_total",
		Help:      "Total number of order status changes, by new status.",
	},
	[]string{"status"},
)

// ReviewsSubmittedTotal counts submitted reviews awaiting moderation.
var ReviewsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_submitted_total",
		Help:      "Total number of reviews submitted.",
	},
)

// TicketsOpenedTotal counts support tickets opened.
var TicketsOpenedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_opened_total",
		Help:      "Total number of support tickets opened.",
	},
)

// TicketResponsesTotal counts responses appended to tickets.
// Label:
//   - from: "staff" or "owner"
var TicketResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_responses_total",
		Help:      "Total number of ticket responses, by author side.",
	},
	[]string{"from"},
)

// ── Popularity ───────────────────────────────────────────────────────────────

// DemandCacheTotal counts reads of the popularity count cache.
// Label:
//   - result: "hit", "miss" or "error"
var DemandCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "demand_cache_total",
		Help:      "Total number of popularity cache reads, labelled by result.",
	},
	[]string{"result"},
)

// ObserveDemandCache records one cache read. It matches the observer
// signature of the Redis demand cache.
func ObserveDemandCache(result string) {
	DemandCacheTotal.WithLabelValues(result).Inc()
}

// Collectors returns every business collector, for registering on a
// registry other than the default one.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		AuthorizationDecisionsTotal,
		SessionsIssuedTotal,
		OrdersCreatedTotal,
		OrderStatusChangesTotal,
		ReviewsSubmittedTotal,
		TicketsOpenedTotal,
		TicketResponsesTotal,
		DemandCacheTotal,
	}
}
