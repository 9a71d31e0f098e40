package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrderMetrics carries the lifecycle instrumentation for the order core.
type OrderMetrics struct {
	OrdersCreatedTotal       prometheus.CounterVec
	OrderTransitionsTotal    prometheus.CounterVec
	TransitionConflictsTotal prometheus.CounterVec
	ValidationFailuresTotal  prometheus.CounterVec
	TokensIssuedTotal        prometheus.Counter
	AuditDroppedTotal        prometheus.Counter
	StoreLatencySeconds      prometheus.HistogramVec
	OrdersPrunedTotal        prometheus.Counter
}

func NewOrderMetrics() *OrderMetrics {
	return &OrderMetrics{
		OrdersCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Orders created, by product and service type",
			},
			[]string{"product_id", "service_type"},
		),

		OrderTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_transitions_total",
				Help: "Successful order state transitions",
			},
			[]string{"transition"},
		),

		TransitionConflictsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_transition_conflicts_total",
				Help: "Conditional writes rejected at the store, per transition",
			},
			[]string{"transition"},
		),

		ValidationFailuresTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_validation_failures_total",
				Help: "Rejected secrets, by kind (salt, redeem_code, access_token)",
			},
			[]string{"kind"},
		),

		TokensIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "order_access_tokens_issued_total",
				Help: "Access tokens minted at redemption",
			},
		),

		AuditDroppedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "order_audit_dropped_total",
				Help: "Audit snapshots dropped because the queue was full",
			},
		),

		StoreLatencySeconds: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "order_store_latency_seconds",
				Help:    "Order store round-trip time per operation",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"operation"},
		),

		OrdersPrunedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_pruned_total",
				Help: "Rows removed by the storage TTL pruner",
			},
		),
	}
}

func (m *OrderMetrics) RecordOrderCreated(productID, serviceType string) {
	m.OrdersCreatedTotal.WithLabelValues(productID, serviceType).Inc()
}

func (m *OrderMetrics) RecordTransition(transition string) {
	m.OrderTransitionsTotal.WithLabelValues(transition).Inc()
}

func (m *OrderMetrics) RecordConflict(transition string) {
	m.TransitionConflictsTotal.WithLabelValues(transition).Inc()
}

func (m *OrderMetrics) RecordValidationFailure(kind string) {
	m.ValidationFailuresTotal.WithLabelValues(kind).Inc()
}

func (m *OrderMetrics) RecordTokenIssued() {
	m.TokensIssuedTotal.Inc()
}

func (m *OrderMetrics) RecordAuditDropped() {
	m.AuditDroppedTotal.Inc()
}

func (m *OrderMetrics) ObserveStoreLatency(operation string, seconds float64) {
	m.StoreLatencySeconds.WithLabelValues(operation).Observe(seconds)
}

func (m *OrderMetrics) RecordPruned(count int64) {
	m.OrdersPrunedTotal.Add(float64(count))
}
