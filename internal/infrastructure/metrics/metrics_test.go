package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOrderMetrics(t *testing.T) {
	m := NewOrderMetrics()

	m.RecordOrderCreated("prod_1", "livesight")
	m.RecordTransition("activate")
	m.RecordConflict("activate")
	m.RecordValidationFailure("salt")
	m.RecordTokenIssued()
	m.RecordAuditDropped()
	m.ObserveStoreLatency("update", 0.004)
	m.RecordPruned(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersCreatedTotal.WithLabelValues("prod_1", "livesight")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrderTransitionsTotal.WithLabelValues("activate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionConflictsTotal.WithLabelValues("activate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailuresTotal.WithLabelValues("salt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokensIssuedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditDroppedTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.OrdersPrunedTotal))

	// The latency histogram must carry the observation, not just exist.
	assert.Equal(t, 1, testutil.CollectAndCount(m.StoreLatencySeconds, "order_store_latency_seconds"))
}
