package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNegotiationMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewNegotiationMetrics(reg)

	m.RecordAction("confirm", OutcomeSuccess, 5*time.Millisecond)
	m.RecordAction("confirm", OutcomeSuccess, 7*time.Millisecond)
	m.RecordAction("confirm", "forbidden_role", time.Millisecond)
	m.RecordSwapConflict("confirm")
	m.RecordTransactionCreated()
	m.RecordPublishFailure("transaction.completed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("confirm", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("confirm", "forbidden_role")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SwapConflictsTotal.WithLabelValues("confirm")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransactionsCreatedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventPublishFailuresTotal.WithLabelValues("transaction.completed")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ActionDuration))
}

func TestNegotiationMetrics_NilIsNoop(t *testing.T) {
	var m *NegotiationMetrics

	assert.NotPanics(t, func() {
		m.RecordAction("propose", OutcomeSuccess, time.Millisecond)
		m.RecordSwapConflict("propose")
		m.RecordTransactionCreated()
		m.RecordPublishFailure("transaction.terms_proposed")
	})
}
