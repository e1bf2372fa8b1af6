// Package metrics exposes Prometheus instrumentation for the negotiation service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label used for actions that committed
const OutcomeSuccess = "success"

// NegotiationMetrics groups the collectors recorded by the service layer.
// A nil *NegotiationMetrics records nothing.
type NegotiationMetrics struct {
	// Actions by name and outcome (success or error code)
	ActionsTotal *prometheus.CounterVec

	// Wall time of an action including swap retries
	ActionDuration *prometheus.HistogramVec

	// Lost compare-and-swap attempts
	SwapConflictsTotal *prometheus.CounterVec

	// Transactions opened through InitiatePurchase
	TransactionsCreatedTotal prometheus.Counter

	// Domain events that could not be delivered
	EventPublishFailuresTotal *prometheus.CounterVec
}

// NewNegotiationMetrics registers the collectors with reg.
func NewNegotiationMetrics(reg prometheus.Registerer) *NegotiationMetrics {
	factory := promauto.With(reg)

	return &NegotiationMetrics{
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "negotiation_actions_total",
				Help: "Negotiation actions by action and outcome",
			},
			[]string{"action", "outcome"},
		),

		ActionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "negotiation_action_duration_seconds",
				Help:    "Time spent executing a negotiation action, including retries",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~2s
			},
			[]string{"action"},
		),

		SwapConflictsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "negotiation_swap_conflicts_total",
				Help: "Compare-and-swap attempts that lost against a concurrent update",
			},
			[]string{"action"},
		),

		TransactionsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "negotiation_transactions_created_total",
				Help: "Transactions opened by a buyer",
			},
		),

		EventPublishFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "negotiation_event_publish_failures_total",
				Help: "Domain events that failed to publish",
			},
			[]string{"event_type"},
		),
	}
}

// RecordAction records the outcome and duration of one action
func (m *NegotiationMetrics) RecordAction(action, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ActionsTotal.WithLabelValues(action, outcome).Inc()
	m.ActionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// RecordSwapConflict records a lost compare-and-swap
func (m *NegotiationMetrics) RecordSwapConflict(action string) {
	if m == nil {
		return
	}
	m.SwapConflictsTotal.WithLabelValues(action).Inc()
}

// RecordTransactionCreated records a newly opened transaction
func (m *NegotiationMetrics) RecordTransactionCreated() {
	if m == nil {
		return
	}
	m.TransactionsCreatedTotal.Inc()
}

// RecordPublishFailure records an undelivered domain event
func (m *NegotiationMetrics) RecordPublishFailure(eventType string) {
	if m == nil {
		return
	}
	m.EventPublishFailuresTotal.WithLabelValues(eventType).Inc()
}
