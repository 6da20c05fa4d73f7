package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	proposalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_proposals_total",
		Help: "Assistant propose requests by outcome (text, function_call, error).",
	}, []string{"outcome"})

	executionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_executions_total",
		Help: "Confirmed action dispatches by action name and outcome.",
	}, []string{"action", "outcome"})

	resolverFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assistant_resolver_failures_total",
		Help: "Model oracle failures (timeouts, errors, unparseable output).",
	})
)

// RecordProposal counts one propose request by outcome
func RecordProposal(outcome string) {
	proposalsTotal.WithLabelValues(outcome).Inc()
}

// RecordExecution counts one dispatched action by outcome
func RecordExecution(action, outcome string) {
	executionsTotal.WithLabelValues(action, outcome).Inc()
}

// RecordResolverFailure counts one model oracle failure
func RecordResolverFailure() {
	resolverFailures.Inc()
}
