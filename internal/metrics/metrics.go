package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flick",
		Name:      "provider_requests_total",
		Help:      "Total requests to the metadata provider by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "flick",
		Name:      "provider_request_duration_seconds",
		Help:      "Metadata provider request duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	DebounceOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flick",
		Name:      "debounce_outcomes_total",
		Help:      "Settled debounce timers by outcome (dispatched or skipped).",
	}, []string{"outcome"})

	StaleCompletionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flick",
		Name:      "stale_completions_total",
		Help:      "Fetch completions discarded because a newer fetch of the same kind had started.",
	}, []string{"kind"})
)

// Endpoint labels
const (
	EndpointSearch = "search"
	EndpointDetail = "detail"
)

// Outcome labels
const (
	OutcomeOK        = "ok"
	OutcomeProvider  = "provider_error"
	OutcomeTransport = "transport_error"
	OutcomeDispatch  = "dispatched"
	OutcomeSkipped   = "skipped"
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		ProviderRequestsTotal,
		ProviderRequestDuration,
		DebounceOutcomesTotal,
		StaleCompletionsTotal,
	)
}
