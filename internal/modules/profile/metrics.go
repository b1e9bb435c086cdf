package profile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submit outcomes.
const (
	outcomeSuccess  = "success"
	outcomeFailure  = "failure"
	outcomeInvalid  = "invalid"
	outcomeInFlight = "in_flight"
	outcomeNoAuth   = "no_session"
)

var (
	// SubmitsTotal counts profile submits by outcome.
	SubmitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homejobs",
			Name:      "profile_submits_total",
			Help:      "Total number of profile form submits by outcome",
		},
		[]string{"outcome"},
	)

	// SubmitDuration tracks how long profile updates take.
	SubmitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "homejobs",
			Name:      "profile_submit_duration_seconds",
			Help:      "Latency of profile updates",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
