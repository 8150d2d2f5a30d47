package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gymref",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymref",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gymref",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	codesIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymref",
			Subsystem: "referral",
			Name:      "codes_issued_total",
			Help:      "Referral code issuance calls, by whether a new code was created.",
		},
		[]string{"created"},
	)

	joinsVerified = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gymref",
			Subsystem: "referral",
			Name:      "joins_verified_total",
			Help:      "Staff-verified referral joins.",
		},
	)

	rewardsUnlocked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gymref",
			Subsystem: "reward",
			Name:      "unlocked_total",
			Help:      "Rewards unlocked by reaching a campaign target.",
		},
	)

	rewardsGiven = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gymref",
			Subsystem: "reward",
			Name:      "given_total",
			Help:      "Rewards marked as handed out.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		codesIssued,
		joinsVerified,
		rewardsUnlocked,
		rewardsGiven,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func IncInFlight() { httpInFlight.Inc() }
func DecInFlight() { httpInFlight.Dec() }

// ObserveHTTP records one finished request. route is the route template, not
// the raw path, to keep label cardinality bounded.
func ObserveHTTP(method, route, status string, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func RecordCodeIssued(created bool) {
	if created {
		codesIssued.WithLabelValues("true").Inc()
		return
	}
	codesIssued.WithLabelValues("false").Inc()
}

func RecordJoinVerified(unlocked bool) {
	joinsVerified.Inc()
	if unlocked {
		rewardsUnlocked.Inc()
	}
}

func RecordRewardGiven() { rewardsGiven.Inc() }
