package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tycoon_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tycoon_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	JobsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tycoon_jobs_generated_total",
		Help: "Render jobs minted onto the board.",
	})

	JobsClaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tycoon_jobs_claimed_total",
		Help: "Render jobs claimed off the board.",
	})

	JobsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tycoon_jobs_completed_total",
		Help: "Render jobs settled as completed.",
	})

	JobsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tycoon_jobs_pruned_total",
		Help: "Stale unclaimed jobs dropped from the board.",
	})

	UpgradesPurchased = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tycoon_upgrades_purchased_total",
		Help: "Hardware upgrades purchased, by type.",
	}, []string{"hardware_type"})

	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tycoon_users_registered_total",
		Help: "Accounts created.",
	})
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
