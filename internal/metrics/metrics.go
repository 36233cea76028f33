package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotation_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quotation_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// TierUpdatesTotal counts tier writes by tier and outcome (ok, invalid, not_found, error)
	TierUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotation_tier_updates_total",
			Help: "Tier updates by tier and outcome",
		},
		[]string{"tier", "outcome"},
	)

	// CacheLookupsTotal counts read-cache lookups by key kind and result (hit, miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotation_cache_lookups_total",
			Help: "Redis read-cache lookups by kind and result",
		},
		[]string{"kind", "result"},
	)

	// LiveSubscribers is the number of open websocket subscribers
	LiveSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quotation_live_subscribers",
			Help: "Open websocket subscribers to item updates",
		},
	)
)
