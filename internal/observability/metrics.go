package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devmesh_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ConnectionRequestsTotal counts created connection requests by initial status.
	ConnectionRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devmesh_connection_requests_total",
		Help: "Total number of connection requests created, by status",
	}, []string{"status"})

	// ConnectionReviewsTotal counts reviewed connection requests by decision.
	ConnectionReviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devmesh_connection_reviews_total",
		Help: "Total number of connection request reviews, by decision",
	}, []string{"decision"})

	// FeedRequestsTotal counts discovery feed page loads.
	FeedRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devmesh_feed_requests_total",
		Help: "Total number of discovery feed page loads",
	})

	// NotificationPublishFailures counts dropped best-effort event publishes.
	NotificationPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devmesh_notification_publish_failures_total",
		Help: "Total number of connection events that failed to publish",
	})
)
