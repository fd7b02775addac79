package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showcase_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	uploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showcase_media_upload_bytes",
			Help:    "Size of accepted media uploads.",
			Buckets: prometheus.ExponentialBuckets(16<<10, 4, 6),
		},
	)
)
