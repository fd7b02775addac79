package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	readsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_store_reads_total",
			Help: "Document reads by the source that served them.",
		},
		[]string{"document", "source"},
	)
	writesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showcase_store_writes_total",
			Help: "Document writes by result.",
		},
		[]string{"document", "result"},
	)
)
