package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request latency by method, path and status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boram_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal counts HTTP requests by method, path and status.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boram_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// SearchQueriesTotal counts catalog search executions.
	SearchQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "boram_search_queries_total",
			Help: "Total number of product search queries",
		},
	)

	// AuditEntriesTotal counts recorded audit entries by action.
	AuditEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boram_audit_entries_total",
			Help: "Total number of audit log entries recorded",
		},
		[]string{"action"},
	)

	// ImportRowsTotal counts spreadsheet import rows by outcome.
	ImportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boram_import_rows_total",
			Help: "Total number of spreadsheet import rows processed",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration,
		RequestsTotal,
		SearchQueriesTotal,
		AuditEntriesTotal,
		ImportRowsTotal,
	)
}
