package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studio_http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "studio_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	PaymentsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studio_payments_recorded_total",
		Help: "Ledger records written, by payment method and operation",
	}, []string{"method", "operation"})

	PaymentAmountApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studio_payment_amount_applied_total",
		Help: "Sum of payment amounts actually absorbed by entries",
	}, []string{"method"})
)
