// Package metrics holds the Prometheus collectors exported by the lease server.
package metrics

import (
	"errors"

	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by route, method and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lease_http_requests_total",
			Help: "HTTP requests handled by the lease server",
		},
		[]string{"route", "method", "status"},
	)

	// RequestDuration observes request latency per route.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lease_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// Calculations counts lease calculations by source and outcome.
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lease_calculations_total",
			Help: "Lease calculations performed",
		},
		[]string{"source", "status"},
	)

	// CalculationErrors counts failed calculations by error type.
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lease_calculation_errors_total",
			Help: "Failed lease calculations",
		},
		[]string{"source", "error_type"},
	)

	// PortfolioContracts observes the number of contracts per portfolio upload.
	PortfolioContracts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lease_portfolio_contracts",
			Help:    "Contracts per portfolio request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

// ErrorType classifies a calculation error for the error_type label.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case lease.IsValidationError(err):
		return "validation"
	case errors.Is(err, lease.ErrNonFiniteResult):
		return "non_finite"
	default:
		return "calculation"
	}
}

// ObserveCalculation records the outcome of one calculation.
func ObserveCalculation(source string, err error) {
	if err != nil {
		Calculations.WithLabelValues(source, "error").Inc()
		CalculationErrors.WithLabelValues(source, ErrorType(err)).Inc()
		return
	}
	Calculations.WithLabelValues(source, "success").Inc()
}
