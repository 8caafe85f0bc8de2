package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/m-mizutani/gdstation/pkg/domain/types"
)

var (
	FindingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gdstation_findings_total",
			Help: "Number of handled findings by result",
		},
		[]string{"result"}, // submitted, updated, or an error reason
	)

	VerifyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gdstation_verify_total",
			Help: "Number of saved report verifications by outcome",
		},
		[]string{"outcome"}, // equal, different, unavailable
	)

	StationRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gdstation_station_request_duration_seconds",
			Help:    "Duration of Station API requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation", "status"},
	)

	QueueMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gdstation_queue_messages_total",
			Help: "Number of messages popped from the finding queue by result",
		},
		[]string{"result"},
	)

	AuditInsertErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gdstation_audit_insert_errors_total",
			Help: "Number of audit rows that could not be written",
		},
	)
)

var reasons = []struct {
	err    error
	reason string
}{
	{types.ErrMalformedInput, "malformed_input"},
	{types.ErrUnknownScope, "unknown_scope"},
	{types.ErrInsufficientPermission, "insufficient_permission"},
	{types.ErrScopeMismatch, "scope_mismatch"},
	{types.ErrLookup, "lookup_failed"},
	{types.ErrSubmit, "submit_failed"},
	{types.ErrUpdate, "update_failed"},
}

// ErrorReason returns a label for the failure class of err.
func ErrorReason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "internal"
}
