package relationship

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("planetpal/relationship")

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planetpal_relationship_operations_total",
			Help: "Relationship manager operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planetpal_relationship_operation_duration_seconds",
			Help:    "Latency of relationship manager operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	activeSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "planetpal_relationship_active_subscriptions",
			Help: "Open relationship change subscriptions",
		},
	)
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrAlreadyFriends), errors.Is(err, ErrRequestAlreadyPending), errors.Is(err, ErrIncomingRequestExists):
		return "conflict"
	case errors.Is(err, ErrRequestNotFound), errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrNotFriends):
		return "not_found"
	case errors.Is(err, ErrNotRecipient), errors.Is(err, ErrNotSender):
		return "denied"
	case IsStoreError(err):
		return "store_error"
	default:
		return "error"
	}
}

// track opens a span for op and returns the function that closes it and
// records the outcome.
func (m *Manager) track(ctx context.Context, op, accountID string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "relationship."+op,
		trace.WithAttributes(attribute.String("account.id", accountID)))

	return ctx, func(err error) {
		result := outcome(err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
		}
		span.SetAttributes(attribute.String("outcome", result))
		span.End()

		operationsTotal.WithLabelValues(op, result).Inc()
		operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

		if IsStoreError(err) {
			m.logger.Error("relationship operation failed", "op", op, "account", accountID, "error", err)
		}
	}
}
