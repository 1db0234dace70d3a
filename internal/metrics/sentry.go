package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	// Create a span for API request tracking using the request context
	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	// Set span tags
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	// Set span data
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	// Set span status based on response
	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	// Set span description
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordEngineSearch records one engine search: chord or tab in, how
// many ranked results out.
func (m *SentryMetrics) RecordEngineSearch(ctx context.Context, operation, instrument string, results int) {
	if !m.enabled {
		return
	}

	// Attach search facts to the surrounding transaction when present
	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("engine.operation", operation)
		transaction.SetTag("engine.instrument", instrument)
		transaction.SetData("engine.results", results)
	}

	// Also create a child span for detailed tracking
	span := sentry.StartSpan(ctx, "engine."+operation)
	defer span.Finish()

	span.SetTag("operation", operation)
	span.SetTag("instrument", instrument)
	span.SetData("results", results)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Engine Search: %s", operation)
}

