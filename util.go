package gopinotdb

import (
	"context"
	"database/sql/driver"

	"github.com/google/uuid"
)

const requestIDCtxKey contextKey = "PINOT_REQUEST_ID"

// WithRequestID returns a context that makes the next query use requestID,
// which is sent as the X-Request-Id header and reported in the query Stats.
func WithRequestID(ctx context.Context, requestID uuid.UUID) context.Context {
	return context.WithValue(ctx, requestIDCtxKey, requestID)
}

// getOrGenerateRequestIDFromContext returns the request id set with
// WithRequestID, or a new random one.
func getOrGenerateRequestIDFromContext(ctx context.Context) uuid.UUID {
	if requestID, ok := ctx.Value(requestIDCtxKey).(uuid.UUID); ok && requestID != uuid.Nil {
		return requestID
	}
	return uuid.New()
}

func toNamedValues(values []driver.Value) []driver.NamedValue {
	namedValues := make([]driver.NamedValue, len(values))
	for idx, value := range values {
		namedValues[idx] = driver.NamedValue{Name: "", Ordinal: idx + 1, Value: value}
	}
	return namedValues
}
