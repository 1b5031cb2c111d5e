package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextPersonKey ctxKey = "personID"

func PersonIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if personID, ok := ctx.Value(ContextPersonKey).(int64); ok {
		return personID
	}
	return 0
}

func ContextWithPersonID(ctx context.Context, personID int64) context.Context {
	return context.WithValue(ctx, ContextPersonKey, personID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
