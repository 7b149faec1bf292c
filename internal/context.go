package internal

import (
	"context"
	"time"
)

// WithTimeout returns a context with timeout, defaulting to the standard API
// timeout if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = DefaultAPITimeout
	}
	return context.WithTimeout(ctx, duration)
}
