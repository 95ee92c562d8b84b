package tasks

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval is the spacing between item additions when none is configured.
const DefaultMinInterval = 500 * time.Millisecond

// PacingPolicy bounds the rate of remote write calls.
type PacingPolicy struct {
	MinInterval time.Duration // Minimum spacing between calls; zero disables pacing
	Burst       int           // Calls allowed back to back before spacing applies (at least 1)
}

// DefaultPacing returns a policy of one call every 500ms.
func DefaultPacing() PacingPolicy {
	return PacingPolicy{MinInterval: DefaultMinInterval, Burst: 1}
}

// Pacer blocks until the next call is allowed.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer creates a token bucket [Pacer] for policy.
func NewPacer(policy PacingPolicy) Pacer {
	burst := max(policy.Burst, 1)
	if policy.MinInterval <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Every(policy.MinInterval), burst)
}

type noPacer struct{}

func (noPacer) Wait(ctx context.Context) error { return nil }
