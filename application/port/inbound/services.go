package inbound

import (
	"context"
	"time"
)

// RateLimitService defines rate limiting behavior used by middleware
// Implemented by infrastructure/service/ratelimit
type RateLimitService interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Increment(ctx context.Context, key string, window time.Duration) error
	Block(ctx context.Context, key string, duration time.Duration, reason string) error
	IsBlocked(ctx context.Context, key string) (bool, error)
	GetAttempts(ctx context.Context, key string) (int, error)
}

// GateMetrics records access gate and role check outcomes.
// Implemented by infrastructure/service/metrics
type GateMetrics interface {
	ObserveGateDecision(outcome string)
	ObserveForbidden(requiredRole string)
}
