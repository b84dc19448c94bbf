package assessment

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter throttles the model-backed assessment endpoints per client.
// Each generation request costs an outbound model call, so unauthenticated
// starts in particular need a ceiling.
type RateLimiter struct {
	ctx context.Context
}

// NewRateLimiter creates a new RateLimiter instance
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{ctx: GetContext()}
}

// RateLimitConfig defines rate limit rules
type RateLimitConfig struct {
	MaxStarts    int           // per window
	MaxSubmits   int           // per window
	StartWindow  time.Duration // time window for assessment starts
	SubmitWindow time.Duration // time window for submissions
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxStarts:    6,
		MaxSubmits:   10,
		StartWindow:  time.Minute,
		SubmitWindow: 10 * time.Minute,
	}
}

// AllowStart reports whether the client may begin another assessment.
// Fail-open: when Redis is unavailable the assessment flow must keep working,
// so errors allow the request.
func (rl *RateLimiter) AllowStart(clientKey string, config RateLimitConfig) bool {
	return rl.allow("start", clientKey, config.MaxStarts, config.StartWindow)
}

// AllowSubmit reports whether the client may submit another assessment
func (rl *RateLimiter) AllowSubmit(clientKey string, config RateLimitConfig) bool {
	return rl.allow("submit", clientKey, config.MaxSubmits, config.SubmitWindow)
}

func (rl *RateLimiter) allow(kind, clientKey string, max int, window time.Duration) bool {
	client := GetRedisClient()
	if rl == nil || client == nil {
		return true
	}

	key := fmt.Sprintf("rate:%s:%s", kind, clientKey)

	count, err := client.Incr(rl.ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		client.Expire(rl.ctx, key, window)
	}

	return count <= int64(max)
}
