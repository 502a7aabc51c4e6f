package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalLimiter is a per-process token bucket limiter keyed by client and
// limit type. Each bucket refills its full limit once per window.
type LocalLimiter struct {
	config *Config

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewLocalLimiter(config *Config) *LocalLimiter {
	return &LocalLimiter{
		config:   config,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *LocalLimiter) IsAllowed(_ context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := l.config.limitFor(limitType)
	if !l.config.Enabled || l.config.isWhitelisted(clientIP) || limit <= 0 {
		return l.config.unlimited(limit), nil
	}

	lim := l.limiter(clientIP+"|"+string(limitType), limit)
	now := time.Now()
	allowed := lim.AllowN(now, 1)

	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: now.Add(l.config.WindowDuration).Unix(),
	}, nil
}

func (l *LocalLimiter) limiter(key string, limit int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		window := l.config.WindowDuration
		if window <= 0 {
			window = time.Minute
		}
		lim = rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)
		l.limiters[key] = lim
	}
	return lim
}
