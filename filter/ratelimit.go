// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/absmach/routemq/packets"
)

// RateLimiter is a publish filter that limits the delivery rate per
// recipient client using a token bucket. A rejected publish is dropped
// for that recipient only. The limiter map is guarded for concurrent
// invocation from many workers.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a per-client rate limiting filter. r is
// messages per second, burst the burst allowance.
func NewRateLimiter(r float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(r),
		burst:    burst,
	}
}

// Filter implements PublishFilter. It never mutates the publish.
func (l *RateLimiter) Filter(ctx *Context, p *packets.Publish, props *packets.PublishProperties) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[ctx.ClientID]
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[ctx.ClientID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// Forget drops the limiter state of a client, typically on session end.
func (l *RateLimiter) Forget(clientID string) {
	l.mu.Lock()
	delete(l.limiters, clientID)
	l.mu.Unlock()
}
