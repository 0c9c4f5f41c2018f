// Package limiter throttles sign-in link requests with a Redis fixed window.
package limiter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/joinflow/internal/common"
	"github.com/redis/go-redis/v9"
)

var ErrRedisUnavailable = errors.New("limiter redis unavailable")

const keyPrefix = "joinflow:link:"

type Config struct {
	MaxRequests int
	Window      time.Duration
}

// LinkLimiter allows at most MaxRequests link requests per email in each
// Window. A nil *LinkLimiter allows everything.
type LinkLimiter struct {
	redis  redis.UniversalClient
	config Config
}

func NewLinkLimiter(redisClient redis.UniversalClient, cfg Config) *LinkLimiter {
	return &LinkLimiter{redis: redisClient, config: cfg}
}

// Allow records one request for email and returns common.ErrRateLimited
// once the window's budget is spent.
func (l *LinkLimiter) Allow(ctx context.Context, email string) error {
	if l == nil {
		return nil
	}

	key := linkKey(email)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.Window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	if count > int64(l.config.MaxRequests) {
		return common.ErrRateLimited
	}

	return nil
}

func linkKey(email string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(email))
}
