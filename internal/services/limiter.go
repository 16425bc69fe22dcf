package services

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/personeltakip/backend/internal/config"
)

const (
	scopeLogin = "login"
	scopeCode  = "code"
)

// AttemptLimiter counts failed logins per phone and failed codes per user in
// Redis. With no Redis client it allows everything.
type AttemptLimiter struct {
	redis  *redis.Client
	config *config.RateLimitConfig
}

func NewAttemptLimiter(redisClient *redis.Client, cfg *config.RateLimitConfig) *AttemptLimiter {
	return &AttemptLimiter{redis: redisClient, config: cfg}
}

func (l *AttemptLimiter) enabled() bool {
	return l != nil && l.redis != nil && l.config != nil && l.config.Enabled
}

func (l *AttemptLimiter) CheckLogin(ctx context.Context, phone string) error {
	if !l.enabled() {
		return nil
	}
	return l.check(ctx, l.key(scopeLogin, phone), l.config.MaxLoginFailures)
}

func (l *AttemptLimiter) RecordLoginFailure(ctx context.Context, phone string) {
	l.record(ctx, l.key(scopeLogin, phone))
}

func (l *AttemptLimiter) ResetLogin(ctx context.Context, phone string) {
	l.reset(ctx, l.key(scopeLogin, phone))
}

func (l *AttemptLimiter) CheckCode(ctx context.Context, userID int) error {
	if !l.enabled() {
		return nil
	}
	return l.check(ctx, l.key(scopeCode, fmt.Sprint(userID)), l.config.MaxCodeFailures)
}

func (l *AttemptLimiter) RecordCodeFailure(ctx context.Context, userID int) {
	l.record(ctx, l.key(scopeCode, fmt.Sprint(userID)))
}

func (l *AttemptLimiter) ResetCode(ctx context.Context, userID int) {
	l.reset(ctx, l.key(scopeCode, fmt.Sprint(userID)))
}

func (l *AttemptLimiter) key(scope, id string) string {
	return fmt.Sprintf("auth:ratelimit:%s:%s", scope, id)
}

// check fails open on Redis errors so an outage does not lock everyone out.
func (l *AttemptLimiter) check(ctx context.Context, key string, max int) error {
	if max <= 0 {
		return nil
	}

	count, err := l.redis.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		log.Printf("[RATELIMIT] Failed to read %s: %v", key, err)
		return nil
	}
	if count >= max {
		return ErrTooManyAttempts
	}
	return nil
}

func (l *AttemptLimiter) record(ctx context.Context, key string) {
	if !l.enabled() {
		return
	}

	pipe := l.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[RATELIMIT] Failed to record attempt for %s: %v", key, err)
	}
}

func (l *AttemptLimiter) reset(ctx context.Context, key string) {
	if !l.enabled() {
		return
	}
	if err := l.redis.Del(ctx, key).Err(); err != nil {
		log.Printf("[RATELIMIT] Failed to reset %s: %v", key, err)
	}
}
