package cache

import (
	"context"
	"time"
)

type Blacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	// Claim blacklists jti and reports whether this call was the one that
	// did it. Exactly one of several concurrent claims on a jti wins.
	Claim(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

var (
	_ Blacklist = (*Client)(nil)
	_ Limiter   = (*Client)(nil)
	_ Blacklist = (*MemoryBlacklist)(nil)
	_ Limiter   = (*MemoryLimiter)(nil)
)
