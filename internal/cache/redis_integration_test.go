//go:build integration

package cache

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestRedis(t *testing.T) *Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	c, err := NewClient(addr, os.Getenv("TEST_REDIS_PASSWORD"), 0, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_AllowSetsWindowOnFirstHit(t *testing.T) {
	c := openTestRedis(t)
	ctx := context.Background()
	key := "test|" + uuid.NewString()

	for i := 0; i < 3; i++ {
		ok, err := c.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "hit %d", i)
	}

	ok, err := c.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := c.rdb.TTL(ctx, ratePrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestClient_ClaimOnce(t *testing.T) {
	c := openTestRedis(t)
	ctx := context.Background()
	jti := uuid.NewString()

	var (
		wg  sync.WaitGroup
		won int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := c.Claim(ctx, jti, time.Minute)
			if err == nil && ok {
				atomic.AddInt32(&won, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), won)

	revoked, err := c.IsBlacklisted(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}
