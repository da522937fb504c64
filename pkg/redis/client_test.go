package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partnerhub-backend/pkg/config"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := New(context.Background(), config.RedisConfig{Address: mr.Addr()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewRequiresAddress(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{}, nil)
	require.Error(t, err)
}

func TestOptionsFromURLKeepsConfigFallbacks(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://:secret@localhost:6380/2",
		PoolSize:    7,
		DialTimeout: 3 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, 3*time.Second, opts.DialTimeout)
}

func TestIncrWithTTLSetsExpiryOnFirstHit(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	key := client.RateLimitKey("apply:ip:1.2.3.4")

	count, err := client.IncrWithTTL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(30 * time.Second)
	count, err = client.IncrWithTTL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 30*time.Second, mr.TTL(key))

	mr.FastForward(31 * time.Second)
	count, err = client.IncrWithTTL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestClaimOnceDropsDuplicates(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	first, err := client.ClaimOnce(ctx, "docuseal", "evt-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := client.ClaimOnce(ctx, "docuseal", "evt-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, second)

	mr.FastForward(2 * time.Hour)
	again, err := client.ClaimOnce(ctx, "docuseal", "evt-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, again)

	_, err = client.ClaimOnce(ctx, "docuseal", " ", time.Hour)
	require.Error(t, err)
}

func TestReleaseClaimAllowsRetry(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	ok, err := client.ClaimOnce(ctx, "docuseal", "evt-2", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, client.ReleaseClaim(ctx, "docuseal", "evt-2"))

	ok, err = client.ClaimOnce(ctx, "docuseal", "evt-2", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetGetDel(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "ph:test", "value", time.Minute))
	got, err := client.Get(ctx, "ph:test")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	require.NoError(t, client.Del(ctx, "ph:test"))
	_, err = client.Get(ctx, "ph:test")
	assert.ErrorIs(t, err, redis.Nil)
	require.NoError(t, client.Ping(ctx))
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	assert.Equal(t, "ph:idempotency:scope:id", client.IdempotencyKey("scope", "id"))
	assert.Equal(t, "ph:rate_limit:scope", client.RateLimitKey("scope"))
	assert.Equal(t, "ph:replay:docuseal:42", client.ReplayKey("docuseal", "42"))
	assert.Equal(t, "ph:replay:docuseal", client.ReplayKey("docuseal", ""))
}

func TestUninitializedClientErrors(t *testing.T) {
	client := &Client{}
	ctx := context.Background()
	assert.ErrorIs(t, client.Ping(ctx), errNotInitialized)
	_, err := client.Get(ctx, "k")
	assert.ErrorIs(t, err, errNotInitialized)
	_, err = client.IncrWithTTL(ctx, "k", time.Second)
	assert.ErrorIs(t, err, errNotInitialized)
	assert.NoError(t, client.Close())
}

func TestOptionsFromAddress(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{Address: "cache:6379", Password: "pw", DB: 3, MinIdleConns: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, 2, opts.MinIdleConns)
}

func TestIncrWithoutTTLNeverExpires(t *testing.T) {
	client, mr := newTestClient(t)
	key := client.RateLimitKey("no-ttl")

	_, err := client.IncrWithTTL(context.Background(), key, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), mr.TTL(key))
}
