package redis

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	keyNamespace      = "ph"
	idempotencyPrefix = "idempotency"
	rateLimitPrefix   = "rate_limit"
	replayPrefix      = "replay"
)

// IdempotencyKey returns ph:idempotency:<scope>:<id>.
func (c *Client) IdempotencyKey(scope, id string) string {
	return buildKey(idempotencyPrefix, scope, id)
}

func (c *Client) RateLimitKey(scope string) string {
	return buildKey(rateLimitPrefix, scope)
}

func (c *Client) ReplayKey(scope, id string) string {
	return buildKey(replayPrefix, scope, id)
}

// ClaimOnce records id under scope for ttl. It reports false when the id was
// already claimed, letting webhook handlers drop duplicate deliveries.
func (c *Client) ClaimOnce(ctx context.Context, scope, id string, ttl time.Duration) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, errors.New("replay id is required")
	}
	return c.SetNX(ctx, c.ReplayKey(scope, id), "1", ttl)
}

// ReleaseClaim drops a claim so a failed delivery can be retried.
func (c *Client) ReleaseClaim(ctx context.Context, scope, id string) error {
	return c.Del(ctx, c.ReplayKey(scope, id))
}

// buildKey joins non-empty parts under the service namespace.
func buildKey(parts ...string) string {
	var b strings.Builder
	b.WriteString(keyNamespace)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}
