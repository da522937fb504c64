package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxRole      contextKey = "actor_role"
	ctxPartnerID contextKey = "partner_id"
)

// UserIDFromContext returns the identity provider subject of the caller.
func UserIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxUserID)
}

func RoleFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxRole)
}

func PartnerIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxPartnerID)
}

// PartnerUUIDFromContext parses the partner claim, reporting false when absent.
func PartnerUUIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	raw := PartnerIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithIdentity injects the caller identity; used by Auth and by tests.
func WithIdentity(ctx context.Context, userID, role, partnerID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxRole, role)
	if partnerID != "" {
		ctx = context.WithValue(ctx, ctxPartnerID, partnerID)
	}
	return ctx
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
