package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/partnerhub-backend/api/responses"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/partnerhub-backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	defaultIdempotencyTTL  = 24 * time.Hour
	criticalIdempotencyTTL = 7 * 24 * time.Hour
	// inFlightTTL bounds how long a crashed request can block its key.
	inFlightTTL = 2 * time.Minute

	maxIdempotencyKeyLen = 255
)

// idempotencyRule matches a method and a path template where "{}" stands for one segment.
type idempotencyRule struct {
	method   string
	segments []string
	ttl      time.Duration
}

func post(template string, ttl time.Duration) idempotencyRule {
	return idempotencyRule{method: http.MethodPost, segments: splitPath(template), ttl: ttl}
}

func (rule idempotencyRule) matches(method string, segments []string) bool {
	if rule.method != method || len(rule.segments) != len(segments) {
		return false
	}
	for i, want := range rule.segments {
		if want != "{}" && want != segments[i] {
			return false
		}
	}
	return true
}

var idempotencyRules = []idempotencyRule{
	post("/api/admin/v1/partners/{}/approve", defaultIdempotencyTTL),
	post("/api/admin/v1/partners/{}/deny", defaultIdempotencyTTL),
	post("/api/admin/v1/documents/templates", defaultIdempotencyTTL),
	post("/api/admin/v1/documents/templates/batch", defaultIdempotencyTTL),
	post("/api/admin/v1/documents/send", defaultIdempotencyTTL),
	post("/api/admin/v1/products/import", defaultIdempotencyTTL),
	post("/api/admin/v1/prospects/{}/invite", defaultIdempotencyTTL),
	post("/api/v1/portal/venues", defaultIdempotencyTTL),
	post("/api/v1/portal/articles", defaultIdempotencyTTL),

	// money and one-shot conversions keep their keys for a week
	post("/api/v1/portal/checkout", criticalIdempotencyTTL),
	post("/api/admin/v1/prospects/{}/convert", criticalIdempotencyTTL),
}

// idempotencyRecord is what sits in redis under a key. Pending marks a request
// that is still executing.
type idempotencyRecord struct {
	RequestHash string `json:"request_hash"`
	Pending     bool   `json:"pending,omitempty"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        string `json:"body,omitempty"`
}

// Idempotency replays the stored response for a repeated Idempotency-Key on the
// routes listed in idempotencyRules. Keys are scoped to the caller and path.
// 5xx responses are discarded so the client may retry with the same key.
func Idempotency(store pkgredis.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ttl, ok := routeTTL(r.Method, r.URL.Path)
			if !ok || store == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()

			idemKey := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
			if idemKey == "" || len(idemKey) > maxIdempotencyKeyLen {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header required (max 255 characters)"))
				return
			}

			body, err := bufferBody(w, r)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			hash := hashBody(body)
			key := store.IdempotencyKey(idempotencyScope(r), idemKey)

			existing, err := loadRecord(ctx, store, key)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency key"))
				return
			}
			if existing != nil {
				replayOrReject(ctx, logg, w, existing, hash)
				return
			}

			marker, _ := json.Marshal(idempotencyRecord{RequestHash: hash, Pending: true})
			acquired, err := store.SetNX(ctx, key, string(marker), inFlightTTL)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve idempotency key"))
				return
			}
			if !acquired {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "a request with this Idempotency-Key is already in progress"))
				return
			}

			capture := &responseCapture{ResponseWriter: w}
			finished := false
			defer func() {
				if !finished {
					release(ctx, store, logg, key)
				}
			}()
			next.ServeHTTP(capture, r)
			finished = true

			status := capture.statusCode()
			if status >= http.StatusInternalServerError {
				release(ctx, store, logg, key)
				return
			}
			final, err := json.Marshal(idempotencyRecord{
				RequestHash: hash,
				Status:      status,
				ContentType: capture.Header().Get("Content-Type"),
				Body:        base64.StdEncoding.EncodeToString(capture.body.Bytes()),
			})
			if err == nil {
				err = store.Set(ctx, key, string(final), ttl)
			}
			if err != nil && logg != nil {
				logg.Error(ctx, "idempotency.persist_failed", err)
			}
		})
	}
}

func loadRecord(ctx context.Context, store pkgredis.IdempotencyStore, key string) (*idempotencyRecord, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, redis.Nil) || (err == nil && raw == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec idempotencyRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func replayOrReject(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, rec *idempotencyRecord, hash string) {
	switch {
	case rec.RequestHash != hash:
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
	case rec.Pending:
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "a request with this Idempotency-Key is already in progress"))
	default:
		if rec.ContentType != "" {
			w.Header().Set("Content-Type", rec.ContentType)
		}
		w.Header().Set("Idempotent-Replayed", "true")
		w.WriteHeader(rec.Status)
		if decoded, err := base64.StdEncoding.DecodeString(rec.Body); err == nil {
			_, _ = w.Write(decoded)
		}
	}
}

func release(ctx context.Context, store pkgredis.IdempotencyStore, logg *logger.Logger, key string) {
	// the request context may already be cancelled
	if err := store.Del(context.WithoutCancel(ctx), key); err != nil && logg != nil {
		logg.Error(ctx, "idempotency.release_failed", err)
	}
}

func idempotencyScope(r *http.Request) string {
	ctx := r.Context()
	return strings.Join([]string{UserIDFromContext(ctx), PartnerIDFromContext(ctx), r.Method, r.URL.Path}, "|")
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func routeTTL(method, path string) (time.Duration, bool) {
	segments := splitPath(path)
	for _, rule := range idempotencyRules {
		if rule.matches(method, segments) {
			return rule.ttl, true
		}
	}
	return 0, false
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (c *responseCapture) WriteHeader(code int) {
	if c.status == 0 {
		c.status = code
	}
	c.ResponseWriter.WriteHeader(code)
}

func (c *responseCapture) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

func (c *responseCapture) statusCode() int {
	if c.status == 0 {
		return http.StatusOK
	}
	return c.status
}
