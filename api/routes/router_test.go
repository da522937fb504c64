package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partnerhub-backend/internal/articles"
	"github.com/angelmondragon/partnerhub-backend/internal/partners"
	"github.com/angelmondragon/partnerhub-backend/internal/portal"
	pkgauth "github.com/angelmondragon/partnerhub-backend/pkg/auth"
	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
	"github.com/angelmondragon/partnerhub-backend/pkg/metrics"
	"github.com/angelmondragon/partnerhub-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubArticles struct{ articles.Service }

func (stubArticles) ListPublished(context.Context) ([]articles.PublicArticleDTO, error) {
	return []articles.PublicArticleDTO{}, nil
}

type stubPartners struct {
	partners.Service
	created int
}

func (s *stubPartners) List(context.Context, partners.ListFilter) ([]partners.PartnerDTO, error) {
	return []partners.PartnerDTO{}, nil
}

func (s *stubPartners) Create(_ context.Context, in partners.CreateInput) (*partners.PartnerDTO, error) {
	s.created++
	return &partners.PartnerDTO{ID: uuid.New(), PipelineStage: "application"}, nil
}

type stubPortal struct{ portal.Service }

func (stubPortal) Dashboard(_ context.Context, id uuid.UUID) (*portal.DashboardDTO, error) {
	return &portal.DashboardDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "test", CORSOrigins: []string{"https://portal.example.com"}},
		Auth: config.AuthConfig{JWTSecret: "secret", Issuer: "https://id.example.com", Leeway: time.Second},
		RateLimit: config.RateLimitConfig{
			ApplicationWindow:     time.Hour,
			ApplicationIPLimit:    100,
			ApplicationEmailLimit: 1,
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *stubPartners) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := redis.New(context.Background(), config.RedisConfig{Address: mr.Addr()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	reg := prometheus.NewRegistry()
	partnerSvc := &stubPartners{}
	h := NewRouter(testConfig(), logger.Nop(), Dependencies{
		DB:       stubPinger{},
		Redis:    rc,
		Metrics:  metrics.NewHTTPMetrics(reg),
		Gatherer: reg,
		Partners: partnerSvc,
		Articles: stubArticles{},
		Portal:   stubPortal{},
	})
	return h, partnerSvc
}

func bearer(t *testing.T, role enums.ActorRole, partnerID *uuid.UUID) string {
	t.Helper()
	token, err := pkgauth.MintIdentityToken(testConfig().Auth, time.Now(), time.Hour, pkgauth.IdentityPayload{
		Subject:   "idp|1",
		Role:      role,
		PartnerID: partnerID,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	h, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/health/live", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/health/ready", nil)).Code)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/health/live",status="200"}`)
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/admin/v1/partners", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	pid := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/partners", nil)
	req.Header.Set("Authorization", bearer(t, enums.ActorRolePartner, &pid))
	assert.Equal(t, http.StatusForbidden, serve(h, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/partners", nil)
	req.Header.Set("Authorization", bearer(t, enums.ActorRoleAdmin, nil))
	assert.Equal(t, http.StatusOK, serve(h, req).Code)
}

func TestPortalRoutesRequirePartnerToken(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portal/dashboard", nil)
	req.Header.Set("Authorization", bearer(t, enums.ActorRoleAdmin, nil))
	assert.Equal(t, http.StatusForbidden, serve(h, req).Code)

	pid := uuid.New()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/portal/dashboard", nil)
	req.Header.Set("Authorization", bearer(t, enums.ActorRolePartner, &pid))
	assert.Equal(t, http.StatusOK, serve(h, req).Code)
}

func TestPortalCheckoutRequiresIdempotencyKey(t *testing.T) {
	h, _ := newTestRouter(t)
	pid := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/portal/checkout", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Authorization", bearer(t, enums.ActorRolePartner, &pid))
	assert.Equal(t, http.StatusBadRequest, serve(h, req).Code)
}

func TestPublicRoutes(t *testing.T) {
	h, partnerSvc := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/api/public/articles", nil)).Code)

	body := `{"type":"referral","company_name":"Acme","contact_name":"Ann","email":"ann@acme.com"}`
	first := serve(h, httptest.NewRequest(http.MethodPost, "/api/public/applications", strings.NewReader(body)))
	assert.Equal(t, http.StatusCreated, first.Code)

	second := serve(h, httptest.NewRequest(http.MethodPost, "/api/public/applications", strings.NewReader(body)))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, 1, partnerSvc.created)
}

func TestWebhookRejectsMissingSecret(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/docuseal", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/admin/v1/partners", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := serve(h, req)
	assert.Equal(t, "https://portal.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
