package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partnerhub-backend/api/middleware"
	"github.com/angelmondragon/partnerhub-backend/internal/articles"
	"github.com/angelmondragon/partnerhub-backend/internal/checkout"
	"github.com/angelmondragon/partnerhub-backend/internal/products"
	"github.com/angelmondragon/partnerhub-backend/internal/prospects"
	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

type stubProductService struct {
	products.Service
	filter   products.ListFilter
	rows     []products.ImportRow
	approved *bool
}

func (s *stubProductService) List(_ context.Context, filter products.ListFilter) ([]products.ProductDTO, error) {
	s.filter = filter
	return []products.ProductDTO{}, nil
}

func (s *stubProductService) Import(_ context.Context, rows []products.ImportRow) (*products.ImportResult, error) {
	s.rows = rows
	return &products.ImportResult{Created: len(rows), Errors: []string{}}, nil
}

func (s *stubProductService) SetApproval(_ context.Context, id uuid.UUID, approved bool) (*products.ProductDTO, error) {
	s.approved = &approved
	return &products.ProductDTO{ID: id, PartnerApproved: approved}, nil
}

func TestProductListScopes(t *testing.T) {
	svc := &stubProductService{}

	PortalProductList(svc, nil).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?category=apparel", nil))
	assert.True(t, svc.filter.ActiveOnly)
	assert.True(t, svc.filter.ApprovedOnly)
	assert.Equal(t, "apparel", svc.filter.Category)

	PublicProductList(svc, nil).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, svc.filter.ActiveOnly)
	assert.False(t, svc.filter.ApprovedOnly)

	AdminProductList(svc, nil).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, svc.filter.ActiveOnly)
}

func TestAdminProductImportPassesRows(t *testing.T) {
	svc := &stubProductService{}
	body := `{"rows":[{"sku":"a-1","name":"Mug","category":"merch","price":"$12.00"},{"sku":"b-2","name":"Cap","category":"merch","price":"9"}]}`
	rec := httptest.NewRecorder()
	AdminProductImport(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.rows, 2)
	assert.Equal(t, "$12.00", svc.rows[0].Price)
	assert.Contains(t, rec.Body.String(), `"created":2`)
}

func TestAdminProductApprovalRequiresFlag(t *testing.T) {
	svc := &stubProductService{}
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)), "id", uuid.NewString())
	rec := httptest.NewRecorder()
	AdminProductApproval(svc, nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = withURLParam(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"approved":false}`)), "id", uuid.NewString())
	rec = httptest.NewRecorder()
	AdminProductApproval(svc, nil).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.approved)
	assert.False(t, *svc.approved)
}

type stubArticleService struct {
	articles.Service
	deleted   uuid.UUID
	updateIn  *articles.UpdateInput
	submitted *articles.SubmitInput
}

func (s *stubArticleService) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	return nil
}

func (s *stubArticleService) Update(_ context.Context, id uuid.UUID, in articles.UpdateInput) (*articles.ArticleDTO, error) {
	s.updateIn = &in
	return &articles.ArticleDTO{ID: id}, nil
}

func (s *stubArticleService) Submit(_ context.Context, in articles.SubmitInput) (*articles.ArticleDTO, error) {
	s.submitted = &in
	return &articles.ArticleDTO{ID: uuid.New()}, nil
}

func TestAdminArticleDeleteByQuery(t *testing.T) {
	svc := &stubArticleService{}
	id := uuid.New()
	rec := httptest.NewRecorder()
	AdminArticleDelete(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/?id="+id.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.deleted)

	rec = httptest.NewRecorder()
	AdminArticleDelete(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminArticleUpdateParsesStatus(t *testing.T) {
	svc := &stubArticleService{}
	body := `{"id":"` + uuid.NewString() + `","status":"rejected","rejection_reason":"off topic"}`
	rec := httptest.NewRecorder()
	AdminArticleUpdate(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, enums.ArticleStatusRejected, *svc.updateIn.Status)

	body = `{"id":"` + uuid.NewString() + `","status":"archived"}`
	rec = httptest.NewRecorder()
	AdminArticleUpdate(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortalArticleSubmitUsesPartnerFromToken(t *testing.T) {
	svc := &stubArticleService{}
	pid := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Our first month","body":"..."}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), "user", "partner", pid.String()))
	rec := httptest.NewRecorder()
	PortalArticleSubmit(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, pid, svc.submitted.PartnerID)
}

func TestPortalArticleSubmitRequiresPartner(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","body":"y"}`))
	rec := httptest.NewRecorder()
	PortalArticleSubmit(&stubArticleService{}, nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type stubProspectService struct {
	prospects.Service
	update *prospects.UpdateInput
}

func (s *stubProspectService) Update(_ context.Context, id uuid.UUID, in prospects.UpdateInput) (*prospects.ProspectDTO, error) {
	s.update = &in
	return &prospects.ProspectDTO{ID: id}, nil
}

func TestAdminProspectPatchParsesStatus(t *testing.T) {
	svc := &stubProspectService{}
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"won","estimated_value":"1200.50"}`)), "id", uuid.NewString())
	rec := httptest.NewRecorder()
	AdminProspectPatch(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, enums.ProspectStatusWon, *svc.update.Status)
	assert.True(t, decimal.RequireFromString("1200.50").Equal(*svc.update.EstimatedValue))
}

type stubCheckoutService struct {
	input *checkout.Input
}

func (s *stubCheckoutService) CreateSession(_ context.Context, in checkout.Input) (*checkout.SessionDTO, error) {
	s.input = &in
	return &checkout.SessionDTO{SessionID: "cs_test_1", URL: "https://checkout.stripe.com/c/cs_test_1"}, nil
}

func TestPortalCheckoutValidatesItems(t *testing.T) {
	svc := &stubCheckoutService{}
	pid := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[{"product_id":"`+uuid.NewString()+`","quantity":0}]}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), "user", "partner", pid.String()))
	rec := httptest.NewRecorder()
	PortalCheckout(svc, nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.input)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[{"product_id":"`+uuid.NewString()+`","quantity":2}]}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), "user", "partner", pid.String()))
	rec = httptest.NewRecorder()
	PortalCheckout(svc, nil).ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, pid, svc.input.PartnerID)
	assert.Contains(t, rec.Body.String(), "cs_test_1")
}

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"db": pingerFunc(func(context.Context) error { return nil })}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-PartnerHub-Env"))

	rec = httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"redis": pingerFunc(func(context.Context) error { return errors.New("refused") })}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
