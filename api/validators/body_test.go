package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Count int    `json:"count" validate:"min=1"`
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","count":1,"extra":true}`))
	var dest samplePayload
	err := DecodeJSONBody(req, &dest)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","count":0}`))
	var dest samplePayload
	err := DecodeJSONBody(req, &dest)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 1", details["count"])
}

func TestParseUUIDParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("id", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))

	_, err := ParseUUIDParam(req, "id")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = ParseUUID("", "partner_id")
	require.NotNil(t, pkgerrors.As(err))
	assert.Equal(t, "partner_id is required", pkgerrors.As(err).Message())
}

func TestDecodeJSONBodyEmptyAndTrailing(t *testing.T) {
	var dest samplePayload

	err := DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &dest)
	require.Error(t, err)
	assert.Equal(t, "request body is required", pkgerrors.As(err).Message())

	err = DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","count":1}{"email":"x"}`)), &dest)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

type nestedPayload struct {
	Items []struct {
		Quantity int `json:"quantity" validate:"gt=0"`
	} `json:"items" validate:"required,min=1,dive"`
}

func TestDecodeJSONBodyNestedFieldPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[{"quantity":0}]}`))
	var dest nestedPayload
	err := DecodeJSONBody(req, &dest)
	require.Error(t, err)

	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be greater than 0", details["items[0].quantity"])
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  ", 0))
	assert.Equal(t, "héll", SanitizeString("héllo", 4))
	assert.Equal(t, "ab", SanitizeString("ab", 10))
}
