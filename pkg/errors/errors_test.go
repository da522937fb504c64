package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := stdErrors.New("dial tcp: timeout")
	err := Wrap(CodeDependency, cause, "docuseal: create template")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeDependency, err.Code())
	assert.Equal(t, "DEPENDENCY_ERROR: docuseal: create template", err.Error())
}

func TestAsFindsTypedErrorThroughFmtWrap(t *testing.T) {
	inner := New(CodeNotFound, "partner not found")
	outer := fmt.Errorf("load partner: %w", inner)

	typed := As(outer)
	require.NotNil(t, typed)
	assert.Equal(t, CodeNotFound, typed.Code())
	assert.True(t, IsCode(outer, CodeNotFound))
	assert.False(t, IsCode(outer, CodeValidation))
	assert.Nil(t, As(stdErrors.New("plain")))
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)

	assert.Equal(t, http.StatusBadGateway, MetadataFor(CodeProvider).HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, MetadataFor(CodeStateConflict).HTTPStatus)
}

func TestDumpCollectsChain(t *testing.T) {
	err := fmt.Errorf("approve: %w", Wrap(CodeDependency, stdErrors.New("conn reset"), "db: update partner"))
	dump := Dump(err)

	assert.Equal(t, CodeDependency, dump.Code)
	assert.Len(t, dump.Chain, 3)
	assert.Nil(t, dump.PG)
}

func TestDumpReadsPostgresErrors(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key", TableName: "products"}
	dump := Dump(fmt.Errorf("insert product: %w", pgErr))
	require.NotNil(t, dump.PG)
	assert.Equal(t, "23505", dump.PG.Code)
	assert.Equal(t, "products_sku_key", dump.Fields()["pg_constraint"])

	pqDump := Dump(&pq.Error{Code: "23503", Table: "venues"})
	require.NotNil(t, pqDump.PG)
	assert.Equal(t, "venues", pqDump.PG.Table)
}

func TestWithDetailsCopies(t *testing.T) {
	base := New(CodeValidation, "bad")
	withDetails := base.WithDetails(map[string]string{"field": "x"})
	assert.Nil(t, base.Details())
	assert.NotNil(t, withDetails.Details())
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(Wrap(CodeDependency, stdErrors.New("timeout"), "redis")))
	assert.False(t, Retryable(New(CodeValidation, "bad")))
	assert.False(t, Retryable(stdErrors.New("plain")))
	assert.Equal(t, "NOT_FOUND", New(CodeNotFound, "").Error())
}

func TestDescribeIncludesCauses(t *testing.T) {
	cause := stdErrors.New("401 invalid api key")
	err := Wrap(CodeDependency, Wrap(CodeProvider, cause, "docuseal rejected request"), "create provider template")

	assert.Equal(t, "DEPENDENCY_ERROR: create provider template", err.Error())
	assert.Equal(t,
		"DEPENDENCY_ERROR: create provider template: PROVIDER_ERROR: docuseal rejected request: 401 invalid api key",
		Describe(err))
	assert.Equal(t, "plain", Describe(stdErrors.New("plain")))
	assert.Equal(t, "", Describe(nil))
}
