package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(dbtest.Open(t))
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}

func TestCreateDerivesPartnerPrice(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Create(context.Background(), ProductInput{
		SKU:   " tab-001 ",
		Name:  "Kiosk Tablet",
		Price: dec("199.99"),
		Tags:  []string{"Hardware", "hardware", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, "TAB-001", got.SKU)
	assert.Equal(t, "general", got.Category)
	assert.True(t, dec("189.99").Equal(got.PartnerPrice))
	assert.True(t, got.IsActive)
	assert.False(t, got.PartnerApproved)
	assert.Equal(t, []string{"hardware"}, got.Tags)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{Name: "No SKU", Price: dec("1")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Create(ctx, ProductInput{SKU: "A", Price: dec("1")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Create(ctx, ProductInput{SKU: "A", Name: "Neg", Price: dec("-1")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreateDuplicateSKUConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{SKU: "DUP", Name: "First", Price: dec("10")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductInput{SKU: "dup", Name: "Second", Price: dec("10")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestUpdateMSRPAndMarkupKeepPartnerPrice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{SKU: "SIG-1", Name: "Signage", Price: dec("40")})
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, UpdateInput{MSRP: decPtr("80"), MarkupPercent: decPtr("35")})
	require.NoError(t, err)
	assert.True(t, dec("38").Equal(got.PartnerPrice))
	require.NotNil(t, got.MSRP)
	assert.True(t, dec("80").Equal(*got.MSRP))

	got, err = svc.Update(ctx, created.ID, UpdateInput{Price: decPtr("50")})
	require.NoError(t, err)
	assert.True(t, dec("47.5").Equal(got.PartnerPrice))
}

func TestUpdateMissingProduct(t *testing.T) {
	svc, _ := newTestService(t)
	name := "Ghost"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Name: &name})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDeleteRemovesProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{SKU: "DEL", Name: "Bye", Price: dec("1")})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, created.ID), pkgerrors.CodeNotFound))
}

func TestSetApprovalFiltersPortalListing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, ProductInput{SKU: "A-1", Name: "Alpha", Price: dec("10")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductInput{SKU: "B-1", Name: "Beta", Price: dec("10")})
	require.NoError(t, err)

	approved, err := svc.SetApproval(ctx, a.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.PartnerApproved)

	portal, err := svc.List(ctx, ListFilter{ApprovedOnly: true, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, portal, 1)
	assert.Equal(t, "A-1", portal[0].SKU)

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.SetApproval(ctx, uuid.New(), true)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestListSearchAndInactive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	inactive := false

	_, err := svc.Create(ctx, ProductInput{SKU: "CAB-1", Name: "HDMI Cable", Category: "accessories", Price: dec("5")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductInput{SKU: "OLD-1", Name: "Old Cable", Category: "accessories", Price: dec("5"), IsActive: &inactive})
	require.NoError(t, err)

	got, err := svc.List(ctx, ListFilter{Search: "cable", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CAB-1", got[0].SKU)

	got, err = svc.List(ctx, ListFilter{Category: "accessories"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestImportSkipsDuplicateSKUs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{SKU: "SKU-1", Name: "Existing", Price: dec("10")})
	require.NoError(t, err)

	rows := make([]ImportRow, 0, 10)
	for i := 1; i <= 9; i++ {
		rows = append(rows, ImportRow{
			SKU:   fmt.Sprintf("sku-%d", i),
			Name:  fmt.Sprintf("Item %d", i),
			Price: "$1,000.00",
		})
	}
	rows = append(rows, ImportRow{SKU: "SKU-5", Name: "Repeat", Price: "3"})

	got, err := svc.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Created)
	assert.Equal(t, 2, got.Skipped)
	assert.Equal(t, 0, got.Failed)
	assert.Empty(t, got.Errors)

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 9)
}

func TestImportReportsInvalidRows(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Import(context.Background(), []ImportRow{
		{SKU: "OK-1", Name: "Fine", Price: "12.50", MSRP: "20"},
		{SKU: "", Name: "No SKU", Price: "1"},
		{SKU: "BAD-1", Name: "Bad", Price: "twelve"},
		{SKU: "BAD-2", Name: "", Price: "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Created)
	assert.Equal(t, 0, got.Skipped)
	assert.Equal(t, 3, got.Failed)
	require.Len(t, got.Errors, 3)
	assert.Equal(t, "row 2: sku is required", got.Errors[0])
	assert.Equal(t, "row 3: price is not a number", got.Errors[1])
	assert.Equal(t, "row 4: name is required", got.Errors[2])
}

func TestImportEmptyBatch(t *testing.T) {
	svc, _ := newTestService(t)
	got, err := svc.Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Errors: []string{}}, *got)
}
