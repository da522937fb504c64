package venues

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/partnerhub-backend/internal/partners"
	"github.com/angelmondragon/partnerhub-backend/pkg/db/dbtest"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

func TestCreateAndListVenues(t *testing.T) {
	conn := dbtest.Open(t)
	partnerRepo := partners.NewRepository(conn)
	svc, err := NewService(NewRepository(conn), partnerRepo)
	require.NoError(t, err)
	ctx := context.Background()

	p := partners.NewPartnerModel(partners.CreateInput{Type: enums.PartnerTypeLocation, CompanyName: "A", ContactName: "B", Email: "a@b.test"})
	require.NoError(t, partnerRepo.Create(ctx, p))

	v, err := svc.Create(ctx, p.ID, CreateInput{Name: " Main St ", AddressLine1: "1 Main", City: "Austin", State: "tx", DeviceCount: 2})
	require.NoError(t, err)
	assert.Equal(t, "Main St", v.Name)
	assert.Equal(t, "TX", v.State)
	assert.Equal(t, enums.VenueStatusPending, v.Status)

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, v.ID, list[0].ID)

	other, err := svc.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCreateVenueValidation(t *testing.T) {
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), partners.NewRepository(conn))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), CreateInput{Name: "x"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Create(context.Background(), uuid.New(), CreateInput{Name: "x", AddressLine1: "y"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.Create(context.Background(), uuid.New(), CreateInput{Name: "x", AddressLine1: "y", DeviceCount: -1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
