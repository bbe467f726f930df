package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/testutil"
	"github.com/localnerve/helpdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFirm(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	parent, err := services.CreateFirm(ctx, db, services.FirmInput{Name: ptr("  Holding ")})
	require.NoError(t, err)
	assert.Equal(t, "Holding", parent.Name)

	child, err := services.CreateFirm(ctx, db, services.FirmInput{Name: ptr("Branch"), ParentID: types.SomeID(parent.ID)})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)

	children, err := services.ListFirmChildren(ctx, db, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	_, err = services.CreateFirm(ctx, db, services.FirmInput{Name: ptr("Orphan"), ParentID: types.SomeID(999)})
	assertErrorCode(t, err, http.StatusBadRequest)

	_, err = services.CreateFirm(ctx, db, services.FirmInput{Name: ptr(" ")})
	assertErrorCode(t, err, http.StatusBadRequest)

	ev := lastEvent(t, db, models.EntityTypeFirm, child.ID)
	assert.Equal(t, models.EventTypeCreated, ev.EventTypeID)
	assert.Equal(t, "Firm created: Branch", *ev.Description)
}

func TestUpdateFirmParentCycles(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	a := testutil.CreateFirm(t, db, "A", nil)
	b := testutil.CreateFirm(t, db, "B", &a.ID)
	c := testutil.CreateFirm(t, db, "C", &b.ID)

	_, err := services.UpdateFirm(ctx, db, a.ID, services.FirmInput{ParentID: types.SomeID(a.ID)})
	assertErrorCode(t, err, http.StatusBadRequest)

	_, err = services.UpdateFirm(ctx, db, a.ID, services.FirmInput{ParentID: types.SomeID(c.ID)})
	assertErrorCode(t, err, http.StatusBadRequest)

	// detaching and re-parenting sideways is fine
	got, err := services.UpdateFirm(ctx, db, c.ID, services.FirmInput{ParentID: types.SomeID(a.ID), Name: ptr("C2")})
	require.NoError(t, err)
	assert.Equal(t, a.ID, *got.ParentID)
	assert.Equal(t, "C2", got.Name)

	got, err = services.UpdateFirm(ctx, db, b.ID, services.FirmInput{ParentID: types.NullID()})
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)

	_, err = services.UpdateFirm(ctx, db, 999, services.FirmInput{Name: ptr("x")})
	assertErrorCode(t, err, http.StatusNotFound)
}

func TestFirmProducts(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	manager := testutil.CreateUser(t, db, "manager", models.RoleAgent)
	firm := testutil.CreateFirm(t, db, "Acme", nil)
	product := testutil.CreateProduct(t, db, "Widget", manager.ID)

	require.NoError(t, services.AddFirmProduct(ctx, db, firm.ID, product.ID))

	err := services.AddFirmProduct(ctx, db, firm.ID, product.ID)
	assertErrorCode(t, err, http.StatusBadRequest)
	assert.True(t, types.IsType(err, types.ErrorTypeConflict))

	assertErrorCode(t, services.AddFirmProduct(ctx, db, 999, product.ID), http.StatusNotFound)
	assertErrorCode(t, services.AddFirmProduct(ctx, db, firm.ID, 999), http.StatusNotFound)

	products, err := services.ListFirmProducts(ctx, db, firm.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)

	require.NoError(t, services.RemoveFirmProduct(ctx, db, firm.ID, product.ID))
	assertErrorCode(t, services.RemoveFirmProduct(ctx, db, firm.ID, product.ID), http.StatusNotFound)

	products, err = services.ListFirmProducts(ctx, db, firm.ID)
	require.NoError(t, err)
	assert.Empty(t, products)

	// added, removed
	assert.Equal(t, int64(2), testutil.CountEvents(t, db, models.EntityTypeFirm, firm.ID))
}
