package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	manager := testutil.CreateUser(t, db, "manager", models.RoleAgent)
	other := testutil.CreateUser(t, db, "other", models.RoleAgent)

	_, err := services.CreateProduct(ctx, db, services.ProductInput{Name: ptr("Widget")})
	assertErrorCode(t, err, http.StatusBadRequest)

	_, err = services.CreateProduct(ctx, db, services.ProductInput{Name: ptr("Widget"), ManagerID: ptr(uint64(999))})
	assertErrorCode(t, err, http.StatusBadRequest)

	product, err := services.CreateProduct(ctx, db, services.ProductInput{Name: ptr("Widget"), ManagerID: &manager.ID})
	require.NoError(t, err)
	require.NotNil(t, product.Manager)
	assert.Equal(t, "manager", product.Manager.Name)

	product, err = services.UpdateProduct(ctx, db, product.ID, services.ProductInput{ManagerID: &other.ID, OrderNo: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, other.ID, product.ManagerID)
	assert.Equal(t, 5, product.OrderNo)
	assert.Equal(t, "Widget", product.Name)

	// the old manager is free to go now
	require.NoError(t, services.DeleteUser(ctx, db, manager.ID))

	products, err := services.ListProducts(ctx, db)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	assert.Equal(t, int64(2), testutil.CountEvents(t, db, models.EntityTypeProduct, product.ID))
}

func TestTags(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	tag, err := services.CreateTag(ctx, db, services.TagInput{Name: ptr(" bug "), ColorHex: ptr("#ff0000")})
	require.NoError(t, err)
	assert.Equal(t, "bug", tag.Name)

	_, err = services.CreateTag(ctx, db, services.TagInput{})
	assertErrorCode(t, err, http.StatusBadRequest)

	tag, err = services.UpdateTag(ctx, db, tag.ID, services.TagInput{Description: ptr("defects")})
	require.NoError(t, err)
	assert.Equal(t, "defects", *tag.Description)
	assert.Equal(t, "#ff0000", *tag.ColorHex)

	_, err = services.UpdateTag(ctx, db, tag.ID, services.TagInput{Name: ptr("")})
	assertErrorCode(t, err, http.StatusBadRequest)

	_, err = services.GetTag(ctx, db, 999)
	assertErrorCode(t, err, http.StatusNotFound)

	testutil.CreateTag(t, db, "alpha")
	tags, err := services.ListTags(ctx, db)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "alpha", tags[0].Name)

	require.NoError(t, services.DeleteTag(ctx, db, tag.ID))
	ev := lastEvent(t, db, models.EntityTypeTag, tag.ID)
	assert.Equal(t, models.EventTypeDeleted, ev.EventTypeID)
}
