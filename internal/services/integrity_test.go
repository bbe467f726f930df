package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/localnerve/helpdesk/internal/actor"
	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/testutil"
	"github.com/localnerve/helpdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteFirmDetachesDependents(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	manager := testutil.CreateUser(t, db, "manager", models.RoleAgent)
	parent := testutil.CreateFirm(t, db, "Parent", nil)
	child := testutil.CreateFirm(t, db, "Child", &parent.ID)
	product := testutil.CreateProduct(t, db, "Widget", manager.ID)
	require.NoError(t, services.AddFirmProduct(ctx, db, parent.ID, product.ID))

	ticket, err := services.CreateTicket(ctx, db, services.TicketDraft{Title: "x", FirmID: &parent.ID})
	require.NoError(t, err)

	require.NoError(t, services.DeleteFirm(ctx, db, parent.ID))

	got, err := services.GetTicket(ctx, db, ticket.ID)
	require.NoError(t, err, "the ticket survives")
	assert.Nil(t, got.FirmID)

	orphan, err := services.GetFirm(ctx, db, child.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.ParentID)

	var links int64
	db.Model(&models.FirmProduct{}).Where("firm_id = ?", parent.ID).Count(&links)
	assert.Zero(t, links)

	_, err = services.GetProduct(ctx, db, product.ID)
	assert.NoError(t, err, "products are not owned by firms")

	ev := lastEvent(t, db, models.EntityTypeFirm, parent.ID)
	assert.Equal(t, models.EventTypeDeleted, ev.EventTypeID)

	assertErrorCode(t, services.DeleteFirm(ctx, db, parent.ID), http.StatusNotFound)
}

func TestDeleteProductCascadesFirmLinks(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	manager := testutil.CreateUser(t, db, "manager", models.RoleAgent)
	firm := testutil.CreateFirm(t, db, "Acme", nil)
	kept := testutil.CreateProduct(t, db, "Kept", manager.ID)
	gone := testutil.CreateProduct(t, db, "Gone", manager.ID)
	require.NoError(t, services.AddFirmProduct(ctx, db, firm.ID, kept.ID))
	require.NoError(t, services.AddFirmProduct(ctx, db, firm.ID, gone.ID))

	require.NoError(t, services.DeleteProduct(ctx, db, gone.ID))

	products, err := services.ListFirmProducts(ctx, db, firm.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, kept.ID, products[0].ID)

	var links int64
	db.Model(&models.FirmProduct{}).Where("product_id = ?", gone.ID).Count(&links)
	assert.Zero(t, links)
}

func TestDeleteTagCascadesTicketTags(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	tag := testutil.CreateTag(t, db, "bug")
	ticket := createTicket(t, db, "x")
	_, err := services.AddTicketTag(ctx, db, ticket.ID, tag.ID, nil)
	require.NoError(t, err)

	require.NoError(t, services.DeleteTag(ctx, db, tag.ID))

	tags, err := services.ListTicketTags(ctx, db, ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
	_, err = services.GetTicket(ctx, db, ticket.ID)
	assert.NoError(t, err)
}

func TestDeleteUserRules(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	t.Run("restricted by a managed product", func(t *testing.T) {
		manager := testutil.CreateUser(t, db, "manager", models.RoleAgent)
		testutil.CreateProduct(t, db, "Widget", manager.ID)

		err := services.DeleteUser(ctx, db, manager.ID)
		assertErrorCode(t, err, http.StatusConflict)
		assert.True(t, types.IsType(err, types.ErrorTypeConflict))
	})

	t.Run("restricted by an authored comment", func(t *testing.T) {
		author := testutil.CreateUser(t, db, "author", models.RoleCustomer)
		ticket := createTicket(t, db, "x")
		_, err := services.AddTicketComment(actor.WithUser(ctx, author.ID), db, ticket.ID, "hi")
		require.NoError(t, err)

		assertErrorCode(t, services.DeleteUser(ctx, db, author.ID), http.StatusConflict)
	})

	t.Run("assigned tickets become unassigned", func(t *testing.T) {
		agent := testutil.CreateUser(t, db, "agent", models.RoleAgent)
		ticket, err := services.CreateTicket(actor.WithUser(ctx, agent.ID), db, services.TicketDraft{Title: "x", AssignedUserID: &agent.ID})
		require.NoError(t, err)
		require.Equal(t, agent.ID, *ticket.CreatedBy)

		require.NoError(t, services.DeleteUser(ctx, db, agent.ID))

		got, err := services.GetTicket(ctx, db, ticket.ID)
		require.NoError(t, err)
		assert.Nil(t, got.AssignedUserID)
		assert.Equal(t, agent.ID, *got.CreatedBy, "audit columns keep the id")

		_, err = services.NewUserService(db, 4).Get(ctx, agent.ID)
		assertErrorCode(t, err, http.StatusNotFound)
	})

	t.Run("missing user", func(t *testing.T) {
		assertErrorCode(t, services.DeleteUser(ctx, db, 9999), http.StatusNotFound)
	})
}

func TestDeleteLookupsRestrictedWhileUsed(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	ticket := createTicket(t, db, "x")

	assertErrorCode(t, services.DeleteStatus(ctx, db, ticket.StatusID), http.StatusConflict)
	assertErrorCode(t, services.DeletePriority(ctx, db, ticket.PriorityID), http.StatusConflict)

	testutil.CreateUser(t, db, "admin", models.RoleAdmin)
	assertErrorCode(t, services.DeletePrivilege(ctx, db, models.RoleAdmin), http.StatusConflict)

	// unused rows go
	require.NoError(t, services.DeletePriority(ctx, db, 3))
	require.NoError(t, services.DeletePrivilege(ctx, db, models.RoleCustomer))
	assertErrorCode(t, services.DeleteStatus(ctx, db, 99), http.StatusNotFound)

	// once the ticket moves away, its old status can go
	_, err := services.ChangeTicketStatus(ctx, db, ticket.ID, 2)
	require.NoError(t, err)
	require.NoError(t, services.DeleteStatus(ctx, db, 1))
}
