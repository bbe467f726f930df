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

func TestLookupCRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	statuses, err := services.ListLookups[models.TicketStatus](ctx, db)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.Equal(t, "New", statuses[0].Name)
	assert.True(t, statuses[2].IsClosed)

	created, err := services.CreateLookup[models.TicketStatus](ctx, db,
		services.LookupInput{Name: ptr(" Waiting "), OrderNo: ptr(0), IsClosed: ptr(false)}, "status")
	require.NoError(t, err)
	assert.Equal(t, "Waiting", created.Name)

	statuses, err = services.ListLookups[models.TicketStatus](ctx, db)
	require.NoError(t, err)
	assert.Equal(t, created.ID, statuses[0].ID, "orderNo drives the listing")

	updated, err := services.UpdateLookup[models.TicketStatus](ctx, db, created.ID,
		services.LookupInput{IsClosed: ptr(true)}, "status")
	require.NoError(t, err)
	assert.True(t, updated.IsClosed)
	assert.Equal(t, "Waiting", updated.Name)

	_, err = services.CreateLookup[models.TicketStatus](ctx, db, services.LookupInput{Name: ptr("New")}, "status")
	assertErrorCode(t, err, http.StatusConflict)

	_, err = services.CreateLookup[models.TicketPriority](ctx, db, services.LookupInput{}, "priority")
	assertErrorCode(t, err, http.StatusBadRequest)

	_, err = services.UpdateLookup[models.TicketPriority](ctx, db, 99, services.LookupInput{Name: ptr("x")}, "priority")
	assertErrorCode(t, err, http.StatusNotFound)

	priority, err := services.GetLookup[models.TicketPriority](ctx, db, 4, "priority")
	require.NoError(t, err)
	assert.Equal(t, "Urgent", priority.Name)

	_, err = services.GetLookup[models.EventType](ctx, db, 99, "event type")
	assertErrorCode(t, err, http.StatusNotFound)
}

func TestNewTicketUsesChangedDefaultStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	triage, err := services.CreateLookup[models.TicketStatus](ctx, db, services.LookupInput{Name: ptr("Triage"), OrderNo: ptr(0)}, "status")
	require.NoError(t, err)

	ticket, err := services.CreateTicket(ctx, db, services.TicketDraft{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, triage.ID, ticket.StatusID)
}
