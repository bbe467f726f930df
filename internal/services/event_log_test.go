package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendEventDetails(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	entry, err := services.AppendEvent(ctx, db, services.EventInput{
		EntityTypeID: models.EntityTypeTag,
		EventTypeID:  models.EventTypeUpdated,
		EntityID:     7,
		Description:  "renamed",
		Details:      map[string]string{"from": "a", "to": "b"},
	})
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.JSONEq(t, `{"from":"a","to":"b"}`, string(entry.Details.JSON))

	bare, err := services.AppendEvent(ctx, db, services.EventInput{
		EntityTypeID: models.EntityTypeTag,
		EventTypeID:  models.EventTypeCreated,
		EntityID:     8,
	})
	require.NoError(t, err)
	assert.Nil(t, bare.Description)
	assert.Nil(t, bare.UserID)
}

func TestListEvents(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	a := createTicket(t, db, "a")
	b := createTicket(t, db, "b")
	_, err := services.UpdateTicket(ctx, db, a.ID, services.TicketPatch{Title: ptr("a2")})
	require.NoError(t, err)
	require.NoError(t, services.DeleteTicket(ctx, db, b.ID))

	all, err := services.ListEvents(ctx, db, services.EventFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, models.EventTypeDeleted, all[0].EventTypeID, "newest first")
	require.NotNil(t, all[0].EventType)
	assert.Equal(t, "Deleted", all[0].EventType.Name)
	require.NotNil(t, all[0].EntityType)
	assert.Equal(t, "Ticket", all[0].EntityType.Name)

	forA, err := services.ListEvents(ctx, db, services.EventFilter{
		EntityTypeID: models.EntityTypeTicket, EntityID: a.ID, Ascending: true,
	})
	require.NoError(t, err)
	require.Len(t, forA, 2)
	assert.Equal(t, models.EventTypeCreated, forA[0].EventTypeID)
	assert.Equal(t, models.EventTypeUpdated, forA[1].EventTypeID)

	created, err := services.ListEvents(ctx, db, services.EventFilter{EventTypeID: models.EventTypeCreated})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	limited, err := services.ListEvents(ctx, db, services.EventFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := services.ListEvents(ctx, db, services.EventFilter{EntityTypeID: models.EntityTypeFirm})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
