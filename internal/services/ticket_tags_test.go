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

func TestAddTicketTagTwice(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "agent", models.RoleAgent)
	tag := testutil.CreateTag(t, db, "bug")
	ticket := createTicket(t, db, "x")

	link, err := services.AddTicketTag(ctx, db, ticket.ID, tag.ID, &user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bug", link.Tag.Name)
	assert.Equal(t, user.ID, *link.CreatedBy)

	_, err = services.AddTicketTag(ctx, db, ticket.ID, tag.ID, &user.ID)
	assertErrorCode(t, err, http.StatusBadRequest)
	assert.True(t, types.IsType(err, types.ErrorTypeConflict))
	assert.Contains(t, err.Error(), "Tag already exists")

	var n int64
	db.Model(&models.TicketTag{}).Where("ticket_id = ? AND tag_id = ?", ticket.ID, tag.ID).Count(&n)
	assert.Equal(t, int64(1), n)

	// remove, then the pair can be added again
	require.NoError(t, services.RemoveTicketTag(ctx, db, ticket.ID, tag.ID, &user.ID))
	_, err = services.AddTicketTag(ctx, db, ticket.ID, tag.ID, &user.ID)
	require.NoError(t, err)

	// created, added, removed, added
	assert.Equal(t, int64(4), testutil.CountEvents(t, db, models.EntityTypeTicket, ticket.ID))
	ev := lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.Equal(t, "Tag "+itoa(tag.ID)+" added", *ev.Description)
	assert.Equal(t, user.ID, *ev.UserID)
}

func TestTicketTagErrors(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	tag := testutil.CreateTag(t, db, "bug")
	ticket := createTicket(t, db, "x")

	_, err := services.AddTicketTag(ctx, db, 999, tag.ID, nil)
	assertErrorCode(t, err, http.StatusNotFound)

	_, err = services.AddTicketTag(ctx, db, ticket.ID, 999, nil)
	assertErrorCode(t, err, http.StatusNotFound)

	err = services.RemoveTicketTag(ctx, db, ticket.ID, tag.ID, nil)
	assertErrorCode(t, err, http.StatusNotFound)

	_, err = services.ListTicketTags(ctx, db, 999)
	assertErrorCode(t, err, http.StatusNotFound)

	assert.Equal(t, int64(1), testutil.CountEvents(t, db, models.EntityTypeTicket, ticket.ID))
}

func TestRemoveTicketTagLogs(t *testing.T) {
	db := testutil.NewTestDB(t)
	tag := testutil.CreateTag(t, db, "bug")
	ticket := createTicket(t, db, "x")
	ctx := context.Background()

	_, err := services.AddTicketTag(ctx, db, ticket.ID, tag.ID, nil)
	require.NoError(t, err)
	require.NoError(t, services.RemoveTicketTag(ctx, db, ticket.ID, tag.ID, nil))

	ev := lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.Equal(t, models.EventTypeUpdated, ev.EventTypeID)
	assert.Equal(t, "Tag "+itoa(tag.ID)+" removed", *ev.Description)
	assert.Nil(t, ev.UserID)
}

func TestTicketComments(t *testing.T) {
	db := testutil.NewTestDB(t)
	author := testutil.CreateUser(t, db, "author", models.RoleCustomer)
	ticket := createTicket(t, db, "x")
	ctx := actor.WithUser(context.Background(), author.ID)

	_, err := services.AddTicketComment(context.Background(), db, ticket.ID, "anonymous")
	assertErrorCode(t, err, http.StatusBadRequest)

	_, err = services.AddTicketComment(ctx, db, ticket.ID, "  ")
	assertErrorCode(t, err, http.StatusBadRequest)

	_, err = services.AddTicketComment(actor.WithUser(context.Background(), 999), db, ticket.ID, "ghost")
	assertErrorCode(t, err, http.StatusBadRequest)

	first, err := services.AddTicketComment(ctx, db, ticket.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, "author", first.User.Name)
	second, err := services.AddTicketComment(ctx, db, ticket.ID, "second")
	require.NoError(t, err)

	comments, err := services.ListTicketComments(ctx, db, ticket.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)

	require.NoError(t, services.DeleteTicketComment(ctx, db, ticket.ID, second.ID))
	assertErrorCode(t, services.DeleteTicketComment(ctx, db, ticket.ID, second.ID), http.StatusNotFound)

	ev := lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.Equal(t, "Comment removed", *ev.Description)
	assert.Equal(t, author.ID, *ev.UserID)
}
