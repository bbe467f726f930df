// tickets_test.go
//
// A support desk service for firms, products and their tickets
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of helpdesk.
// helpdesk is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// helpdesk is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with helpdesk.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/localnerve/helpdesk/internal/actor"
	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/services"
	"github.com/localnerve/helpdesk/internal/testutil"
	"github.com/localnerve/helpdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func itoa(v uint64) string { return strconv.FormatUint(v, 10) }

func createTicket(t *testing.T, db *gorm.DB, title string) *models.Ticket {
	t.Helper()
	ticket, err := services.CreateTicket(context.Background(), db, services.TicketDraft{Title: title, StatusID: 1, PriorityID: 2})
	require.NoError(t, err)
	return ticket
}

func lastEvent(t *testing.T, db *gorm.DB, entityTypeID, entityID uint64) models.EventLog {
	t.Helper()
	var ev models.EventLog
	require.NoError(t, db.Where("entity_type_id = ? AND entity_id = ?", entityTypeID, entityID).
		Order("id DESC").First(&ev).Error)
	return ev
}

func assertErrorCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	ce, ok := types.AsCustomError(err)
	require.True(t, ok, "expected a CustomError, got %v", err)
	assert.Equal(t, code, ce.Code, ce.Message)
}

func TestCreateTicketThenCloseIt(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	ticket, err := services.CreateTicket(ctx, db, services.TicketDraft{Title: "Login broken", StatusID: 1, PriorityID: 2})
	require.NoError(t, err)

	assert.NotZero(t, ticket.ID)
	assert.True(t, ticket.CreatedAt.After(before))
	assert.True(t, ticket.CreatedAt.Before(time.Now().UTC().Add(time.Second)))
	require.NotNil(t, ticket.Status)
	assert.False(t, ticket.Status.IsClosed)
	require.NotNil(t, ticket.Priority)
	assert.Equal(t, "Normal", ticket.Priority.Name)

	_, err = services.ChangeTicketStatus(ctx, db, ticket.ID, 3)
	require.NoError(t, err)

	got, err := services.GetTicket(ctx, db, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.StatusID)
	assert.True(t, got.Status.IsClosed)

	ev := lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.Equal(t, models.EventTypeUpdated, ev.EventTypeID)
	require.NotNil(t, ev.Description)
	assert.Contains(t, *ev.Description, "Status changed to 3")
}

func TestCreateTicketDefaultsAndLog(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "agent", models.RoleAgent)

	ticket, err := services.CreateTicket(context.Background(), db, services.TicketDraft{
		Title:     "  Printer on fire ",
		CreatedBy: &user.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Printer on fire", ticket.Title)
	assert.Equal(t, uint64(1), ticket.StatusID, "lowest open status")
	assert.Equal(t, uint64(1), ticket.PriorityID, "lowest priority")
	assert.Equal(t, user.ID, *ticket.CreatedBy)
	assert.Nil(t, ticket.UpdatedAt)

	ev := lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.Equal(t, models.EventTypeCreated, ev.EventTypeID)
	assert.Equal(t, "Ticket created: Printer on fire", *ev.Description)
	assert.Equal(t, user.ID, *ev.UserID)
}

func TestCreateTicketDefaultSkipsClosedStatuses(t *testing.T) {
	db := testutil.NewTestDB(t)
	require.NoError(t, db.Model(&models.TicketStatus{}).Where("id = ?", 3).Update("order_no", 0).Error)

	ticket, err := services.CreateTicket(context.Background(), db, services.TicketDraft{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), ticket.StatusID)
}

func TestCreateTicketValidation(t *testing.T) {
	db := testutil.NewTestDB(t)

	tests := []struct {
		name  string
		draft services.TicketDraft
	}{
		{"missing title", services.TicketDraft{Title: ""}},
		{"blank title", services.TicketDraft{Title: "   "}},
		{"unknown status", services.TicketDraft{Title: "x", StatusID: 99}},
		{"unknown priority", services.TicketDraft{Title: "x", PriorityID: 99}},
		{"unknown firm", services.TicketDraft{Title: "x", FirmID: ptr(uint64(42))}},
		{"unknown assignee", services.TicketDraft{Title: "x", AssignedUserID: ptr(uint64(42))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.CreateTicket(context.Background(), db, tt.draft)
			assertErrorCode(t, err, http.StatusBadRequest)
		})
	}

	var n int64
	db.Model(&models.EventLog{}).Count(&n)
	assert.Zero(t, n, "failed creates must not log")
}

func TestUpdateTicket(t *testing.T) {
	db := testutil.NewTestDB(t)
	editor := testutil.CreateUser(t, db, "editor", models.RoleAgent)
	firm := testutil.CreateFirm(t, db, "Acme", nil)
	ticket := createTicket(t, db, "Old title")
	ctx := actor.WithUser(context.Background(), editor.ID)

	updated, err := services.UpdateTicket(ctx, db, ticket.ID, services.TicketPatch{
		Title:      ptr("New title"),
		FirmID:     types.SomeID(firm.ID),
		PriorityID: ptr(uint64(4)),
	})
	require.NoError(t, err)

	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, firm.ID, *updated.FirmID)
	assert.Equal(t, "Acme", updated.Firm.Name)
	assert.Equal(t, uint64(4), updated.PriorityID)
	assert.Equal(t, uint64(1), updated.StatusID, "untouched")
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, editor.ID, *updated.UpdatedBy)

	ev := lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.Equal(t, models.EventTypeUpdated, ev.EventTypeID)
	assert.Equal(t, "Ticket updated: New title", *ev.Description)
	assert.JSONEq(t, `{"fields":["title","firmId","priorityId"]}`, string(ev.Details.JSON))

	// explicit null clears the firm
	cleared, err := services.UpdateTicket(ctx, db, ticket.ID, services.TicketPatch{FirmID: types.NullID()})
	require.NoError(t, err)
	assert.Nil(t, cleared.FirmID)
	assert.Equal(t, "New title", cleared.Title)
}

func TestUpdateTicketErrors(t *testing.T) {
	db := testutil.NewTestDB(t)
	ticket := createTicket(t, db, "x")
	ctx := context.Background()

	_, err := services.UpdateTicket(ctx, db, 999, services.TicketPatch{Title: ptr("y")})
	assertErrorCode(t, err, http.StatusNotFound)

	_, err = services.UpdateTicket(ctx, db, ticket.ID, services.TicketPatch{StatusID: ptr(uint64(99))})
	assertErrorCode(t, err, http.StatusBadRequest)

	_, err = services.UpdateTicket(ctx, db, ticket.ID, services.TicketPatch{Title: ptr(" ")})
	assertErrorCode(t, err, http.StatusBadRequest)

	assert.Equal(t, int64(1), testutil.CountEvents(t, db, models.EntityTypeTicket, ticket.ID))
}

func TestAssignTicket(t *testing.T) {
	db := testutil.NewTestDB(t)
	agent := testutil.CreateUser(t, db, "agent", models.RoleAgent)
	ticket := createTicket(t, db, "x")
	ctx := context.Background()

	assigned, err := services.AssignTicket(ctx, db, ticket.ID, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, *assigned.AssignedUserID)
	assert.Equal(t, "agent", assigned.AssignedUser.Name)

	ev := lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.Equal(t, models.EventTypeAssigned, ev.EventTypeID)
	assert.Equal(t, "Assigned to user "+itoa(agent.ID), *ev.Description)
	assert.Equal(t, agent.ID, *ev.UserID)

	assert.JSONEq(t, `{"from":null,"to":`+itoa(agent.ID)+`}`, string(ev.Details.JSON))

	// reassigning records the previous assignee
	other := testutil.CreateUser(t, db, "other", models.RoleAgent)
	reassigned, err := services.AssignTicket(ctx, db, ticket.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, *reassigned.AssignedUserID)
	ev = lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.JSONEq(t, `{"from":`+itoa(agent.ID)+`,"to":`+itoa(other.ID)+`}`, string(ev.Details.JSON))
	assert.Equal(t, other.ID, *ev.UserID)

	_, err = services.AssignTicket(ctx, db, 999, agent.ID)
	assertErrorCode(t, err, http.StatusNotFound)

	_, err = services.AssignTicket(ctx, db, ticket.ID, 999)
	assertErrorCode(t, err, http.StatusBadRequest)
}

func TestChangeStatusAttribution(t *testing.T) {
	db := testutil.NewTestDB(t)
	agent := testutil.CreateUser(t, db, "agent", models.RoleAgent)
	boss := testutil.CreateUser(t, db, "boss", models.RoleAdmin)
	ticket := createTicket(t, db, "x")
	_, err := services.AssignTicket(context.Background(), db, ticket.ID, agent.ID)
	require.NoError(t, err)

	// no actor: the assignee
	_, err = services.ChangeTicketStatus(context.Background(), db, ticket.ID, 2)
	require.NoError(t, err)
	ev := lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.Equal(t, agent.ID, *ev.UserID)
	assert.JSONEq(t, `{"from":1,"to":2}`, string(ev.Details.JSON))

	// an actor wins over the assignee
	_, err = services.ChangeTicketStatus(actor.WithUser(context.Background(), boss.ID), db, ticket.ID, 3)
	require.NoError(t, err)
	ev = lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.Equal(t, boss.ID, *ev.UserID)

	// closed is not terminal
	reopened, err := services.ChangeTicketStatus(context.Background(), db, ticket.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), reopened.StatusID)

	_, err = services.ChangeTicketStatus(context.Background(), db, ticket.ID, 99)
	assertErrorCode(t, err, http.StatusBadRequest)
	_, err = services.ChangeTicketStatus(context.Background(), db, 999, 1)
	assertErrorCode(t, err, http.StatusNotFound)
}

func TestDeleteTicket(t *testing.T) {
	db := testutil.NewTestDB(t)
	author := testutil.CreateUser(t, db, "author", models.RoleCustomer)
	tag := testutil.CreateTag(t, db, "bug")
	ticket := createTicket(t, db, "x")
	ctx := actor.WithUser(context.Background(), author.ID)

	_, err := services.AddTicketTag(ctx, db, ticket.ID, tag.ID, &author.ID)
	require.NoError(t, err)
	_, err = services.AddTicketComment(ctx, db, ticket.ID, "hello")
	require.NoError(t, err)

	require.NoError(t, services.DeleteTicket(ctx, db, ticket.ID))

	_, err = services.GetTicket(ctx, db, ticket.ID)
	assertErrorCode(t, err, http.StatusNotFound)

	var tags, comments int64
	db.Model(&models.TicketTag{}).Where("ticket_id = ?", ticket.ID).Count(&tags)
	db.Model(&models.TicketComment{}).Where("ticket_id = ?", ticket.ID).Count(&comments)
	assert.Zero(t, tags)
	assert.Zero(t, comments)

	ev := lastEvent(t, db, models.EntityTypeTicket, ticket.ID)
	assert.Equal(t, models.EventTypeDeleted, ev.EventTypeID)
	assert.Equal(t, "Ticket deleted", *ev.Description)
	assert.Nil(t, ev.UserID)

	// history outlives the ticket
	history, err := services.ListTicketEvents(ctx, db, ticket.ID)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, models.EventTypeCreated, history[0].EventTypeID)
	assert.Equal(t, models.EventTypeDeleted, history[len(history)-1].EventTypeID)
}

func TestDeleteMissingTicketLogsNothing(t *testing.T) {
	db := testutil.NewTestDB(t)

	err := services.DeleteTicket(context.Background(), db, 12345)
	assertErrorCode(t, err, http.StatusNotFound)
	assert.Zero(t, testutil.CountEvents(t, db, models.EntityTypeTicket, 12345))
}

func TestEveryMutationLogsOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "agent", models.RoleAgent)
	tag := testutil.CreateTag(t, db, "urgent")
	ctx := context.Background()

	ticket := createTicket(t, db, "x")
	steps := []struct {
		name      string
		eventType uint64
		run       func() error
	}{
		{"assign", models.EventTypeAssigned, func() error {
			_, err := services.AssignTicket(ctx, db, ticket.ID, user.ID)
			return err
		}},
		{"status", models.EventTypeUpdated, func() error {
			_, err := services.ChangeTicketStatus(ctx, db, ticket.ID, 2)
			return err
		}},
		{"add tag", models.EventTypeUpdated, func() error {
			_, err := services.AddTicketTag(ctx, db, ticket.ID, tag.ID, &user.ID)
			return err
		}},
		{"remove tag", models.EventTypeUpdated, func() error {
			return services.RemoveTicketTag(ctx, db, ticket.ID, tag.ID, &user.ID)
		}},
		{"update", models.EventTypeUpdated, func() error {
			_, err := services.UpdateTicket(ctx, db, ticket.ID, services.TicketPatch{Title: ptr("y")})
			return err
		}},
		{"delete", models.EventTypeDeleted, func() error {
			return services.DeleteTicket(ctx, db, ticket.ID)
		}},
	}

	want := testutil.CountEvents(t, db, models.EntityTypeTicket, ticket.ID)
	require.Equal(t, int64(1), want)
	for _, step := range steps {
		require.NoError(t, step.run(), step.name)
		want++
		assert.Equal(t, want, testutil.CountEvents(t, db, models.EntityTypeTicket, ticket.ID), step.name)
		assert.Equal(t, step.eventType, lastEvent(t, db, models.EntityTypeTicket, ticket.ID).EventTypeID, step.name)
	}
}

func TestListTicketsFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	firm := testutil.CreateFirm(t, db, "Acme", nil)

	open := createTicket(t, db, "open")
	closed := createTicket(t, db, "closed")
	_, err := services.ChangeTicketStatus(ctx, db, closed.ID, 3)
	require.NoError(t, err)
	withFirm, err := services.CreateTicket(ctx, db, services.TicketDraft{Title: "firm", FirmID: &firm.ID, PriorityID: 4})
	require.NoError(t, err)

	all, err := services.ListTickets(ctx, db, services.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, withFirm.ID, all[0].ID, "newest first")
	assert.NotNil(t, all[0].Firm)
	assert.NotNil(t, all[0].Status)

	onlyClosed, err := services.ListTickets(ctx, db, services.TicketFilter{Closed: ptr(true)})
	require.NoError(t, err)
	require.Len(t, onlyClosed, 1)
	assert.Equal(t, closed.ID, onlyClosed[0].ID)

	notClosed, err := services.ListTickets(ctx, db, services.TicketFilter{Closed: ptr(false)})
	require.NoError(t, err)
	assert.Len(t, notClosed, 2)

	byFirm, err := services.ListTickets(ctx, db, services.TicketFilter{FirmID: &firm.ID})
	require.NoError(t, err)
	require.Len(t, byFirm, 1)
	assert.Equal(t, withFirm.ID, byFirm[0].ID)

	byPriority, err := services.ListTickets(ctx, db, services.TicketFilter{PriorityID: ptr(uint64(2))})
	require.NoError(t, err)
	assert.Len(t, byPriority, 2)

	byStatus, err := services.ListTickets(ctx, db, services.TicketFilter{StatusID: ptr(uint64(1))})
	require.NoError(t, err)
	require.Len(t, byStatus, 2)
	assert.Contains(t, []uint64{byStatus[0].ID, byStatus[1].ID}, open.ID)
}
