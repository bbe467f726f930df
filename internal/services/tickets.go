// tickets.go
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

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/localnerve/helpdesk/internal/actor"
	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TicketDraft is the input to CreateTicket. Zero StatusID or PriorityID
// selects the default lookup row.
type TicketDraft struct {
	Title          string
	Description    *string
	Content        *string
	FirmID         *uint64
	AssignedUserID *uint64
	StatusID       uint64
	PriorityID     uint64
	CreatedBy      *uint64
}

// TicketPatch lists the fields UpdateTicket changes; nil and unset fields are left alone
type TicketPatch struct {
	Title          *string
	Description    *string
	Content        *string
	FirmID         types.OptionalID
	AssignedUserID types.OptionalID
	StatusID       *uint64
	PriorityID     *uint64
}

// TicketFilter narrows ListTickets. Nil fields do not filter.
type TicketFilter struct {
	StatusID       *uint64
	PriorityID     *uint64
	FirmID         *uint64
	AssignedUserID *uint64
	Closed         *bool
}

func withTicketRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Firm").Preload("AssignedUser").Preload("Status").Preload("Priority")
}

// ListTickets returns tickets with firm, assignee, status and priority embedded, newest first
func ListTickets(ctx context.Context, db *gorm.DB, f TicketFilter) ([]models.Ticket, error) {
	q := withTicketRelations(db.WithContext(ctx))

	if f.StatusID != nil {
		q = q.Where("status_id = ?", *f.StatusID)
	}
	if f.PriorityID != nil {
		q = q.Where("priority_id = ?", *f.PriorityID)
	}
	if f.FirmID != nil {
		q = q.Where("firm_id = ?", *f.FirmID)
	}
	if f.AssignedUserID != nil {
		q = q.Where("assigned_user_id = ?", *f.AssignedUserID)
	}
	if f.Closed != nil {
		q = q.Where("status_id IN (?)",
			db.WithContext(ctx).Model(&models.TicketStatus{}).Select("id").Where("is_closed = ?", *f.Closed))
	}

	var tickets []models.Ticket
	if err := q.Order("id DESC").Find(&tickets).Error; err != nil {
		return nil, storeError("list tickets", err)
	}
	return tickets, nil
}

// GetTicket returns one ticket with its relations embedded
func GetTicket(ctx context.Context, db *gorm.DB, id uint64) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := first(withTicketRelations(db.WithContext(ctx)), &ticket, id, "ticket"); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateTicket persists a new ticket stamped with the current time and logs its creation
func CreateTicket(ctx context.Context, db *gorm.DB, draft TicketDraft) (*models.Ticket, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, types.NewValidationError("title is required")
	}

	createdBy := draft.CreatedBy
	if createdBy == nil {
		createdBy = actor.UserIDPtr(ctx)
	}

	var created *models.Ticket
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		statusID, err := resolveStatus(tx, draft.StatusID)
		if err != nil {
			return err
		}
		priorityID, err := resolvePriority(tx, draft.PriorityID)
		if err != nil {
			return err
		}
		if err := checkTicketRefs(tx, draft.FirmID, draft.AssignedUserID); err != nil {
			return err
		}

		ticket := models.Ticket{
			Title:          title,
			Description:    draft.Description,
			Content:        draft.Content,
			FirmID:         draft.FirmID,
			AssignedUserID: draft.AssignedUserID,
			StatusID:       statusID,
			PriorityID:     priorityID,
			CreatedAt:      time.Now().UTC(),
			CreatedBy:      createdBy,
		}
		if err := tx.Omit(clause.Associations).Create(&ticket).Error; err != nil {
			return storeError("create ticket", err)
		}

		if _, err := AppendEvent(ctx, tx, EventInput{
			EntityTypeID: models.EntityTypeTicket,
			EventTypeID:  models.EventTypeCreated,
			EntityID:     ticket.ID,
			Description:  fmt.Sprintf("Ticket created: %s", ticket.Title),
			UserID:       createdBy,
		}); err != nil {
			return err
		}

		created, err = reloadTicket(tx, ticket.ID)
		return err
	})
	if err != nil {
		slog.WarnContext(ctx, "create ticket failed", "title", title, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "ticket created", "ticket_id", created.ID, "status_id", created.StatusID)
	return created, nil
}

// UpdateTicket applies the fields present in patch, stamps updatedAt/updatedBy and logs the update
func UpdateTicket(ctx context.Context, db *gorm.DB, id uint64, patch TicketPatch) (*models.Ticket, error) {
	var updated *models.Ticket
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := first(tx, &ticket, id, "ticket"); err != nil {
			return err
		}

		var changed []string
		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return types.NewValidationError("title is required")
			}
			ticket.Title = title
			changed = append(changed, "title")
		}
		if patch.Description != nil {
			ticket.Description = patch.Description
			changed = append(changed, "description")
		}
		if patch.Content != nil {
			ticket.Content = patch.Content
			changed = append(changed, "content")
		}
		if patch.FirmID.Set {
			ticket.FirmID = patch.FirmID.Ptr()
			changed = append(changed, "firmId")
		}
		if patch.AssignedUserID.Set {
			ticket.AssignedUserID = patch.AssignedUserID.Ptr()
			changed = append(changed, "assignedUserId")
		}
		if patch.StatusID != nil {
			if err := mustReference(tx, &models.TicketStatus{}, *patch.StatusID, "status"); err != nil {
				return err
			}
			ticket.StatusID = *patch.StatusID
			changed = append(changed, "statusId")
		}
		if patch.PriorityID != nil {
			if err := mustReference(tx, &models.TicketPriority{}, *patch.PriorityID, "priority"); err != nil {
				return err
			}
			ticket.PriorityID = *patch.PriorityID
			changed = append(changed, "priorityId")
		}
		if err := checkTicketRefs(tx, patch.FirmID.Ptr(), patch.AssignedUserID.Ptr()); err != nil {
			return err
		}

		now := time.Now().UTC()
		ticket.UpdatedAt = &now
		ticket.UpdatedBy = actor.UserIDPtr(ctx)
		if err := tx.Omit(clause.Associations).Save(&ticket).Error; err != nil {
			return storeError("update ticket", err)
		}

		if _, err := AppendEvent(ctx, tx, EventInput{
			EntityTypeID: models.EntityTypeTicket,
			EventTypeID:  models.EventTypeUpdated,
			EntityID:     ticket.ID,
			Description:  fmt.Sprintf("Ticket updated: %s", ticket.Title),
			UserID:       ticket.UpdatedBy,
			Details:      map[string]any{"fields": changed},
		}); err != nil {
			return err
		}

		var err error
		updated, err = reloadTicket(tx, ticket.ID)
		return err
	})
	if err != nil {
		slog.WarnContext(ctx, "update ticket failed", "ticket_id", id, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "ticket updated", "ticket_id", id)
	return updated, nil
}

// AssignTicket sets the assignee and logs the assignment against the assigned user
func AssignTicket(ctx context.Context, db *gorm.DB, id, userID uint64) (*models.Ticket, error) {
	var updated *models.Ticket
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := first(tx, &ticket, id, "ticket"); err != nil {
			return err
		}
		if err := mustReference(tx, &models.User{}, userID, "user"); err != nil {
			return err
		}

		previous := ticket.AssignedUserID
		if err := tx.Model(&models.Ticket{}).Where("id = ?", ticket.ID).Update("assigned_user_id", userID).Error; err != nil {
			return storeError("assign ticket", err)
		}

		if _, err := AppendEvent(ctx, tx, EventInput{
			EntityTypeID: models.EntityTypeTicket,
			EventTypeID:  models.EventTypeAssigned,
			EntityID:     ticket.ID,
			Description:  fmt.Sprintf("Assigned to user %d", userID),
			UserID:       &userID,
			Details:      map[string]any{"from": previous, "to": userID},
		}); err != nil {
			return err
		}

		var err error
		updated, err = reloadTicket(tx, ticket.ID)
		return err
	})
	if err != nil {
		slog.WarnContext(ctx, "assign ticket failed", "ticket_id", id, "user_id", userID, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "ticket assigned", "ticket_id", id, "user_id", userID)
	return updated, nil
}

// ChangeTicketStatus moves a ticket to any existing status. There is no
// workflow graph; closed statuses do not lock the ticket.
// The event is attributed to the acting user, or to the assignee when no actor is known.
func ChangeTicketStatus(ctx context.Context, db *gorm.DB, id, statusID uint64) (*models.Ticket, error) {
	var updated *models.Ticket
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := first(tx, &ticket, id, "ticket"); err != nil {
			return err
		}
		if err := mustReference(tx, &models.TicketStatus{}, statusID, "status"); err != nil {
			return err
		}

		previous := ticket.StatusID
		if err := tx.Model(&ticket).Update("status_id", statusID).Error; err != nil {
			return storeError("change ticket status", err)
		}

		userID := actor.UserIDPtr(ctx)
		if userID == nil {
			userID = ticket.AssignedUserID
		}
		if _, err := AppendEvent(ctx, tx, EventInput{
			EntityTypeID: models.EntityTypeTicket,
			EventTypeID:  models.EventTypeUpdated,
			EntityID:     ticket.ID,
			Description:  fmt.Sprintf("Status changed to %d", statusID),
			UserID:       userID,
			Details:      map[string]any{"from": previous, "to": statusID},
		}); err != nil {
			return err
		}

		var err error
		updated, err = reloadTicket(tx, ticket.ID)
		return err
	})
	if err != nil {
		slog.WarnContext(ctx, "change ticket status failed", "ticket_id", id, "status_id", statusID, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "ticket status changed", "ticket_id", id, "status_id", statusID)
	return updated, nil
}

// DeleteTicket removes a ticket with its tags and comments, then logs the deletion.
// The event keeps the id after the row is gone.
func DeleteTicket(ctx context.Context, db *gorm.DB, id uint64) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := first(tx, &ticket, id, "ticket"); err != nil {
			return err
		}

		if err := tx.Where("ticket_id = ?", id).Delete(&models.TicketTag{}).Error; err != nil {
			return storeError("delete ticket tags", err)
		}
		if err := tx.Where("ticket_id = ?", id).Delete(&models.TicketComment{}).Error; err != nil {
			return storeError("delete ticket comments", err)
		}
		if err := tx.Delete(&models.Ticket{}, id).Error; err != nil {
			return deleteError("delete ticket", err)
		}

		_, err := AppendEvent(ctx, tx, EventInput{
			EntityTypeID: models.EntityTypeTicket,
			EventTypeID:  models.EventTypeDeleted,
			EntityID:     id,
			Description:  "Ticket deleted",
		})
		return err
	})
	if err != nil {
		slog.WarnContext(ctx, "delete ticket failed", "ticket_id", id, "error", err)
		return err
	}

	slog.InfoContext(ctx, "ticket deleted", "ticket_id", id)
	return nil
}

// ListTicketEvents returns a ticket's audit trail in creation order. It works
// for deleted tickets too.
func ListTicketEvents(ctx context.Context, db *gorm.DB, id uint64) ([]models.EventLog, error) {
	return ListEvents(ctx, db, EventFilter{
		EntityTypeID: models.EntityTypeTicket,
		EntityID:     id,
		Ascending:    true,
	})
}

func reloadTicket(tx *gorm.DB, id uint64) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := first(withTicketRelations(tx), &ticket, id, "ticket"); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// resolveStatus validates a requested status, or picks the first open status by orderNo
func resolveStatus(tx *gorm.DB, statusID uint64) (uint64, error) {
	if statusID != 0 {
		return statusID, mustReference(tx, &models.TicketStatus{}, statusID, "status")
	}
	var status models.TicketStatus
	err := tx.Where("is_closed = ?", false).Order("order_no ASC").Order("id ASC").Limit(1).Find(&status).Error
	if err != nil {
		return 0, storeError("find default status", err)
	}
	if status.ID == 0 {
		return 0, types.NewValidationError("statusId is required, no open status is defined")
	}
	return status.ID, nil
}

// resolvePriority validates a requested priority, or picks the first by orderNo
func resolvePriority(tx *gorm.DB, priorityID uint64) (uint64, error) {
	if priorityID != 0 {
		return priorityID, mustReference(tx, &models.TicketPriority{}, priorityID, "priority")
	}
	var priority models.TicketPriority
	err := tx.Order("order_no ASC").Order("id ASC").Limit(1).Find(&priority).Error
	if err != nil {
		return 0, storeError("find default priority", err)
	}
	if priority.ID == 0 {
		return 0, types.NewValidationError("priorityId is required, no priority is defined")
	}
	return priority.ID, nil
}

func checkTicketRefs(tx *gorm.DB, firmID, assignedUserID *uint64) error {
	if firmID != nil {
		if err := mustReference(tx, &models.Firm{}, *firmID, "firm"); err != nil {
			return err
		}
	}
	if assignedUserID != nil {
		if err := mustReference(tx, &models.User{}, *assignedUserID, "user"); err != nil {
			return err
		}
	}
	return nil
}
