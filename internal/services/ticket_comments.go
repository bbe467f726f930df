package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/localnerve/helpdesk/internal/actor"
	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListTicketComments returns a ticket's comments oldest first, authors embedded
func ListTicketComments(ctx context.Context, db *gorm.DB, ticketID uint64) ([]models.TicketComment, error) {
	tx := db.WithContext(ctx)
	if err := mustExist(tx, &models.Ticket{}, ticketID, "ticket"); err != nil {
		return nil, err
	}

	var comments []models.TicketComment
	err := tx.Preload("User").
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, storeError("list ticket comments", err)
	}
	return comments, nil
}

// AddTicketComment posts a comment authored by the acting user
func AddTicketComment(ctx context.Context, db *gorm.DB, ticketID uint64, content string) (*models.TicketComment, error) {
	userID, ok := actor.UserID(ctx)
	if !ok {
		return nil, types.NewValidationError("a comment needs an author, set X-User-Id")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, types.NewValidationError("content is required")
	}

	var comment *models.TicketComment
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Ticket{}, ticketID, "ticket"); err != nil {
			return err
		}
		if err := mustReference(tx, &models.User{}, userID, "user"); err != nil {
			return err
		}

		row := models.TicketComment{
			TicketID:  ticketID,
			UserID:    userID,
			Content:   content,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return storeError("add ticket comment", err)
		}

		if _, err := AppendEvent(ctx, tx, EventInput{
			EntityTypeID: models.EntityTypeTicket,
			EventTypeID:  models.EventTypeUpdated,
			EntityID:     ticketID,
			Description:  "Comment added",
			UserID:       &userID,
			Details:      map[string]any{"commentId": row.ID},
		}); err != nil {
			return err
		}

		comment = &row
		return tx.Preload("User").First(comment, row.ID).Error
	})
	if err != nil {
		slog.WarnContext(ctx, "add ticket comment failed", "ticket_id", ticketID, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "ticket comment added", "ticket_id", ticketID, "comment_id", comment.ID)
	return comment, nil
}

// DeleteTicketComment removes one comment from a ticket
func DeleteTicketComment(ctx context.Context, db *gorm.DB, ticketID, commentID uint64) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND ticket_id = ?", commentID, ticketID).Delete(&models.TicketComment{})
		if res.Error != nil {
			return storeError("delete ticket comment", res.Error)
		}
		if res.RowsAffected == 0 {
			return types.NewNotFoundError("comment %d not found on ticket %d", commentID, ticketID)
		}

		_, err := AppendEvent(ctx, tx, EventInput{
			EntityTypeID: models.EntityTypeTicket,
			EventTypeID:  models.EventTypeUpdated,
			EntityID:     ticketID,
			Description:  "Comment removed",
			UserID:       actor.UserIDPtr(ctx),
			Details:      map[string]any{"commentId": commentID},
		})
		return err
	})
	if err != nil {
		slog.WarnContext(ctx, "delete ticket comment failed", "ticket_id", ticketID, "comment_id", commentID, "error", err)
		return err
	}

	slog.InfoContext(ctx, "ticket comment removed", "ticket_id", ticketID, "comment_id", commentID)
	return nil
}
