package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListTicketTags returns the tags attached to a ticket in attach order
func ListTicketTags(ctx context.Context, db *gorm.DB, ticketID uint64) ([]models.TicketTag, error) {
	tx := db.WithContext(ctx)
	if err := mustExist(tx, &models.Ticket{}, ticketID, "ticket"); err != nil {
		return nil, err
	}

	var tags []models.TicketTag
	if err := tx.Preload("Tag").Where("ticket_id = ?", ticketID).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, storeError("list ticket tags", err)
	}
	return tags, nil
}

// AddTicketTag attaches a tag to a ticket once. A second attach of the same
// pair fails with "Tag already exists".
func AddTicketTag(ctx context.Context, db *gorm.DB, ticketID, tagID uint64, userID *uint64) (*models.TicketTag, error) {
	var link *models.TicketTag
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Ticket{}, ticketID, "ticket"); err != nil {
			return err
		}
		if err := mustExist(tx, &models.Tag{}, tagID, "tag"); err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&models.TicketTag{}).
			Where("ticket_id = ? AND tag_id = ?", ticketID, tagID).
			Count(&n).Error; err != nil {
			return storeError("check ticket tag", err)
		}
		if n > 0 {
			return types.NewDuplicateError("Tag already exists")
		}

		row := models.TicketTag{
			TicketID:  ticketID,
			TagID:     tagID,
			CreatedBy: userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return types.NewDuplicateError("Tag already exists")
			}
			return storeError("add ticket tag", err)
		}

		if _, err := AppendEvent(ctx, tx, EventInput{
			EntityTypeID: models.EntityTypeTicket,
			EventTypeID:  models.EventTypeUpdated,
			EntityID:     ticketID,
			Description:  fmt.Sprintf("Tag %d added", tagID),
			UserID:       userID,
		}); err != nil {
			return err
		}

		link = &row
		return tx.Preload("Tag").First(link, row.ID).Error
	})
	if err != nil {
		slog.WarnContext(ctx, "add ticket tag failed", "ticket_id", ticketID, "tag_id", tagID, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "ticket tag added", "ticket_id", ticketID, "tag_id", tagID)
	return link, nil
}

// RemoveTicketTag detaches a tag from a ticket
func RemoveTicketTag(ctx context.Context, db *gorm.DB, ticketID, tagID uint64, userID *uint64) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("ticket_id = ? AND tag_id = ?", ticketID, tagID).Delete(&models.TicketTag{})
		if res.Error != nil {
			return storeError("remove ticket tag", res.Error)
		}
		if res.RowsAffected == 0 {
			return types.NewNotFoundError("tag %d is not attached to ticket %d", tagID, ticketID)
		}

		_, err := AppendEvent(ctx, tx, EventInput{
			EntityTypeID: models.EntityTypeTicket,
			EventTypeID:  models.EventTypeUpdated,
			EntityID:     ticketID,
			Description:  fmt.Sprintf("Tag %d removed", tagID),
			UserID:       userID,
		})
		return err
	})
	if err != nil {
		slog.WarnContext(ctx, "remove ticket tag failed", "ticket_id", ticketID, "tag_id", tagID, "error", err)
		return err
	}

	slog.InfoContext(ctx, "ticket tag removed", "ticket_id", ticketID, "tag_id", tagID)
	return nil
}
