package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/localnerve/helpdesk/internal/models"
	"github.com/localnerve/helpdesk/internal/types"
	"gorm.io/gorm"
)

// TagInput carries the writable tag fields. ColorHex is checked at the API edge.
type TagInput struct {
	Name        *string
	Description *string
	ColorHex    *string
}

// ListTags returns all tags by name
func ListTags(ctx context.Context, db *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	if err := db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&tags).Error; err != nil {
		return nil, storeError("list tags", err)
	}
	return tags, nil
}

// GetTag returns one tag
func GetTag(ctx context.Context, db *gorm.DB, id uint64) (*models.Tag, error) {
	var tag models.Tag
	if err := first(db.WithContext(ctx), &tag, id, "tag"); err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag inserts a tag
func CreateTag(ctx context.Context, db *gorm.DB, in TagInput) (*models.Tag, error) {
	if blank(in.Name) {
		return nil, types.NewValidationError("name is required")
	}

	tag := models.Tag{
		Name:        strings.TrimSpace(*in.Name),
		Description: in.Description,
		ColorHex:    in.ColorHex,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tag).Error; err != nil {
			return storeError("create tag", err)
		}
		return appendActorEvent(ctx, tx, models.EntityTypeTag, models.EventTypeCreated, tag.ID,
			fmt.Sprintf("Tag created: %s", tag.Name))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "tag created", "tag_id", tag.ID)
	return &tag, nil
}

// UpdateTag applies the fields present in the input
func UpdateTag(ctx context.Context, db *gorm.DB, id uint64, in TagInput) (*models.Tag, error) {
	var tag models.Tag
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := first(tx, &tag, id, "tag"); err != nil {
			return err
		}

		if in.Name != nil {
			if blank(in.Name) {
				return types.NewValidationError("name cannot be empty")
			}
			tag.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			tag.Description = in.Description
		}
		if in.ColorHex != nil {
			tag.ColorHex = in.ColorHex
		}

		if err := tx.Save(&tag).Error; err != nil {
			return storeError("update tag", err)
		}
		return appendActorEvent(ctx, tx, models.EntityTypeTag, models.EventTypeUpdated, tag.ID,
			fmt.Sprintf("Tag updated: %s", tag.Name))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "tag updated", "tag_id", id)
	return &tag, nil
}
