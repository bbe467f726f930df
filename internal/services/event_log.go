package services

import (
	"context"
	"time"

	"github.com/localnerve/helpdesk/internal/actor"
	"github.com/localnerve/helpdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// EventInput is one audit record to append
type EventInput struct {
	EntityTypeID uint64
	EventTypeID  uint64
	EntityID     uint64
	Description  string
	UserID       *uint64
	Details      any
}

// EventFilter narrows an event log listing. Zero values do not filter.
type EventFilter struct {
	EntityTypeID uint64
	EntityID     uint64
	EventTypeID  uint64
	Limit        int
	Ascending    bool
}

// AppendEvent writes an audit record with createdAt set to now.
// Run it on the transaction of the mutation it records.
func AppendEvent(ctx context.Context, tx *gorm.DB, in EventInput) (*models.EventLog, error) {
	entry := &models.EventLog{
		EntityTypeID: in.EntityTypeID,
		EventTypeID:  in.EventTypeID,
		EntityID:     in.EntityID,
		UserID:       in.UserID,
		CreatedAt:    time.Now().UTC(),
	}
	if in.Description != "" {
		desc := in.Description
		entry.Description = &desc
	}
	if in.Details != nil {
		details, err := models.NewJSON(in.Details)
		if err != nil {
			return nil, storeError("encode event details", err)
		}
		entry.Details = details
	}

	if err := tx.WithContext(ctx).Omit("EntityType", "EventType").Create(entry).Error; err != nil {
		return nil, storeError("append event log", err)
	}
	return entry, nil
}

// appendActorEvent appends an event attributed to the acting user in ctx
func appendActorEvent(ctx context.Context, tx *gorm.DB, entityTypeID, eventTypeID, entityID uint64, description string) error {
	_, err := AppendEvent(ctx, tx, EventInput{
		EntityTypeID: entityTypeID,
		EventTypeID:  eventTypeID,
		EntityID:     entityID,
		Description:  description,
		UserID:       actor.UserIDPtr(ctx),
	})
	return err
}

// ListEvents returns event log entries, newest first unless Ascending is set
func ListEvents(ctx context.Context, db *gorm.DB, f EventFilter) ([]models.EventLog, error) {
	q := db.WithContext(ctx).
		Clauses(hints.Comment("select", "event_log_list")).
		Preload("EntityType").
		Preload("EventType")

	if f.EntityTypeID != 0 {
		q = q.Where("entity_type_id = ?", f.EntityTypeID)
	}
	if f.EntityID != 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.EventTypeID != 0 {
		q = q.Where("event_type_id = ?", f.EventTypeID)
	}
	if f.Ascending {
		q = q.Order("created_at ASC").Order("id ASC")
	} else {
		q = q.Order("created_at DESC").Order("id DESC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var entries []models.EventLog
	if err := q.Find(&entries).Error; err != nil {
		return nil, storeError("list event log", err)
	}
	return entries, nil
}
