package models

import "time"

// EventLog is an append-only audit record. EntityID and UserID are plain
// integers, not foreign keys; they stay meaningful after the row they name is gone.
type EventLog struct {
	ID           uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityTypeID uint64      `gorm:"not null;index:idx_event_log_entity,priority:1" json:"entityTypeId"`
	EntityType   *EntityType `gorm:"constraint:OnDelete:RESTRICT" json:"entityType,omitempty"`
	EntityID     uint64      `gorm:"not null;index:idx_event_log_entity,priority:2" json:"entityId"`
	EventTypeID  uint64      `gorm:"not null;index" json:"eventTypeId"`
	EventType    *EventType  `gorm:"constraint:OnDelete:RESTRICT" json:"eventType,omitempty"`
	Description  *string     `gorm:"size:1000" json:"description"`
	UserID       *uint64     `gorm:"index" json:"userId"`
	Details      JSON        `json:"details"`
	CreatedAt    time.Time   `gorm:"not null;index" json:"createdAt"`
}

// TableName overrides the table name for EventLog
func (EventLog) TableName() string {
	return "event_log"
}
