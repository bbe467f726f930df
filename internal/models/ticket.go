package models

import "time"

// Ticket is a support request
type Ticket struct {
	ID             uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title          string          `gorm:"size:255;not null" json:"title"`
	Description    *string         `gorm:"type:text" json:"description"`
	Content        *string         `gorm:"type:text" json:"content"`
	FirmID         *uint64         `gorm:"index" json:"firmId"`
	Firm           *Firm           `gorm:"constraint:OnDelete:SET NULL" json:"firm"`
	AssignedUserID *uint64         `gorm:"index" json:"assignedUserId"`
	AssignedUser   *User           `gorm:"foreignKey:AssignedUserID;constraint:OnDelete:SET NULL" json:"assignedUser"`
	StatusID       uint64          `gorm:"not null;index" json:"statusId"`
	Status         *TicketStatus   `gorm:"constraint:OnDelete:RESTRICT" json:"status"`
	PriorityID     uint64          `gorm:"not null;index" json:"priorityId"`
	Priority       *TicketPriority `gorm:"constraint:OnDelete:RESTRICT" json:"priority"`
	CreatedAt      time.Time       `gorm:"not null" json:"createdAt"`
	CreatedBy      *uint64         `json:"createdBy"`
	UpdatedAt      *time.Time      `gorm:"autoUpdateTime:false" json:"updatedAt"`
	UpdatedBy      *uint64         `json:"updatedBy"`
}

// TicketTag attaches a tag to a ticket. A pair appears at most once.
type TicketTag struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID  uint64    `gorm:"not null;uniqueIndex:idx_ticket_tag_pair" json:"ticketId"`
	Ticket    *Ticket   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TagID     uint64    `gorm:"not null;uniqueIndex:idx_ticket_tag_pair;index" json:"tagId"`
	Tag       *Tag      `gorm:"constraint:OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedBy *uint64   `json:"createdBy"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

// TicketComment is a message on a ticket. The author cannot be deleted while comments exist.
type TicketComment struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID  uint64    `gorm:"not null;index" json:"ticketId"`
	Ticket    *Ticket   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	User      *User     `gorm:"constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

// TableName overrides the table name for Ticket
func (Ticket) TableName() string {
	return "ticket"
}

// TableName overrides the table name for TicketTag
func (TicketTag) TableName() string {
	return "ticket_tag"
}

// TableName overrides the table name for TicketComment
func (TicketComment) TableName() string {
	return "ticket_comment"
}
