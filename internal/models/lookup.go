package models

// Seeded ids of the reference tables. Status, priority and privilege rows are
// admin-editable; entity and event types are fixed.
const (
	EntityTypeTicket  uint64 = 1
	EntityTypeFirm    uint64 = 2
	EntityTypeUser    uint64 = 3
	EntityTypeProduct uint64 = 4
	EntityTypeTag     uint64 = 5

	EventTypeCreated  uint64 = 1
	EventTypeUpdated  uint64 = 2
	EventTypeDeleted  uint64 = 3
	EventTypeAssigned uint64 = 4

	RoleAdmin    uint64 = 1
	RoleAgent    uint64 = 2
	RoleCustomer uint64 = 3
)

// TicketStatus is an admin-managed ticket state. IsClosed only drives UI grouping.
type TicketStatus struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	OrderNo  int    `gorm:"not null" json:"orderNo"`
	IsClosed bool   `gorm:"not null" json:"isClosed"`
}

// TicketPriority is an admin-managed ticket priority
type TicketPriority struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	OrderNo int    `gorm:"not null" json:"orderNo"`
}

// Privilege is a user role
type Privilege struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	OrderNo int    `gorm:"not null" json:"orderNo"`
}

// EntityType discriminates the table an event log entry points at
type EntityType struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	OrderNo int    `gorm:"not null" json:"orderNo"`
}

// EventType is the kind of mutation an event log entry records
type EventType struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	OrderNo int    `gorm:"not null" json:"orderNo"`
}

// TableName overrides the table name for TicketStatus
func (TicketStatus) TableName() string { return "ticket_status" }

// TableName overrides the table name for TicketPriority
func (TicketPriority) TableName() string { return "ticket_priority" }

// TableName overrides the table name for Privilege
func (Privilege) TableName() string { return "privilege" }

// TableName overrides the table name for EntityType
func (EntityType) TableName() string { return "entity_type" }

// TableName overrides the table name for EventType
func (EventType) TableName() string { return "event_type" }

// Lookup is implemented by the reference tables that share the name/orderNo shape
type Lookup interface {
	TableName() string
	SetLookupFields(name *string, orderNo *int)
}

// SetLookupFields sets the name and orderNo of a TicketStatus, skipping nil values
func (s *TicketStatus) SetLookupFields(name *string, orderNo *int) {
	setLookupFields(&s.Name, &s.OrderNo, name, orderNo)
}

// SetLookupFields sets the name and orderNo of a TicketPriority, skipping nil values
func (p *TicketPriority) SetLookupFields(name *string, orderNo *int) {
	setLookupFields(&p.Name, &p.OrderNo, name, orderNo)
}

// SetLookupFields sets the name and orderNo of a Privilege, skipping nil values
func (p *Privilege) SetLookupFields(name *string, orderNo *int) {
	setLookupFields(&p.Name, &p.OrderNo, name, orderNo)
}

// SetLookupFields sets the name and orderNo of a EntityType, skipping nil values
func (e *EntityType) SetLookupFields(name *string, orderNo *int) {
	setLookupFields(&e.Name, &e.OrderNo, name, orderNo)
}

// SetLookupFields sets the name and orderNo of a EventType, skipping nil values
func (e *EventType) SetLookupFields(name *string, orderNo *int) {
	setLookupFields(&e.Name, &e.OrderNo, name, orderNo)
}

func setLookupFields(dstName *string, dstOrder *int, name *string, orderNo *int) {
	if name != nil {
		*dstName = *name
	}
	if orderNo != nil {
		*dstOrder = *orderNo
	}
}
