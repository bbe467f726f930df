package models

// User is an admin, agent or customer account
type User struct {
	ID       uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string     `gorm:"size:255;not null" json:"name"`
	Email    string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string     `gorm:"size:255;not null" json:"-"`
	Phone    *string    `gorm:"size:50" json:"phone"`
	RoleID   uint64     `gorm:"not null;index" json:"roleId"`
	Role     *Privilege `gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT" json:"role,omitempty"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "user"
}
