package models

// Product is something a firm uses and tickets are raised against.
// A product always has a manager; the manager cannot be deleted while it does.
type Product struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	ManagerID uint64  `gorm:"not null;index" json:"managerId"`
	Manager   *User   `gorm:"foreignKey:ManagerID;constraint:OnDelete:RESTRICT" json:"manager,omitempty"`
	OrderNo   int     `gorm:"not null" json:"orderNo"`
	Avatar    *string `gorm:"size:512" json:"avatar"`
}

// TableName overrides the table name for Product
func (Product) TableName() string {
	return "product"
}
