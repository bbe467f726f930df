package models

// Firm is a customer organization. ParentID is a weak reference to another
// firm; there is no foreign key on it.
type Firm struct {
	ID       uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	OrderNo  *int    `json:"orderNo"`
	ParentID *uint64 `gorm:"index" json:"parentId"`
	Version  *uint8  `json:"version"`
}

// FirmProduct links a firm to a product it uses. Rows go away with either side.
type FirmProduct struct {
	FirmID    uint64   `gorm:"primaryKey;autoIncrement:false" json:"firmId"`
	ProductID uint64   `gorm:"primaryKey;autoIncrement:false;index" json:"productId"`
	Firm      *Firm    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name for Firm
func (Firm) TableName() string {
	return "firm"
}

// TableName overrides the table name for FirmProduct
func (FirmProduct) TableName() string {
	return "firm_product"
}
