package models

// Tag is a label that can be attached to tickets
type Tag struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description *string `gorm:"size:1000" json:"description"`
	ColorHex    *string `gorm:"size:9" json:"colorHex"`
}

// TableName overrides the table name for Tag
func (Tag) TableName() string {
	return "tag"
}
