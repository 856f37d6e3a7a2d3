package models

import (
	"strings"

	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique"`
	CreatedByID uint   `json:"created_by_id"`
	CreatedBy   User   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.ToLower(c.Name)
	return nil
}

type Medicine struct {
	gorm.Model
	ProductID   string         `json:"product_id" gorm:"unique;size:100"`
	Name        string         `json:"name" gorm:"uniqueIndex:idx_name_category"`
	Drug        string         `json:"drug"`
	CategoryID  uint           `json:"category_id" gorm:"uniqueIndex:idx_name_category"`
	Category    Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Dosage      string         `json:"dosage"`
	UnitPrice   float64        `json:"unit_price"`
	ExpiryDate  string         `json:"expiry_date" gorm:"size:10"` // Format "YYYY-MM-DD"
	SideEffects string         `json:"side_effects"`
	CreatedByID uint           `json:"created_by_id"`
	CreatedBy   User           `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Stock       *MedicineStock `json:"stock,omitempty" gorm:"foreignKey:MedicineID"`
}

type MedicineStock struct {
	gorm.Model
	MedicineID   uint `json:"medicine_id" gorm:"uniqueIndex"`
	Quantity     uint `json:"quantity"`
	ReorderLevel uint `json:"reorder_level" gorm:"default:10"`
	UpdatedByID  uint `json:"updated_by_id"`
	IsLowStock   bool `json:"is_low_stock" gorm:"-"`
}

func (s *MedicineStock) AfterFind(tx *gorm.DB) (err error) {
	s.IsLowStock = s.Quantity < s.ReorderLevel
	return
}
