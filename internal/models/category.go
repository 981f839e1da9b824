package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品品类，Code 为商品编码的中段，如 GEN-FIG-0007 中的 FIG
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Code      string         `gorm:"type:varchar(8);uniqueIndex;not null" json:"code"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	NameJSON  JSON           `gorm:"type:json;not null" json:"name"`
	Icon      string         `gorm:"type:varchar(500)" json:"icon"`
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}
