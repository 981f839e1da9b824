package models

import (
	"time"

	"gorm.io/gorm"
)

// Fandom 作品（IP）表
type Fandom struct {
	ID              uint           `gorm:"primarykey" json:"id"`                             // 主键
	Code            string         `gorm:"type:varchar(8);uniqueIndex;not null" json:"code"` // 作品代码，如 GEN
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`                 // 唯一标识
	NameJSON        JSON           `gorm:"type:json;not null" json:"name"`                   // 多语言名称
	DescriptionJSON JSON           `gorm:"type:json" json:"description"`                     // 多语言介绍
	Banner          string         `gorm:"type:varchar(500)" json:"banner"`                  // 横幅图片
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`              // 是否展示
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间
}

// TableName 指定表名
func (Fandom) TableName() string {
	return "fandoms"
}
