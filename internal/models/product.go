package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                          // 主键
	FandomID           uint           `gorm:"not null;index" json:"fandom_id"`                               // 作品ID
	CategoryID         uint           `gorm:"not null;index" json:"category_id"`                             // 品类ID
	Code               string         `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`             // 商品编码，如 GEN-FIG-0007
	Slug               string         `gorm:"uniqueIndex;not null" json:"slug"`                              // 唯一标识
	TitleJSON          JSON           `gorm:"type:json;not null" json:"title"`                               // 多语言标题
	DescriptionJSON    JSON           `gorm:"type:json" json:"description"`                                  // 多语言描述
	PriceAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`     // 价格金额
	PriceCurrency      string         `gorm:"type:varchar(10);not null;default:'THB'" json:"price_currency"` // 币种
	Images             StringArray    `gorm:"type:json" json:"images"`                                       // 图片数组
	Tags               StringArray    `gorm:"type:json" json:"tags"`                                         // 标签数组
	TrackStock         bool           `gorm:"not null;default:false" json:"track_stock"`                     // 是否启用库存控制
	Stock              int            `gorm:"not null;default:0" json:"stock"`                               // 可售库存
	IsPreOrder         bool           `gorm:"not null;default:false;index" json:"is_pre_order"`              // 是否预售
	LimitOnePerAccount bool           `gorm:"not null;default:false" json:"limit_one_per_account"`           // 每个账号限购一件
	ReleaseAt          *time.Time     `gorm:"index" json:"release_at"`                                       // 预售发货时间
	IsActive           bool           `gorm:"default:true;index" json:"is_active"`                           // 是否上架
	SortOrder          int            `gorm:"default:0;index" json:"sort_order"`                             // 排序权重
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	// 关联
	Fandom   Fandom   `gorm:"foreignKey:FandomID" json:"fandom,omitempty"`     // 作品信息
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 品类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsLimited 预售或显式限购的商品每个账号只能购买一件
func (p *Product) IsLimited() bool {
	if p == nil {
		return false
	}
	return p.IsPreOrder || p.LimitOnePerAccount
}
