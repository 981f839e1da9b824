package models

import (
	"time"
)

// OrderItem 订单项表
type OrderItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID      uint      `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID    uint      `gorm:"index;not null;default:0" json:"product_id"`               // 商品ID（无法解析时为 0）
	LineID       string    `gorm:"type:varchar(64);index;not null" json:"line_id"`           // 购物车行标识
	Name         string    `gorm:"type:varchar(255)" json:"name"`                            // 名称快照
	Category     string    `gorm:"type:varchar(100)" json:"category"`                        // 品类快照
	Fandom       string    `gorm:"type:varchar(100)" json:"fandom"`                          // 作品快照
	PriceDisplay string    `gorm:"type:varchar(50)" json:"price_display"`                    // 展示价格快照
	UnitPrice    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价
	Quantity     int       `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	Limited      bool      `gorm:"not null;default:false" json:"limited"`                    // 限购商品
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
