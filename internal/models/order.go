package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单镜像表（由作用域订单账本异步同步）
type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo     string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	ScopeID     string         `gorm:"type:varchar(100);index;not null" json:"scope_id"`          // 账本作用域
	UserID      uint           `gorm:"index;not null;default:0" json:"user_id,omitempty"`         // 用户ID（游客订单为 0）
	Status      string         `gorm:"index;not null" json:"status"`                              // 订单状态
	Currency    string         `gorm:"not null" json:"currency"`                                  // 币种
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 合计金额
	ItemCount   int            `gorm:"not null;default:0" json:"item_count"`                      // 件数
	PlacedAt    time.Time      `gorm:"index" json:"placed_at"`                                    // 下单时间
	CanceledAt  *time.Time     `gorm:"index" json:"canceled_at"`                                  // 取消时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
