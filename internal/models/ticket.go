package models

import (
	"time"

	"gorm.io/gorm"
)

// SupportTicket 客服工单表
type SupportTicket struct {
	ID         uint           `gorm:"primarykey" json:"id"`                              // 主键
	TicketNo   string         `gorm:"uniqueIndex;not null" json:"ticket_no"`             // 工单编号
	UserID     uint           `gorm:"index;not null;default:0" json:"user_id,omitempty"` // 用户ID（游客为 0）
	Name       string         `gorm:"type:varchar(100);not null" json:"name"`            // 联系人
	Email      string         `gorm:"type:varchar(255);index;not null" json:"email"`     // 联系邮箱
	OrderNo    string         `gorm:"type:varchar(64);index" json:"order_no,omitempty"`  // 关联订单
	Subject    string         `gorm:"type:varchar(255);not null" json:"subject"`         // 主题
	Message    string         `gorm:"type:text;not null" json:"message"`                 // 内容
	Status     string         `gorm:"type:varchar(20);index;not null" json:"status"`     // 状态
	AdminNote  string         `gorm:"type:text" json:"admin_note,omitempty"`             // 处理备注
	ResolvedAt *time.Time     `json:"resolved_at"`                                       // 解决时间
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (SupportTicket) TableName() string {
	return "support_tickets"
}
