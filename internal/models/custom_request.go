package models

import (
	"time"

	"gorm.io/gorm"
)

// CustomRequest 定制周边需求表
type CustomRequest struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	RequestNo       string         `gorm:"uniqueIndex;not null" json:"request_no"`                        // 需求编号
	UserID          uint           `gorm:"index;not null;default:0" json:"user_id,omitempty"`             // 用户ID（游客为 0）
	Name            string         `gorm:"type:varchar(100);not null" json:"name"`                        // 联系人
	Email           string         `gorm:"type:varchar(255);index;not null" json:"email"`                 // 联系邮箱
	FandomID        uint           `gorm:"index;not null;default:0" json:"fandom_id"`                     // 作品ID（可选）
	Character       string         `gorm:"type:varchar(100)" json:"character"`                            // 角色
	ItemType        string         `gorm:"type:varchar(50);not null" json:"item_type"`                    // 周边类型
	Description     string         `gorm:"type:text;not null" json:"description"`                         // 需求描述
	ReferenceImages StringArray    `gorm:"type:json" json:"reference_images"`                             // 参考图
	Quantity        int            `gorm:"not null;default:1" json:"quantity"`                            // 数量
	BudgetAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"budget_amount"`    // 预算（原币种）
	BudgetCurrency  string         `gorm:"type:varchar(10);not null" json:"budget_currency"`              // 预算币种
	BudgetConverted Money          `gorm:"type:decimal(20,2);not null;default:0" json:"budget_converted"` // 折算为站点币种后的预算
	SiteCurrency    string         `gorm:"type:varchar(10);not null" json:"site_currency"`                // 站点币种
	QuotedAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"quoted_amount"`    // 报价（站点币种）
	Status          string         `gorm:"type:varchar(20);index;not null" json:"status"`                 // 状态
	AdminNote       string         `gorm:"type:text" json:"admin_note,omitempty"`                         // 处理备注
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (CustomRequest) TableName() string {
	return "custom_requests"
}
