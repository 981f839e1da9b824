package models

import "time"

// KVEntry 作用域键值存储表（购物车、已购集合、订单账本）
type KVEntry struct {
	Key       string    `gorm:"column:kv_key;primaryKey;type:varchar(255)" json:"key"` // 形如 cart_<scope>
	Value     string    `gorm:"type:text;not null" json:"value"`                       // JSON 文本
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                               // 更新时间
}

// TableName 指定表名
func (KVEntry) TableName() string {
	return "kv_entries"
}
