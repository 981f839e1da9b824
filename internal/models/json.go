package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// scanJSON 兼容驱动返回 []byte 或 string 两种形式
func scanJSON(value interface{}, dest interface{}) error {
	switch raw := value.(type) {
	case []byte:
		return json.Unmarshal(raw, dest)
	case string:
		return json.Unmarshal([]byte(raw), dest)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
}

// JSON 多语言字段，键为 th-TH / en-US / zh-CN
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = JSON{}
		return nil
	}
	return scanJSON(value, j)
}

var localeFallbacks = []string{"th-TH", "en-US", "zh-CN"}

// Text 取指定语言，缺失时按 泰 -> 英 -> 中 回退
func (j JSON) Text(locale string) string {
	if value, ok := j[locale].(string); ok && value != "" {
		return value
	}
	for _, key := range localeFallbacks {
		if value, ok := j[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// StringArray 以 JSON 数组存储的标签、图片列表
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	return scanJSON(value, s)
}
