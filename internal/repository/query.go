package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// firstOrNil 取第一条记录，未命中返回 (nil, nil)
func firstOrNil[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var out T
	err := query.First(&out, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// paginate pageSize <= 0 时不分页
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Limit(pageSize).Offset((page - 1) * pageSize)
	}
}

// whereIf 条件成立时才追加 Where
func whereIf(ok bool, condition string, args ...interface{}) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !ok {
			return db
		}
		return db.Where(condition, args...)
	}
}

func excludingID(id uint) func(*gorm.DB) *gorm.DB {
	return whereIf(id != 0, "id <> ?", id)
}

func count(query *gorm.DB) (int64, error) {
	var total int64
	err := query.Count(&total).Error
	return total, err
}

// 多语言 JSON 列按这些语言键检索
var localeKeys = []string{"zh-CN", "en-US", "th-TH"}

type dialect string

func dialectOf(db *gorm.DB) dialect {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	switch name := strings.ToLower(db.Dialector.Name()); name {
	case "postgres", "postgresql":
		return "postgres"
	case "":
		return "sqlite"
	default:
		return dialect(name)
	}
}

// jsonText 取 JSON 列中某语言键的文本
func (d dialect) jsonText(column, key string) string {
	if d == "postgres" {
		return fmt.Sprintf("(%s::jsonb ->> '%s')", column, key)
	}
	return fmt.Sprintf("json_extract(%s, '$.\"%s\"')", column, key)
}

func (d dialect) like() string {
	if d == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}

// keywordCondition 普通列与多语言列任一包含关键字即命中，返回条件与对应参数
func (d dialect) keywordCondition(keyword string, plain, localized []string) (string, []interface{}) {
	pattern := "%" + keyword + "%"
	var parts []string
	var args []interface{}
	add := func(expr string) {
		parts = append(parts, expr+" "+d.like()+" ?")
		args = append(args, pattern)
	}
	for _, column := range plain {
		if column = strings.TrimSpace(column); column != "" {
			add(column)
		}
	}
	for _, column := range localized {
		if column = strings.TrimSpace(column); column == "" {
			continue
		}
		for _, key := range localeKeys {
			add(d.jsonText(column, key))
		}
	}
	return strings.Join(parts, " OR "), args
}
