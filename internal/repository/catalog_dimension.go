package repository

import (
	"strings"

	"github.com/fandom-mart/internal/models"

	"gorm.io/gorm"
)

// dimension 作品与品类共用的读写：二者都有 code、slug，且被商品通过 fkColumn 引用
type dimension[T any] struct {
	db       *gorm.DB
	fkColumn string
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (d dimension[T]) list(activeOnly bool) ([]T, error) {
	var rows []T
	err := d.db.Model(new(T)).Scopes(whereIf(activeOnly, "is_active = ?", true)).
		Order("sort_order DESC, id ASC").Find(&rows).Error
	return rows, err
}

func (d dimension[T]) GetByID(id uint) (*T, error) {
	return firstOrNil[T](d.db.Where("id = ?", id))
}

func (d dimension[T]) GetByCode(code string) (*T, error) {
	return firstOrNil[T](d.db.Where("code = ?", normalizeCode(code)))
}

func (d dimension[T]) Create(row *T) error { return d.db.Create(row).Error }

func (d dimension[T]) Update(row *T) error { return d.db.Save(row).Error }

func (d dimension[T]) Delete(id uint) error { return d.db.Delete(new(T), id).Error }

// CountBySlugOrCode 冲突检测，更新时排除自身
func (d dimension[T]) CountBySlugOrCode(slug, code string, excludeID uint) (int64, error) {
	return count(d.db.Model(new(T)).Where("slug = ? OR code = ?", slug, code).Scopes(excludingID(excludeID)))
}

// CountProducts 删除前检查是否仍被商品引用
func (d dimension[T]) CountProducts(id uint) (int64, error) {
	return count(d.db.Model(&models.Product{}).Where(d.fkColumn+" = ?", id))
}
