package repository

import (
	"github.com/fandom-mart/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 品类数据访问
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetByCode(code string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountBySlugOrCode(slug, code string, excludeID uint) (int64, error)
	CountProducts(categoryID uint) (int64, error)
}

type GormCategoryRepository struct {
	dimension[models.Category]
}

func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{dimension[models.Category]{db: db, fkColumn: "category_id"}}
}

// List 品类没有上下架，始终返回全部
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	return r.list(false)
}
