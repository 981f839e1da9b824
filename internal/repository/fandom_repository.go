package repository

import (
	"github.com/fandom-mart/internal/models"

	"gorm.io/gorm"
)

// FandomRepository 作品（IP）数据访问
type FandomRepository interface {
	List(onlyActive bool) ([]models.Fandom, error)
	GetByID(id uint) (*models.Fandom, error)
	GetBySlug(slug string, onlyActive bool) (*models.Fandom, error)
	GetByCode(code string) (*models.Fandom, error)
	Create(fandom *models.Fandom) error
	Update(fandom *models.Fandom) error
	Delete(id uint) error
	CountBySlugOrCode(slug, code string, excludeID uint) (int64, error)
	CountProducts(fandomID uint) (int64, error)
}

type GormFandomRepository struct {
	dimension[models.Fandom]
}

func NewFandomRepository(db *gorm.DB) *GormFandomRepository {
	return &GormFandomRepository{dimension[models.Fandom]{db: db, fkColumn: "fandom_id"}}
}

func (r *GormFandomRepository) List(onlyActive bool) ([]models.Fandom, error) {
	return r.list(onlyActive)
}

// GetBySlug 店面作品页入口
func (r *GormFandomRepository) GetBySlug(slug string, onlyActive bool) (*models.Fandom, error) {
	return firstOrNil[models.Fandom](r.db.Where("slug = ?", slug).Scopes(whereIf(onlyActive, "is_active = ?", true)))
}
