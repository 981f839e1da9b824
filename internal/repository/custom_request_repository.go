package repository

import (
	"strings"

	"github.com/fandom-mart/internal/models"

	"gorm.io/gorm"
)

// CustomRequestRepository 定制需求数据访问接口
type CustomRequestRepository interface {
	Create(request *models.CustomRequest) error
	GetByID(id uint) (*models.CustomRequest, error)
	List(filter CustomRequestListFilter) ([]models.CustomRequest, int64, error)
	Update(request *models.CustomRequest) error
}

// GormCustomRequestRepository GORM 实现
type GormCustomRequestRepository struct {
	db *gorm.DB
}

// NewCustomRequestRepository 创建定制需求仓库
func NewCustomRequestRepository(db *gorm.DB) *GormCustomRequestRepository {
	return &GormCustomRequestRepository{db: db}
}

// Create 创建需求
func (r *GormCustomRequestRepository) Create(request *models.CustomRequest) error {
	return r.db.Create(request).Error
}

// GetByID 根据 ID 获取需求
func (r *GormCustomRequestRepository) GetByID(id uint) (*models.CustomRequest, error) {
	return firstOrNil[models.CustomRequest](r.db, id)
}

// List 需求列表
func (r *GormCustomRequestRepository) List(filter CustomRequestListFilter) ([]models.CustomRequest, int64, error) {
	query := r.db.Model(&models.CustomRequest{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FandomID != 0 {
		query = query.Where("fandom_id = ?", filter.FandomID)
	}
	if itemType := strings.TrimSpace(filter.ItemType); itemType != "" {
		query = query.Where("item_type = ?", itemType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	var requests []models.CustomRequest
	if err := query.Order("id DESC").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// Update 更新需求
func (r *GormCustomRequestRepository) Update(request *models.CustomRequest) error {
	return r.db.Save(request).Error
}
