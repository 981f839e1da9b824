package repository

import (
	"strings"
	"time"

	"github.com/fandom-mart/internal/constants"
	"github.com/fandom-mart/internal/models"

	"gorm.io/gorm"
)

// UserRepository 前台会员
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	ListByIDs(ids []uint) ([]models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	List(filter UserListFilter) ([]models.User, int64, error)
	BatchUpdateStatus(userIDs []uint, status string) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	return firstOrNil[models.User](r.db, "email = ?", email)
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return firstOrNil[models.User](r.db, id)
}

func (r *GormUserRepository) ListByIDs(ids []uint) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// timeRange 追加 [from, to] 闭区间条件
func timeRange(column string, from, to *time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" <= ?", *to)
		}
		return db
	}
}

// List 后台会员列表，关键字匹配邮箱与昵称
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	keyword := strings.TrimSpace(filter.Keyword)
	condition, args := dialectOf(r.db).keywordCondition(keyword, []string{"email", "display_name"}, nil)
	query := r.db.Model(&models.User{}).Scopes(
		timeRange("created_at", filter.CreatedFrom, filter.CreatedTo),
		timeRange("last_login_at", filter.LastLoginFrom, filter.LastLoginTo),
		whereIf(keyword != "", condition, args...),
		whereIf(filter.Status != "", "status = ?", filter.Status),
	)
	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}
	var users []models.User
	err = query.Scopes(paginate(filter.Page, filter.PageSize)).Order("id DESC").Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// BatchUpdateStatus 禁用时同时吊销已签发的令牌
func (r *GormUserRepository) BatchUpdateStatus(userIDs []uint, status string) error {
	if len(userIDs) == 0 {
		return nil
	}
	now := time.Now()
	updates := map[string]interface{}{"status": status, "updated_at": now}
	if strings.EqualFold(strings.TrimSpace(status), constants.UserStatusDisabled) {
		updates["token_version"] = gorm.Expr("token_version + 1")
		updates["token_invalid_before"] = now
	}
	return r.db.Model(&models.User{}).Where("id IN ?", userIDs).Updates(updates).Error
}
