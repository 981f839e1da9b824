package repository

import (
	"strings"

	"github.com/fandom-mart/internal/models"

	"gorm.io/gorm"
)

// TicketRepository 客服工单数据访问接口
type TicketRepository interface {
	Create(ticket *models.SupportTicket) error
	GetByID(id uint) (*models.SupportTicket, error)
	GetByTicketNo(ticketNo string) (*models.SupportTicket, error)
	List(filter TicketListFilter) ([]models.SupportTicket, int64, error)
	Update(ticket *models.SupportTicket) error
}

// GormTicketRepository GORM 实现
type GormTicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository 创建工单仓库
func NewTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// Create 创建工单
func (r *GormTicketRepository) Create(ticket *models.SupportTicket) error {
	return r.db.Create(ticket).Error
}

func (r *GormTicketRepository) first(query *gorm.DB) (*models.SupportTicket, error) {
	return firstOrNil[models.SupportTicket](query)
}

// GetByID 根据 ID 获取工单
func (r *GormTicketRepository) GetByID(id uint) (*models.SupportTicket, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByTicketNo 根据编号获取工单
func (r *GormTicketRepository) GetByTicketNo(ticketNo string) (*models.SupportTicket, error) {
	return r.first(r.db.Where("ticket_no = ?", ticketNo))
}

// List 工单列表
func (r *GormTicketRepository) List(filter TicketListFilter) ([]models.SupportTicket, int64, error) {
	query := r.db.Model(&models.SupportTicket{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if email := strings.TrimSpace(filter.Email); email != "" {
		query = query.Where("email = ?", email)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("ticket_no LIKE ? OR subject LIKE ? OR order_no LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	var tickets []models.SupportTicket
	if err := query.Order("id DESC").Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// Update 更新工单
func (r *GormTicketRepository) Update(ticket *models.SupportTicket) error {
	return r.db.Save(ticket).Error
}
