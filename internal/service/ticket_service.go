package service

import (
	"strings"
	"time"

	"github.com/fandom-mart/internal/constants"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"
)

// 工单状态流转；resolved 可重新打开
var ticketTransitions = map[string][]string{
	constants.TicketStatusOpen:       {constants.TicketStatusInProgress, constants.TicketStatusResolved, constants.TicketStatusClosed},
	constants.TicketStatusInProgress: {constants.TicketStatusResolved, constants.TicketStatusClosed},
	constants.TicketStatusResolved:   {constants.TicketStatusClosed, constants.TicketStatusOpen},
	constants.TicketStatusClosed:     {},
}

// TicketInput 提交工单输入
type TicketInput struct {
	UserID  uint
	Name    string
	Email   string
	OrderNo string
	Subject string
	Message string
}

// TicketUpdateInput 后台处理工单输入
type TicketUpdateInput struct {
	Status    string
	AdminNote *string
}

// TicketService 客服工单服务
type TicketService struct {
	repo repository.TicketRepository
}

// NewTicketService 创建工单服务
func NewTicketService(repo repository.TicketRepository) *TicketService {
	return &TicketService{repo: repo}
}

// Create 提交工单
func (s *TicketService) Create(input TicketInput) (*models.SupportTicket, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	name := strings.TrimSpace(input.Name)
	if subject == "" || message == "" || name == "" {
		return nil, ErrInvalidInput
	}
	ticket := &models.SupportTicket{
		TicketNo: generateSerialNo(constants.TicketNoPrefix),
		UserID:   input.UserID,
		Name:     name,
		Email:    email,
		OrderNo:  strings.TrimSpace(input.OrderNo),
		Subject:  subject,
		Message:  message,
		Status:   constants.TicketStatusOpen,
	}
	if err := s.repo.Create(ticket); err != nil {
		return nil, err
	}
	logger.Infow("ticket_created", "ticket_no", ticket.TicketNo, "user_id", ticket.UserID)
	return ticket, nil
}

// List 工单列表
func (s *TicketService) List(filter repository.TicketListFilter) ([]models.SupportTicket, int64, error) {
	return s.repo.List(filter)
}

// ListByUser 用户自己的工单
func (s *TicketService) ListByUser(userID uint, page, pageSize int) ([]models.SupportTicket, int64, error) {
	if userID == 0 {
		return nil, 0, ErrNotFound
	}
	return s.repo.List(repository.TicketListFilter{UserID: userID, Page: page, PageSize: pageSize})
}

// Get 工单详情
func (s *TicketService) Get(id uint) (*models.SupportTicket, error) {
	ticket, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

// Update 后台更新工单状态与备注
func (s *TicketService) Update(id uint, input TicketUpdateInput) (*models.SupportTicket, error) {
	ticket, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if status := strings.ToLower(strings.TrimSpace(input.Status)); status != "" && status != ticket.Status {
		if !canTransition(ticketTransitions, ticket.Status, status) {
			return nil, ErrTicketStatusInvalid
		}
		ticket.Status = status
		switch status {
		case constants.TicketStatusResolved:
			now := time.Now()
			ticket.ResolvedAt = &now
		case constants.TicketStatusOpen:
			ticket.ResolvedAt = nil
		}
	}
	if input.AdminNote != nil {
		ticket.AdminNote = strings.TrimSpace(*input.AdminNote)
	}
	if err := s.repo.Update(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func canTransition(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}
