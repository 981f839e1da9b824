package service

import (
	"strings"

	"github.com/fandom-mart/internal/constants"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"

	"github.com/shopspring/decimal"
)

var customRequestTransitions = map[string][]string{
	constants.CustomRequestStatusSubmitted: {constants.CustomRequestStatusQuoted, constants.CustomRequestStatusRejected},
	constants.CustomRequestStatusQuoted:    {constants.CustomRequestStatusAccepted, constants.CustomRequestStatusRejected},
	constants.CustomRequestStatusAccepted:  {},
	constants.CustomRequestStatusRejected:  {},
}

// CustomRequestInput 定制需求表单
type CustomRequestInput struct {
	UserID          uint
	Name            string
	Email           string
	FandomID        uint
	Character       string
	ItemType        string
	Description     string
	ReferenceImages []string
	Quantity        int
	BudgetAmount    decimal.Decimal
	BudgetCurrency  string
}

// CustomRequestService 定制需求服务
type CustomRequestService struct {
	repo       repository.CustomRequestRepository
	fandomRepo repository.FandomRepository
	converter  *CurrencyConverter
}

// NewCustomRequestService 创建定制需求服务
func NewCustomRequestService(repo repository.CustomRequestRepository, fandomRepo repository.FandomRepository, converter *CurrencyConverter) *CustomRequestService {
	return &CustomRequestService{repo: repo, fandomRepo: fandomRepo, converter: converter}
}

// Create 提交定制需求，预算折算为站点币种
func (s *CustomRequestService) Create(input CustomRequestInput) (*models.CustomRequest, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	itemType := strings.ToLower(strings.TrimSpace(input.ItemType))
	if name == "" || description == "" || !isCustomItemType(itemType) {
		return nil, ErrInvalidInput
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if input.FandomID != 0 {
		fandom, err := s.fandomRepo.GetByID(input.FandomID)
		if err != nil {
			return nil, err
		}
		if fandom == nil {
			return nil, ErrFandomNotFound
		}
	}
	currency := strings.ToUpper(strings.TrimSpace(input.BudgetCurrency))
	if currency == "" {
		currency = s.converter.Site()
	}
	budget := input.BudgetAmount.Round(2)
	converted, err := s.converter.ToSite(budget, currency)
	if err != nil {
		return nil, err
	}

	request := &models.CustomRequest{
		RequestNo:       generateSerialNo(constants.CustomRequestNoPrefix),
		UserID:          input.UserID,
		Name:            name,
		Email:           email,
		FandomID:        input.FandomID,
		Character:       strings.TrimSpace(input.Character),
		ItemType:        itemType,
		Description:     description,
		ReferenceImages: models.StringArray(input.ReferenceImages),
		Quantity:        quantity,
		BudgetAmount:    models.NewMoneyFromDecimal(budget),
		BudgetCurrency:  currency,
		BudgetConverted: models.NewMoneyFromDecimal(converted),
		SiteCurrency:    s.converter.Site(),
		Status:          constants.CustomRequestStatusSubmitted,
	}
	if err := s.repo.Create(request); err != nil {
		return nil, err
	}
	logger.Infow("custom_request_created",
		"request_no", request.RequestNo,
		"item_type", request.ItemType,
		"budget_converted", converted.StringFixed(2),
	)
	return request, nil
}

// List 需求列表
func (s *CustomRequestService) List(filter repository.CustomRequestListFilter) ([]models.CustomRequest, int64, error) {
	return s.repo.List(filter)
}

// Get 需求详情
func (s *CustomRequestService) Get(id uint) (*models.CustomRequest, error) {
	request, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrCustomRequestNotFound
	}
	return request, nil
}

// Quote 报价，状态进入 quoted
func (s *CustomRequestService) Quote(id uint, amount decimal.Decimal, note string) (*models.CustomRequest, error) {
	request, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ErrCustomRequestQuoteInvalid
	}
	if request.Status != constants.CustomRequestStatusQuoted &&
		!canTransition(customRequestTransitions, request.Status, constants.CustomRequestStatusQuoted) {
		return nil, ErrCustomRequestStatusInvalid
	}
	request.QuotedAmount = models.NewMoneyFromDecimal(amount)
	request.Status = constants.CustomRequestStatusQuoted
	if strings.TrimSpace(note) != "" {
		request.AdminNote = strings.TrimSpace(note)
	}
	if err := s.repo.Update(request); err != nil {
		return nil, err
	}
	return request, nil
}

// UpdateStatus 更新状态
func (s *CustomRequestService) UpdateStatus(id uint, status, note string) (*models.CustomRequest, error) {
	request, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if status == constants.CustomRequestStatusQuoted {
		return nil, ErrCustomRequestQuoteInvalid
	}
	if status != request.Status && !canTransition(customRequestTransitions, request.Status, status) {
		return nil, ErrCustomRequestStatusInvalid
	}
	request.Status = status
	if strings.TrimSpace(note) != "" {
		request.AdminNote = strings.TrimSpace(note)
	}
	if err := s.repo.Update(request); err != nil {
		return nil, err
	}
	return request, nil
}

func isCustomItemType(itemType string) bool {
	for _, candidate := range CustomItemTypes() {
		if candidate == itemType {
			return true
		}
	}
	return false
}
