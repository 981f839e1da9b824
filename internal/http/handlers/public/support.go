package public

import (
	handlershared "github.com/fandom-mart/internal/http/handlers/shared"
	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TicketCreateRequest 提交工单请求
type TicketCreateRequest struct {
	Name           string                              `json:"name" binding:"required"`
	Email          string                              `json:"email" binding:"required"`
	OrderNo        string                              `json:"order_no"`
	Subject        string                              `json:"subject" binding:"required"`
	Message        string                              `json:"message" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// CustomRequestCreateRequest 定制需求表单请求
type CustomRequestCreateRequest struct {
	Name            string                              `json:"name" binding:"required"`
	Email           string                              `json:"email" binding:"required"`
	FandomID        uint                                `json:"fandom_id" binding:"required"`
	Character       string                              `json:"character"`
	ItemType        string                              `json:"item_type" binding:"required"`
	Description     string                              `json:"description" binding:"required"`
	ReferenceImages []string                            `json:"reference_images"`
	Quantity        int                                 `json:"quantity"`
	BudgetAmount    decimal.Decimal                     `json:"budget_amount"`
	BudgetCurrency  string                              `json:"budget_currency"`
	CaptchaPayload  handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// CreateTicket 提交客服工单，登录用户自动关联
func (h *Handler) CreateTicket(c *gin.Context) {
	var req TicketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, service.CaptchaSceneTicket, req.CaptchaPayload.ToServicePayload()) {
		return
	}
	ticket, err := h.TicketService.Create(service.TicketInput{
		UserID:  optionalUserID(c),
		Name:    req.Name,
		Email:   req.Email,
		OrderNo: req.OrderNo,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondWithMappedError(c, err, ticketCreateErrorRules, response.CodeInternal, "error.ticket_create_failed")
		return
	}
	response.Success(c, ticket)
}

// CreateCustomRequest 提交定制周边需求
func (h *Handler) CreateCustomRequest(c *gin.Context) {
	var req CustomRequestCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, service.CaptchaSceneCustomRequest, req.CaptchaPayload.ToServicePayload()) {
		return
	}
	request, err := h.CustomRequestService.Create(service.CustomRequestInput{
		UserID:          optionalUserID(c),
		Name:            req.Name,
		Email:           req.Email,
		FandomID:        req.FandomID,
		Character:       req.Character,
		ItemType:        req.ItemType,
		Description:     req.Description,
		ReferenceImages: req.ReferenceImages,
		Quantity:        req.Quantity,
		BudgetAmount:    req.BudgetAmount,
		BudgetCurrency:  req.BudgetCurrency,
	})
	if err != nil {
		respondWithMappedError(c, err, customRequestCreateErrorRules, response.CodeInternal, "error.custom_request_create_failed")
		return
	}
	response.Success(c, request)
}
