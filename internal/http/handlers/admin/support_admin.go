package admin

import (
	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TicketUpdateRequest 工单处理请求
type TicketUpdateRequest struct {
	Status    string  `json:"status"`
	AdminNote *string `json:"admin_note"`
}

// CustomRequestQuoteRequest 定制需求报价请求（站点币种）
type CustomRequestQuoteRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// CustomRequestStatusRequest 定制需求状态请求
type CustomRequestStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// GetAdminTickets 工单列表
func (h *Handler) GetAdminTickets(c *gin.Context) {
	page, pageSize := pageQuery(c)
	q := newListQuery(c)
	tickets, total, err := h.TicketService.List(repository.TicketListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   q.uint("user_id"),
		Status:   q.text("status"),
		Email:    q.text("email"),
		Keyword:  q.text("keyword"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.ticket_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, tickets, response.NewPagination(page, pageSize, total))
}

// GetAdminTicket 工单详情
func (h *Handler) GetAdminTicket(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	ticket, err := h.TicketService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, ticketErrorRules, response.CodeInternal, "error.ticket_fetch_failed")
		return
	}
	response.Success(c, ticket)
}

// UpdateAdminTicket 更新工单状态与备注
func (h *Handler) UpdateAdminTicket(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	var req TicketUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	ticket, err := h.TicketService.Update(id, service.TicketUpdateInput{
		Status:    req.Status,
		AdminNote: req.AdminNote,
	})
	if err != nil {
		respondWithMappedError(c, err, ticketErrorRules, response.CodeInternal, "error.ticket_update_failed")
		return
	}
	requestLog(c).Infow("admin_ticket_updated",
		"operator_admin_id", currentAdminID(c),
		"ticket_id", ticket.ID,
		"status", ticket.Status,
	)
	response.Success(c, ticket)
}

// GetAdminCustomRequests 定制需求列表
func (h *Handler) GetAdminCustomRequests(c *gin.Context) {
	page, pageSize := pageQuery(c)
	q := newListQuery(c)
	requests, total, err := h.CustomRequestService.List(repository.CustomRequestListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   q.uint("user_id"),
		Status:   q.text("status"),
		FandomID: q.uint("fandom_id"),
		ItemType: q.text("item_type"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.custom_request_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, requests, response.NewPagination(page, pageSize, total))
}

// GetAdminCustomRequest 定制需求详情
func (h *Handler) GetAdminCustomRequest(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	request, err := h.CustomRequestService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, customRequestErrorRules, response.CodeInternal, "error.custom_request_fetch_failed")
		return
	}
	response.Success(c, request)
}

// QuoteCustomRequest 报价
func (h *Handler) QuoteCustomRequest(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	var req CustomRequestQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	request, err := h.CustomRequestService.Quote(id, req.Amount, req.Note)
	if err != nil {
		respondWithMappedError(c, err, customRequestErrorRules, response.CodeInternal, "error.custom_request_update_failed")
		return
	}
	requestLog(c).Infow("admin_custom_request_quoted",
		"operator_admin_id", currentAdminID(c),
		"request_id", request.ID,
		"quote", request.QuotedAmount.String(),
	)
	response.Success(c, request)
}

// UpdateCustomRequestStatus 接受或拒绝定制需求
func (h *Handler) UpdateCustomRequestStatus(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	var req CustomRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	request, err := h.CustomRequestService.UpdateStatus(id, req.Status, req.Note)
	if err != nil {
		respondWithMappedError(c, err, customRequestErrorRules, response.CodeInternal, "error.custom_request_update_failed")
		return
	}
	response.Success(c, request)
}
