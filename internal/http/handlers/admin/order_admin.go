package admin

import (
	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
)

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
}

// AdminListOrders 查询订单镜像表，可按 scope、用户、状态与下单时间筛选
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := pageQuery(c)
	q := newListQuery(c)
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      q.uint("user_id"),
		ScopeID:     q.text("scope"),
		Status:      q.text("status"),
		OrderNo:     q.text("order_no"),
		CreatedFrom: q.time("created_from"),
		CreatedTo:   q.time("created_to"),
	}
	if q.err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", q.err)
		return
	}
	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// AdminGetOrder :id 为订单号
func (h *Handler) AdminGetOrder(c *gin.Context) {
	order, err := h.OrderService.GetAdmin(c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatusAdmin(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	requestLog(c).Infow("admin_order_status_updated",
		"operator_admin_id", currentAdminID(c),
		"order_no", order.OrderNo,
		"status", order.Status,
	)
	response.Success(c, order)
}
