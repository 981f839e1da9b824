package public

import (
	"errors"

	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrder 将当前购物车结算为订单
func (h *Handler) CreateOrder(c *gin.Context) {
	scope := getScope(c)
	order, err := h.OrderService.Checkout(c.Request.Context(), scope)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	requestLog(c).Infow("order_checkout_completed", "scope", scope.String(), "order_no", order.ID)
	response.Success(c, order)
}

// ListOrders 当前作用域订单账本，最新在前
func (h *Handler) ListOrders(c *gin.Context) {
	response.Success(c, h.OrderService.List(c.Request.Context(), getScope(c)))
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.OrderService.Get(c.Request.Context(), getScope(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消待支付订单
func (h *Handler) CancelOrder(c *gin.Context) {
	order, err := h.OrderService.Cancel(c.Request.Context(), getScope(c), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}
