package public

import (
	"strings"

	"github.com/fandom-mart/internal/constants"
	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartItemRequest 加入购物车请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// CartQuantityRequest 设置数量请求
type CartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CreateGuestSession 签发访客令牌，前端随后通过 X-Guest-Token 请求头携带
func (h *Handler) CreateGuestSession(c *gin.Context) {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	response.Success(c, gin.H{
		"guest_token": token,
		"header":      constants.HeaderGuestToken,
	})
}

// GetCart 获取当前作用域购物车
func (h *Handler) GetCart(c *gin.Context) {
	scope := getScope(c)
	current := h.CartService.Get(c.Request.Context(), scope)
	response.Success(c, h.CartService.Summary(scope, current))
}

// AddCartItem 按商品 ID 加入购物车，重复加入数量 +1
func (h *Handler) AddCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	scope := getScope(c)
	updated, err := h.CartService.AddProduct(c.Request.Context(), scope, req.ProductID, i18n.ResolveLocale(c))
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, h.CartService.Summary(scope, updated))
}

// UpdateCartItem 设置商品数量，0 表示移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	scope := getScope(c)
	updated, err := h.CartService.SetQuantity(c.Request.Context(), scope, c.Param("id"), *req.Quantity)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, h.CartService.Summary(scope, updated))
}

// DeleteCartItem 移除商品
func (h *Handler) DeleteCartItem(c *gin.Context) {
	scope := getScope(c)
	updated, err := h.CartService.Remove(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, h.CartService.Summary(scope, updated))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	scope := getScope(c)
	updated, err := h.CartService.Clear(c.Request.Context(), scope)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, h.CartService.Summary(scope, updated))
}

// GetCartLimit 查询商品是否受限（已在购物车或已购买）
func (h *Handler) GetCartLimit(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	limited := h.CartService.IsLimited(c.Request.Context(), getScope(c), id)
	response.Success(c, gin.H{
		"id":      id,
		"limited": limited,
	})
}
