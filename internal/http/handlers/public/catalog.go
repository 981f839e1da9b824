package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetConfig 获取前台公共配置
func (h *Handler) GetConfig(c *gin.Context) {
	data, err := h.CatalogService.PublicConfig(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	response.Success(c, data)
}

// GetFandoms 作品列表
func (h *Handler) GetFandoms(c *gin.Context) {
	fandoms, err := h.CatalogService.ListFandoms(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.fandom_fetch_failed", err)
		return
	}
	response.Success(c, fandoms)
}

// GetFandomPage 作品页
func (h *Handler) GetFandomPage(c *gin.Context) {
	page, err := h.CatalogService.GetFandomPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrFandomNotFound) {
			respondError(c, response.CodeNotFound, "error.fandom_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.fandom_fetch_failed", err)
		return
	}
	response.Success(c, page)
}

// GetCategories 品类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetProducts 商品列表，支持作品、品类、关键词与预售筛选
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := pageQuery(c)

	fandomID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("fandom_id")), 10, 64)
	categoryID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("category_id")), 10, 64)
	preOrder, _ := strconv.ParseBool(strings.TrimSpace(c.Query("pre_order")))

	products, total, err := h.CatalogService.ListPublicProducts(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		FandomID:     uint(fandomID),
		CategoryID:   uint(categoryID),
		Search:       strings.TrimSpace(c.Query("search")),
		PreOrderOnly: preOrder,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 按 slug 或商品编码（如 GEN-FIG-0007）获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.GetPublicProduct(c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, product)
}
