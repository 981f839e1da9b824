package admin

import (
	"strings"
	"time"

	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FandomRequest 作品创建/更新请求
type FandomRequest struct {
	Code            string                 `json:"code" binding:"required"`
	Slug            string                 `json:"slug" binding:"required"`
	NameJSON        map[string]interface{} `json:"name" binding:"required"`
	DescriptionJSON map[string]interface{} `json:"description"`
	Banner          string                 `json:"banner"`
	IsActive        *bool                  `json:"is_active"`
	SortOrder       int                    `json:"sort_order"`
}

// CategoryRequest 品类创建/更新请求
type CategoryRequest struct {
	Code      string                 `json:"code" binding:"required"`
	Slug      string                 `json:"slug" binding:"required"`
	NameJSON  map[string]interface{} `json:"name" binding:"required"`
	Icon      string                 `json:"icon"`
	SortOrder int                    `json:"sort_order"`
}

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	FandomID           uint                   `json:"fandom_id" binding:"required"`
	CategoryID         uint                   `json:"category_id" binding:"required"`
	Slug               string                 `json:"slug" binding:"required"`
	TitleJSON          map[string]interface{} `json:"title" binding:"required"`
	DescriptionJSON    map[string]interface{} `json:"description"`
	PriceAmount        decimal.Decimal        `json:"price_amount"`
	PriceCurrency      string                 `json:"price_currency"`
	Images             []string               `json:"images"`
	Tags               []string               `json:"tags"`
	TrackStock         bool                   `json:"track_stock"`
	Stock              int                    `json:"stock"`
	IsPreOrder         bool                   `json:"is_pre_order"`
	LimitOnePerAccount bool                   `json:"limit_one_per_account"`
	ReleaseAt          *time.Time             `json:"release_at"`
	IsActive           *bool                  `json:"is_active"`
	SortOrder          int                    `json:"sort_order"`
}

func (r FandomRequest) toInput() service.FandomInput {
	return service.FandomInput{
		Code:            r.Code,
		Slug:            r.Slug,
		NameJSON:        r.NameJSON,
		DescriptionJSON: r.DescriptionJSON,
		Banner:          strings.TrimSpace(r.Banner),
		IsActive:        r.IsActive,
		SortOrder:       r.SortOrder,
	}
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Code:      r.Code,
		Slug:      r.Slug,
		NameJSON:  r.NameJSON,
		Icon:      strings.TrimSpace(r.Icon),
		SortOrder: r.SortOrder,
	}
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		FandomID:           r.FandomID,
		CategoryID:         r.CategoryID,
		Slug:               r.Slug,
		TitleJSON:          r.TitleJSON,
		DescriptionJSON:    r.DescriptionJSON,
		PriceAmount:        r.PriceAmount,
		PriceCurrency:      r.PriceCurrency,
		Images:             r.Images,
		Tags:               r.Tags,
		TrackStock:         r.TrackStock,
		Stock:              r.Stock,
		IsPreOrder:         r.IsPreOrder,
		LimitOnePerAccount: r.LimitOnePerAccount,
		ReleaseAt:          r.ReleaseAt,
		IsActive:           r.IsActive,
		SortOrder:          r.SortOrder,
	}
}

// ====================  作品  ====================

// GetAdminFandoms 作品列表（含下架）
func (h *Handler) GetAdminFandoms(c *gin.Context) {
	fandoms, err := h.CatalogService.ListFandomsAdmin()
	if err != nil {
		respondError(c, response.CodeInternal, "error.fandom_fetch_failed", err)
		return
	}
	response.Success(c, fandoms)
}

// CreateFandom 创建作品
func (h *Handler) CreateFandom(c *gin.Context) {
	var req FandomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	fandom, err := h.CatalogService.CreateFandom(c.Request.Context(), req.toInput())
	if err != nil {
		respondCatalogError(c, err, "error.fandom_create_failed")
		return
	}
	response.Success(c, fandom)
}

// UpdateFandom 更新作品
func (h *Handler) UpdateFandom(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	var req FandomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	fandom, err := h.CatalogService.UpdateFandom(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondCatalogError(c, err, "error.fandom_update_failed")
		return
	}
	response.Success(c, fandom)
}

// DeleteFandom 删除作品，仍有商品时拒绝
func (h *Handler) DeleteFandom(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteFandom(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err, "error.fandom_delete_failed")
		return
	}
	response.Success(c, nil)
}

// ====================  品类  ====================

// GetAdminCategories 品类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建品类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CatalogService.CreateCategory(c.Request.Context(), req.toInput())
	if err != nil {
		respondCatalogError(c, err, "error.category_create_failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新品类，编码变化时重新生成相关商品编码
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CatalogService.UpdateCategory(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondCatalogError(c, err, "error.category_update_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除品类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err, "error.category_delete_failed")
		return
	}
	response.Success(c, nil)
}

// ====================  商品  ====================

// GetAdminProducts 商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := pageQuery(c)
	q := newListQuery(c)
	products, total, err := h.CatalogService.ListProductsAdmin(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		FandomID:     q.uint("fandom_id"),
		CategoryID:   q.uint("category_id"),
		Search:       q.text("search"),
		PreOrderOnly: q.bool("pre_order"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetAdminProduct 商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	product, err := h.CatalogService.GetProductAdmin(id)
	if err != nil {
		respondCatalogError(c, err, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品，编码形如 GEN-FIG-0007
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.CreateProduct(c.Request.Context(), req.toInput())
	if err != nil {
		respondCatalogError(c, err, "error.product_create_failed")
		return
	}
	requestLog(c).Infow("admin_product_created",
		"operator_admin_id", currentAdminID(c),
		"product_id", product.ID,
		"code", product.Code,
	)
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.UpdateProduct(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondCatalogError(c, err, "error.product_update_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c, "error.bad_request")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err, "error.product_delete_failed")
		return
	}
	response.Success(c, nil)
}

// GetPreOrders 预售商品及预订数量
func (h *Handler) GetPreOrders(c *gin.Context) {
	summaries, err := h.CatalogService.ListPreOrders()
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, summaries)
}
