package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fandom-mart/internal/cache"
	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/constants"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogOptions 目录服务参数
type CatalogOptions struct {
	SiteCurrency   string
	Currencies     []string
	CacheTTL       time.Duration
	CaptchaEnabled bool
}

// CatalogService 作品、品类与商品
type CatalogService struct {
	fandomRepo   repository.FandomRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	opts         CatalogOptions
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	fandomRepo repository.FandomRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	opts CatalogOptions,
) *CatalogService {
	return &CatalogService{
		fandomRepo:   fandomRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		opts:         opts,
	}
}

// FandomInput 作品创建/更新输入
type FandomInput struct {
	Code            string
	Slug            string
	NameJSON        map[string]interface{}
	DescriptionJSON map[string]interface{}
	Banner          string
	IsActive        *bool
	SortOrder       int
}

// CategoryInput 品类创建/更新输入
type CategoryInput struct {
	Code      string
	Slug      string
	NameJSON  map[string]interface{}
	Icon      string
	SortOrder int
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	FandomID           uint
	CategoryID         uint
	Slug               string
	TitleJSON          map[string]interface{}
	DescriptionJSON    map[string]interface{}
	PriceAmount        decimal.Decimal
	PriceCurrency      string
	Images             []string
	Tags               []string
	TrackStock         bool
	Stock              int
	IsPreOrder         bool
	LimitOnePerAccount bool
	ReleaseAt          *time.Time
	IsActive           *bool
	SortOrder          int
}

// FandomPage 作品页
type FandomPage struct {
	Fandom   models.Fandom    `json:"fandom"`
	Products []models.Product `json:"products"`
}

// PreOrderSummary 预售商品预订汇总
type PreOrderSummary struct {
	Product     models.Product `json:"product"`
	ReservedQty int64          `json:"reserved_qty"`
	OrderCount  int64          `json:"order_count"`
}

// ListFandoms 公开作品列表
func (s *CatalogService) ListFandoms(ctx context.Context) ([]models.Fandom, error) {
	var cached []models.Fandom
	if hit, err := cache.GetCatalog(ctx, cache.CatalogFandoms, &cached); err == nil && hit {
		return cached, nil
	}
	fandoms, err := s.fandomRepo.List(true)
	if err != nil {
		return nil, err
	}
	s.storeCache(ctx, cache.CatalogFandoms, fandoms)
	return fandoms, nil
}

// GetFandomPage 作品页：作品信息与上架商品
func (s *CatalogService) GetFandomPage(ctx context.Context, slug string) (*FandomPage, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	var cached FandomPage
	if hit, err := cache.GetCatalog(ctx, cache.CatalogFandomPage(slug), &cached); err == nil && hit {
		return &cached, nil
	}
	fandom, err := s.fandomRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if fandom == nil {
		return nil, ErrFandomNotFound
	}
	products, _, err := s.productRepo.List(repository.ProductListFilter{
		FandomID:     fandom.ID,
		OnlyActive:   true,
		WithRelation: true,
	})
	if err != nil {
		return nil, err
	}
	page := &FandomPage{Fandom: *fandom, Products: products}
	s.storeCache(ctx, cache.CatalogFandomPage(slug), page)
	return page, nil
}

// ListCategories 品类列表
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, err := cache.GetCatalog(ctx, cache.CatalogCategories, &cached); err == nil && hit {
		return cached, nil
	}
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	s.storeCache(ctx, cache.CatalogCategories, categories)
	return categories, nil
}

// ListPublicProducts 公开商品列表
func (s *CatalogService) ListPublicProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.WithRelation = true
	return s.productRepo.List(filter)
}

// GetPublicProduct 按 slug 或商品编码获取上架商品
func (s *CatalogService) GetPublicProduct(slugOrCode string) (*models.Product, error) {
	key := strings.TrimSpace(slugOrCode)
	var (
		product *models.Product
		err     error
	)
	if _, parseErr := ParseProductCode(key); parseErr == nil {
		product, err = s.productRepo.GetByCode(key)
	} else {
		product, err = s.productRepo.GetBySlug(key, true)
	}
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// PublicConfig 前台公共配置
func (s *CatalogService) PublicConfig(ctx context.Context) (map[string]interface{}, error) {
	var cached map[string]interface{}
	if hit, err := cache.GetCatalog(ctx, cache.CatalogPublicConfig, &cached); err == nil && hit {
		return cached, nil
	}
	fandoms, err := s.fandomRepo.List(true)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(fandoms))
	for _, fandom := range fandoms {
		codes = append(codes, fandom.Code)
	}
	currencies := append([]string(nil), s.opts.Currencies...)
	sort.Strings(currencies)
	result := map[string]interface{}{
		"site_currency":     s.opts.SiteCurrency,
		"currencies":        currencies,
		"fandom_codes":      codes,
		"custom_item_types": CustomItemTypes(),
		"captcha_enabled":   s.opts.CaptchaEnabled,
		"guest_header":      constants.HeaderGuestToken,
	}
	s.storeCache(ctx, cache.CatalogPublicConfig, result)
	return result, nil
}

// ListFandomsAdmin 后台作品列表
func (s *CatalogService) ListFandomsAdmin() ([]models.Fandom, error) {
	return s.fandomRepo.List(false)
}

// CreateFandom 创建作品
func (s *CatalogService) CreateFandom(ctx context.Context, input FandomInput) (*models.Fandom, error) {
	fandom := &models.Fandom{IsActive: true}
	if err := s.applyFandomInput(fandom, input, 0); err != nil {
		return nil, err
	}
	if err := s.fandomRepo.Create(fandom); err != nil {
		return nil, err
	}
	s.invalidate(ctx, fandom.Slug)
	return fandom, nil
}

// UpdateFandom 更新作品
func (s *CatalogService) UpdateFandom(ctx context.Context, id uint, input FandomInput) (*models.Fandom, error) {
	fandom, err := s.fandomRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fandom == nil {
		return nil, ErrFandomNotFound
	}
	oldSlug := fandom.Slug
	if err := s.applyFandomInput(fandom, input, id); err != nil {
		return nil, err
	}
	if err := s.fandomRepo.Update(fandom); err != nil {
		return nil, err
	}
	s.invalidate(ctx, oldSlug, fandom.Slug)
	return fandom, nil
}

// DeleteFandom 删除作品，仍有商品时拒绝
func (s *CatalogService) DeleteFandom(ctx context.Context, id uint) error {
	fandom, err := s.fandomRepo.GetByID(id)
	if err != nil {
		return err
	}
	if fandom == nil {
		return ErrFandomNotFound
	}
	count, err := s.fandomRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrFandomInUse
	}
	if err := s.fandomRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, fandom.Slug)
	return nil
}

func (s *CatalogService) applyFandomInput(fandom *models.Fandom, input FandomInput, excludeID uint) error {
	code, err := normalizeCatalogCode(input.Code, 3, 5)
	if err != nil {
		return err
	}
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if slug == "" || len(input.NameJSON) == 0 {
		return ErrInvalidInput
	}
	count, err := s.fandomRepo.CountBySlugOrCode(slug, code, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	fandom.Code = code
	fandom.Slug = slug
	fandom.NameJSON = models.JSON(input.NameJSON)
	fandom.DescriptionJSON = models.JSON(input.DescriptionJSON)
	fandom.Banner = strings.TrimSpace(input.Banner)
	fandom.SortOrder = input.SortOrder
	if input.IsActive != nil {
		fandom.IsActive = *input.IsActive
	}
	return nil
}

// CreateCategory 创建品类
func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	category := &models.Category{}
	if err := s.applyCategoryInput(category, input, 0); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// UpdateCategory 更新品类
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if err := s.applyCategoryInput(category, input, id); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// DeleteCategory 删除品类，仍有商品时拒绝
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) applyCategoryInput(category *models.Category, input CategoryInput, excludeID uint) error {
	code, err := normalizeCatalogCode(input.Code, 2, 5)
	if err != nil {
		return err
	}
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if slug == "" || len(input.NameJSON) == 0 {
		return ErrInvalidInput
	}
	count, err := s.categoryRepo.CountBySlugOrCode(slug, code, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	category.Code = code
	category.Slug = slug
	category.NameJSON = models.JSON(input.NameJSON)
	category.Icon = strings.TrimSpace(input.Icon)
	category.SortOrder = input.SortOrder
	return nil
}

// ListProductsAdmin 后台商品列表
func (s *CatalogService) ListProductsAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = false
	filter.WithRelation = true
	return s.productRepo.List(filter)
}

// GetProductAdmin 后台商品详情
func (s *CatalogService) GetProductAdmin(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct 创建商品并分配编码
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := &models.Product{IsActive: true}
	if err := s.applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.assignProductCode(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.Fandom.Slug)
	logger.Infow("catalog_product_created", "product_id", product.ID, "code", product.Code)
	return product, nil
}

// UpdateProduct 更新商品；作品或品类变化时重新分配编码
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	oldFandomSlug := product.Fandom.Slug
	recode := product.FandomID != input.FandomID || product.CategoryID != input.CategoryID
	if err := s.applyProductInput(product, input); err != nil {
		return nil, err
	}
	if recode {
		if err := s.assignProductCode(product); err != nil {
			return nil, err
		}
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, oldFandomSlug, product.Fandom.Slug)
	return product, nil
}

// DeleteProduct 删除商品
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, product.Fandom.Slug)
	return nil
}

// ListPreOrders 预售商品及有效订单中的预订数量
func (s *CatalogService) ListPreOrders() ([]PreOrderSummary, error) {
	products, _, err := s.productRepo.List(repository.ProductListFilter{PreOrderOnly: true, WithRelation: true})
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	reservations, err := s.orderRepo.SumPreOrderReservations(ids, []string{string(cart.OrderStatusCanceled)})
	if err != nil {
		return nil, err
	}
	byProduct := make(map[uint]repository.PreOrderReservation, len(reservations))
	for _, row := range reservations {
		byProduct[row.ProductID] = row
	}
	result := make([]PreOrderSummary, 0, len(products))
	for _, product := range products {
		row := byProduct[product.ID]
		result = append(result, PreOrderSummary{
			Product:     product,
			ReservedQty: row.ReservedQty,
			OrderCount:  row.OrderCount,
		})
	}
	return result, nil
}

func (s *CatalogService) applyProductInput(product *models.Product, input ProductInput) error {
	fandom, err := s.fandomRepo.GetByID(input.FandomID)
	if err != nil {
		return err
	}
	if fandom == nil {
		return ErrFandomNotFound
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if slug == "" || len(input.TitleJSON) == 0 {
		return ErrInvalidInput
	}
	count, err := s.productRepo.CountBySlug(slug, product.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	price := input.PriceAmount.Round(2)
	if price.LessThanOrEqual(decimal.Zero) {
		return ErrProductPriceInvalid
	}
	currency := strings.ToUpper(strings.TrimSpace(input.PriceCurrency))
	if currency == "" {
		currency = s.opts.SiteCurrency
	}
	if input.Stock < 0 {
		return ErrInvalidInput
	}

	product.FandomID = fandom.ID
	product.CategoryID = category.ID
	product.Fandom = *fandom
	product.Category = *category
	product.Slug = slug
	product.TitleJSON = models.JSON(input.TitleJSON)
	product.DescriptionJSON = models.JSON(input.DescriptionJSON)
	product.PriceAmount = models.NewMoneyFromDecimal(price)
	product.PriceCurrency = currency
	product.Images = models.StringArray(input.Images)
	product.Tags = models.StringArray(input.Tags)
	product.TrackStock = input.TrackStock
	product.Stock = input.Stock
	product.IsPreOrder = input.IsPreOrder
	product.LimitOnePerAccount = input.LimitOnePerAccount
	product.ReleaseAt = input.ReleaseAt
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	return nil
}

// assignProductCode 序号为同前缀已有商品数 + 1（含软删除）
func (s *CatalogService) assignProductCode(product *models.Product) error {
	prefix := productCodePrefix(product.Fandom.Code, product.Category.Code)
	count, err := s.productRepo.CountByCodePrefix(prefix + "-")
	if err != nil {
		return err
	}
	product.Code = ProductCode{Fandom: product.Fandom.Code, Category: product.Category.Code, Seq: int(count) + 1}.String()
	return nil
}

func (s *CatalogService) storeCache(ctx context.Context, name string, value interface{}) {
	if err := cache.SetCatalog(ctx, name, value, s.opts.CacheTTL); err != nil {
		logger.Warnw("catalog_cache_set_failed", "name", name, "error", err)
	}
}

func (s *CatalogService) invalidate(ctx context.Context, fandomSlugs ...string) {
	if err := cache.InvalidateCatalog(ctx, fandomSlugs...); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}

// CustomItemTypes 定制周边类型
func CustomItemTypes() []string {
	return []string{
		constants.CustomItemAcrylicStand,
		constants.CustomItemKeychain,
		constants.CustomItemBadge,
		constants.CustomItemPlush,
		constants.CustomItemApparel,
		constants.CustomItemOther,
	}
}
