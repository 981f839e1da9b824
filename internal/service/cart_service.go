package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/kvstore"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"
)

// CartSummary 购物车响应
type CartSummary struct {
	Scope     string      `json:"scope"`
	Items     []cart.Line `json:"items"`
	ItemCount int         `json:"item_count"`
	Total     string      `json:"total"`
	TotalText string      `json:"total_text"`
	Currency  string      `json:"currency"`
}

// SwitchResult 身份切换结果
type SwitchResult struct {
	Cart    *cart.Cart `json:"-"`
	Merged  bool       `json:"merged"`
	Skipped []string   `json:"skipped,omitempty"`
}

// CartService 作用域购物车服务
type CartService struct {
	store       kvstore.Store
	locker      *ScopeLocker
	purchases   *PurchaseLedger
	productRepo repository.ProductRepository
	currency    string
}

// NewCartService 创建购物车服务
func NewCartService(store kvstore.Store, locker *ScopeLocker, purchases *PurchaseLedger, productRepo repository.ProductRepository, currency string) *CartService {
	if locker == nil {
		locker = NewScopeLocker()
	}
	return &CartService{
		store:       store,
		locker:      locker,
		purchases:   purchases,
		productRepo: productRepo,
		currency:    currency,
	}
}

func cartKey(scope cart.Scope) string {
	return kvstore.ScopedKey(kvstore.KeyCart, scope.String())
}

// load 读取购物车，existed 表示键已存在；读取或解析失败按空购物车处理
func (s *CartService) load(ctx context.Context, scope cart.Scope) (*cart.Cart, bool) {
	raw, ok, err := s.store.Get(ctx, cartKey(scope))
	if err != nil {
		logger.Warnw("cart_read_failed", "scope", scope.String(), "error", err)
		return cart.New(), false
	}
	if !ok {
		return cart.New(), false
	}
	var stored cart.Cart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warnw("cart_parse_failed", "scope", scope.String(), "error", err)
		return cart.New(), true
	}
	return cart.New(stored.Lines...), true
}

// persist 写穿；购物车为空且此前无记录时跳过
func (s *CartService) persist(ctx context.Context, scope cart.Scope, c *cart.Cart, existed bool) error {
	if c.IsEmpty() && !existed {
		return nil
	}
	op, err := cartOp(scope, c)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, op.Key, op.Value); err != nil {
		logger.Errorw("cart_write_failed", "scope", scope.String(), "error", err)
		return fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	return nil
}

func cartOp(scope cart.Scope, c *cart.Cart) (kvstore.Op, error) {
	if c == nil {
		c = cart.New()
	}
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return kvstore.MarshalOp(cartKey(scope), cart.Cart{Lines: lines})
}

// Get 获取购物车
func (s *CartService) Get(ctx context.Context, scope cart.Scope) *cart.Cart {
	unlock := s.locker.Lock(scope.String())
	defer unlock()
	c, _ := s.load(ctx, scope)
	return c
}

// Summary 构建响应
func (s *CartService) Summary(scope cart.Scope, c *cart.Cart) CartSummary {
	lines := c.Clone().Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	total := c.Total()
	return CartSummary{
		Scope:     scope.String(),
		Items:     lines,
		ItemCount: c.ItemCount(),
		Total:     total.StringFixed(2),
		TotalText: cart.FormatPrice(total, s.currency),
		Currency:  s.currency,
	}
}

// mutate 在作用域锁内执行读改写；无主 guest 作用域不可写
func (s *CartService) mutate(ctx context.Context, scope cart.Scope, fn func(c *cart.Cart) error) (*cart.Cart, error) {
	if scope.Shared() {
		return nil, ErrGuestSessionRequired
	}
	unlock := s.locker.Lock(scope.String())
	defer unlock()
	c, existed := s.load(ctx, scope)
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, scope, c, existed); err != nil {
		return nil, err
	}
	return c, nil
}

// Add 加入购物车：已存在则数量 +1，否则以数量 1 追加
// 限购商品已在购物车或已购买时拒绝
func (s *CartService) Add(ctx context.Context, scope cart.Scope, item cart.Line) (*cart.Cart, error) {
	return s.add(ctx, scope, item, 0)
}

// add maxQty > 0 时限制加入后的数量
func (s *CartService) add(ctx context.Context, scope cart.Scope, item cart.Line, maxQty int) (*cart.Cart, error) {
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return nil, ErrInvalidInput
	}
	return s.mutate(ctx, scope, func(c *cart.Cart) error {
		existing, inCart := c.Find(item.ID)
		limited := item.Limited || (inCart && existing.Limited)
		if limited && (inCart || s.purchases.Contains(ctx, scope, item.ID)) {
			return ErrPurchaseLimitReached
		}
		if maxQty > 0 && existing.Quantity+1 > maxQty {
			return ErrStockInsufficient
		}
		c.Add(item)
		return nil
	})
}

// AddProduct 按商品 ID 加入购物车，展示字段取自目录
func (s *CartService) AddProduct(ctx context.Context, scope cart.Scope, productID uint, locale string) (*cart.Cart, error) {
	product, err := s.availableProduct(productID)
	if err != nil {
		return nil, err
	}
	maxQty := 0
	if product.TrackStock {
		if product.Stock <= 0 {
			return nil, ErrStockInsufficient
		}
		maxQty = product.Stock
	}
	return s.add(ctx, scope, LineFromProduct(product, locale), maxQty)
}

// Remove 移除商品，不存在时为空操作
func (s *CartService) Remove(ctx context.Context, scope cart.Scope, id string) (*cart.Cart, error) {
	return s.mutate(ctx, scope, func(c *cart.Cart) error {
		c.Remove(strings.TrimSpace(id))
		return nil
	})
}

// SetQuantity 设置数量，n <= 0 等同于移除；限购商品不允许超过 1
func (s *CartService) SetQuantity(ctx context.Context, scope cart.Scope, id string, n int) (*cart.Cart, error) {
	id = strings.TrimSpace(id)
	if n > 1 {
		if product, err := s.productForLine(id); err != nil {
			return nil, err
		} else if product != nil && product.TrackStock && n > product.Stock {
			return nil, ErrStockInsufficient
		}
	}
	return s.mutate(ctx, scope, func(c *cart.Cart) error {
		if n <= 0 {
			c.Remove(id)
			return nil
		}
		line, ok := c.Find(id)
		if !ok {
			return ErrCartItemNotFound
		}
		if line.Limited && n > 1 {
			return ErrPurchaseLimitReached
		}
		c.SetQuantity(id, n)
		return nil
	})
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, scope cart.Scope) (*cart.Cart, error) {
	return s.mutate(ctx, scope, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// IsLimited 商品在购物车中或已购买
func (s *CartService) IsLimited(ctx context.Context, scope cart.Scope, id string) bool {
	unlock := s.locker.Lock(scope.String())
	defer unlock()
	c, _ := s.load(ctx, scope)
	if c.Contains(id) {
		return true
	}
	return s.purchases.Contains(ctx, scope, id)
}

// RecordPurchase 记录购买
func (s *CartService) RecordPurchase(ctx context.Context, scope cart.Scope, ids ...string) error {
	if scope.Shared() {
		return ErrGuestSessionRequired
	}
	unlock := s.locker.Lock(scope.String())
	defer unlock()
	return s.purchases.Record(ctx, scope, ids...)
}

// SwitchScope 访客切换到登录身份：合并访客购物车到用户购物车并删除访客购物车
// 合并写入与访客删除在同一批次内完成；无主 guest 作用域不参与合并
func (s *CartService) SwitchScope(ctx context.Context, guest, user cart.Scope) (*SwitchResult, error) {
	if user.IsGuest() || !guest.IsGuest() {
		return nil, ErrScopeInvalid
	}
	if guest.Shared() {
		return &SwitchResult{Cart: s.Get(ctx, user)}, nil
	}
	unlock := s.locker.LockPair(guest.String(), user.String())
	defer unlock()

	baseline, _ := s.load(ctx, user)
	guestCart, _ := s.load(ctx, guest)
	if guestCart.IsEmpty() {
		return &SwitchResult{Cart: baseline}, nil
	}

	skipped := baseline.Merge(guestCart, cart.MergeOptions{Purchased: s.purchases.Set(ctx, user)})
	op, err := cartOp(user, baseline)
	if err != nil {
		return nil, err
	}
	if err := s.store.Batch(ctx, op, kvstore.RemoveOp(cartKey(guest))); err != nil {
		logger.Errorw("cart_merge_failed",
			"guest_scope", guest.String(),
			"user_scope", user.String(),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	logger.Infow("cart_merged",
		"guest_scope", guest.String(),
		"user_scope", user.String(),
		"lines", len(baseline.Lines),
		"skipped", len(skipped),
	)
	return &SwitchResult{Cart: baseline, Merged: true, Skipped: skipped}, nil
}

func (s *CartService) availableProduct(productID uint) (*models.Product, error) {
	if productID == 0 {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	return product, nil
}

// productForLine 行 ID 为商品 ID 时返回商品，否则返回 nil
func (s *CartService) productForLine(id string) (*models.Product, error) {
	if s.productRepo == nil {
		return nil, nil
	}
	productID, err := strconv.ParseUint(id, 10, 64)
	if err != nil || productID == 0 {
		return nil, nil
	}
	return s.productRepo.GetByID(uint(productID))
}

// LineFromProduct 由商品构建购物车行
func LineFromProduct(product *models.Product, locale string) cart.Line {
	line := cart.Line{
		ID:      strconv.FormatUint(uint64(product.ID), 10),
		Name:    product.TitleJSON.Text(locale),
		Price:   cart.FormatPrice(product.PriceAmount.Decimal, product.PriceCurrency),
		Limited: product.IsLimited(),
	}
	if line.Name == "" {
		line.Name = product.Code
	}
	if len(product.Images) > 0 {
		line.Image = product.Images[0]
	}
	if product.Category.ID != 0 {
		line.Category = product.Category.NameJSON.Text(locale)
	}
	if product.Fandom.ID != 0 {
		line.Fandom = product.Fandom.NameJSON.Text(locale)
	}
	return line
}
