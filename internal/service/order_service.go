package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/constants"
	"github.com/fandom-mart/internal/kvstore"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/queue"
	"github.com/fandom-mart/internal/repository"

	"gorm.io/gorm"
)

// OrderServiceOptions 订单服务参数
type OrderServiceOptions struct {
	Currency      string
	PendingExpire time.Duration
}

// OrderService 下单、取消与后台订单管理
type OrderService struct {
	store       kvstore.Store
	locker      *ScopeLocker
	carts       *CartService
	ledger      *OrderLedger
	purchases   *PurchaseLedger
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	queue       *queue.Client
	opts        OrderServiceOptions
	now         func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(
	store kvstore.Store,
	locker *ScopeLocker,
	carts *CartService,
	ledger *OrderLedger,
	purchases *PurchaseLedger,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	queueClient *queue.Client,
	opts OrderServiceOptions,
) *OrderService {
	return &OrderService{
		store:       store,
		locker:      locker,
		carts:       carts,
		ledger:      ledger,
		purchases:   purchases,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		queue:       queueClient,
		opts:        opts,
		now:         time.Now,
	}
}

// List 作用域订单列表，最新在前
func (s *OrderService) List(ctx context.Context, scope cart.Scope) []cart.Order {
	unlock := s.locker.Lock(scope.String())
	defer unlock()
	orders := s.ledger.List(ctx, scope)
	if orders == nil {
		orders = []cart.Order{}
	}
	return orders
}

// Get 作用域订单详情
func (s *OrderService) Get(ctx context.Context, scope cart.Scope, orderID string) (*cart.Order, error) {
	unlock := s.locker.Lock(scope.String())
	defer unlock()
	return s.ledger.Get(ctx, scope, orderID)
}

// Checkout 将购物车快照为订单：写入账本头部、记录已购、清空购物车
// 三项写入在同一批次内完成，库存扣减失败时整体拒绝
func (s *OrderService) Checkout(ctx context.Context, scope cart.Scope) (*cart.Order, error) {
	if scope.Shared() {
		return nil, ErrGuestSessionRequired
	}
	unlock := s.locker.Lock(scope.String())
	defer unlock()

	current, _ := s.carts.load(ctx, scope)
	if current.IsEmpty() {
		return nil, ErrCartEmpty
	}

	purchased := s.purchases.Set(ctx, scope)
	stock := make(map[uint]int)
	for _, line := range current.Lines {
		if line.Limited && purchased[line.ID] {
			return nil, ErrPurchaseLimitReached
		}
		productID, ok := parseLineProductID(line.ID)
		if !ok {
			continue
		}
		product, err := s.productRepo.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, ErrProductNotAvailable
		}
		if product.IsLimited() && (line.Quantity > 1 || purchased[line.ID]) {
			return nil, ErrPurchaseLimitReached
		}
		if product.TrackStock {
			stock[productID] += line.Quantity
		}
	}

	if err := s.reserveStock(stock); err != nil {
		return nil, err
	}

	order := cart.NewOrder(generateOrderNo(), current, s.opts.Currency, s.now())
	ops := make([]kvstore.Op, 0, 3)
	placeOp, err := s.ledger.PlaceOp(ctx, scope, order)
	if err != nil {
		s.restoreStock(stock)
		return nil, err
	}
	recordOp, err := s.purchases.RecordOp(ctx, scope, order.ItemIDs()...)
	if err != nil {
		s.restoreStock(stock)
		return nil, err
	}
	clearOp, err := cartOp(scope, cart.New())
	if err != nil {
		s.restoreStock(stock)
		return nil, err
	}
	ops = append(ops, placeOp, recordOp, clearOp)
	if err := s.store.Batch(ctx, ops...); err != nil {
		s.restoreStock(stock)
		logger.Errorw("order_checkout_write_failed", "scope", scope.String(), "order_no", order.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}

	logger.Infow("order_placed",
		"scope", scope.String(),
		"order_no", order.ID,
		"items", order.ItemCount(),
		"total", order.TotalAmount.StringFixed(2),
	)
	s.mirror(ctx, scope, order)
	if s.opts.PendingExpire > 0 {
		if err := s.queue.EnqueueOrderPendingExpire(queue.OrderPendingExpirePayload{
			ScopeID: scope.String(),
			UserID:  scope.UserID,
			OrderNo: order.ID,
		}, s.opts.PendingExpire); err != nil {
			logger.Warnw("order_enqueue_pending_expire_failed", "order_no", order.ID, "error", err)
		}
	}
	return &order, nil
}

// Cancel 用户取消待支付订单
func (s *OrderService) Cancel(ctx context.Context, scope cart.Scope, orderID string) (*cart.Order, error) {
	if scope.Shared() {
		return nil, ErrGuestSessionRequired
	}
	unlock := s.locker.Lock(scope.String())
	defer unlock()
	order, err := s.ledger.Get(ctx, scope, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != cart.OrderStatusPending {
		return nil, ErrOrderCancelNotAllowed
	}
	return s.applyStatus(ctx, scope, orderID, cart.OrderStatusCanceled)
}

// ExpirePending 超时仍待支付的订单自动取消，返回是否发生取消
func (s *OrderService) ExpirePending(ctx context.Context, scope cart.Scope, orderID string) (bool, error) {
	unlock := s.locker.Lock(scope.String())
	defer unlock()
	order, err := s.ledger.Get(ctx, scope, orderID)
	if err != nil {
		return false, err
	}
	if order.Status != cart.OrderStatusPending {
		return false, nil
	}
	if _, err := s.applyStatus(ctx, scope, orderID, cart.OrderStatusCanceled); err != nil {
		return false, err
	}
	return true, nil
}

// SetStatus 按状态流转表更新作用域订单
func (s *OrderService) SetStatus(ctx context.Context, scope cart.Scope, orderID string, status cart.OrderStatus) (*cart.Order, error) {
	unlock := s.locker.Lock(scope.String())
	defer unlock()
	return s.applyStatus(ctx, scope, orderID, status)
}

// applyStatus 调用方需持有作用域锁
// 取消时释放该订单记下的已购 ID 并回补库存
func (s *OrderService) applyStatus(ctx context.Context, scope cart.Scope, orderID string, status cart.OrderStatus) (*cart.Order, error) {
	op, updated, from, err := s.ledger.SetStatusOp(ctx, scope, orderID, status, s.now())
	if err != nil {
		return nil, err
	}
	if from == status {
		return updated, nil
	}

	ops := []kvstore.Op{op}
	restock := make(map[uint]int)
	if status == cart.OrderStatusCanceled {
		if released := s.releasableItemIDs(ctx, scope, *updated); len(released) > 0 {
			releaseOp, err := s.purchases.ReleaseOp(ctx, scope, released...)
			if err != nil {
				return nil, err
			}
			ops = append(ops, releaseOp)
		}
		for _, item := range updated.Items {
			if productID, ok := parseLineProductID(item.ID); ok {
				restock[productID] += item.Quantity
			}
		}
	}
	if err := s.store.Batch(ctx, ops...); err != nil {
		logger.Errorw("order_status_write_failed", "order_no", orderID, "to", status, "error", err)
		return nil, err
	}
	s.restoreStock(restock)

	logger.Infow("order_status_changed", "scope", scope.String(), "order_no", orderID, "from", from, "to", status)
	s.mirror(ctx, scope, *updated)
	if err := s.queue.EnqueueOrderStatusNotice(queue.OrderStatusNoticePayload{
		ScopeID: scope.String(),
		UserID:  scope.UserID,
		OrderNo: orderID,
		From:    string(from),
		To:      string(status),
	}); err != nil {
		logger.Warnw("order_enqueue_status_notice_failed", "order_no", orderID, "error", err)
	}
	return updated, nil
}

// releasableItemIDs 不再被其他未取消订单持有的商品 ID
func (s *OrderService) releasableItemIDs(ctx context.Context, scope cart.Scope, canceled cart.Order) []string {
	held := make(map[string]bool)
	for _, order := range s.ledger.List(ctx, scope) {
		if order.ID == canceled.ID || order.Status == cart.OrderStatusCanceled {
			continue
		}
		for _, id := range order.ItemIDs() {
			held[id] = true
		}
	}
	var ids []string
	for _, id := range canceled.ItemIDs() {
		if !held[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// ListAdmin 后台订单镜像列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetAdmin 后台订单详情
func (s *OrderService) GetAdmin(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatusAdmin 后台更新订单状态：先更新作用域账本，再同步镜像
func (s *OrderService) UpdateStatusAdmin(ctx context.Context, orderNo string, rawStatus string) (*models.Order, error) {
	status, err := cart.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, ErrOrderStatusInvalid
	}
	mirrored, err := s.GetAdmin(orderNo)
	if err != nil {
		return nil, err
	}
	scope := cart.Scope{ID: mirrored.ScopeID, UserID: mirrored.UserID}
	updated, err := s.SetStatus(ctx, scope, mirrored.OrderNo, status)
	if err != nil {
		return nil, err
	}
	if err := s.SyncMirror(ctx, queue.OrderMirrorPayload{ScopeID: scope.String(), UserID: scope.UserID, Order: *updated}); err != nil {
		return nil, err
	}
	return s.GetAdmin(orderNo)
}

// SyncMirror 以作用域账本中的当前订单写入 SQL 镜像，账本中找不到时使用载荷快照
func (s *OrderService) SyncMirror(ctx context.Context, payload queue.OrderMirrorPayload) error {
	if s.orderRepo == nil {
		return nil
	}
	scope := cart.Scope{ID: payload.ScopeID, UserID: payload.UserID}
	unlock := s.locker.Lock(scope.String())
	defer unlock()
	if current, err := s.ledger.Get(ctx, scope, payload.Order.ID); err == nil {
		payload.Order = *current
	}
	return s.writeMirror(payload)
}

// writeMirror 镜像已处于无法回到载荷状态的位置时跳过
func (s *OrderService) writeMirror(payload queue.OrderMirrorPayload) error {
	if s.orderRepo == nil {
		return nil
	}
	order, items := buildMirror(payload)
	applied, err := s.orderRepo.Upsert(order, items, mirrorStatusGuard)
	if err != nil {
		return err
	}
	if !applied {
		logger.Debugw("order_mirror_stale_skipped", "scope", payload.ScopeID, "order_no", order.OrderNo, "status", order.Status)
	}
	return nil
}

func mirrorStatusGuard(from, to string) bool {
	return cart.OrderStatus(from).CanTransition(cart.OrderStatus(to))
}

// mirror 队列可用时异步同步，否则就地写入镜像；失败只记录日志
// 调用方持有作用域锁，order 即账本当前值
func (s *OrderService) mirror(ctx context.Context, scope cart.Scope, order cart.Order) {
	payload := queue.OrderMirrorPayload{ScopeID: scope.String(), UserID: scope.UserID, Order: order}
	if s.queue.Enabled() {
		err := s.queue.EnqueueOrderMirror(payload)
		if err == nil {
			return
		}
		logger.Warnw("order_enqueue_mirror_failed", "order_no", order.ID, "error", err)
	}
	if err := s.writeMirror(payload); err != nil {
		logger.Errorw("order_mirror_failed", "order_no", order.ID, "error", err)
	}
}

func (s *OrderService) reserveStock(stock map[uint]int) error {
	if len(stock) == 0 {
		return nil
	}
	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		for productID, qty := range stock {
			affected, err := repo.DecrementStock(productID, qty)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockInsufficient
			}
		}
		return nil
	})
}

func (s *OrderService) restoreStock(stock map[uint]int) {
	for productID, qty := range stock {
		if _, err := s.productRepo.IncrementStock(productID, qty); err != nil {
			logger.Errorw("order_restore_stock_failed", "product_id", productID, "quantity", qty, "error", err)
		}
	}
}

func buildMirror(payload queue.OrderMirrorPayload) (*models.Order, []models.OrderItem) {
	snapshot := payload.Order
	order := &models.Order{
		OrderNo:     snapshot.ID,
		ScopeID:     payload.ScopeID,
		UserID:      payload.UserID,
		Status:      string(snapshot.Status),
		Currency:    snapshot.Currency,
		TotalAmount: models.NewMoneyFromDecimal(snapshot.TotalAmount),
		ItemCount:   snapshot.ItemCount(),
		PlacedAt:    snapshot.Date,
	}
	if snapshot.Status == cart.OrderStatusCanceled {
		canceledAt := snapshot.StatusChangedAt()
		order.CanceledAt = &canceledAt
	}
	items := make([]models.OrderItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		productID, _ := parseLineProductID(line.ID)
		items = append(items, models.OrderItem{
			ProductID:    productID,
			LineID:       line.ID,
			Name:         line.Name,
			Category:     line.Category,
			Fandom:       line.Fandom,
			PriceDisplay: line.Price,
			UnitPrice:    models.NewMoneyFromDecimal(line.UnitPrice()),
			Quantity:     line.Quantity,
			TotalPrice:   models.NewMoneyFromDecimal(line.LineTotal()),
			Limited:      line.Limited,
		})
	}
	return order, items
}

func parseLineProductID(id string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func generateOrderNo() string {
	return generateSerialNo(constants.OrderNoPrefix)
}

func generateSerialNo(prefix string) string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%s", prefix, now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(strconv.FormatInt(n.Int64(), 10))
	}
	return b.String()
}
