package service

import (
	"context"
	"time"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/kvstore"
	"github.com/fandom-mart/internal/logger"
)

// OrderLedger 作用域订单账本，最新订单在前，键为 orders_<scope>
// 方法本身不加锁，调用方需持有作用域锁
type OrderLedger struct {
	store kvstore.Store
}

// NewOrderLedger 创建订单账本
func NewOrderLedger(store kvstore.Store) *OrderLedger {
	return &OrderLedger{store: store}
}

func (l *OrderLedger) key(scope cart.Scope) string {
	return kvstore.ScopedKey(kvstore.KeyOrders, scope.String())
}

// List 读取订单，读取或解析失败按空列表处理
func (l *OrderLedger) List(ctx context.Context, scope cart.Scope) []cart.Order {
	var orders []cart.Order
	if _, err := kvstore.GetJSON(ctx, l.store, l.key(scope), &orders); err != nil {
		logger.Warnw("order_ledger_read_failed", "scope", scope.String(), "error", err)
		return nil
	}
	return orders
}

// Get 按订单号获取
func (l *OrderLedger) Get(ctx context.Context, scope cart.Scope, orderID string) (*cart.Order, error) {
	for _, order := range l.List(ctx, scope) {
		if order.ID == orderID {
			found := order
			return &found, nil
		}
	}
	return nil, ErrOrderNotFound
}

// PlaceOp 生成把订单插入列表头部的写入操作，不做重复 id 检查
func (l *OrderLedger) PlaceOp(ctx context.Context, scope cart.Scope, order cart.Order) (kvstore.Op, error) {
	current := l.List(ctx, scope)
	orders := make([]cart.Order, 0, len(current)+1)
	orders = append(orders, order)
	orders = append(orders, current...)
	return kvstore.MarshalOp(l.key(scope), orders)
}

// Place 下单
func (l *OrderLedger) Place(ctx context.Context, scope cart.Scope, order cart.Order) error {
	op, err := l.PlaceOp(ctx, scope, order)
	if err != nil {
		return err
	}
	return l.store.Batch(ctx, op)
}

// SetStatusOp 按状态流转表生成更新操作，返回更新后的订单与原状态
// 状态实际变化时 StatusAt 记为 at
func (l *OrderLedger) SetStatusOp(ctx context.Context, scope cart.Scope, orderID string, status cart.OrderStatus, at time.Time) (kvstore.Op, *cart.Order, cart.OrderStatus, error) {
	if !status.Valid() {
		return kvstore.Op{}, nil, "", ErrOrderStatusInvalid
	}
	orders := l.List(ctx, scope)
	for i := range orders {
		if orders[i].ID != orderID {
			continue
		}
		from := orders[i].Status
		if !from.CanTransition(status) {
			return kvstore.Op{}, nil, from, ErrOrderStatusInvalid
		}
		if from != status {
			orders[i].Status = status
			orders[i].StatusAt = at
		}
		op, err := kvstore.MarshalOp(l.key(scope), orders)
		if err != nil {
			return kvstore.Op{}, nil, from, err
		}
		updated := orders[i]
		return op, &updated, from, nil
	}
	return kvstore.Op{}, nil, "", ErrOrderNotFound
}

// SetStatus 更新订单状态
func (l *OrderLedger) SetStatus(ctx context.Context, scope cart.Scope, orderID string, status cart.OrderStatus) (*cart.Order, error) {
	op, order, from, err := l.SetStatusOp(ctx, scope, orderID, status, time.Now())
	if err != nil {
		return nil, err
	}
	if from == status {
		return order, nil
	}
	if err := l.store.Batch(ctx, op); err != nil {
		return nil, err
	}
	return order, nil
}
