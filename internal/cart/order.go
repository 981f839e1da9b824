package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 订单状态（封闭枚举）
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending: {
		OrderStatusPaid:     true,
		OrderStatusCanceled: true,
	},
	OrderStatusPaid: {
		OrderStatusProcessing: true,
		OrderStatusCanceled:   true,
	},
	OrderStatusProcessing: {
		OrderStatusShipped:  true,
		OrderStatusCanceled: true,
	},
	OrderStatusShipped: {
		OrderStatusCompleted: true,
	},
	OrderStatusCompleted: {},
	OrderStatusCanceled:  {},
}

// ParseOrderStatus 解析状态字符串，未知值返回错误
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := orderTransitions[status]; !ok {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return status, nil
}

// Valid 是否为已定义的状态
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// Terminal 终态不可再流转
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

// CanTransition 相同状态视为允许（幂等写入）
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	if !s.Valid() || !target.Valid() {
		return false
	}
	if s == target {
		return true
	}
	return orderTransitions[s][target]
}

// Order 下单快照，仅 Status 与 StatusAt 可变
type Order struct {
	ID          string          `json:"id"`
	Items       []Line          `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	Status      OrderStatus     `json:"status"`
	StatusAt    time.Time       `json:"status_at"`
}

// NewOrder 由购物车生成订单快照
func NewOrder(id string, c *Cart, currency string, now time.Time) Order {
	snapshot := c.Clone()
	return Order{
		ID:          id,
		Items:       snapshot.Lines,
		TotalAmount: snapshot.Total(),
		Currency:    currency,
		Date:        now,
		Status:      OrderStatusPending,
		StatusAt:    now,
	}
}

// StatusChangedAt 最近一次状态变更时间，旧数据没有 StatusAt 时取下单时间
func (o Order) StatusChangedAt() time.Time {
	if o.StatusAt.IsZero() {
		return o.Date
	}
	return o.StatusAt
}

// ItemIDs 订单内的商品 ID
func (o Order) ItemIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// LimitedItemIDs 订单内限购商品 ID
func (o Order) LimitedItemIDs() []string {
	var ids []string
	for _, item := range o.Items {
		if item.Limited {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// ItemCount 件数合计
func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
