package queue

import (
	"encoding/json"

	"github.com/fandom-mart/internal/cart"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderMirror 订单账本同步到 SQL 镜像
	TaskOrderMirror = "order:mirror"
	// TaskOrderStatusNotice 订单状态变更通知
	TaskOrderStatusNotice = "order:status_notice"
	// TaskOrderPendingExpire 待支付订单超时取消
	TaskOrderPendingExpire = "order:pending_expire"
)

// TaskTypes worker 处理的全部任务类型
func TaskTypes() []string {
	return []string{TaskOrderMirror, TaskOrderStatusNotice, TaskOrderPendingExpire}
}

// OrderMirrorPayload 订单镜像任务载荷，携带完整快照
type OrderMirrorPayload struct {
	ScopeID string     `json:"scope_id"`
	UserID  uint       `json:"user_id"`
	Order   cart.Order `json:"order"`
}

// OrderStatusNoticePayload 订单状态通知任务载荷
type OrderStatusNoticePayload struct {
	ScopeID string `json:"scope_id"`
	UserID  uint   `json:"user_id"`
	OrderNo string `json:"order_no"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// OrderPendingExpirePayload 超时取消任务载荷
type OrderPendingExpirePayload struct {
	ScopeID string `json:"scope_id"`
	UserID  uint   `json:"user_id"`
	OrderNo string `json:"order_no"`
}

func newTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}

// NewOrderMirrorTask 创建订单镜像任务
func NewOrderMirrorTask(payload OrderMirrorPayload) (*asynq.Task, error) {
	return newTask(TaskOrderMirror, payload)
}

// NewOrderStatusNoticeTask 创建订单状态通知任务
func NewOrderStatusNoticeTask(payload OrderStatusNoticePayload) (*asynq.Task, error) {
	return newTask(TaskOrderStatusNotice, payload)
}

// NewOrderPendingExpireTask 创建超时取消任务
func NewOrderPendingExpireTask(payload OrderPendingExpirePayload) (*asynq.Task, error) {
	return newTask(TaskOrderPendingExpire, payload)
}

// DecodePayload 解析任务载荷
func DecodePayload(task *asynq.Task, dest interface{}) error {
	return json.Unmarshal(task.Payload(), dest)
}
