package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/provider"
	"github.com/fandom-mart/internal/queue"
	"github.com/fandom-mart/internal/service"

	"github.com/hibiken/asynq"
)

// orderTasks 消费者依赖的订单能力
type orderTasks interface {
	SyncMirror(ctx context.Context, payload queue.OrderMirrorPayload) error
	ExpirePending(ctx context.Context, scope cart.Scope, orderID string) (bool, error)
}

type userLookup interface {
	GetByID(id uint) (*models.User, error)
}

// Consumer 异步任务消费者
type Consumer struct {
	orders orderTasks
	users  userLookup
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	consumer := &Consumer{}
	if c != nil {
		if c.OrderService != nil {
			consumer.orders = c.OrderService
		}
		if c.UserRepo != nil {
			consumer.users = c.UserRepo
		}
	}
	return consumer
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderMirror, c.handleOrderMirror)
	mux.HandleFunc(queue.TaskOrderStatusNotice, c.handleOrderStatusNotice)
	mux.HandleFunc(queue.TaskOrderPendingExpire, c.handleOrderPendingExpire)
}

func (c *Consumer) handleOrderMirror(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_mirror_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderMirrorPayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		logger.Warnw("worker_order_mirror_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Order.ID) == "" || strings.TrimSpace(payload.ScopeID) == "" {
		logger.Debugw("worker_order_mirror_skip_invalid_payload", "scope", payload.ScopeID, "order_no", payload.Order.ID)
		return nil
	}
	if c.orders == nil {
		logger.Warnw("worker_order_mirror_skip_order_service_nil", "order_no", payload.Order.ID)
		return nil
	}
	if err := c.orders.SyncMirror(ctx, payload); err != nil {
		logger.Warnw("worker_order_mirror_failed", "scope", payload.ScopeID, "order_no", payload.Order.ID, "error", err)
		return err
	}
	logger.Debugw("worker_order_mirror_done", "scope", payload.ScopeID, "order_no", payload.Order.ID, "status", payload.Order.Status)
	return nil
}

// handleOrderStatusNotice 状态变更通知，当前以结构化日志输出
func (c *Consumer) handleOrderStatusNotice(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_notice_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusNoticePayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		logger.Warnw("worker_order_status_notice_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.OrderNo) == "" {
		logger.Debugw("worker_order_status_notice_skip_invalid_payload")
		return nil
	}
	receiver, locale := c.resolveReceiver(payload.UserID)
	logger.Infow("order_status_notice",
		"scope", payload.ScopeID,
		"user_id", payload.UserID,
		"order_no", payload.OrderNo,
		"from", payload.From,
		"to", payload.To,
		"receiver_email", receiver,
		"locale", locale,
	)
	return nil
}

func (c *Consumer) resolveReceiver(userID uint) (string, string) {
	if userID == 0 || c.users == nil {
		return "", ""
	}
	user, err := c.users.GetByID(userID)
	if err != nil {
		logger.Warnw("worker_order_status_notice_fetch_user_failed", "user_id", userID, "error", err)
		return "", ""
	}
	if user == nil {
		return "", ""
	}
	return strings.TrimSpace(user.Email), strings.TrimSpace(user.Locale)
}

func (c *Consumer) handleOrderPendingExpire(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_pending_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPendingExpirePayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		logger.Warnw("worker_order_pending_expire_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.OrderNo) == "" || strings.TrimSpace(payload.ScopeID) == "" {
		logger.Debugw("worker_order_pending_expire_skip_invalid_payload", "scope", payload.ScopeID, "order_no", payload.OrderNo)
		return nil
	}
	if c.orders == nil {
		logger.Warnw("worker_order_pending_expire_skip_order_service_nil", "order_no", payload.OrderNo)
		return nil
	}
	scope := cart.Scope{ID: payload.ScopeID, UserID: payload.UserID}
	expired, err := c.orders.ExpirePending(ctx, scope, payload.OrderNo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_order_pending_expire_skip_order_not_found", "scope", payload.ScopeID, "order_no", payload.OrderNo)
			return nil
		case errors.Is(err, service.ErrOrderStatusInvalid):
			logger.Debugw("worker_order_pending_expire_skip_invalid_status", "scope", payload.ScopeID, "order_no", payload.OrderNo)
			return nil
		default:
			logger.Warnw("worker_order_pending_expire_failed", "scope", payload.ScopeID, "order_no", payload.OrderNo, "error", err)
			return err
		}
	}
	if expired {
		logger.Infow("worker_order_pending_expired", "scope", payload.ScopeID, "order_no", payload.OrderNo)
	}
	return nil
}
