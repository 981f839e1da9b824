package queue

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/logger"

	"github.com/hibiken/asynq"
)

// 队列权重 critical:default = 2:1，订单镜像走 critical
const (
	DefaultQueue  = "default"
	CriticalQueue = "critical"
)

const mirrorMaxRetry = 10

// Client 未启用队列时所有 Enqueue 都是空操作
type Client struct {
	client *asynq.Client
}

func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{client: asynq.NewClient(buildRedisOpt(cfg))}, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func (c *Client) enqueue(build func() (*asynq.Task, error), opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := build()
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task, opts...)
	return err
}

func (c *Client) EnqueueOrderMirror(payload OrderMirrorPayload) error {
	return c.enqueue(func() (*asynq.Task, error) { return NewOrderMirrorTask(payload) },
		asynq.Queue(CriticalQueue), asynq.MaxRetry(mirrorMaxRetry))
}

func (c *Client) EnqueueOrderStatusNotice(payload OrderStatusNoticePayload) error {
	return c.enqueue(func() (*asynq.Task, error) { return NewOrderStatusNoticeTask(payload) },
		asynq.Queue(DefaultQueue))
}

// EnqueueOrderPendingExpire 同一订单只保留一个超时任务，重复推送视为成功
func (c *Client) EnqueueOrderPendingExpire(payload OrderPendingExpirePayload, delay time.Duration) error {
	if delay < 0 {
		delay = 0
	}
	err := c.enqueue(func() (*asynq.Task, error) { return NewOrderPendingExpireTask(payload) },
		asynq.Queue(DefaultQueue),
		asynq.ProcessIn(delay),
		asynq.TaskID(pendingExpireTaskID(payload)),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func pendingExpireTaskID(payload OrderPendingExpirePayload) string {
	return TaskOrderPendingExpire + ":" + payload.ScopeID + ":" + payload.OrderNo
}

// BuildServerConfig worker 端配置，日志接入 zap
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{DefaultQueue: 1, CriticalQueue: 2},
		Logger:      logger.Named("asynq"),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Warnw("worker_task_failed", "task", task.Type(), "retried", retried, "max_retry", maxRetry, "error", err)
		}),
	}
	if cfg != nil && cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if cfg != nil && len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return buildRedisOpt(cfg), serverCfg
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host, port := strings.TrimSpace(cfg.Host), 6379
	if host == "" {
		host = "127.0.0.1"
	}
	if cfg.Port > 0 {
		port = cfg.Port
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
