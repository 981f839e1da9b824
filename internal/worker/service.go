package worker

import (
	"context"
	"errors"

	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/queue"

	"github.com/hibiken/asynq"
)

// Service asynq 消费端；信号由 app.Runner 统一处理，这里只跟随 ctx 退出
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{server: asynq.NewServer(opt, serverCfg), mux: mux}, nil
}

func (s *Service) Name() string { return "worker" }

// Start 启动处理协程后阻塞至 ctx 结束
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	logger.Infow("worker_start", "tasks", queue.TaskTypes())
	<-ctx.Done()
	return nil
}

// Stop 等待进行中的任务结束，未完成的任务由 asynq 重新入队
func (s *Service) Stop(context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.server.Shutdown()
	logger.Infow("worker_stopped")
	return nil
}
