package app

import (
	"errors"
	"net"

	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/provider"
	"github.com/fandom-mart/internal/router"
	"github.com/fandom-mart/internal/worker"
)

func listenAddr(cfg *config.Config) string {
	return net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
}

// BuildRunner 按模式组装 HTTP 与 worker；all 模式下队列关闭时只跑 HTTP，订单镜像同步写入
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	container := provider.NewContainer(cfg)
	config.Watch(func(next *config.Config) {
		container.CurrencyConverter.Reload(next.Currency)
		logger.Infow("currency_rates_reloaded", "currencies", container.CurrencyConverter.Supported())
	})
	runAPI := mode == ModeAll || mode == ModeAPI
	runWorker := mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled)
	if mode == ModeAll && !cfg.Queue.Enabled {
		logger.Warnw("worker_skipped_queue_disabled", "mode", mode)
	}

	var services []Service
	if runAPI {
		services = append(services, NewHTTPService(listenAddr(cfg), router.SetupRouter(cfg, container)))
	}
	if runWorker {
		svc, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	if len(services) == 0 {
		return nil, errors.New("no services for mode " + mode)
	}
	return NewRunner(services...), nil
}

// Run 构建并运行，直到信号到达或某个服务失败
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	opts.Logger.Infow("app_start", "addr", listenAddr(opts.Config), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
