package config

import (
	"github.com/fandom-mart/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Watch 监听配置文件变更；onChange 收到重新解析后的配置。
// 仅在配置文件存在时生效，解析失败时保留旧配置。
func Watch(onChange func(*Config)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			logger.Warnw("config_reload_failed", "file", e.Name, "error", err)
			return
		}
		cfg.normalize()
		logger.Infow("config_reloaded", "file", e.Name, "op", e.Op.String())
		if onChange != nil {
			onChange(&cfg)
		}
	})
	v.WatchConfig()
}
