package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fandom-mart/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "fm"

type binding struct {
	client *redis.Client
	prefix string
}

var current atomic.Pointer[binding]

func active() *binding {
	if b := current.Load(); b != nil && b.client != nil {
		return b
	}
	return nil
}

// InitRedis 未启用时解除绑定，所有读写退化为空操作
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		Bind(nil, "")
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	Bind(redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	}), cfg.Prefix)
	return nil
}

// Bind 替换当前客户端；client 为 nil 表示关闭缓存
func Bind(client *redis.Client, prefix string) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	current.Store(&binding{client: client, prefix: prefix})
}

func Enabled() bool {
	return active() != nil
}

func Client() *redis.Client {
	if b := active(); b != nil {
		return b.client
	}
	return nil
}

// Prefix 同时作为限流、kvstore 键的命名空间
func Prefix() string {
	if b := current.Load(); b != nil {
		return b.prefix
	}
	return defaultPrefix
}

func Ping(ctx context.Context) error {
	if b := active(); b != nil {
		return b.client.Ping(ctx).Err()
	}
	return nil
}

func Close() error {
	b := active()
	if b == nil {
		return nil
	}
	Bind(nil, b.prefix)
	return b.client.Close()
}

// GetJSON 未命中返回 false 且不报错
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	b := active()
	if b == nil {
		return false, nil
	}
	raw, err := b.client.Get(ctx, b.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b := active()
	if b == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, b.key(key), payload, ttl).Err()
}

func Del(ctx context.Context, keys ...string) error {
	b := active()
	if b == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = b.key(key)
	}
	return b.client.Del(ctx, full...).Err()
}

func (b *binding) key(key string) string {
	if key = strings.TrimSpace(key); key == "" {
		return b.prefix
	}
	return b.prefix + ":" + key
}

func buildKey(key string) string {
	b := current.Load()
	if b == nil {
		b = &binding{prefix: defaultPrefix}
	}
	return b.key(key)
}
