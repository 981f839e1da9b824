package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore 基于 Redis 的存储，Batch 使用 MULTI/EXEC
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "fm"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Name 驱动名
func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) buildKey(key string) string {
	return fmt.Sprintf("%s:kv:%s", s.prefix, key)
}

// Get 读取
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.buildKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set 写入，不设置过期时间
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return s.client.Set(ctx, s.buildKey(key), value, 0).Err()
}

// Remove 删除
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.buildKey(key)).Err()
}

// Batch 事务管道执行
func (s *RedisStore) Batch(ctx context.Context, ops ...Op) error {
	if err := validateOps(ops); err != nil {
		return err
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range ops {
			if op.Delete {
				pipe.Del(ctx, s.buildKey(op.Key))
				continue
			}
			pipe.Set(ctx, s.buildKey(op.Key), op.Value, 0)
		}
		return nil
	})
	return err
}
