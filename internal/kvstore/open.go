package kvstore

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 驱动名称
const (
	DriverGorm   = "gorm"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Open 按驱动名创建存储；redis 驱动要求 client 非空
func Open(driver string, db *gorm.DB, client *redis.Client, prefix string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverGorm:
		if db == nil {
			return nil, fmt.Errorf("kvstore: driver %s requires database", DriverGorm)
		}
		return NewGormStore(db), nil
	case DriverRedis:
		if client == nil {
			return nil, fmt.Errorf("kvstore: driver %s requires redis client", DriverRedis)
		}
		return NewRedisStore(client, prefix), nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("kvstore: unsupported driver %q", driver)
	}
}
