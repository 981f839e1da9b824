package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/models"
)

var weakSecretMarkers = []string{"change-me", "change-in-production", "your-secret-key"}

// ErrWeakSecret release 模式下 JWT 密钥过短或仍为示例值
var ErrWeakSecret = errors.New("jwt secret is weak or still the sample value")

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	lower := strings.ToLower(secret)
	for _, marker := range weakSecretMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// CheckSecrets 后台与用户两套 JWT 任一过弱即返回 ErrWeakSecret
func CheckSecrets(cfg *config.Config) error {
	if isWeakSecret(cfg.JWT.SecretKey) || isWeakSecret(cfg.UserJWT.SecretKey) {
		return ErrWeakSecret
	}
	return nil
}

// PrepareStorage 连接数据库并迁移表结构
func PrepareStorage(cfg *config.Config) error {
	db := cfg.Database
	pool := models.DBPoolConfig{
		MaxOpenConns:           db.Pool.MaxOpenConns,
		MaxIdleConns:           db.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: db.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: db.Pool.ConnMaxIdleTimeSeconds,
	}
	if err := models.InitDB(db.Driver, db.DSN, pool); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
