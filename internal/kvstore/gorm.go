package kvstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fandom-mart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 基于 kv_entries 表的存储
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建数据库存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Name 驱动名
func (s *GormStore) Name() string { return "gorm" }

// Get 读取
func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	if err := s.db.WithContext(ctx).Where("kv_key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set 写入（存在则覆盖）
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return upsertEntry(s.db.WithContext(ctx), key, value)
}

// Remove 删除
func (s *GormStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("kv_key = ?", key).Delete(&models.KVEntry{}).Error
}

// Batch 在同一事务中执行
func (s *GormStore) Batch(ctx context.Context, ops ...Op) error {
	if err := validateOps(ops); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if op.Delete {
				if err := tx.Where("kv_key = ?", op.Key).Delete(&models.KVEntry{}).Error; err != nil {
					return err
				}
				continue
			}
			if err := upsertEntry(tx, op.Key, op.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertEntry(db *gorm.DB, key, value string) error {
	entry := models.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
