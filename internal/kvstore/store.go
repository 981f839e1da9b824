// Package kvstore 按作用域命名空间持久化字符串值，键格式为 <key>_<scopeId>。
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// 逻辑键名
const (
	KeyCart      = "cart"
	KeyPurchased = "purchased"
	KeyOrders    = "orders"
)

// ErrEmptyKey 键为空
var ErrEmptyKey = errors.New("kvstore: empty key")

// Store 持久化适配器
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Batch 原子地执行一组写入/删除
	Batch(ctx context.Context, ops ...Op) error
	Name() string
}

// Op 批量操作
type Op struct {
	Key    string
	Value  string
	Delete bool
}

// SetOp 写入操作
func SetOp(key, value string) Op {
	return Op{Key: key, Value: value}
}

// RemoveOp 删除操作
func RemoveOp(key string) Op {
	return Op{Key: key, Delete: true}
}

// ScopedKey 生成 <key>_<scopeId>
func ScopedKey(key, scopeID string) string {
	key = strings.TrimSpace(key)
	scopeID = strings.TrimSpace(scopeID)
	if scopeID == "" {
		return key
	}
	return key + "_" + scopeID
}

// GetJSON 读取并解析 JSON；不存在返回 false
func GetJSON(ctx context.Context, s Store, key string, dest interface{}) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// MarshalOp 序列化为写入操作
func MarshalOp(key string, value interface{}) (Op, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return Op{}, err
	}
	return SetOp(key, string(payload)), nil
}

// SetJSON 序列化并写入
func SetJSON(ctx context.Context, s Store, key string, value interface{}) error {
	op, err := MarshalOp(key, value)
	if err != nil {
		return err
	}
	return s.Set(ctx, op.Key, op.Value)
}

func validateOps(ops []Op) error {
	for _, op := range ops {
		if strings.TrimSpace(op.Key) == "" {
			return ErrEmptyKey
		}
	}
	return nil
}
