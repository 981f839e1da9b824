package service

import (
	"context"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/kvstore"
	"github.com/fandom-mart/internal/logger"
)

// PurchaseLedger 已购商品集合，键为 purchased_<scope>
// 方法本身不加锁，调用方需持有作用域锁
type PurchaseLedger struct {
	store kvstore.Store
}

// NewPurchaseLedger 创建已购账本
func NewPurchaseLedger(store kvstore.Store) *PurchaseLedger {
	return &PurchaseLedger{store: store}
}

func (l *PurchaseLedger) key(scope cart.Scope) string {
	return kvstore.ScopedKey(kvstore.KeyPurchased, scope.String())
}

// List 读取已购 id，读取或解析失败按空集合处理
func (l *PurchaseLedger) List(ctx context.Context, scope cart.Scope) []string {
	var ids []string
	if _, err := kvstore.GetJSON(ctx, l.store, l.key(scope), &ids); err != nil {
		logger.Warnw("purchase_ledger_read_failed", "scope", scope.String(), "error", err)
		return nil
	}
	return ids
}

// Set 已购 id 集合
func (l *PurchaseLedger) Set(ctx context.Context, scope cart.Scope) map[string]bool {
	ids := l.List(ctx, scope)
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Contains 是否已购
func (l *PurchaseLedger) Contains(ctx context.Context, scope cart.Scope, id string) bool {
	for _, existing := range l.List(ctx, scope) {
		if existing == id {
			return true
		}
	}
	return false
}

// RecordOp 生成追加已购 id 的写入操作，重复 id 只保留一份
func (l *PurchaseLedger) RecordOp(ctx context.Context, scope cart.Scope, ids ...string) (kvstore.Op, error) {
	current := l.List(ctx, scope)
	seen := make(map[string]bool, len(current)+len(ids))
	merged := make([]string, 0, len(current)+len(ids))
	for _, id := range append(current, ids...) {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		merged = append(merged, id)
	}
	return kvstore.MarshalOp(l.key(scope), merged)
}

// Record 记录购买
func (l *PurchaseLedger) Record(ctx context.Context, scope cart.Scope, ids ...string) error {
	op, err := l.RecordOp(ctx, scope, ids...)
	if err != nil {
		return err
	}
	return l.store.Batch(ctx, op)
}

// ReleaseOp 生成移除已购 id 的写入操作
func (l *PurchaseLedger) ReleaseOp(ctx context.Context, scope cart.Scope, ids ...string) (kvstore.Op, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	current := l.List(ctx, scope)
	kept := make([]string, 0, len(current))
	for _, id := range current {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	return kvstore.MarshalOp(l.key(scope), kept)
}

// Release 移除已购记录
func (l *PurchaseLedger) Release(ctx context.Context, scope cart.Scope, ids ...string) error {
	op, err := l.ReleaseOp(ctx, scope, ids...)
	if err != nil {
		return err
	}
	return l.store.Batch(ctx, op)
}
