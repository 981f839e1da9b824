package service

import "sync"

// ScopeLocker 按作用域串行化读改写
type ScopeLocker struct {
	mu    sync.Mutex
	locks map[string]*scopeLockEntry
}

type scopeLockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewScopeLocker 创建作用域锁，购物车/订单/购买账本需共享同一实例
func NewScopeLocker() *ScopeLocker {
	return &ScopeLocker{locks: make(map[string]*scopeLockEntry)}
}

// Lock 锁定作用域，返回解锁函数
func (l *ScopeLocker) Lock(scopeID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[scopeID]
	if !ok {
		entry = &scopeLockEntry{}
		l.locks[scopeID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, scopeID)
		}
		l.mu.Unlock()
	}
}

// LockPair 按固定顺序锁定两个作用域
func (l *ScopeLocker) LockPair(a, b string) func() {
	if a == b {
		return l.Lock(a)
	}
	if b < a {
		a, b = b, a
	}
	unlockA := l.Lock(a)
	unlockB := l.Lock(b)
	return func() {
		unlockB()
		unlockA()
	}
}
