package queue

import (
	"testing"
	"time"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderMirror(OrderMirrorPayload{ScopeID: "1"}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.EnqueueOrderPendingExpire(OrderPendingExpirePayload{}, time.Minute); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestOrderMirrorTaskRoundTrip(t *testing.T) {
	order := cart.NewOrder("FM1", cart.New(cart.Line{ID: "3", Price: "฿100", Quantity: 2}), "THB", time.Now())
	task, err := NewOrderMirrorTask(OrderMirrorPayload{ScopeID: "guest_x", Order: order})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskOrderMirror {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	var decoded OrderMirrorPayload
	if err := DecodePayload(task, &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.ScopeID != "guest_x" || decoded.Order.ID != "FM1" || decoded.Order.ItemCount() != 2 {
		t.Fatalf("unexpected payload %+v", decoded)
	}
	if !decoded.Order.TotalAmount.Equal(order.TotalAmount) {
		t.Fatalf("total mismatch %s", decoded.Order.TotalAmount)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt %+v", opt)
	}
	if cfg.Concurrency != 10 || cfg.Queues[CriticalQueue] != 2 {
		t.Fatalf("unexpected server config %+v", cfg)
	}
}

func TestBuildRedisOptFallbacks(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" || cfg.Logger == nil || cfg.ErrorHandler == nil {
		t.Fatalf("unexpected defaults %+v", opt)
	}
	opt = buildRedisOpt(&config.QueueConfig{Host: " ", Password: "pw"})
	if opt.Addr != "127.0.0.1:6379" || opt.Password != "pw" {
		t.Fatalf("blank host should fall back, got %+v", opt)
	}
}

func TestPendingExpireTaskIDIsPerOrder(t *testing.T) {
	a := pendingExpireTaskID(OrderPendingExpirePayload{ScopeID: "42", OrderNo: "FM1"})
	b := pendingExpireTaskID(OrderPendingExpirePayload{ScopeID: "guest_tok", OrderNo: "FM1"})
	if a == b || a != "order:pending_expire:42:FM1" {
		t.Fatalf("unexpected task ids %q %q", a, b)
	}
	if len(TaskTypes()) != 3 {
		t.Fatalf("worker should handle three task types")
	}
}
