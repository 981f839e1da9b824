package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/queue"
	"github.com/fandom-mart/internal/service"

	"github.com/hibiken/asynq"
)

type fakeOrders struct {
	mirrored   []queue.OrderMirrorPayload
	expired    []string
	expireErr  error
	expireResp bool
}

func (f *fakeOrders) SyncMirror(_ context.Context, payload queue.OrderMirrorPayload) error {
	f.mirrored = append(f.mirrored, payload)
	return nil
}

func (f *fakeOrders) ExpirePending(_ context.Context, scope cart.Scope, orderID string) (bool, error) {
	f.expired = append(f.expired, scope.String()+"/"+orderID)
	return f.expireResp, f.expireErr
}

type fakeUsers map[uint]*models.User

func (f fakeUsers) GetByID(id uint) (*models.User, error) {
	return f[id], nil
}

func TestHandleOrderMirror(t *testing.T) {
	orders := &fakeOrders{}
	consumer := &Consumer{orders: orders}

	order := cart.NewOrder("FM20261017000001", cart.New(cart.Line{ID: "7", Price: "฿250", Quantity: 1}), "THB", time.Now())
	task, err := queue.NewOrderMirrorTask(queue.OrderMirrorPayload{ScopeID: "guest_abc12345", Order: order})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleOrderMirror(context.Background(), task); err != nil {
		t.Fatalf("handle mirror failed: %v", err)
	}
	if len(orders.mirrored) != 1 || orders.mirrored[0].Order.ID != order.ID {
		t.Fatalf("unexpected mirrored payloads %+v", orders.mirrored)
	}

	empty, _ := queue.NewOrderMirrorTask(queue.OrderMirrorPayload{ScopeID: "guest"})
	if err := consumer.handleOrderMirror(context.Background(), empty); err != nil {
		t.Fatalf("empty payload should be skipped: %v", err)
	}
	if len(orders.mirrored) != 1 {
		t.Fatalf("empty payload should not be mirrored")
	}
}

func TestHandleOrderMirrorBadPayload(t *testing.T) {
	consumer := &Consumer{orders: &fakeOrders{}}
	task := asynq.NewTask(queue.TaskOrderMirror, []byte("{not json"))
	if err := consumer.handleOrderMirror(context.Background(), task); err == nil {
		t.Fatalf("malformed payload should return error for retry")
	}
}

func TestHandleOrderPendingExpire(t *testing.T) {
	orders := &fakeOrders{expireResp: true}
	consumer := &Consumer{orders: orders}

	task, err := queue.NewOrderPendingExpireTask(queue.OrderPendingExpirePayload{ScopeID: "42", UserID: 42, OrderNo: "FM1"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleOrderPendingExpire(context.Background(), task); err != nil {
		t.Fatalf("handle expire failed: %v", err)
	}
	if len(orders.expired) != 1 || orders.expired[0] != "42/FM1" {
		t.Fatalf("unexpected expire calls %v", orders.expired)
	}

	orders.expireErr = service.ErrOrderNotFound
	if err := consumer.handleOrderPendingExpire(context.Background(), task); err != nil {
		t.Fatalf("missing order should be swallowed, got %v", err)
	}

	orders.expireErr = errors.New("store down")
	if err := consumer.handleOrderPendingExpire(context.Background(), task); err == nil {
		t.Fatalf("store failure should be retried")
	}
}

func TestHandleOrderStatusNoticeResolvesReceiver(t *testing.T) {
	consumer := &Consumer{users: fakeUsers{5: {ID: 5, Email: " fan@example.com ", Locale: "th-TH"}}}
	email, locale := consumer.resolveReceiver(5)
	if email != "fan@example.com" || locale != "th-TH" {
		t.Fatalf("unexpected receiver %q %q", email, locale)
	}
	if email, _ := consumer.resolveReceiver(0); email != "" {
		t.Fatalf("guest scope should have no receiver")
	}

	task, err := queue.NewOrderStatusNoticeTask(queue.OrderStatusNoticePayload{ScopeID: "5", UserID: 5, OrderNo: "FM1", From: "pending", To: "paid"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleOrderStatusNotice(context.Background(), task); err != nil {
		t.Fatalf("handle notice failed: %v", err)
	}
}
