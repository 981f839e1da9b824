package cart

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusCanceled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPaid, OrderStatusProcessing, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCanceled, true},
		{OrderStatusShipped, OrderStatusCompleted, true},
		{OrderStatusShipped, OrderStatusCanceled, false},
		{OrderStatusCompleted, OrderStatusCanceled, false},
		{OrderStatusCanceled, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatus("refunded"), false},
		{OrderStatus("refunded"), OrderStatus("refunded"), false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: got %v want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus(" Shipped ")
	if err != nil || status != OrderStatusShipped {
		t.Fatalf("unexpected parse result: %v %v", status, err)
	}
	if _, err := ParseOrderStatus("lost"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if !OrderStatusCanceled.Terminal() || OrderStatusPaid.Terminal() {
		t.Fatalf("terminal flags mismatch")
	}
}

func TestScope(t *testing.T) {
	if s := GuestScope(""); s.String() != "guest" || !s.IsGuest() {
		t.Fatalf("unexpected guest scope %+v", s)
	}
	if !GuestScope(" ").Shared() || GuestScope("abc").Shared() || UserScope(3).Shared() {
		t.Fatalf("only the token-less guest scope is shared")
	}
	if s := GuestScope("abc"); s.String() != "guest_abc" {
		t.Fatalf("unexpected token scope %+v", s)
	}
	if s := UserScope(42); s.String() != "42" || s.IsGuest() {
		t.Fatalf("unexpected user scope %+v", s)
	}
}
