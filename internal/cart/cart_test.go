package cart

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func quantities(c *Cart) map[string]int {
	out := make(map[string]int)
	for _, line := range c.Lines {
		out[line.ID] = line.Quantity
	}
	return out
}

func TestCartAddTwiceIncrementsQuantity(t *testing.T) {
	c := New()
	item := Line{ID: "GEN-FIG-0001", Name: "Paimon", Price: "฿450"}
	c.Add(item)
	c.Add(item)
	if len(c.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", c.Lines[0].Quantity)
	}
}

func TestCartAddIgnoresIncomingQuantity(t *testing.T) {
	c := New()
	c.Add(Line{ID: "a", Price: "฿10", Quantity: 9})
	if got := c.ItemCount(); got != 1 {
		t.Fatalf("expected count 1, got %d", got)
	}
}

func TestCartSetQuantityZeroEqualsRemove(t *testing.T) {
	a := New(Line{ID: "x", Price: "฿1", Quantity: 3}, Line{ID: "y", Price: "฿2", Quantity: 1})
	b := a.Clone()

	a.SetQuantity("x", 0)
	b.Remove("x")
	if diff := cmp.Diff(b.Lines, a.Lines); diff != "" {
		t.Fatalf("set quantity 0 differs from remove (-want +got):\n%s", diff)
	}

	a.SetQuantity("y", -4)
	if !a.IsEmpty() {
		t.Fatalf("negative quantity should remove line")
	}
}

func TestCartRemoveMissingIsNoop(t *testing.T) {
	c := New(Line{ID: "x", Price: "฿1", Quantity: 1})
	if c.Remove("nope") {
		t.Fatalf("remove of missing id should report false")
	}
	if c.ItemCount() != 1 {
		t.Fatalf("cart changed on missing remove")
	}
}

func TestCartItemCountTracksMutations(t *testing.T) {
	c := New()
	steps := []func(){
		func() { c.Add(Line{ID: "a", Price: "฿1"}) },
		func() { c.Add(Line{ID: "b", Price: "฿1"}) },
		func() { c.Add(Line{ID: "a", Price: "฿1"}) },
		func() { c.SetQuantity("b", 5) },
		func() { c.Remove("a") },
		func() { c.SetQuantity("missing", 3) },
		func() { c.SetQuantity("b", 0) },
		func() { c.Add(Line{ID: "c", Price: "฿1"}) },
	}
	for i, step := range steps {
		step()
		sum := 0
		for _, line := range c.Lines {
			if line.Quantity < 1 {
				t.Fatalf("step %d left non-positive line %+v", i, line)
			}
			sum += line.Quantity
		}
		if c.ItemCount() != sum {
			t.Fatalf("step %d: item count %d, sum %d", i, c.ItemCount(), sum)
		}
	}
	if c.ItemCount() != 1 {
		t.Fatalf("expected final count 1, got %d", c.ItemCount())
	}
}

func TestCartTotalTreatsInvalidPriceAsZero(t *testing.T) {
	c := New(
		Line{ID: "a", Price: "฿100", Quantity: 2},
		Line{ID: "b", Price: "invalid", Quantity: 5},
	)
	if !c.Total().Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected total 200, got %s", c.Total())
	}
}

func TestCartMergeSumsQuantities(t *testing.T) {
	user := New(Line{ID: "A", Price: "฿1", Quantity: 1}, Line{ID: "B", Price: "฿1", Quantity: 3})
	guest := New(Line{ID: "A", Price: "฿1", Quantity: 2})

	user.Merge(guest, MergeOptions{})
	want := map[string]int{"A": 3, "B": 3}
	if diff := cmp.Diff(want, quantities(user)); diff != "" {
		t.Fatalf("merged cart mismatch (-want +got):\n%s", diff)
	}

	user.Merge(New(), MergeOptions{})
	if diff := cmp.Diff(want, quantities(user)); diff != "" {
		t.Fatalf("merging empty cart changed result (-want +got):\n%s", diff)
	}
}

func TestCartMergeAppendsNewLinesInOrder(t *testing.T) {
	user := New(Line{ID: "A", Price: "฿1", Quantity: 1})
	guest := New(Line{ID: "C", Price: "฿1", Quantity: 1}, Line{ID: "B", Price: "฿1", Quantity: 2})
	user.Merge(guest, MergeOptions{})
	if diff := cmp.Diff([]string{"A", "C", "B"}, user.IDs()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCartMergeClampsLimitedLines(t *testing.T) {
	user := New(Line{ID: "K", Price: "฿1", Quantity: 1, Limited: true})
	guest := New(
		Line{ID: "K", Price: "฿1", Quantity: 1, Limited: true},
		Line{ID: "P", Price: "฿1", Quantity: 1, Limited: true},
		Line{ID: "Q", Price: "฿1", Quantity: 3, Limited: true},
	)
	skipped := user.Merge(guest, MergeOptions{Purchased: map[string]bool{"P": true}})

	if diff := cmp.Diff([]string{"P"}, skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
	want := map[string]int{"K": 1, "Q": 1}
	if diff := cmp.Diff(want, quantities(user)); diff != "" {
		t.Fatalf("limited merge mismatch (-want +got):\n%s", diff)
	}
}

func TestNewOrderSnapshotsCart(t *testing.T) {
	c := New(Line{ID: "a", Price: "฿1,200.50", Quantity: 2, Limited: true}, Line{ID: "b", Price: "$3", Quantity: 1})
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	order := NewOrder("FM1", c, "THB", now)

	c.SetQuantity("a", 7)
	if order.Items[0].Quantity != 2 {
		t.Fatalf("order snapshot shares memory with cart")
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("2404")) {
		t.Fatalf("unexpected total %s", order.TotalAmount)
	}
	if order.Status != OrderStatusPending {
		t.Fatalf("unexpected status %s", order.Status)
	}
	if !order.StatusChangedAt().Equal(now) {
		t.Fatalf("status time should start at placement, got %s", order.StatusChangedAt())
	}
	legacy := order
	legacy.StatusAt = time.Time{}
	if !legacy.StatusChangedAt().Equal(now) {
		t.Fatalf("missing status time should fall back to order date")
	}
	if diff := cmp.Diff([]string{"a"}, order.LimitedItemIDs()); diff != "" {
		t.Fatalf("limited ids mismatch (-want +got):\n%s", diff)
	}
	if order.ItemCount() != 3 {
		t.Fatalf("unexpected item count %d", order.ItemCount())
	}
}
