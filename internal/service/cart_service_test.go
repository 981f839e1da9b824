package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/kvstore"

	"github.com/google/go-cmp/cmp"
)

func testCtx() context.Context {
	return context.Background()
}

func lineIDsWithQty(c *cart.Cart) map[string]int {
	out := make(map[string]int, len(c.Lines))
	for _, line := range c.Lines {
		out[line.ID] = line.Quantity
	}
	return out
}

func TestCartAddTwiceKeepsSingleLine(t *testing.T) {
	env := newTestEnv(t)
	scope := cart.GuestScope("t1")
	item := cart.Line{ID: "A", Name: "Acrylic", Price: "฿120"}
	if _, err := env.carts.Add(testCtx(), scope, item); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	c, err := env.carts.Add(testCtx(), scope, item)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 2 {
		t.Fatalf("want one line qty 2, got %+v", c.Lines)
	}
	if c.ItemCount() != 2 || !c.Total().Equal(c.Lines[0].LineTotal()) {
		t.Fatalf("unexpected totals count=%d total=%s", c.ItemCount(), c.Total())
	}

	reloaded := env.carts.Get(testCtx(), scope)
	if diff := cmp.Diff(c.Lines, reloaded.Lines); diff != "" {
		t.Fatalf("persisted cart mismatch (-want +got):\n%s", diff)
	}
}

func TestCartSetQuantityZeroRemoves(t *testing.T) {
	env := newTestEnv(t)
	scope := cart.GuestScope("t2")
	for _, id := range []string{"A", "B"} {
		if _, err := env.carts.Add(testCtx(), scope, cart.Line{ID: id, Price: "100"}); err != nil {
			t.Fatalf("add %s failed: %v", id, err)
		}
	}
	viaZero, err := env.carts.SetQuantity(testCtx(), scope, "A", 0)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if viaZero.Contains("A") || !viaZero.Contains("B") {
		t.Fatalf("set 0 should remove A only: %+v", viaZero.Lines)
	}
	if _, err := env.carts.SetQuantity(testCtx(), scope, "missing", 3); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("want ErrCartItemNotFound, got %v", err)
	}
	c, err := env.carts.SetQuantity(testCtx(), scope, "B", 4)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if c.ItemCount() != 4 {
		t.Fatalf("item count want 4 got %d", c.ItemCount())
	}
}

func TestCartPersistSkipsEmptyCartWithoutKey(t *testing.T) {
	env := newTestEnv(t)
	scope := cart.GuestScope("fresh")
	if _, err := env.carts.Clear(testCtx(), scope); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := env.carts.Remove(testCtx(), scope, "A"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if env.store.Len() != 0 {
		t.Fatalf("empty cart without prior key must not be written, store has %d keys", env.store.Len())
	}

	if _, err := env.carts.Add(testCtx(), scope, cart.Line{ID: "A", Price: "1"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := env.carts.Remove(testCtx(), scope, "A"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	raw, ok, err := env.store.Get(testCtx(), kvstore.ScopedKey(kvstore.KeyCart, scope.String()))
	if err != nil || !ok {
		t.Fatalf("emptied cart should be written, ok=%v err=%v", ok, err)
	}
	if raw != `{"items":[]}` {
		t.Fatalf("unexpected stored value %s", raw)
	}
}

func TestCartCorruptValueReadsAsEmpty(t *testing.T) {
	env := newTestEnv(t)
	scope := cart.UserScope(7)
	key := kvstore.ScopedKey(kvstore.KeyCart, scope.String())
	if err := env.store.Set(testCtx(), key, "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if c := env.carts.Get(testCtx(), scope); !c.IsEmpty() {
		t.Fatalf("corrupt cart should read as empty, got %+v", c.Lines)
	}
	c, err := env.carts.Add(testCtx(), scope, cart.Line{ID: "A", Price: "5"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if c.ItemCount() != 1 {
		t.Fatalf("want 1 item got %d", c.ItemCount())
	}
}

func TestCartLimitedItemRules(t *testing.T) {
	env := newTestEnv(t)
	scope := cart.UserScope(1)
	limited := cart.Line{ID: "K", Price: "฿990", Limited: true}

	if _, err := env.carts.Add(testCtx(), scope, limited); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := env.carts.Add(testCtx(), scope, limited); !errors.Is(err, ErrPurchaseLimitReached) {
		t.Fatalf("second add want ErrPurchaseLimitReached, got %v", err)
	}
	if _, err := env.carts.SetQuantity(testCtx(), scope, "K", 2); !errors.Is(err, ErrPurchaseLimitReached) {
		t.Fatalf("set qty 2 want ErrPurchaseLimitReached, got %v", err)
	}
	if !env.carts.IsLimited(testCtx(), scope, "K") {
		t.Fatalf("K in cart should be limited")
	}

	// 登出后以新访客身份加购，再次登录
	guest := cart.GuestScope("after-logout")
	if _, err := env.carts.Add(testCtx(), guest, cart.Line{ID: "G", Price: "฿10"}); err != nil {
		t.Fatalf("guest add failed: %v", err)
	}
	result, err := env.carts.SwitchScope(testCtx(), guest, scope)
	if err != nil || !result.Merged {
		t.Fatalf("relogin merge failed: merged=%v err=%v", result != nil && result.Merged, err)
	}
	if line, ok := result.Cart.Find("K"); !ok || line.Quantity != 1 {
		t.Fatalf("K should survive logout/login, got %+v", result.Cart.Lines)
	}
	if !env.carts.IsLimited(testCtx(), scope, "K") {
		t.Fatalf("K should stay limited after logout/login")
	}

	if err := env.carts.RecordPurchase(testCtx(), scope, "K", "K"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if _, err := env.carts.Remove(testCtx(), scope, "K"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if !env.carts.IsLimited(testCtx(), scope, "K") {
		t.Fatalf("purchased K should stay limited after removal")
	}
	if got := env.purchases.List(testCtx(), scope); len(got) != 1 {
		t.Fatalf("purchase record should dedupe, got %v", got)
	}
	if _, err := env.carts.Add(testCtx(), scope, limited); !errors.Is(err, ErrPurchaseLimitReached) {
		t.Fatalf("purchased limited add want ErrPurchaseLimitReached, got %v", err)
	}
	if env.carts.IsLimited(testCtx(), scope, "other") {
		t.Fatalf("unknown id should not be limited")
	}
}

func TestSharedGuestScopeIsNotWritable(t *testing.T) {
	env := newTestEnv(t)
	shared := cart.GuestScope("")
	visitor := cart.GuestScope("visitor-a1")
	if _, err := env.carts.Add(testCtx(), visitor, cart.Line{ID: "A-private", Price: "฿100"}); err != nil {
		t.Fatalf("visitor add failed: %v", err)
	}

	if _, err := env.carts.Add(testCtx(), shared, cart.Line{ID: "B", Price: "฿1"}); !errors.Is(err, ErrGuestSessionRequired) {
		t.Fatalf("add on shared scope want ErrGuestSessionRequired, got %v", err)
	}
	if _, err := env.carts.Clear(testCtx(), shared); !errors.Is(err, ErrGuestSessionRequired) {
		t.Fatalf("clear on shared scope want ErrGuestSessionRequired, got %v", err)
	}
	if err := env.carts.RecordPurchase(testCtx(), shared, "B"); !errors.Is(err, ErrGuestSessionRequired) {
		t.Fatalf("record on shared scope want ErrGuestSessionRequired, got %v", err)
	}
	if c := env.carts.Get(testCtx(), shared); !c.IsEmpty() {
		t.Fatalf("shared scope must not see visitor carts, got %+v", c.Lines)
	}

	user := cart.UserScope(7)
	result, err := env.carts.SwitchScope(testCtx(), shared, user)
	if err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if result.Merged || !result.Cart.IsEmpty() {
		t.Fatalf("login without a guest token must not merge, got merged=%v lines=%+v", result.Merged, result.Cart.Lines)
	}
	if c := env.carts.Get(testCtx(), visitor); c.ItemCount() != 1 {
		t.Fatalf("visitor cart should be untouched, got %+v", c.Lines)
	}
}

func TestCartAddProductRespectsStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, productFixture{slug: "nahida-figure", price: 1290, track: true, stock: 1})
	scope := cart.GuestScope("stock")

	c, err := env.carts.AddProduct(testCtx(), scope, product.ID, "en-US")
	if err != nil {
		t.Fatalf("add product failed: %v", err)
	}
	line := c.Lines[0]
	if line.ID != strconv.FormatUint(uint64(product.ID), 10) || line.Name != "Item nahida-figure" {
		t.Fatalf("unexpected line %+v", line)
	}
	if line.Fandom != "Genshin Impact" || line.Category != "Figures" {
		t.Fatalf("display fields not resolved: %+v", line)
	}
	if !line.UnitPrice().Equal(product.PriceAmount.Decimal) {
		t.Fatalf("price %s does not parse back to %s", line.Price, product.PriceAmount.Decimal)
	}
	if _, err := env.carts.AddProduct(testCtx(), scope, product.ID, "en-US"); !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("want ErrStockInsufficient, got %v", err)
	}
	if _, err := env.carts.SetQuantity(testCtx(), scope, line.ID, 2); !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("set over stock want ErrStockInsufficient, got %v", err)
	}
	if _, err := env.carts.AddProduct(testCtx(), scope, 9999, "en-US"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestSwitchScopeMergesGuestIntoUser(t *testing.T) {
	env := newTestEnv(t)
	guest := cart.GuestScope("abc")
	user := cart.UserScope(42)

	mustAdd := func(scope cart.Scope, id string, qty int) {
		t.Helper()
		for i := 0; i < qty; i++ {
			if _, err := env.carts.Add(testCtx(), scope, cart.Line{ID: id, Price: "฿100"}); err != nil {
				t.Fatalf("add %s failed: %v", id, err)
			}
		}
	}
	mustAdd(guest, "A", 2)
	mustAdd(user, "A", 1)
	mustAdd(user, "B", 3)

	result, err := env.carts.SwitchScope(testCtx(), guest, user)
	if err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if !result.Merged {
		t.Fatalf("expected merge")
	}
	want := map[string]int{"A": 3, "B": 3}
	if diff := cmp.Diff(want, lineIDsWithQty(result.Cart)); diff != "" {
		t.Fatalf("merged cart mismatch (-want +got):\n%s", diff)
	}
	if _, ok, _ := env.store.Get(testCtx(), kvstore.ScopedKey(kvstore.KeyCart, guest.String())); ok {
		t.Fatalf("guest cart should be removed after merge")
	}

	again, err := env.carts.SwitchScope(testCtx(), guest, user)
	if err != nil {
		t.Fatalf("second switch failed: %v", err)
	}
	if again.Merged {
		t.Fatalf("second switch should not merge")
	}
	if diff := cmp.Diff(want, lineIDsWithQty(env.carts.Get(testCtx(), user))); diff != "" {
		t.Fatalf("repeat merge changed user cart (-want +got):\n%s", diff)
	}
}

func TestSwitchScopeSkipsPurchasedLimitedLines(t *testing.T) {
	env := newTestEnv(t)
	guest := cart.GuestScope("lim")
	user := cart.UserScope(5)
	if err := env.carts.RecordPurchase(testCtx(), user, "K"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if _, err := env.carts.Add(testCtx(), guest, cart.Line{ID: "K", Price: "1", Limited: true}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := env.carts.Add(testCtx(), guest, cart.Line{ID: "C", Price: "1"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	result, err := env.carts.SwitchScope(testCtx(), guest, user)
	if err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if diff := cmp.Diff([]string{"K"}, result.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
	if result.Cart.Contains("K") || !result.Cart.Contains("C") {
		t.Fatalf("unexpected merged lines %+v", result.Cart.Lines)
	}
	if _, err := env.carts.SwitchScope(testCtx(), guest, cart.GuestScope("x")); !errors.Is(err, ErrScopeInvalid) {
		t.Fatalf("switch into guest scope want ErrScopeInvalid, got %v", err)
	}
}
