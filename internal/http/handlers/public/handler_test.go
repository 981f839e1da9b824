package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/constants"
	handlershared "github.com/fandom-mart/internal/http/handlers/shared"
	"github.com/fandom-mart/internal/kvstore"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/provider"
	"github.com/fandom-mart/internal/queue"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type storefront struct {
	t         *testing.T
	engine    *gin.Engine
	container *provider.Container
	product   *models.Product
}

// guestScopeOnly 只解析访客令牌，缺失或不合法时不写作用域
func guestScopeOnly(c *gin.Context) {
	if token := handlershared.SanitizeGuestToken(c.GetHeader(constants.HeaderGuestToken)); token != "" {
		handlershared.SetScope(c, cart.GuestScope(token))
	}
	c.Next()
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}

	cfg := &config.Config{UserJWT: config.JWTConfig{SecretKey: "storefront-handler-test-secret-0123", ExpireHours: 1}}
	store := kvstore.NewMemoryStore()
	c := &provider.Container{
		Config:      cfg,
		QueueClient: queueClient,
		Store:       store,
		UserRepo:    repository.NewUserRepository(db),
		ProductRepo: repository.NewProductRepository(db),
		OrderRepo:   repository.NewOrderRepository(db),
	}
	c.ScopeLocker = service.NewScopeLocker()
	c.PurchaseLedger = service.NewPurchaseLedger(store)
	c.OrderLedger = service.NewOrderLedger(store)
	c.CartService = service.NewCartService(store, c.ScopeLocker, c.PurchaseLedger, c.ProductRepo, "THB")
	c.OrderService = service.NewOrderService(store, c.ScopeLocker, c.CartService, c.OrderLedger, c.PurchaseLedger,
		c.ProductRepo, c.OrderRepo, queueClient, service.OrderServiceOptions{Currency: "THB"})
	c.UserAuthService = service.NewUserAuthService(cfg, c.UserRepo)

	fandom := &models.Fandom{Code: "GEN", Slug: "genshin", NameJSON: models.JSON{"en-US": "Genshin Impact"}, IsActive: true}
	if err := db.Create(fandom).Error; err != nil {
		t.Fatalf("create fandom failed: %v", err)
	}
	category := &models.Category{Code: "FIG", Slug: "figures", NameJSON: models.JSON{"en-US": "Figures"}}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		FandomID:      fandom.ID,
		CategoryID:    category.ID,
		Code:          "GEN-FIG-0001",
		Slug:          "hu-tao-figure",
		TitleJSON:     models.JSON{"en-US": "Hu Tao Figure"},
		PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(1500)),
		PriceCurrency: "THB",
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	h := New(c)
	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/guest/session", h.CreateGuestSession)
	api.POST("/auth/register", h.UserRegister)
	api.POST("/auth/login", h.UserLogin)
	scoped := api.Group("", guestScopeOnly)
	scoped.GET("/cart", h.GetCart)
	scoped.POST("/cart/items", h.AddCartItem)
	scoped.GET("/cart/limits/:id", h.GetCartLimit)
	scoped.POST("/orders", h.CreateOrder)
	scoped.GET("/orders", h.ListOrders)
	scoped.POST("/orders/:id/cancel", h.CancelOrder)

	return &storefront{t: t, engine: r, container: c, product: product}
}

func (s *storefront) do(method, path, guestToken string, body interface{}) envelope {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	if guestToken != "" {
		req.Header.Set(constants.HeaderGuestToken, guestToken)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		s.t.Fatalf("%s %s: unmarshal response failed: %v (%s)", method, path, err, w.Body.String())
	}
	return resp
}

func (s *storefront) guestToken() string {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/guest/session", "", nil)
	var data struct {
		GuestToken string `json:"guest_token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || data.GuestToken == "" {
		s.t.Fatalf("guest session failed: %v %s", err, resp.Data)
	}
	return data.GuestToken
}

func (s *storefront) addProduct(token string) envelope {
	s.t.Helper()
	return s.do(http.MethodPost, "/cart/items", token, gin.H{"product_id": s.product.ID})
}

func decodeData(t *testing.T, resp envelope, dest interface{}) {
	t.Helper()
	if resp.StatusCode != 0 {
		t.Fatalf("unexpected error response %d %s", resp.StatusCode, resp.Msg)
	}
	if err := json.Unmarshal(resp.Data, dest); err != nil {
		t.Fatalf("decode data failed: %v", err)
	}
}

func TestCartRoutesRequireGuestToken(t *testing.T) {
	s := newStorefront(t)
	token := s.guestToken()

	var summary service.CartSummary
	decodeData(t, s.addProduct(token), &summary)
	if summary.ItemCount != 1 || summary.Scope != "guest_"+token {
		t.Fatalf("unexpected cart after add %+v", summary)
	}

	for _, bad := range []string{"", "bad token!"} {
		resp := s.addProduct(bad)
		if resp.StatusCode != 401 {
			t.Fatalf("add with token %q want 401 got %d", bad, resp.StatusCode)
		}
		if resp.Msg != "Guest session required, call /guest/session first" {
			t.Fatalf("unexpected message %q", resp.Msg)
		}
		var anonymous service.CartSummary
		decodeData(t, s.do(http.MethodGet, "/cart", bad, nil), &anonymous)
		if anonymous.ItemCount != 0 {
			t.Fatalf("token %q must not see another visitor's cart, got %+v", bad, anonymous)
		}
	}

	decodeData(t, s.do(http.MethodGet, "/cart", token, nil), &summary)
	if summary.ItemCount != 1 {
		t.Fatalf("visitor cart want 1 item, got %d", summary.ItemCount)
	}
}

type authData struct {
	User struct {
		ID uint `json:"id"`
	} `json:"user"`
	Token     string `json:"token"`
	CartMerge struct {
		Merged bool `json:"merged"`
	} `json:"cart_merge"`
}

func TestLoginMergesOnlyWithGuestToken(t *testing.T) {
	s := newStorefront(t)
	ctx := t.Context()
	lineID := strconv.FormatUint(uint64(s.product.ID), 10)

	first := s.guestToken()
	if resp := s.addProduct(first); resp.StatusCode != 0 {
		t.Fatalf("add failed: %s", resp.Msg)
	}
	var registered authData
	decodeData(t, s.do(http.MethodPost, "/auth/register", "", gin.H{
		"email":       "lumine@example.com",
		"password":    "Traveler-2026",
		"guest_token": first,
	}), &registered)
	if !registered.CartMerge.Merged || registered.Token == "" {
		t.Fatalf("register with guest token should merge, got %+v", registered)
	}
	user := cart.UserScope(registered.User.ID)
	if c := s.container.CartService.Get(ctx, user); c.ItemCount() != 1 {
		t.Fatalf("user cart want 1 item, got %+v", c.Lines)
	}
	if c := s.container.CartService.Get(ctx, cart.GuestScope(first)); !c.IsEmpty() {
		t.Fatalf("merged guest cart should be removed, got %+v", c.Lines)
	}

	second := s.guestToken()
	if resp := s.addProduct(second); resp.StatusCode != 0 {
		t.Fatalf("add failed: %s", resp.Msg)
	}
	login := gin.H{"email": "lumine@example.com", "password": "Traveler-2026"}
	var plain authData
	decodeData(t, s.do(http.MethodPost, "/auth/login", "", login), &plain)
	if plain.CartMerge.Merged {
		t.Fatalf("login without guest token must not merge")
	}
	if c := s.container.CartService.Get(ctx, cart.GuestScope(second)); c.ItemCount() != 1 {
		t.Fatalf("untouched visitor cart should keep its item, got %+v", c.Lines)
	}

	var malformed authData
	decodeData(t, s.do(http.MethodPost, "/auth/login", "", gin.H{
		"email":       "lumine@example.com",
		"password":    "Traveler-2026",
		"guest_token": "bad token!",
	}), &malformed)
	if malformed.CartMerge.Merged {
		t.Fatalf("malformed guest token must not merge")
	}

	var viaHeader authData
	decodeData(t, s.do(http.MethodPost, "/auth/login", second, login), &viaHeader)
	if !viaHeader.CartMerge.Merged {
		t.Fatalf("header guest token should merge")
	}
	line, ok := s.container.CartService.Get(ctx, user).Find(lineID)
	if !ok || line.Quantity != 2 {
		t.Fatalf("merged quantity want 2, got %+v ok=%v", line, ok)
	}
}

func TestCheckoutThenCancel(t *testing.T) {
	s := newStorefront(t)
	token := s.guestToken()
	lineID := strconv.FormatUint(uint64(s.product.ID), 10)

	if resp := s.do(http.MethodPost, "/orders", "", nil); resp.StatusCode != 401 {
		t.Fatalf("checkout without token want 401 got %d", resp.StatusCode)
	}
	if resp := s.addProduct(token); resp.StatusCode != 0 {
		t.Fatalf("add failed: %s", resp.Msg)
	}
	var order cart.Order
	decodeData(t, s.do(http.MethodPost, "/orders", token, nil), &order)
	if order.Status != cart.OrderStatusPending || len(order.Items) != 1 {
		t.Fatalf("unexpected order %+v", order)
	}

	var orders []cart.Order
	decodeData(t, s.do(http.MethodGet, "/orders", token, nil), &orders)
	if len(orders) != 1 || orders[0].ID != order.ID {
		t.Fatalf("ledger want the new order, got %+v", orders)
	}
	decodeData(t, s.do(http.MethodGet, "/orders", "", nil), &orders)
	if len(orders) != 0 {
		t.Fatalf("token-less visitor must not list other orders, got %d", len(orders))
	}

	var limit struct {
		Limited bool `json:"limited"`
	}
	decodeData(t, s.do(http.MethodGet, "/cart/limits/"+lineID, token, nil), &limit)
	if !limit.Limited {
		t.Fatalf("purchased item should be limited before cancel")
	}

	other := s.guestToken()
	if resp := s.do(http.MethodPost, "/orders/"+order.ID+"/cancel", other, nil); resp.StatusCode != 404 {
		t.Fatalf("another visitor cancel want 404 got %d", resp.StatusCode)
	}
	if resp := s.do(http.MethodPost, "/orders/"+order.ID+"/cancel", "", nil); resp.StatusCode != 401 {
		t.Fatalf("token-less cancel want 401 got %d", resp.StatusCode)
	}

	var canceled cart.Order
	decodeData(t, s.do(http.MethodPost, "/orders/"+order.ID+"/cancel", token, nil), &canceled)
	if canceled.Status != cart.OrderStatusCanceled {
		t.Fatalf("status want canceled got %s", canceled.Status)
	}
	decodeData(t, s.do(http.MethodGet, "/cart/limits/"+lineID, token, nil), &limit)
	if limit.Limited {
		t.Fatalf("canceled item should no longer be limited")
	}
	if resp := s.do(http.MethodPost, "/orders/"+order.ID+"/cancel", token, nil); resp.StatusCode != 400 {
		t.Fatalf("second cancel want 400 got %d", resp.StatusCode)
	}
}
