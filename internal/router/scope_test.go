package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/http/handlers/shared"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testUserSecret = "router-test-secret"

func newScopeEngine(t *testing.T) (*gin.Engine, *repository.GormUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	userRepo := repository.NewUserRepository(db)

	r := gin.New()
	r.GET("/cart", ScopeMiddleware(testUserSecret, userRepo), func(c *gin.Context) {
		scope, _ := shared.GetScope(c)
		c.JSON(http.StatusOK, gin.H{"scope": scope.String(), "user_id": scope.UserID})
	})
	return r, userRepo
}

type scopeResp struct {
	StatusCode int    `json:"status_code"`
	Scope      string `json:"scope"`
	UserID     uint   `json:"user_id"`
}

func doScopeRequest(t *testing.T, r *gin.Engine, headers map[string]string) scopeResp {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	var resp scopeResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func TestScopeMiddlewareGuestFallbacks(t *testing.T) {
	r, _ := newScopeEngine(t)

	if got := doScopeRequest(t, r, nil); got.StatusCode != 401 || got.Scope != "" {
		t.Fatalf("no header should ask for a guest session, got %+v", got)
	}
	got := doScopeRequest(t, r, map[string]string{GuestTokenHeader: "abcdef12-3456"})
	if got.Scope != "guest_abcdef12-3456" {
		t.Fatalf("guest token scope want guest_abcdef12-3456 got %s", got.Scope)
	}
	got = doScopeRequest(t, r, map[string]string{GuestTokenHeader: "bad token!"})
	if got.StatusCode != 401 || got.Scope == cart.GuestScopeID {
		t.Fatalf("malformed guest token must not reach the shared guest scope, got %+v", got)
	}
	got = doScopeRequest(t, r, map[string]string{"Authorization": "Bearer not-a-jwt"})
	if got.StatusCode != 401 {
		t.Fatalf("invalid user token without guest token should be rejected, got %+v", got)
	}
	got = doScopeRequest(t, r, map[string]string{
		"Authorization":  "Bearer not-a-jwt",
		GuestTokenHeader: "abcdef12-3456",
	})
	if got.Scope != "guest_abcdef12-3456" || got.UserID != 0 {
		t.Fatalf("invalid user token should fall back to guest token scope, got %+v", got)
	}
}

func TestScopeMiddlewareUserToken(t *testing.T) {
	r, userRepo := newScopeEngine(t)
	user := &models.User{Email: "mika@example.com", PasswordHash: "x", Status: "active"}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	cfg := &config.Config{UserJWT: config.JWTConfig{SecretKey: testUserSecret, ExpireHours: 1}}
	token, _, err := service.NewUserAuthService(cfg, userRepo).GenerateUserJWT(user, 1)
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}

	got := doScopeRequest(t, r, map[string]string{
		"Authorization":  "Bearer " + token,
		GuestTokenHeader: "abcdef12-3456",
	})
	if got.UserID != user.ID || got.Scope != cart.UserScope(user.ID).String() {
		t.Fatalf("user token should win over guest token, got %+v", got)
	}
}

func TestUserJWTAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r, userRepo := newScopeEngine(t)
	r.GET("/me", UserJWTAuthMiddleware(testUserSecret, userRepo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestPermissionModule(t *testing.T) {
	cases := map[string]string{
		"/admin/products/:id":        "products",
		"/admin/authz/roles/:role":   "authz",
		"/admin/custom-requests/:id": "custom-requests",
		"":                           "system",
	}
	for object, want := range cases {
		if got := permissionModule(object); got != want {
			t.Fatalf("permissionModule(%q) want %s got %s", object, want, got)
		}
	}
}

func TestPermissionCatalogSkipsLoginAndDedupes(t *testing.T) {
	routes := gin.RoutesInfo{
		{Method: "POST", Path: "/api/v1/admin/login"},
		{Method: "GET", Path: "/api/v1/admin/products/:id"},
		{Method: "GET", Path: "/api/v1/admin/products/:id"},
		{Method: "OPTIONS", Path: "/api/v1/admin/products"},
		{Method: "GET", Path: "/api/v1/cart"},
		{Method: "PATCH", Path: "/api/v1/admin/orders/:id"},
	}
	entries := permissionCatalog(routes)
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %+v", entries)
	}
	if entries[0].Module != "orders" || entries[0].Permission != "PATCH:/admin/orders/:id" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Module != "products" || entries[1].Method != "GET" {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}
}
