package router

import (
	"net/http"

	"github.com/fandom-mart/internal/cache"
	"github.com/fandom-mart/internal/config"
	adminhandlers "github.com/fandom-mart/internal/http/handlers/admin"
	publichandlers "github.com/fandom-mart/internal/http/handlers/public"
	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// rateRules 各入口的限流规则，键统一挂在 <prefix>:rate: 下
type rateRules struct {
	client                              *redis.Client
	login, adminLogin, submit, checkout RateLimitRule
}

func newRateRules(cfg *config.Config) rateRules {
	prefix := cache.Prefix() + ":rate:"
	login := cfg.Security.LoginRateLimit
	loginRule := func(name string) RateLimitRule {
		return RateLimitRule{
			Prefix:        prefix + name,
			WindowSeconds: login.WindowSeconds,
			MaxRequests:   login.MaxAttempts,
			BlockSeconds:  login.BlockSeconds,
			MessageKey:    "error.login_too_many",
		}
	}
	return rateRules{
		client:     cache.Client(),
		login:      loginRule("login"),
		adminLogin: loginRule("admin_login"),
		submit:     RateLimitRule{Prefix: prefix + "submit", WindowSeconds: 60, MaxRequests: 10},
		checkout:   RateLimitRule{Prefix: prefix + "checkout", WindowSeconds: 60, MaxRequests: 5},
	}
}

func (r rateRules) limit(rule RateLimitRule, key RateLimitKeyFunc) gin.HandlerFunc {
	return RateLimitMiddleware(r.client, rule, key)
}

// SetupRouter 组装 /api/v1 下的店面、用户与后台路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(log), CORSMiddleware(cfg.CORS))

	rules := newRateRules(cfg)
	api := engine.Group("/api/v1")
	registerStorefront(api, cfg, c, rules)
	registerAdmin(engine, api.Group("/admin"), cfg, c, rules)

	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return engine
}

func registerStorefront(api *gin.RouterGroup, cfg *config.Config, c *provider.Container, rules rateRules) {
	h := publichandlers.New(c)
	secret := cfg.UserJWT.SecretKey

	catalog := api.Group("/public")
	catalog.GET("/config", h.GetConfig)
	catalog.GET("/fandoms", h.GetFandoms)
	catalog.GET("/fandoms/:slug", h.GetFandomPage)
	catalog.GET("/categories", h.GetCategories)
	catalog.GET("/products", h.GetProducts)
	catalog.GET("/products/:key", h.GetProduct)
	catalog.GET("/captcha/image", h.GetImageCaptcha)

	api.POST("/guest/session", h.CreateGuestSession)

	// 购物车与订单按 scope 隔离：游客 token 或登录用户
	scoped := api.Group("", ScopeMiddleware(secret, c.UserRepo))
	scoped.GET("/cart", h.GetCart)
	scoped.DELETE("/cart", h.ClearCart)
	scoped.POST("/cart/items", h.AddCartItem)
	scoped.PUT("/cart/items/:id", h.UpdateCartItem)
	scoped.DELETE("/cart/items/:id", h.DeleteCartItem)
	scoped.GET("/cart/limits/:id", h.GetCartLimit)
	scoped.POST("/orders", rules.limit(rules.checkout, KeyByScope), h.CreateOrder)
	scoped.GET("/orders", h.ListOrders)
	scoped.GET("/orders/:id", h.GetOrder)
	scoped.POST("/orders/:id/cancel", h.CancelOrder)

	support := api.Group("", OptionalUserAuthMiddleware(secret, c.UserRepo))
	support.POST("/tickets", rules.limit(rules.submit, KeyByIP), h.CreateTicket)
	support.POST("/custom-requests", rules.limit(rules.submit, KeyByIP), h.CreateCustomRequest)

	api.POST("/auth/register", h.UserRegister)
	api.POST("/auth/login", rules.limit(rules.login, KeyByIPAndJSONField("email")), h.UserLogin)

	me := api.Group("/me", UserJWTAuthMiddleware(secret, c.UserRepo))
	me.GET("", h.GetCurrentUser)
	me.PUT("/profile", h.UpdateUserProfile)
	me.PUT("/password", h.ChangeUserPassword)
	me.GET("/tickets", h.ListMyTickets)
}

func registerAdmin(engine *gin.Engine, group *gin.RouterGroup, cfg *config.Config, c *provider.Container, rules rateRules) {
	h := adminhandlers.New(c)
	group.POST("/login", rules.limit(rules.adminLogin, KeyByIP), h.AdminLogin)

	a := group.Group("", JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
	a.GET("/me", h.GetAdminMe)
	a.PUT("/password", h.UpdateAdminPassword)

	a.GET("/fandoms", h.GetAdminFandoms)
	a.POST("/fandoms", h.CreateFandom)
	a.PUT("/fandoms/:id", h.UpdateFandom)
	a.DELETE("/fandoms/:id", h.DeleteFandom)
	a.GET("/categories", h.GetAdminCategories)
	a.POST("/categories", h.CreateCategory)
	a.PUT("/categories/:id", h.UpdateCategory)
	a.DELETE("/categories/:id", h.DeleteCategory)
	a.GET("/products", h.GetAdminProducts)
	a.GET("/products/:id", h.GetAdminProduct)
	a.POST("/products", h.CreateProduct)
	a.PUT("/products/:id", h.UpdateProduct)
	a.DELETE("/products/:id", h.DeleteProduct)
	a.GET("/pre-orders", h.GetPreOrders)

	a.GET("/orders", h.AdminListOrders)
	a.GET("/orders/:id", h.AdminGetOrder)
	a.PATCH("/orders/:id", h.AdminUpdateOrderStatus)

	a.GET("/tickets", h.GetAdminTickets)
	a.GET("/tickets/:id", h.GetAdminTicket)
	a.PATCH("/tickets/:id", h.UpdateAdminTicket)
	a.GET("/custom-requests", h.GetAdminCustomRequests)
	a.GET("/custom-requests/:id", h.GetAdminCustomRequest)
	a.POST("/custom-requests/:id/quote", h.QuoteCustomRequest)
	a.PATCH("/custom-requests/:id", h.UpdateCustomRequestStatus)

	a.GET("/users", h.GetAdminUsers)
	a.PUT("/users/batch-status", h.BatchUpdateUserStatus)
	a.GET("/users/:id", h.GetAdminUser)

	authz := a.Group("/authz")
	authz.GET("/me", h.GetAuthzMe)
	authz.GET("/permissions/catalog", func(ctx *gin.Context) {
		response.Success(ctx, permissionCatalog(engine.Routes()))
	})
	authz.GET("/roles", h.ListAuthzRoles)
	authz.POST("/roles", h.CreateAuthzRole)
	authz.DELETE("/roles/:role", h.DeleteAuthzRole)
	authz.GET("/roles/:role/policies", h.GetAuthzRolePolicies)
	authz.POST("/policies", h.GrantAuthzPolicy)
	authz.DELETE("/policies", h.RevokeAuthzPolicy)
	authz.GET("/admins", h.ListAuthzAdmins)
	authz.POST("/admins", h.CreateAuthzAdmin)
	authz.DELETE("/admins/:id", h.DeleteAuthzAdmin)
	authz.GET("/admins/:id/roles", h.GetAuthzAdminRoles)
	authz.PUT("/admins/:id/roles", h.SetAuthzAdminRoles)
}
