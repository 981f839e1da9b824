package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fandom-mart/internal/authz"
	"github.com/fandom-mart/internal/cache"
	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/constants"
	"github.com/fandom-mart/internal/http/handlers/shared"
	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/i18n"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const adminIsSuperContextKey = "admin_is_super"

// GuestTokenHeader 访客购物车令牌请求头
const GuestTokenHeader = constants.HeaderGuestToken

var defaultCORSMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

var defaultCORSHeaders = []string{
	"Content-Type",
	"Authorization",
	"Accept-Language",
	"Cache-Control",
	"X-Requested-With",
	requestIDHeader,
	GuestTokenHeader,
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}

// CORSMiddleware 预检请求直接 204
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	origins := orDefault(cfg.AllowedOrigins, []string{"*"})
	fixed := map[string]string{
		"Access-Control-Allow-Methods":  strings.Join(orDefault(cfg.AllowedMethods, defaultCORSMethods), ", "),
		"Access-Control-Allow-Headers":  strings.Join(orDefault(cfg.AllowedHeaders, defaultCORSHeaders), ", "),
		"Access-Control-Expose-Headers": requestIDHeader,
	}
	if cfg.AllowCredentials {
		fixed["Access-Control-Allow-Credentials"] = "true"
	}
	if cfg.MaxAge > 0 {
		fixed["Access-Control-Max-Age"] = strconv.Itoa(cfg.MaxAge)
	}

	return func(c *gin.Context) {
		header := c.Writer.Header()
		if allowed := resolveAllowedOrigin(c.GetHeader("Origin"), origins, cfg.AllowCredentials); allowed != "" {
			header.Set("Access-Control-Allow-Origin", allowed)
			if allowed != "*" {
				header.Add("Vary", "Origin")
			}
		}
		for key, value := range fixed {
			header.Set(key, value)
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// resolveAllowedOrigin 携带凭证时不能回 *，改为回显请求来源
func resolveAllowedOrigin(origin string, allowed []string, credentials bool) string {
	wildcard := false
	for _, item := range allowed {
		if item == "*" {
			wildcard = true
			break
		}
	}
	switch {
	case wildcard && credentials && origin != "":
		return origin
	case wildcard:
		return "*"
	case origin == "":
		return ""
	}
	for _, item := range allowed {
		if strings.EqualFold(item, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 沿用上游传入的 X-Request-ID，缺省时生成 uuid
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// LoggerMiddleware 每个请求一条 request 日志，带错误时记为 error 级别
func LoggerMiddleware(base *zap.Logger) gin.HandlerFunc {
	if base == nil {
		base = zap.L()
	}
	sugar := base.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if scope, ok := c.Get(shared.ScopeContextKey); ok {
			if s, ok := scope.(cart.Scope); ok {
				fields = append(fields, "scope", s.String())
			}
		}
		if len(c.Errors) > 0 {
			sugar.Errorw("request", append(fields, "errors", c.Errors.String())...)
			return
		}
		sugar.Infow("request", fields...)
	}
}

func getRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// bearerToken 取出 Authorization: Bearer 后的令牌，失败时返回错误文案 key
func bearerToken(c *gin.Context) (string, string) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", "error.auth_header_missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "error.auth_header_invalid"
	}
	return strings.TrimSpace(parts[1]), ""
}

func parseHS256(secretKey, tokenString string, claims jwt.Claims) bool {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	return err == nil && token.Valid
}

func issuedAt(claims jwt.RegisteredClaims) time.Time {
	if claims.IssuedAt == nil {
		return time.Time{}
	}
	return claims.IssuedAt.Time
}

// JWTAuthMiddleware JWT 鉴权中间件
func JWTAuthMiddleware(secretKey string, adminRepo repository.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		if adminRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		tokenString, errKey := bearerToken(c)
		if errKey != "" {
			abortUnauthorized(c, errKey)
			return
		}
		claims := &service.JWTClaims{}
		if !parseHS256(secretKey, tokenString, claims) || claims.AdminID == 0 {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		state, hit, cacheErr := cache.GetAdminAuthState(c.Request.Context(), claims.AdminID)
		if cacheErr != nil || !hit || state == nil {
			admin, err := adminRepo.GetByID(claims.AdminID)
			if err != nil || admin == nil {
				abortUnauthorized(c, "error.token_invalid")
				return
			}
			state = cache.BuildAdminAuthState(admin)
			_ = cache.SetAdminAuthState(c.Request.Context(), state)
		}
		if state.Revokes(claims.TokenVersion, issuedAt(claims.RegisteredClaims)) {
			abortUnauthorized(c, "error.token_revoked")
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("username", claims.Username)
		c.Set(adminIsSuperContextKey, state.IsSuper)
		c.Next()
	}
}

// AdminRBACMiddleware 管理端 RBAC 鉴权中间件
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		if isSuper, ok := c.Get(adminIsSuperContextKey); ok {
			if superValue, typeOK := isSuper.(bool); typeOK && superValue {
				c.Next()
				return
			}
		}

		adminID := c.GetUint("admin_id")
		if adminID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceAdmin(adminID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// authenticateUser 校验用户令牌，失败时返回错误文案 key
func authenticateUser(c *gin.Context, secretKey string, userRepo repository.UserRepository) (*service.UserJWTClaims, string) {
	if secretKey == "" {
		return nil, "error.jwt_secret_missing"
	}
	if userRepo == nil {
		return nil, "error.token_invalid"
	}
	tokenString, errKey := bearerToken(c)
	if errKey != "" {
		return nil, errKey
	}
	claims := &service.UserJWTClaims{}
	if !parseHS256(secretKey, tokenString, claims) || claims.UserID == 0 {
		return nil, "error.token_invalid"
	}

	state, hit, cacheErr := cache.GetUserAuthState(c.Request.Context(), claims.UserID)
	if cacheErr != nil || !hit || state == nil {
		user, err := userRepo.GetByID(claims.UserID)
		if err != nil || user == nil {
			return nil, "error.token_invalid"
		}
		state = cache.BuildUserAuthState(user)
		_ = cache.SetUserAuthState(c.Request.Context(), state)
	}
	if !isActiveUserStatus(state.Status) {
		return nil, "error.user_disabled"
	}
	if state.Revokes(claims.TokenVersion, issuedAt(claims.RegisteredClaims)) {
		return nil, "error.token_revoked"
	}
	return claims, ""
}

func setUserContext(c *gin.Context, claims *service.UserJWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件
func UserJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, errKey := authenticateUser(c, secretKey, userRepo)
		if errKey != "" {
			abortUnauthorized(c, errKey)
			return
		}
		setUserContext(c, claims)
		c.Next()
	}
}

// OptionalUserAuthMiddleware 携带有效用户令牌时写入用户上下文，否则按匿名放行
func OptionalUserAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) != "" {
			if claims, errKey := authenticateUser(c, secretKey, userRepo); errKey == "" {
				setUserContext(c, claims)
			}
		}
		c.Next()
	}
}

// ScopeMiddleware 解析购物车作用域：有效用户令牌优先，其次 X-Guest-Token；
// 两者都没有时要求先调用 /guest/session 领取令牌
func ScopeMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) != "" {
			if claims, errKey := authenticateUser(c, secretKey, userRepo); errKey == "" {
				setUserContext(c, claims)
				shared.SetScope(c, cart.UserScope(claims.UserID))
				c.Next()
				return
			}
		}
		token := shared.SanitizeGuestToken(c.GetHeader(GuestTokenHeader))
		if token == "" {
			abortUnauthorized(c, "error.guest_session_required")
			return
		}
		shared.SetScope(c, cart.GuestScope(token))
		c.Next()
	}
}

func isActiveUserStatus(status string) bool {
	return strings.ToLower(strings.TrimSpace(status)) == constants.UserStatusActive
}
