package shared

import (
	"regexp"
	"strings"

	"github.com/fandom-mart/internal/cart"
	"github.com/fandom-mart/internal/constants"

	"github.com/gin-gonic/gin"
)

// ScopeContextKey 购物车作用域在 gin 上下文中的 key
const ScopeContextKey = "cart_scope"

var guestTokenPattern = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// SanitizeGuestToken 不合法的访客令牌视为未携带
func SanitizeGuestToken(raw string) string {
	token := strings.TrimSpace(raw)
	if !guestTokenPattern.MatchString(token) {
		return ""
	}
	return token
}

// GuestToken 优先取请求体中的令牌，其次 X-Guest-Token 请求头；都不合法时返回空
func GuestToken(c *gin.Context, bodyToken string) string {
	if token := SanitizeGuestToken(bodyToken); token != "" {
		return token
	}
	return SanitizeGuestToken(c.GetHeader(constants.HeaderGuestToken))
}

// SetScope 写入请求作用域
func SetScope(c *gin.Context, scope cart.Scope) {
	c.Set(ScopeContextKey, scope)
}

// GetScope 读取请求作用域，中间件未设置时 ok 为 false
func GetScope(c *gin.Context) (cart.Scope, bool) {
	if value, ok := c.Get(ScopeContextKey); ok {
		if scope, ok := value.(cart.Scope); ok {
			return scope, true
		}
	}
	return cart.Scope{}, false
}
