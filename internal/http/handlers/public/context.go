package public

import (
	"github.com/fandom-mart/internal/cart"
	handlershared "github.com/fandom-mart/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.RequireUint(c, "user_id", "error.user_id_type_invalid")
}

// optionalUserID 可选鉴权接口读取用户 ID，未登录返回 0
func optionalUserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}

// getScope 中间件未设置时得到无主 guest 作用域，其写入由服务层拒绝
func getScope(c *gin.Context) cart.Scope {
	if scope, ok := handlershared.GetScope(c); ok {
		return scope
	}
	return cart.GuestScope("")
}
