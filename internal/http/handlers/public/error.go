package public

import (
	handlershared "github.com/fandom-mart/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func pageQuery(c *gin.Context) (int, int) {
	return handlershared.PageQuery(c)
}

// respondPasswordPolicyError 密码策略错误带参数翻译
func respondPasswordPolicyError(c *gin.Context, err error) bool {
	return handlershared.RespondPasswordPolicy(c, err)
}
