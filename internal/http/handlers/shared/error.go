package shared

import (
	"errors"

	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/i18n"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 带 request_id 的日志
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := c.GetString("request_id"); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 按请求语言翻译 key 后返回错误
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg err 非空时记录 handler_error
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		RequestLog(c).Errorw("handler_error", "code", code, "message", msg, "error", err)
	}
	response.Error(c, code, msg)
}

// RespondPasswordPolicy 密码策略错误按参数翻译；非策略错误返回 false 且不写响应
func RespondPasswordPolicy(c *gin.Context, err error) bool {
	if !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	var perr *service.PasswordPolicyError
	if errors.As(err, &perr) {
		RespondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(i18n.ResolveLocale(c), perr.Key, perr.Args...), nil)
		return true
	}
	RespondError(c, response.CodeBadRequest, "error.password_weak", nil)
	return true
}
