package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/fandom-mart/internal/http/handlers/shared"
	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中提取限流维度，返回空串时退回客户端 IP
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流。BlockSeconds > 0 时首次超限会把 key 的过期时间延长为封禁时长。
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	MessageKey    string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) key(raw string) string {
	if r.Prefix == "" {
		return raw
	}
	return r.Prefix + ":" + raw
}

func (r RateLimitRule) messageKey() string {
	if key := strings.TrimSpace(r.MessageKey); key != "" {
		return key
	}
	return "error.rate_limited"
}

// KEYS[1] 计数 key；ARGV 依次为窗口、上限、封禁秒数
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if tonumber(ARGV[3]) > 0 and current == tonumber(ARGV[2]) + 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[3])
end
return {current, redis.call("TTL", KEYS[1])}
`)

// hit 计数一次，超限时返回需等待的秒数
func hit(ctx context.Context, client redis.Scripter, rule RateLimitRule, key string) (int, error) {
	values, err := rateLimitScript.Run(ctx, client, []string{key}, rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Int64Slice()
	if err != nil {
		return 0, err
	}
	if len(values) < 2 || values[0] <= int64(rule.MaxRequests) {
		return 0, nil
	}
	return retryAfter(values[1], rule), nil
}

func retryAfter(ttl int64, rule RateLimitRule) int {
	switch {
	case ttl >= 1:
		return int(ttl)
	case rule.WindowSeconds >= 1:
		return rule.WindowSeconds
	default:
		return 1
	}
}

// RateLimitMiddleware client 为空或规则未启用时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}
		raw := ""
		if keyFunc != nil {
			raw = strings.TrimSpace(keyFunc(c))
		}
		if raw == "" {
			raw = c.ClientIP()
		}

		locale := i18n.ResolveLocale(c)
		wait, err := hit(c.Request.Context(), client, rule, rule.key(raw))
		if err != nil {
			shared.RequestLog(c).Warnw("rate_limit_unavailable", "prefix", rule.Prefix, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(locale, "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if wait > 0 {
			response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(locale, rule.messageKey(), wait))
			c.Abort()
			return
		}
		c.Next()
	}
}

func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 以 JSON 字段（小写）与 IP 组合，例如 fan@example.com|1.2.3.4
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// KeyByScope 按购物车作用域限流；未解析出作用域或为无主 guest 作用域时按 IP
func KeyByScope(c *gin.Context) string {
	scope, ok := shared.GetScope(c)
	if !ok || scope.Shared() {
		return c.ClientIP()
	}
	return scope.String()
}

// peekJSONField 读取字段后回填 body，后续绑定不受影响
func peekJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
