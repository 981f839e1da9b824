package shared

import (
	"strconv"

	"github.com/fandom-mart/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageQuery 读取 page / page_size，非法值回落到第 1 页、每页 20 条，上限 100
func PageQuery(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.Query("page_size"))
	switch {
	case err != nil || size <= 0:
		size = defaultPageSize
	case size > maxPageSize:
		size = maxPageSize
	}
	return page, size
}

// RequireUint 读取鉴权中间件写入的 ID；缺失时返回 401，非 uint 时返回 500
func RequireUint(c *gin.Context, key, typeInvalidKey string) (uint, bool) {
	value, ok := c.Get(key)
	if !ok {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok {
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
	if id == 0 {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	return id, true
}
