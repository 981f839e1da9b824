package admin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fandom-mart/internal/http/response"

	"github.com/gin-gonic/gin"
)

var queryTimeLayouts = []string{time.RFC3339, "2006-01-02"}

// parseQueryTime 空串返回 nil；日期格式按本地时区解析
func parseQueryTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range queryTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unsupported time %q", raw)
}

// listQuery 收集列表筛选参数，记录第一个解析错误
type listQuery struct {
	c   *gin.Context
	err error
}

func newListQuery(c *gin.Context) *listQuery {
	return &listQuery{c: c}
}

func (q *listQuery) text(key string) string {
	return strings.TrimSpace(q.c.Query(key))
}

func (q *listQuery) time(key string) *time.Time {
	if q.err != nil {
		return nil
	}
	t, err := parseQueryTime(q.c.Query(key))
	if err != nil {
		q.err = fmt.Errorf("%s: %w", key, err)
	}
	return t
}

func (q *listQuery) bool(key string) bool {
	parsed, _ := strconv.ParseBool(q.text(key))
	return parsed
}

// uint 非法值按未筛选处理
func (q *listQuery) uint(key string) uint {
	parsed, err := strconv.ParseUint(q.text(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

// idParam 解析 :id，失败时以 invalidKey 写入 400
func idParam(c *gin.Context, invalidKey string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(id), true
}
