package authz

import (
	"strconv"
	"strings"
)

const (
	apiV1Prefix  = "/api/v1"
	adminSubject = "admin:"
	rolePrefix   = "role:"
	// roleAnchor 每个角色都挂在锚点下，使无策略的空角色也能被列出
	roleAnchor = "role:__anchor__"
)

// SubjectForAdmin 管理员主体，形如 admin:12
func SubjectForAdmin(adminID uint) string {
	return adminSubject + strconv.FormatUint(uint64(adminID), 10)
}

// NormalizeRole 角色名补齐 role: 前缀，空白替换为下划线
func NormalizeRole(role string) (string, error) {
	name := strings.ReplaceAll(strings.TrimSpace(role), " ", "_")
	name = strings.TrimPrefix(name, rolePrefix)
	if name == "" {
		return "", ErrRoleRequired
	}
	return rolePrefix + name, nil
}

// NormalizeObject 路由去掉 /api/v1 前缀，保证以 / 开头
func NormalizeObject(object string) string {
	path := strings.TrimSpace(object)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == apiV1Prefix {
		return "/"
	}
	return strings.TrimPrefix(path, apiV1Prefix)
}

// NormalizeAction HTTP 方法统一大写
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}

func isRoleName(name string) bool {
	return strings.HasPrefix(name, rolePrefix) && name != roleAnchor
}
