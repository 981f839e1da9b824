package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/fandom-mart/internal/authz"

	"github.com/gin-gonic/gin"
)

const adminRoutePrefix = "/api/v1/admin/"

// permissionEntry 后台可授权的一条 method + object
type permissionEntry struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// permissionCatalog 从已注册路由推导后台权限清单，登录接口不参与授权
func permissionCatalog(routes gin.RoutesInfo) []permissionEntry {
	entries := make([]permissionEntry, 0, len(routes))
	seen := make(map[string]bool, len(routes))
	for _, route := range routes {
		method := strings.ToUpper(route.Method)
		switch {
		case method == http.MethodOptions || method == http.MethodHead:
			continue
		case !strings.HasPrefix(route.Path, adminRoutePrefix), route.Path == adminRoutePrefix+"login":
			continue
		}
		object := authz.NormalizeObject(route.Path)
		permission := method + ":" + object
		if seen[permission] {
			continue
		}
		seen[permission] = true
		entries = append(entries, permissionEntry{
			Module:     permissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Method < b.Method
	})
	return entries
}

// permissionModule /admin/products/:id -> products
func permissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/ "), "/")
	if segments[0] == "" {
		return "system"
	}
	if segments[0] == "admin" && len(segments) > 1 {
		return segments[1]
	}
	return segments[0]
}
