package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	catalogPublicConfigKey = "catalog:public_config"
	catalogFandomsKey      = "catalog:fandoms"
	catalogCategoriesKey   = "catalog:categories"
)

func catalogFandomPageKey(slug string) string {
	return fmt.Sprintf("catalog:fandom:%s", strings.ToLower(strings.TrimSpace(slug)))
}

// GetCatalog 读取目录缓存
func GetCatalog(ctx context.Context, name string, dest interface{}) (bool, error) {
	return GetJSON(ctx, catalogKey(name), dest)
}

// SetCatalog 写入目录缓存，ttl <= 0 时不写入
func SetCatalog(ctx context.Context, name string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, catalogKey(name), value, ttl)
}

// InvalidateCatalog 目录变更后清理公共缓存
func InvalidateCatalog(ctx context.Context, fandomSlugs ...string) error {
	keys := []string{catalogPublicConfigKey, catalogFandomsKey, catalogCategoriesKey}
	for _, slug := range fandomSlugs {
		if strings.TrimSpace(slug) == "" {
			continue
		}
		keys = append(keys, catalogFandomPageKey(slug))
	}
	return Del(ctx, keys...)
}

// 目录缓存名称
const (
	CatalogPublicConfig = "public_config"
	CatalogFandoms      = "fandoms"
	CatalogCategories   = "categories"
)

// CatalogFandomPage 作品页缓存名称
func CatalogFandomPage(slug string) string {
	return "fandom:" + slug
}

func catalogKey(name string) string {
	switch name {
	case CatalogPublicConfig:
		return catalogPublicConfigKey
	case CatalogFandoms:
		return catalogFandomsKey
	case CatalogCategories:
		return catalogCategoriesKey
	}
	if slug, ok := strings.CutPrefix(name, "fandom:"); ok {
		return catalogFandomPageKey(slug)
	}
	return "catalog:" + name
}
