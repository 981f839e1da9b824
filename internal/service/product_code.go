package service

import (
	"fmt"
	"strconv"
	"strings"
)

// ProductCode 商品编码 <作品>-<品类>-<序号>，如 GEN-FIG-0007
type ProductCode struct {
	Fandom   string
	Category string
	Seq      int
}

// String 编码文本
func (c ProductCode) String() string {
	return fmt.Sprintf("%s-%04d", productCodePrefix(c.Fandom, c.Category), c.Seq)
}

func productCodePrefix(fandom, category string) string {
	return strings.ToUpper(fandom) + "-" + strings.ToUpper(category)
}

// ParseProductCode 解析商品编码
func ParseProductCode(raw string) (ProductCode, error) {
	parts := strings.Split(normalizeCode(raw), "-")
	if len(parts) != 3 {
		return ProductCode{}, ErrProductCodeInvalid
	}
	if !validCatalogCode(parts[0], 3, 5) || !validCatalogCode(parts[1], 2, 5) {
		return ProductCode{}, ErrProductCodeInvalid
	}
	if len(parts[2]) < 4 {
		return ProductCode{}, ErrProductCodeInvalid
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq <= 0 {
		return ProductCode{}, ErrProductCodeInvalid
	}
	return ProductCode{Fandom: parts[0], Category: parts[1], Seq: seq}, nil
}

// validCatalogCode 作品/品类代码为定长范围内的大写字母
func validCatalogCode(code string, minLen, maxLen int) bool {
	if len(code) < minLen || len(code) > maxLen {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeCatalogCode(code string, minLen, maxLen int) (string, error) {
	normalized := normalizeCode(code)
	if !validCatalogCode(normalized, minLen, maxLen) {
		return "", ErrCatalogCodeInvalid
	}
	return normalized, nil
}
