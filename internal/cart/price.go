package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice 从展示价格字符串中提取金额，例如 "฿1,200.50" -> 1200.50
// 无法解析时返回 0，不返回错误
func ParsePrice(display string) decimal.Decimal {
	var b strings.Builder
	seenDot := false
	for _, r := range strings.TrimSpace(display) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			if seenDot {
				// 第二个小数点之后的内容不再参与解析
				return parseDigits(b.String())
			}
			seenDot = true
			b.WriteRune(r)
		}
	}
	return parseDigits(b.String())
}

func parseDigits(raw string) decimal.Decimal {
	raw = strings.TrimSuffix(raw, ".")
	if raw == "" || raw == "." {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// FormatPrice 按币种符号格式化金额，保留两位小数并添加千分位
func FormatPrice(amount decimal.Decimal, currency string) string {
	fixed := amount.Round(2).StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	out := CurrencySymbol(currency) + grouped.String() + "." + fracPart
	if negative {
		return "-" + out
	}
	return out
}

// CurrencySymbol 返回币种对应的展示符号，未知币种返回代码加空格
func CurrencySymbol(currency string) string {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "", "THB":
		return "฿"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "JPY", "CNY":
		return "¥"
	case "GBP":
		return "£"
	case "KRW":
		return "₩"
	default:
		return strings.ToUpper(strings.TrimSpace(currency)) + " "
	}
}
