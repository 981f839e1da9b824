package service

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/fandom-mart/internal/config"

	"github.com/shopspring/decimal"
)

// CurrencyConverter 按配置汇率折算到站点币种；汇率表可热更新，站点币种启动后固定
type CurrencyConverter struct {
	site  string
	rates atomic.Pointer[map[string]decimal.Decimal]
}

// NewCurrencyConverter 由配置创建折算器；无效汇率被忽略，站点币种汇率恒为 1
func NewCurrencyConverter(cfg config.CurrencyConfig) *CurrencyConverter {
	site := strings.ToUpper(strings.TrimSpace(cfg.Site))
	if site == "" {
		site = "THB"
	}
	c := &CurrencyConverter{site: site}
	c.Reload(cfg)
	return c
}

// Reload 替换汇率表，cfg.Site 被忽略
func (c *CurrencyConverter) Reload(cfg config.CurrencyConfig) {
	rates := map[string]decimal.Decimal{c.site: decimal.NewFromInt(1)}
	for code, raw := range cfg.Rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil || code == "" || code == c.site || !rate.IsPositive() {
			continue
		}
		rates[code] = rate
	}
	c.rates.Store(&rates)
}

// Site 站点币种
func (c *CurrencyConverter) Site() string {
	return c.site
}

// Supported 支持的币种代码
func (c *CurrencyConverter) Supported() []string {
	rates := *c.rates.Load()
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ToSite 折算为站点币种，保留 2 位小数
func (c *CurrencyConverter) ToSite(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = c.site
	}
	rate, ok := (*c.rates.Load())[code]
	if !ok {
		return decimal.Zero, ErrCurrencyUnsupported
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrAmountInvalid
	}
	return amount.Mul(rate).Round(2), nil
}
