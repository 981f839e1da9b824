// Package cart 购物车与订单快照的领域模型，不依赖存储与传输层。
package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Line 购物车行，按 ID 唯一
type Line struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
	Fandom   string `json:"fandom,omitempty"`
	Price    string `json:"price"` // 加入时的展示价格
	Quantity int    `json:"quantity"`
	Limited  bool   `json:"limited,omitempty"` // 每个账号限购一件
}

// UnitPrice 解析后的单价
func (l Line) UnitPrice() decimal.Decimal {
	return ParsePrice(l.Price)
}

// LineTotal 行小计
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart 有序购物车
type Cart struct {
	Lines []Line `json:"items"`
}

// New 创建空购物车
func New(lines ...Line) *Cart {
	c := &Cart{}
	for _, line := range lines {
		if strings.TrimSpace(line.ID) == "" || line.Quantity <= 0 {
			continue
		}
		if idx := c.index(line.ID); idx >= 0 {
			c.Lines[idx].Quantity += line.Quantity
			continue
		}
		c.Lines = append(c.Lines, line)
	}
	return c
}

func (c *Cart) index(id string) int {
	if c == nil {
		return -1
	}
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			return i
		}
	}
	return -1
}

// Find 按 ID 查找行
func (c *Cart) Find(id string) (Line, bool) {
	idx := c.index(id)
	if idx < 0 {
		return Line{}, false
	}
	return c.Lines[idx], true
}

// Contains 是否包含指定 ID
func (c *Cart) Contains(id string) bool {
	return c.index(id) >= 0
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

// Add 已存在则数量加一，否则以数量 1 追加
func (c *Cart) Add(item Line) {
	if idx := c.index(item.ID); idx >= 0 {
		c.Lines[idx].Quantity++
		return
	}
	item.Quantity = 1
	c.Lines = append(c.Lines, item)
}

// Remove 删除行，不存在时无操作
func (c *Cart) Remove(id string) bool {
	idx := c.index(id)
	if idx < 0 {
		return false
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	return true
}

// SetQuantity n <= 0 等同于 Remove
func (c *Cart) SetQuantity(id string, n int) bool {
	if n <= 0 {
		return c.Remove(id)
	}
	idx := c.index(id)
	if idx < 0 {
		return false
	}
	c.Lines[idx].Quantity = n
	return true
}

// Clear 清空
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total 合计金额，无法解析的价格按 0 计
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, line := range c.Lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// ItemCount 商品总件数
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IDs 返回所有行 ID，保持顺序
func (c *Cart) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.Lines))
	for _, line := range c.Lines {
		ids = append(ids, line.ID)
	}
	return ids
}

// Clone 深拷贝
func (c *Cart) Clone() *Cart {
	if c == nil {
		return &Cart{}
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return &Cart{Lines: lines}
}

// MergeOptions 合并时的限购规则
type MergeOptions struct {
	// Purchased 已购买的商品 ID，命中的限购行不会合并
	Purchased map[string]bool
}

// Merge 将 other 的行合并进当前购物车：相同 ID 数量相加，新 ID 追加在末尾。
// 限购行数量最多为 1。返回被跳过的行 ID。
func (c *Cart) Merge(other *Cart, opts MergeOptions) []string {
	if other.IsEmpty() {
		return nil
	}
	var skipped []string
	for _, line := range other.Lines {
		if line.Quantity <= 0 {
			continue
		}
		if line.Limited && opts.Purchased[line.ID] {
			skipped = append(skipped, line.ID)
			continue
		}
		if idx := c.index(line.ID); idx >= 0 {
			c.Lines[idx].Quantity += line.Quantity
			if c.Lines[idx].Limited || line.Limited {
				c.Lines[idx].Quantity = 1
			}
			continue
		}
		if line.Limited {
			line.Quantity = 1
		}
		c.Lines = append(c.Lines, line)
	}
	return skipped
}
