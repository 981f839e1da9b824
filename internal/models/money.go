package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// moneyPlaces 站点币种与自定义需求报价统一两位小数
const moneyPlaces = 2

// Money 两位小数金额，JSON 中输出为字符串 "1200.00"
type Money struct {
	decimal.Decimal
}

func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyPlaces)}
}

func (m Money) String() string {
	return m.Round(moneyPlaces).StringFixed(moneyPlaces)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 兼容 "12.5" 与 12.5 两种写法，null 与空值保持零值
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		if text == "" {
			m.Decimal = decimal.Zero
			return nil
		}
		b = []byte(text)
	}
	amount, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(amount)
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.Round(moneyPlaces).Value()
}

func (m *Money) Scan(value interface{}) error {
	var amount decimal.Decimal
	if err := amount.Scan(value); err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(amount)
	return nil
}
