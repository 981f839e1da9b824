package cart

import (
	"strconv"
	"strings"
)

// GuestScopeID 未登录身份的作用域
const GuestScopeID = "guest"

// Scope 购物车与订单账本的归属身份
type Scope struct {
	ID     string
	UserID uint
}

// GuestScope 访客作用域；token 为空时得到无主的 guest 作用域，只读且不参与合并
func GuestScope(token string) Scope {
	token = strings.TrimSpace(token)
	if token == "" {
		return Scope{ID: GuestScopeID}
	}
	return Scope{ID: GuestScopeID + "_" + token}
}

// UserScope 登录用户作用域
func UserScope(userID uint) Scope {
	return Scope{ID: strconv.FormatUint(uint64(userID), 10), UserID: userID}
}

// IsGuest 是否为访客
func (s Scope) IsGuest() bool {
	return s.UserID == 0
}

// Shared 未携带访客令牌的 guest 作用域，不属于任何一个访客
func (s Scope) Shared() bool {
	return s.IsGuest() && s.String() == GuestScopeID
}

// String 作用域标识
func (s Scope) String() string {
	if s.ID == "" {
		return GuestScopeID
	}
	return s.ID
}
