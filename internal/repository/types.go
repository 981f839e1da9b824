package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	FandomID     uint
	CategoryID   uint
	Search       string
	PreOrderOnly bool
	OnlyActive   bool
	WithRelation bool
}

// OrderListFilter 查询订单镜像列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	ScopeID     string
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page          int
	PageSize      int
	Keyword       string
	Status        string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	LastLoginFrom *time.Time
	LastLoginTo   *time.Time
}

// TicketListFilter 查询工单列表的过滤条件
type TicketListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	Email    string
	Keyword  string
}

// CustomRequestListFilter 查询定制需求列表的过滤条件
type CustomRequestListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	FandomID uint
	ItemType string
}

// PreOrderReservation 预售商品预订汇总
type PreOrderReservation struct {
	ProductID   uint  `json:"product_id"`
	ReservedQty int64 `json:"reserved_qty"`
	OrderCount  int64 `json:"order_count"`
}
