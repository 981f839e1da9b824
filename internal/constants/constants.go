package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 客服工单状态常量
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// 定制需求状态常量
const (
	CustomRequestStatusSubmitted = "submitted"
	CustomRequestStatusQuoted    = "quoted"
	CustomRequestStatusAccepted  = "accepted"
	CustomRequestStatusRejected  = "rejected"
)

// 定制周边类型常量
const (
	CustomItemAcrylicStand = "acrylic_stand"
	CustomItemKeychain     = "keychain"
	CustomItemBadge        = "badge"
	CustomItemPlush        = "plush"
	CustomItemApparel      = "apparel"
	CustomItemOther        = "other"
)

// 编号前缀
const (
	OrderNoPrefix         = "FM"
	TicketNoPrefix        = "TK"
	CustomRequestNoPrefix = "CR"
)

// 请求头
const (
	HeaderGuestToken = "X-Guest-Token"
	HeaderRequestID  = "X-Request-ID"
)

// 站点默认币种
const DefaultCurrency = "THB"
