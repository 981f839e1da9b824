package service

import "errors"

// 认证与账号
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrProfileEmpty       = errors.New("profile update empty")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserStatusInvalid  = errors.New("invalid user status")
)

// 目录
var (
	ErrFandomNotFound      = errors.New("fandom not found")
	ErrFandomInUse         = errors.New("fandom in use")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category in use")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrProductCodeInvalid  = errors.New("invalid product code")
	ErrSlugExists          = errors.New("slug already exists")
	ErrCodeExists          = errors.New("code already exists")
	ErrCatalogCodeInvalid  = errors.New("invalid fandom or category code")
	ErrProductPriceInvalid = errors.New("invalid product price")
)

// 购物车与订单
var (
	ErrCartEmpty             = errors.New("cart is empty")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrCartUpdateFailed      = errors.New("cart update failed")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrPurchaseLimitReached  = errors.New("purchase limit reached")
	ErrStockInsufficient     = errors.New("stock insufficient")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderStatusInvalid    = errors.New("order status transition invalid")
	ErrOrderCancelNotAllowed = errors.New("order cancel not allowed")
	ErrScopeInvalid          = errors.New("invalid cart scope")
	ErrGuestSessionRequired  = errors.New("guest session required")
)

// 工单与定制需求
var (
	ErrTicketNotFound             = errors.New("ticket not found")
	ErrTicketStatusInvalid        = errors.New("ticket status transition invalid")
	ErrCustomRequestNotFound      = errors.New("custom request not found")
	ErrCustomRequestStatusInvalid = errors.New("custom request status transition invalid")
	ErrCustomRequestQuoteInvalid  = errors.New("custom request quote invalid")
	ErrCurrencyUnsupported        = errors.New("currency unsupported")
	ErrAmountInvalid              = errors.New("amount invalid")
)

// 验证码
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)
