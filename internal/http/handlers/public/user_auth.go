package public

import (
	"errors"
	"time"

	"github.com/fandom-mart/internal/cart"
	handlershared "github.com/fandom-mart/internal/http/handlers/shared"
	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	DisplayName    string `json:"display_name"`
	FavoriteFandom string `json:"favorite_fandom"`
	Locale         string `json:"locale"`
	GuestToken     string `json:"guest_token"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
	GuestToken string `json:"guest_token"`
}

// UserProfileRequest 资料更新请求
type UserProfileRequest struct {
	DisplayName    *string `json:"display_name"`
	FavoriteFandom *string `json:"favorite_fandom"`
	Locale         *string `json:"locale"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"display_name":    user.DisplayName,
		"favorite_fandom": user.FavoriteFandom,
		"locale":          user.Locale,
		"status":          user.Status,
		"last_login_at":   user.LastLoginAt,
	}
}

// UserRegister 用户注册，携带访客令牌时合并访客购物车
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		DisplayName:    req.DisplayName,
		FavoriteFandom: req.FavoriteFandom,
		Locale:         req.Locale,
	})
	if err != nil {
		if errors.Is(err, service.ErrWeakPassword) && respondPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "error.register_failed")
		return
	}

	response.Success(c, h.authPayload(c, user, token, expiresAt, req.GuestToken))
}

// UserLogin 用户登录，携带访客令牌时合并访客购物车
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password, req.RememberMe)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	response.Success(c, h.authPayload(c, user, token, expiresAt, req.GuestToken))
}

// authPayload 构建登录响应；携带合法访客令牌时把该访客的购物车合并到用户
// 合并失败不影响登录，仅记录日志
func (h *Handler) authPayload(c *gin.Context, user *models.User, token string, expiresAt time.Time, bodyToken string) gin.H {
	merge := gin.H{"merged": false}
	if guestToken := handlershared.GuestToken(c, bodyToken); guestToken != "" {
		guest := cart.GuestScope(guestToken)
		result, err := h.CartService.SwitchScope(c.Request.Context(), guest, cart.UserScope(user.ID))
		if err != nil {
			requestLog(c).Warnw("user_cart_merge_failed",
				"user_id", user.ID,
				"guest_scope", guest.String(),
				"error", err,
			)
		} else {
			merge = gin.H{"merged": result.Merged, "skipped": result.Skipped}
		}
	}
	return gin.H{
		"user":       userView(user),
		"token":      token,
		"expires_at": expiresAt,
		"cart_merge": merge,
	}
}

// GetCurrentUser 当前用户信息
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	response.Success(c, userView(user))
}

// UpdateUserProfile 更新资料
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UserProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(uid, service.ProfileInput{
		DisplayName:    req.DisplayName,
		FavoriteFandom: req.FavoriteFandom,
		Locale:         req.Locale,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileEmpty):
			respondError(c, response.CodeBadRequest, "error.profile_empty", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.user_update_failed", err)
		}
		return
	}
	response.Success(c, userView(user))
}

// ChangeUserPassword 修改密码，成功后旧令牌全部失效
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "error.password_old_invalid", nil)
		case errors.Is(err, service.ErrWeakPassword):
			if !respondPasswordPolicyError(c, err) {
				respondError(c, response.CodeBadRequest, "error.password_weak", nil)
			}
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.user_update_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// ListMyTickets 当前用户的工单
func (h *Handler) ListMyTickets(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := pageQuery(c)
	tickets, total, err := h.TicketService.ListByUser(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.ticket_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, tickets, response.NewPagination(page, pageSize, total))
}
