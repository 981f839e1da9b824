package admin

import (
	"time"

	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
)

var adminAccountErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.admin_login_invalid"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.password_old_invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.admin_not_found"},
}

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type adminSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Admin     struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		IsSuper  bool   `json:"is_super"`
	} `json:"user"`
}

// AdminLogin 用户名密码换取后台 JWT
func (h *Handler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.login_failed")
		return
	}
	session := adminSession{Token: token, ExpiresAt: expiresAt}
	session.Admin.ID = admin.ID
	session.Admin.Username = admin.Username
	session.Admin.IsSuper = admin.IsSuper
	requestLog(c).Infow("admin_login", "admin_id", admin.ID)
	response.Success(c, session)
}

func (h *Handler) GetAdminMe(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.GetAdmin(id)
	if err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.admin_fetch_failed")
		return
	}
	response.Success(c, admin)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改成功后旧 token 随 token_version 递增失效
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword)
	if err == nil {
		response.Success(c, nil)
		return
	}
	if respondAdminPasswordPolicyError(c, err) {
		return
	}
	respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.save_failed")
}
