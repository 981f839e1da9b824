package admin

import (
	"errors"
	"strings"

	"github.com/fandom-mart/internal/cache"
	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
)

type adminView struct {
	*models.Admin
	Roles []string `json:"roles"`
}

// ListAuthzAdmins 管理员列表，附带各自角色
func (h *Handler) ListAuthzAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	items := make([]adminView, 0, len(admins))
	for i := range admins {
		roles, err := h.AuthzService.GetAdminRoles(admins[i].ID)
		if err != nil {
			respondAuthzError(c, err)
			return
		}
		items = append(items, adminView{Admin: &admins[i], Roles: roles})
	}
	response.Success(c, items)
}

var createAdminErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.admin_username_invalid"},
	{target: service.ErrUsernameExists, code: response.CodeConflict, key: "error.admin_username_exists"},
}

// CreateAuthzAdmin 创建管理员并可同时分配角色
func (h *Handler) CreateAuthzAdmin(c *gin.Context) {
	var req struct {
		Username string   `json:"username" binding:"required"`
		Password string   `json:"password" binding:"required"`
		IsSuper  bool     `json:"is_super"`
		Roles    []string `json:"roles"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	created, err := h.AuthService.CreateAdmin(req.Username, strings.TrimSpace(req.Password), req.IsSuper)
	if err != nil {
		if respondAdminPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, createAdminErrorRules, response.CodeInternal, "error.admin_create_failed")
		return
	}
	if len(req.Roles) > 0 {
		if err := h.AuthzService.SetAdminRoles(created.ID, req.Roles); err != nil {
			respondAuthzError(c, err)
			return
		}
	}
	auditAuthz(c, "admin_authz_admin_created",
		"target_admin_id", created.ID,
		"target_username", created.Username,
		"is_super", created.IsSuper,
	)
	response.Success(c, created)
}

var (
	errDeleteSelf = errors.New("cannot delete current admin")
	errDeleteLast = errors.New("cannot delete last admin")
)

// DeleteAuthzAdmin 不能删除自己，也不能删除最后一个管理员
func (h *Handler) DeleteAuthzAdmin(c *gin.Context) {
	adminID, ok := h.requireAdminParam(c)
	if !ok {
		return
	}
	if err := h.checkDeletable(c, adminID); err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: errDeleteSelf, code: response.CodeBadRequest, key: "error.admin_delete_self_forbidden"},
			{target: errDeleteLast, code: response.CodeBadRequest, key: "error.admin_delete_last_forbidden"},
		}, response.CodeInternal, "error.admin_delete_failed")
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, nil); err != nil {
		respondError(c, response.CodeInternal, "error.admin_delete_failed", err)
		return
	}
	if err := h.AdminRepo.Delete(adminID); err != nil {
		respondError(c, response.CodeInternal, "error.admin_delete_failed", err)
		return
	}
	if err := cache.DelAdminAuthState(c.Request.Context(), adminID); err != nil {
		requestLog(c).Warnw("admin_auth_state_evict_failed", "admin_id", adminID, "error", err)
	}
	auditAuthz(c, "admin_authz_admin_deleted", "target_admin_id", adminID)
	response.Success(c, nil)
}

func (h *Handler) checkDeletable(c *gin.Context, adminID uint) error {
	if currentAdminID(c) == adminID {
		return errDeleteSelf
	}
	count, err := h.AdminRepo.Count()
	if err != nil {
		return err
	}
	if count <= 1 {
		return errDeleteLast
	}
	return nil
}
