package admin

import (
	"net/url"
	"strings"

	"github.com/fandom-mart/internal/authz"
	"github.com/fandom-mart/internal/http/response"

	"github.com/gin-gonic/gin"
)

var authzErrorRules = []mappedHandlerError{
	{target: authz.ErrRoleRequired, code: response.CodeBadRequest, key: "error.role_required"},
	{target: authz.ErrReservedRole, code: response.CodeBadRequest, key: "error.role_reserved"},
	{target: authz.ErrImmutableRole, code: response.CodeConflict, key: "error.role_immutable"},
	{target: authz.ErrActionRequired, code: response.CodeBadRequest, key: "error.action_required"},
	{target: authz.ErrAdminRequired, code: response.CodeBadRequest, key: "error.admin_id_invalid"},
}

func respondAuthzError(c *gin.Context, err error) {
	respondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "error.authz_fetch_failed")
}

// auditAuthz 记录权限变更，附带操作人
func auditAuthz(c *gin.Context, event string, kv ...interface{}) {
	fields := append([]interface{}{
		"operator_admin_id", currentAdminID(c),
		"operator_username", currentUsername(c),
	}, kv...)
	requestLog(c).Infow(event, fields...)
}

type rolePolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// GetAuthzMe 当前管理员的角色与策略
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, gin.H{
		"admin_id": adminID,
		"is_super": c.GetBool("admin_is_super"),
		"roles":    roles,
		"policies": policies,
	})
}

func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	builtin := make(map[string]bool, len(roles))
	for _, role := range roles {
		builtin[role] = authz.IsBuiltinRole(role)
	}
	response.Success(c, gin.H{"roles": roles, "builtin": builtin})
}

func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	auditAuthz(c, "admin_authz_role_created", "role", role)
	response.Success(c, gin.H{"role": role})
}

// DeleteAuthzRole 预置角色返回 409
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := roleParam(c)
	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondAuthzError(c, err)
		return
	}
	auditAuthz(c, "admin_authz_role_deleted", "role", role)
	response.Success(c, nil)
}

func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(roleParam(c))
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, policies)
}

func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	h.changeRolePolicy(c, true)
}

func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	h.changeRolePolicy(c, false)
}

func (h *Handler) changeRolePolicy(c *gin.Context, grant bool) {
	var req rolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	apply, event := h.AuthzService.RevokeRolePolicy, "admin_authz_policy_revoked"
	if grant {
		apply, event = h.AuthzService.GrantRolePolicy, "admin_authz_policy_granted"
	}
	if err := apply(req.Role, req.Object, req.Action); err != nil {
		respondAuthzError(c, err)
		return
	}
	auditAuthz(c, event, "role", req.Role, "object", authz.NormalizeObject(req.Object), "action", authz.NormalizeAction(req.Action))
	response.Success(c, nil)
}

func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := h.requireAdminParam(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles 覆盖目标管理员的角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := h.requireAdminParam(c)
	if !ok {
		return
	}
	var req struct {
		Roles []string `json:"roles"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondAuthzError(c, err)
		return
	}
	auditAuthz(c, "admin_authz_admin_roles_updated", "target_admin_id", adminID, "roles", req.Roles)
	response.Success(c, nil)
}

// requireAdminParam 解析 :id 并确认管理员存在
func (h *Handler) requireAdminParam(c *gin.Context) (uint, bool) {
	adminID, ok := idParam(c, "error.admin_id_invalid")
	if !ok {
		return 0, false
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return 0, false
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_id_invalid", nil)
		return 0, false
	}
	return adminID, true
}

// roleParam 角色名可能被 URL 编码，如 role%3Asupport
func roleParam(c *gin.Context) string {
	raw := c.Param("role")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.TrimSpace(raw)
}

func currentAdminID(c *gin.Context) uint {
	return c.GetUint("admin_id")
}

func currentUsername(c *gin.Context) string {
	return strings.TrimSpace(c.GetString("username"))
}
