package admin

import (
	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/repository"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
)

var userAdminErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrUserStatusInvalid, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

// GetAdminUsers 支持关键字、状态、注册时间与最近登录时间筛选
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := pageQuery(c)
	q := newListQuery(c)
	filter := repository.UserListFilter{
		Page:          page,
		PageSize:      pageSize,
		Keyword:       q.text("keyword"),
		Status:        q.text("status"),
		CreatedFrom:   q.time("created_from"),
		CreatedTo:     q.time("created_to"),
		LastLoginFrom: q.time("last_login_from"),
		LastLoginTo:   q.time("last_login_to"),
	}
	if q.err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", q.err)
		return
	}
	users, total, err := h.UserAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}

func (h *Handler) GetAdminUser(c *gin.Context) {
	id, ok := idParam(c, "error.user_id_invalid")
	if !ok {
		return
	}
	user, err := h.UserAdminService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, user)
}

type batchUserStatusRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// BatchUpdateUserStatus 禁用的账号会同时吊销已签发的 token
func (h *Handler) BatchUpdateUserStatus(c *gin.Context) {
	var req batchUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAdminService.BatchUpdateStatus(c.Request.Context(), req.UserIDs, req.Status); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.user_update_failed")
		return
	}
	requestLog(c).Infow("admin_user_status_updated", "operator_admin_id", currentAdminID(c), "count", len(req.UserIDs), "status", req.Status)
	response.Success(c, gin.H{"updated": len(req.UserIDs)})
}
