package public

import (
	"errors"

	"github.com/fandom-mart/internal/http/response"
	"github.com/fandom-mart/internal/service"

	"github.com/gin-gonic/gin"
)

type captchaChallengeResponse struct {
	Enabled bool `json:"enabled"`
	*service.CaptchaImageChallenge
}

// GetImageCaptcha 未启用时返回 enabled=false，前端据此隐藏输入框
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil || !h.CaptchaService.Enabled() {
		response.Success(c, captchaChallengeResponse{})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	switch {
	case errors.Is(err, service.ErrCaptchaConfigInvalid):
		respondError(c, response.CodeBadRequest, "error.captcha_unavailable", nil)
	case err != nil:
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
	default:
		response.Success(c, captchaChallengeResponse{Enabled: true, CaptchaImageChallenge: challenge})
	}
}
