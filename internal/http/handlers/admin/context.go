package admin

import (
	handlershared "github.com/fandom-mart/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.RequireUint(c, "admin_id", "error.admin_id_type_invalid")
}
