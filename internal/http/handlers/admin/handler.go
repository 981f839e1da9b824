package admin

import "github.com/fandom-mart/internal/provider"

// Handler 后台接口，路由挂在 /api/v1/admin 下
type Handler struct {
	*provider.Container
}

func New(container *provider.Container) *Handler { return &Handler{container} }
