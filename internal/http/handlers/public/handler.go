package public

import "github.com/fandom-mart/internal/provider"

// Handler 店面接口：目录、购物车、订单与用户侧
type Handler struct {
	*provider.Container
}

func New(container *provider.Container) *Handler { return &Handler{container} }
