package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
)

type UserModule struct {
	Handler *handlers.UserHandler
	Guard   Guard
}

func NewUserModule(h *handlers.UserHandler, g Guard) *UserModule {
	return &UserModule{Handler: h, Guard: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg)
	{
		auth.GET("/users", m.Handler.List)
		auth.POST("/users", m.Handler.Create)
		auth.GET("/users/:id", m.Handler.Get)
		auth.PATCH("/users/:id", m.Handler.Update)
		auth.DELETE("/users/:id", m.Handler.Delete)
		auth.GET("/users/:id/posts", m.Handler.ListPosts)
		auth.GET("/users/:id/comments", m.Handler.ListComments)
	}
}
