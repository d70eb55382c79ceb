package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	Guard   Guard
}

func NewCommentModule(h *handlers.CommentHandler, g Guard) *CommentModule {
	return &CommentModule{Handler: h, Guard: g}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg)
	{
		auth.POST("/comments", m.Handler.Create)
		auth.GET("/comments", m.Handler.List)
		auth.GET("/comments/:id", m.Handler.Get)
		auth.PATCH("/comments/:id", m.Handler.Update)
		auth.DELETE("/comments/:id", m.Handler.Delete)
	}
}
