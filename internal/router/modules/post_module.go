package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
)

type PostModule struct {
	Handler *handlers.PostHandler
	Guard   Guard
}

func NewPostModule(h *handlers.PostHandler, g Guard) *PostModule {
	return &PostModule{Handler: h, Guard: g}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg)
	{
		auth.POST("/posts", m.Handler.Create)
		auth.GET("/posts", m.Handler.List)
		auth.GET("/posts/search", m.Handler.Search)
		auth.GET("/posts/:id", m.Handler.Get)
		auth.PATCH("/posts/:id", m.Handler.Update)
		auth.DELETE("/posts/:id", m.Handler.Delete)
		auth.GET("/posts/:id/comments", m.Handler.ListComments)
		auth.POST("/posts/:id/image", m.Handler.UploadImage)
	}
}
