package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
)

// EmailModule: POST /email/send, admin only.
type EmailModule struct {
	Handler *handlers.EmailHandler
	Guard   Guard
}

func NewEmailModule(h *handlers.EmailHandler, g Guard) *EmailModule {
	return &EmailModule{Handler: h, Guard: g}
}

func (m *EmailModule) Register(rg *gin.RouterGroup) {
	m.Guard.Protected(rg).POST("/email/send", m.Handler.Send)
}
