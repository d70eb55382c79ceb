package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
)

// AuthModule: POST /auth/login, POST /auth/register. Both public and limited
// per IP and path.
type AuthModule struct {
	Handler   *handlers.AuthHandler
	Redis     *redis.Client
	PerMinute int
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client, perMinute int) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb, PerMinute: perMinute}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/auth/login", limiter, m.Handler.Login)
	rg.POST("/auth/register", limiter, m.Handler.Register)
}
