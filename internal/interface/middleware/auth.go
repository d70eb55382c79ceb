package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

const CtxCurrentUserKey = "currentUser"

// UserLookup resolves the email carried by a token to a stored user.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// Auth requires "Authorization: Bearer <jwt>" and loads the full user, so
// handlers see the current isAdmin flag rather than a stale claim.
func Auth(jwt *helpers.JWTManager, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Error(c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		claims, err := jwt.ParseToken(strings.TrimSpace(token))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid token", nil)
			return
		}
		u, err := users.FindByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				response.Error(c, http.StatusUnauthorized, "user no longer exists", nil)
				return
			}
			response.Error(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}
		c.Set(CtxCurrentUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth, or nil on public routes.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxCurrentUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
