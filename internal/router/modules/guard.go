package modules

import (
	"github.com/gin-gonic/gin"
)

// Guard is what protected modules share: the bearer check plus the per-user
// limiter that runs after it. Both are built once so every module counts
// against the same budget.
type Guard struct {
	Auth  gin.HandlerFunc
	Limit gin.HandlerFunc
}

// Protected returns a group behind auth and the API rate limit.
func (g Guard) Protected(rg *gin.RouterGroup) *gin.RouterGroup {
	grp := rg.Group("/")
	grp.Use(g.Auth)
	if g.Limit != nil {
		grp.Use(g.Limit)
	}
	return grp
}
