package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/domain/pagination"
	"github.com/oksasatya/go-blog-api/pkg/response"
	"github.com/oksasatya/go-blog-api/pkg/validation"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "invalid "+name, map[string]string{name: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// pageParams binds page, itemsPerPage, orderBy and order from the query.
func pageParams(c *gin.Context, defaultPerPage int) (pagination.Params, bool) {
	p := pagination.Params{}
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return p, false
	}
	if c.Query("itemsPerPage") == "" && defaultPerPage > 0 {
		p.ItemsPerPage = defaultPerPage
	}
	return p, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}
