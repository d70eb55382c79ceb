package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

type HealthHandler struct {
	Stats  *application.StatsService
	Logger *logrus.Logger
}

func NewHealthHandler(stats *application.StatsService, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{Stats: stats, Logger: logger}
}

// Health reports 503 when the database does not answer a ping.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.Stats.Ping(c.Request.Context()); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("health check: database unreachable")
		}
		response.JSON(c, http.StatusServiceUnavailable, gin.H{"status": "error", "database": "down"})
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

func (h *HealthHandler) Statistics(c *gin.Context) {
	st, err := h.Stats.Statistics(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, st)
}
