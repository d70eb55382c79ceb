package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/mailer"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

// EmailHandler lets admins queue a one-off email through the same worker
// that sends welcome and comment notifications.
type EmailHandler struct {
	Pub     application.EmailPublisher
	Enabled bool
	Logger  *logrus.Logger
}

func NewEmailHandler(pub application.EmailPublisher, enabled bool, logger *logrus.Logger) *EmailHandler {
	return &EmailHandler{Pub: pub, Enabled: enabled, Logger: logger}
}

type sendEmailRequest struct {
	To       string         `json:"to" binding:"required,email"`
	Template string         `json:"template" binding:"omitempty,oneof=welcome new_comment"`
	Data     map[string]any `json:"data"`
	Subject  string         `json:"subject"`
	Text     string         `json:"text"`
	HTML     string         `json:"html"`
}

func (h *EmailHandler) Send(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil || !actor.IsAdmin {
		response.Error(c, http.StatusForbidden, "only admins can send email", nil)
		return
	}
	var req sendEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Template == "" && (req.Subject == "" || (req.Text == "" && req.HTML == "")) {
		response.Error(c, http.StatusBadRequest, "either template or subject with text/html is required", nil)
		return
	}
	if !h.Enabled || h.Pub == nil {
		response.JSON(c, http.StatusAccepted, gin.H{"enqueued": false, "disabled": true})
		return
	}

	job := mailer.EmailJob{To: req.To}
	if req.Template != "" {
		job.Template = req.Template
		job.Data = req.Data
	} else {
		job.Subject = req.Subject
		job.Text = req.Text
		job.HTML = req.HTML
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("publish email job failed")
		}
		response.Error(c, http.StatusInternalServerError, "failed to enqueue", nil)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"enqueued": true})
}
