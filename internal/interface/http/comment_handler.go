package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

type CommentHandler struct {
	Comments       *application.CommentService
	Logger         *logrus.Logger
	DefaultPerPage int
}

func NewCommentHandler(comments *application.CommentService, logger *logrus.Logger, defaultPerPage int) *CommentHandler {
	return &CommentHandler{Comments: comments, Logger: logger, DefaultPerPage: defaultPerPage}
}

type createCommentRequest struct {
	PostID  int64  `json:"postId" binding:"required,gt=0"`
	Content string `json:"content" binding:"required"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	cm, err := h.Comments.Create(c.Request.Context(), middleware.CurrentUser(c), application.CreateCommentInput{
		PostID:  req.PostID,
		Content: req.Content,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, cm)
}

func (h *CommentHandler) List(c *gin.Context) {
	p, ok := pageParams(c, h.DefaultPerPage)
	if !ok {
		return
	}
	page, err := h.Comments.FindAll(c.Request.Context(), p)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cm, err := h.Comments.FindOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, cm)
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	cm, err := h.Comments.Update(c.Request.Context(), middleware.CurrentUser(c), id, req.Content)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, cm)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Comments.Remove(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
