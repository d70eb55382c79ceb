package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

const maxImageBytes = 5 << 20

type PostHandler struct {
	Posts          *application.PostService
	Comments       *application.CommentService
	Logger         *logrus.Logger
	DefaultPerPage int
}

func NewPostHandler(posts *application.PostService, comments *application.CommentService, logger *logrus.Logger, defaultPerPage int) *PostHandler {
	return &PostHandler{Posts: posts, Comments: comments, Logger: logger, DefaultPerPage: defaultPerPage}
}

type createPostRequest struct {
	Title     string  `json:"title" binding:"required,posttext"`
	Subtitle  string  `json:"subtitle" binding:"required,posttext"`
	Content   string  `json:"content" binding:"required,posttext"`
	ImageURL  *string `json:"imageUrl" binding:"omitempty,url"`
	Published bool    `json:"published"`
}

type updatePostRequest struct {
	Title     *string `json:"title" binding:"omitempty,posttext"`
	Subtitle  *string `json:"subtitle" binding:"omitempty,posttext"`
	Content   *string `json:"content" binding:"omitempty,posttext"`
	ImageURL  *string `json:"imageUrl" binding:"omitempty,url"`
	Published *bool   `json:"published"`
}

// Create ignores any author in the body; the post belongs to the caller.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Posts.Create(c.Request.Context(), middleware.CurrentUser(c), application.CreatePostInput{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, p)
}

func (h *PostHandler) List(c *gin.Context) {
	p, ok := pageParams(c, h.DefaultPerPage)
	if !ok {
		return
	}
	page, err := h.Posts.FindAll(c.Request.Context(), p)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.Posts.FindOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Posts.Update(c.Request.Context(), middleware.CurrentUser(c), id, application.UpdatePostInput{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Posts.Remove(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := pageParams(c, h.DefaultPerPage)
	if !ok {
		return
	}
	page, err := h.Comments.FindAllByPost(c.Request.Context(), id, p)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Search: GET /posts/search?q=...&size=...
func (h *PostHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Posts.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"data": res})
}

// UploadImage takes a multipart "image" field and sets the post's imageUrl.
func (h *PostHandler) UploadImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "image is required", map[string]string{"image": "is required"})
		return
	}
	if fh.Size > maxImageBytes {
		response.Error(c, http.StatusBadRequest, "image too large", map[string]string{"image": "must be at most 5MB"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	p, err := h.Posts.UploadImage(c.Request.Context(), middleware.CurrentUser(c), id, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}
