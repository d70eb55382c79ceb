package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/response"
)

type UserHandler struct {
	Users          *application.UserService
	Posts          *application.PostService
	Comments       *application.CommentService
	Logger         *logrus.Logger
	DefaultPerPage int
}

func NewUserHandler(users *application.UserService, posts *application.PostService, comments *application.CommentService, logger *logrus.Logger, defaultPerPage int) *UserHandler {
	return &UserHandler{Users: users, Posts: posts, Comments: comments, Logger: logger, DefaultPerPage: defaultPerPage}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,personname"`
	Password string `json:"password" binding:"required,pwd"`
	IsAdmin  bool   `json:"isAdmin"`
}

type updateUserRequest struct {
	Email           *string `json:"email" binding:"omitempty,email"`
	Name            *string `json:"name" binding:"omitempty,personname"`
	IsAdmin         *bool   `json:"isAdmin"`
	Password        *string `json:"password" binding:"omitempty,pwd"`
	ConfirmPassword *string `json:"confirmPassword"`
}

// Create is the admin path for adding users; everyone else registers.
func (h *UserHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil || !actor.IsAdmin {
		response.Error(c, http.StatusForbidden, "only admins can create users", nil)
		return
	}
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.Create(c.Request.Context(), application.CreateUserInput{
		Email: req.Email, Name: req.Name, Password: req.Password, IsAdmin: req.IsAdmin,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, u)
}

func (h *UserHandler) List(c *gin.Context) {
	p, ok := pageParams(c, h.DefaultPerPage)
	if !ok {
		return
	}
	page, err := h.Users.FindAll(c.Request.Context(), p)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.Users.FindOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.Update(c.Request.Context(), middleware.CurrentUser(c), id, application.UpdateUserInput{
		Email:           req.Email,
		Name:            req.Name,
		IsAdmin:         req.IsAdmin,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Users.Remove(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *UserHandler) ListPosts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := pageParams(c, h.DefaultPerPage)
	if !ok {
		return
	}
	page, err := h.Posts.FindAllByAuthor(c.Request.Context(), id, p)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

func (h *UserHandler) ListComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := pageParams(c, h.DefaultPerPage)
	if !ok {
		return
	}
	page, err := h.Comments.FindAllByAuthor(c.Request.Context(), id, p)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}
