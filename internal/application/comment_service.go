package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/internal/domain/pagination"
	repo "github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/pkg/mailer"
)

type CommentService struct {
	Repo   repo.CommentRepository
	Posts  repo.PostRepository
	Users  repo.UserRepository
	Mail   EmailPublisher
	Logger *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, posts repo.PostRepository, users repo.UserRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Repo: comments, Posts: posts, Users: users, Logger: logger}
}

func (s *CommentService) log() *logrus.Entry { return componentLogger(s.Logger, "comment_service") }

type CreateCommentInput struct {
	PostID  int64
	Content string
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errs.Invalid("content", "is required")
	}
	return nil
}

// Create attaches the comment to the caller and to an existing post.
func (s *CommentService) Create(ctx context.Context, actor *entity.User, in CreateCommentInput) (*CommentView, error) {
	if actor == nil {
		return nil, errs.Forbidden("login required")
	}
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}
	post, err := s.Posts.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	c := &entity.Comment{Content: in.Content, AuthorID: actor.ID, PostID: post.ID}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	view, err := s.FindOne(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	s.notifyAuthor(ctx, actor, post, view)
	return view, nil
}

// Update only ever touches the content.
func (s *CommentService) Update(ctx context.Context, actor *entity.User, id int64, content string) (*CommentView, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, current.AuthorID) {
		return nil, errs.Forbidden("only the author or an admin can edit this comment")
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateContent(ctx, id, content); err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

func (s *CommentService) Remove(ctx context.Context, actor *entity.User, id int64) error {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, current.AuthorID) {
		return errs.Forbidden("only the author or an admin can delete this comment")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log().WithFields(logrus.Fields{"comment_id": id, "by": actor.ID}).Info("comment deleted")
	return nil
}

func (s *CommentService) FindOne(ctx context.Context, id int64) (*CommentView, error) {
	row, err := s.Repo.FindRow(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := MapComment(*row)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *CommentService) list(ctx context.Context, f repo.CommentFilter, p pagination.Params) (*pagination.Page[CommentView], error) {
	fetch := func(ctx context.Context, q pagination.Query) ([]repo.CommentRow, error) {
		return s.Repo.List(ctx, f, q)
	}
	count := func(ctx context.Context) (int64, error) {
		return s.Repo.Count(ctx, f)
	}
	page, err := pagination.Paginate(ctx, p, repo.CommentSortFields, fetch, count)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, MapComment)
}

func (s *CommentService) FindAll(ctx context.Context, p pagination.Params) (*pagination.Page[CommentView], error) {
	return s.list(ctx, repo.CommentFilter{}, p)
}

func (s *CommentService) FindAllByPost(ctx context.Context, postID int64, p pagination.Params) (*pagination.Page[CommentView], error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.list(ctx, repo.CommentFilter{PostID: &postID}, p)
}

func (s *CommentService) FindAllByAuthor(ctx context.Context, authorID int64, p pagination.Params) (*pagination.Page[CommentView], error) {
	if _, err := s.Users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.list(ctx, repo.CommentFilter{AuthorID: &authorID}, p)
}

// notifyAuthor emails the post author about a comment by someone else.
func (s *CommentService) notifyAuthor(ctx context.Context, actor *entity.User, post *entity.Post, c *CommentView) {
	if s.Mail == nil || post.AuthorID == actor.ID {
		return
	}
	author, err := s.Users.GetByID(ctx, post.AuthorID)
	if err != nil {
		s.log().WithError(err).WithField("post_id", post.ID).Warn("load post author for notification failed")
		return
	}
	job := mailer.EmailJob{
		To:       author.Email,
		Template: mailer.TemplateNewComment,
		Data: map[string]any{
			"Name":          author.Name,
			"CommenterName": c.AuthorName,
			"PostTitle":     post.Title,
			"Content":       c.Content,
		},
	}
	pc, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Mail.PublishJSON(pc, job); err != nil {
		s.log().WithError(err).WithField("comment_id", c.ID).Warn("enqueue comment notification failed")
	}
}
