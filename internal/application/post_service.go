package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/internal/domain/pagination"
	repo "github.com/oksasatya/go-blog-api/internal/domain/repository"
)

const minPostFieldLen = 3

var ErrSearchDisabled = errors.New("post search is not configured")
var ErrUploadDisabled = errors.New("image upload is not configured")

type PostService struct {
	Repo     repo.PostRepository
	Comments repo.CommentRepository
	Users    repo.UserRepository
	Index    repo.PostSearchIndex
	Images   repo.ImageStore
	Logger   *logrus.Logger
}

func NewPostService(posts repo.PostRepository, comments repo.CommentRepository, users repo.UserRepository, logger *logrus.Logger) *PostService {
	return &PostService{Repo: posts, Comments: comments, Users: users, Logger: logger}
}

func (s *PostService) log() *logrus.Entry { return componentLogger(s.Logger, "post_service") }

type CreatePostInput struct {
	Title     string
	Subtitle  string
	Content   string
	ImageURL  *string
	Published bool
}

type UpdatePostInput struct {
	Title     *string
	Subtitle  *string
	Content   *string
	ImageURL  *string
	Published *bool
}

func validatePostField(field, value string) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < minPostFieldLen {
		return errs.Invalid(field, "must be at least 3 characters")
	}
	return nil
}

// Create always uses the caller as author.
func (s *PostService) Create(ctx context.Context, actor *entity.User, in CreatePostInput) (*PostView, error) {
	if actor == nil {
		return nil, errs.Forbidden("login required")
	}
	if err := validatePostField("title", in.Title); err != nil {
		return nil, err
	}
	if err := validatePostField("subtitle", in.Subtitle); err != nil {
		return nil, err
	}
	if err := validatePostField("content", in.Content); err != nil {
		return nil, err
	}
	p := &entity.Post{
		Title:     strings.TrimSpace(in.Title),
		Subtitle:  strings.TrimSpace(in.Subtitle),
		Content:   in.Content,
		ImageURL:  in.ImageURL,
		Published: in.Published,
		AuthorID:  actor.ID,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	view, err := s.findView(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	s.index(ctx, view)
	s.log().WithFields(logrus.Fields{"post_id": p.ID, "author_id": actor.ID}).Info("post created")
	return view, nil
}

func (s *PostService) Update(ctx context.Context, actor *entity.User, id int64, in UpdatePostInput) (*PostView, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, current.AuthorID) {
		return nil, errs.Forbidden("only the author or an admin can edit this post")
	}
	changes := repo.PostChanges{Content: in.Content, ImageURL: in.ImageURL, Published: in.Published}
	if in.Title != nil {
		if err := validatePostField("title", *in.Title); err != nil {
			return nil, err
		}
		t := strings.TrimSpace(*in.Title)
		changes.Title = &t
	}
	if in.Subtitle != nil {
		if err := validatePostField("subtitle", *in.Subtitle); err != nil {
			return nil, err
		}
		st := strings.TrimSpace(*in.Subtitle)
		changes.Subtitle = &st
	}
	if in.Content != nil {
		if err := validatePostField("content", *in.Content); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	view, err := s.findView(ctx, id)
	if err != nil {
		return nil, err
	}
	s.index(ctx, view)
	return view, nil
}

func (s *PostService) Remove(ctx context.Context, actor *entity.User, id int64) error {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, current.AuthorID) {
		return errs.Forbidden("only the author or an admin can delete this post")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.log().WithError(err).WithField("post_id", id).Warn("search index remove failed")
		}
	}
	s.log().WithFields(logrus.Fields{"post_id": id, "by": actor.ID}).Info("post deleted")
	return nil
}

func (s *PostService) findView(ctx context.Context, id int64) (*PostView, error) {
	row, err := s.Repo.FindRow(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := MapPost(*row)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindOne returns the post with every comment attached.
func (s *PostService) FindOne(ctx context.Context, id int64) (*PostDetail, error) {
	view, err := s.findView(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.Comments.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := mapComments(rows)
	if err != nil {
		return nil, err
	}
	return &PostDetail{PostView: *view, Comments: comments}, nil
}

func (s *PostService) list(ctx context.Context, f repo.PostFilter, p pagination.Params) (*pagination.Page[PostView], error) {
	fetch := func(ctx context.Context, q pagination.Query) ([]repo.PostRow, error) {
		return s.Repo.List(ctx, f, q)
	}
	count := func(ctx context.Context) (int64, error) {
		return s.Repo.Count(ctx, f)
	}
	page, err := pagination.Paginate(ctx, p, repo.PostSortFields, fetch, count)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, MapPost)
}

func (s *PostService) FindAll(ctx context.Context, p pagination.Params) (*pagination.Page[PostView], error) {
	return s.list(ctx, repo.PostFilter{}, p)
}

// FindAllByAuthor lists one user's posts; an unknown user is NotFound rather
// than an empty page.
func (s *PostService) FindAllByAuthor(ctx context.Context, authorID int64, p pagination.Params) (*pagination.Page[PostView], error) {
	if _, err := s.Users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.list(ctx, repo.PostFilter{AuthorID: &authorID}, p)
}

// Search asks the index for ids and reloads each hit from the database, so
// stale index entries are skipped.
func (s *PostService) Search(ctx context.Context, query string, size int) ([]PostView, error) {
	if s.Index == nil {
		return nil, ErrSearchDisabled
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errs.Invalid("q", "is required")
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	ids, err := s.Index.Search(ctx, query, size)
	if err != nil {
		return nil, err
	}
	out := make([]PostView, 0, len(ids))
	for _, id := range ids {
		v, err := s.findView(ctx, id)
		if errors.Is(err, errs.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// UploadImage stores the file and points the post's imageUrl at it.
func (s *PostService) UploadImage(ctx context.Context, actor *entity.User, id int64, r io.Reader, filename, contentType string) (*PostView, error) {
	if s.Images == nil {
		return nil, ErrUploadDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errs.Invalid("image", "must be an image")
	}
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, current.AuthorID) {
		return nil, errs.Forbidden("only the author or an admin can change this post")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("posts", strconv.FormatInt(id, 10), uuid.NewString()+ext))
	url, err := s.Images.Put(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, actor, id, UpdatePostInput{ImageURL: &url})
}

func (s *PostService) index(ctx context.Context, v *PostView) {
	if s.Index == nil {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Index.Index(c, postDocument(*v)); err != nil {
		s.log().WithError(err).WithField("post_id", v.ID).Warn("search index failed")
	}
}
