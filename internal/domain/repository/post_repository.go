package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/pagination"
)

// PostRow is a post with its author's name and comment count. AuthorName is
// nil when the author row is missing.
type PostRow struct {
	ID            int64
	Title         string
	Subtitle      string
	Content       string
	ImageURL      *string
	Published     bool
	AuthorID      int64
	AuthorName    *string
	TotalComments int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PostFilter narrows a listing. The same filter is applied to List and Count.
type PostFilter struct {
	AuthorID *int64
}

type PostChanges struct {
	Title     *string
	Subtitle  *string
	Content   *string
	ImageURL  *string
	Published *bool
}

func (c PostChanges) Empty() bool {
	return c.Title == nil && c.Subtitle == nil && c.Content == nil && c.ImageURL == nil && c.Published == nil
}

var PostSortFields = pagination.Fields{
	"id":            "posts.id",
	"title":         "posts.title",
	"published":     "posts.published",
	"createdAt":     "posts.created_at",
	"updatedAt":     "posts.updated_at",
	"totalComments": "total_comments",
}

type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	FindRow(ctx context.Context, id int64) (*PostRow, error)
	List(ctx context.Context, f PostFilter, q pagination.Query) ([]PostRow, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
	Update(ctx context.Context, id int64, c PostChanges) error
	Delete(ctx context.Context, id int64) error
}
