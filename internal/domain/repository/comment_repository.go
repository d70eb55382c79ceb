package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/pagination"
)

// CommentRow is a comment with the author's name and the post title joined in.
type CommentRow struct {
	ID         int64
	Content    string
	AuthorID   int64
	PostID     int64
	AuthorName *string
	PostTitle  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CommentFilter struct {
	PostID   *int64
	AuthorID *int64
}

var CommentSortFields = pagination.Fields{
	"id":        "comments.id",
	"postId":    "comments.post_id",
	"authorId":  "comments.author_id",
	"createdAt": "comments.created_at",
	"updatedAt": "comments.updated_at",
}

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	FindRow(ctx context.Context, id int64) (*CommentRow, error)
	List(ctx context.Context, f CommentFilter, q pagination.Query) ([]CommentRow, error)
	Count(ctx context.Context, f CommentFilter) (int64, error)
	// ListByPost returns every comment on a post, oldest first.
	ListByPost(ctx context.Context, postID int64) ([]CommentRow, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}
