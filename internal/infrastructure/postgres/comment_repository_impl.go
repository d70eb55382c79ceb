package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/internal/domain/pagination"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

const commentRowColumns = `comments.id, comments.content, comments.author_id, comments.post_id,
	users.name AS author_name, posts.title AS post_title,
	comments.created_at, comments.updated_at`

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func commentScope(tx *gorm.DB, f repository.CommentFilter) *gorm.DB {
	if f.PostID != nil {
		tx = tx.Where("comments.post_id = ?", *f.PostID)
	}
	if f.AuthorID != nil {
		tx = tx.Where("comments.author_id = ?", *f.AuthorID)
	}
	return tx
}

func (r *CommentRepository) rows(ctx context.Context, f repository.CommentFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).
		Model(&entity.Comment{}).
		Select(commentRowColumns).
		Joins("LEFT JOIN users ON users.id = comments.author_id").
		Joins("LEFT JOIN posts ON posts.id = comments.post_id")
	return commentScope(tx, f)
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isForeignKeyViolation(err) {
			return errs.NotFound("post", c.PostID)
		}
		return err
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	var c entity.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("comment", id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) FindRow(ctx context.Context, id int64) (*repository.CommentRow, error) {
	var row repository.CommentRow
	res := r.rows(ctx, repository.CommentFilter{}).Where("comments.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound("comment", id)
	}
	return &row, nil
}

func (r *CommentRepository) List(ctx context.Context, f repository.CommentFilter, q pagination.Query) ([]repository.CommentRow, error) {
	var out []repository.CommentRow
	err := r.rows(ctx, f).
		Order(q.Sort.Clause("comments.id")).
		Offset(q.Skip).
		Limit(q.Take).
		Scan(&out).Error
	return out, err
}

func (r *CommentRepository) Count(ctx context.Context, f repository.CommentFilter) (int64, error) {
	var n int64
	err := commentScope(r.db.WithContext(ctx).Model(&entity.Comment{}), f).Count(&n).Error
	return n, err
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]repository.CommentRow, error) {
	var out []repository.CommentRow
	err := r.rows(ctx, repository.CommentFilter{PostID: &postID}).
		Order("comments.created_at ASC, comments.id ASC").
		Scan(&out).Error
	return out, err
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	res := r.db.WithContext(ctx).Model(&entity.Comment{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("comment", id)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&entity.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("comment", id)
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
