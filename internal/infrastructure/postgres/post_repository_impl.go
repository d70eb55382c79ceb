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

const postRowColumns = `posts.id, posts.title, posts.subtitle, posts.content, posts.image_url, posts.published,
	posts.author_id, users.name AS author_name,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS total_comments,
	posts.created_at, posts.updated_at`

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// postScope is the single place the listing filter turns into SQL; List and
// Count both go through it.
func postScope(tx *gorm.DB, f repository.PostFilter) *gorm.DB {
	if f.AuthorID != nil {
		tx = tx.Where("posts.author_id = ?", *f.AuthorID)
	}
	return tx
}

func (r *PostRepository) rows(ctx context.Context, f repository.PostFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Select(postRowColumns).
		Joins("LEFT JOIN users ON users.id = posts.author_id")
	return postScope(tx, f)
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isForeignKeyViolation(err) {
			return errs.NotFound("user", p.AuthorID)
		}
		return err
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	var p entity.Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("post", id)
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) FindRow(ctx context.Context, id int64) (*repository.PostRow, error) {
	var row repository.PostRow
	res := r.rows(ctx, repository.PostFilter{}).Where("posts.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound("post", id)
	}
	return &row, nil
}

func (r *PostRepository) List(ctx context.Context, f repository.PostFilter, q pagination.Query) ([]repository.PostRow, error) {
	var out []repository.PostRow
	err := r.rows(ctx, f).
		Order(q.Sort.Clause("posts.id")).
		Offset(q.Skip).
		Limit(q.Take).
		Scan(&out).Error
	return out, err
}

func (r *PostRepository) Count(ctx context.Context, f repository.PostFilter) (int64, error) {
	var n int64
	err := postScope(r.db.WithContext(ctx).Model(&entity.Post{}), f).Count(&n).Error
	return n, err
}

func (r *PostRepository) Update(ctx context.Context, id int64, c repository.PostChanges) error {
	if c.Empty() {
		_, err := r.GetByID(ctx, id)
		return err
	}
	updates := map[string]any{}
	if c.Title != nil {
		updates["title"] = *c.Title
	}
	if c.Subtitle != nil {
		updates["subtitle"] = *c.Subtitle
	}
	if c.Content != nil {
		updates["content"] = *c.Content
	}
	if c.ImageURL != nil {
		updates["image_url"] = *c.ImageURL
	}
	if c.Published != nil {
		updates["published"] = *c.Published
	}
	res := r.db.WithContext(ctx).Model(&entity.Post{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("post", id)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&entity.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("post", id)
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
