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

const userRowColumns = `users.id, users.email, users.name, users.is_admin, users.created_at, users.updated_at,
	(SELECT COUNT(*) FROM posts WHERE posts.author_id = users.id) AS total_posts,
	(SELECT COUNT(*) FROM comments WHERE comments.author_id = users.id) AS total_comments`

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return &errs.ConflictError{Field: "email", Value: u.Email}
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user", id)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user", email)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) rows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.User{}).Select(userRowColumns)
}

func (r *UserRepository) FindRow(ctx context.Context, id int64) (*repository.UserRow, error) {
	var row repository.UserRow
	res := r.rows(ctx).Where("users.id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound("user", id)
	}
	return &row, nil
}

func (r *UserRepository) List(ctx context.Context, q pagination.Query) ([]repository.UserRow, error) {
	var out []repository.UserRow
	err := r.rows(ctx).
		Order(q.Sort.Clause("users.id")).
		Offset(q.Skip).
		Limit(q.Take).
		Scan(&out).Error
	return out, err
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&n).Error
	return n, err
}

func (r *UserRepository) Update(ctx context.Context, id int64, c repository.UserChanges) error {
	if c.Empty() {
		_, err := r.GetByID(ctx, id)
		return err
	}
	updates := map[string]any{}
	if c.Email != nil {
		updates["email"] = *c.Email
	}
	if c.Name != nil {
		updates["name"] = *c.Name
	}
	if c.IsAdmin != nil {
		updates["is_admin"] = *c.IsAdmin
	}
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if isUniqueViolation(res.Error) && c.Email != nil {
			return &errs.ConflictError{Field: "email", Value: *c.Email}
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("user", id)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("user", id)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("user", id)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
