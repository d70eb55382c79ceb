package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/pagination"
)

// UserRow is a user joined with its relation counts, computed by the database
// at query time.
type UserRow struct {
	ID            int64
	Email         string
	Name          string
	IsAdmin       bool
	TotalPosts    int64
	TotalComments int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserChanges carries a partial update; nil fields are left untouched.
// Passwords go through UpdatePassword instead.
type UserChanges struct {
	Email   *string
	Name    *string
	IsAdmin *bool
}

func (c UserChanges) Empty() bool {
	return c.Email == nil && c.Name == nil && c.IsAdmin == nil
}

var UserSortFields = pagination.Fields{
	"id":            "users.id",
	"email":         "users.email",
	"name":          "users.name",
	"isAdmin":       "users.is_admin",
	"createdAt":     "users.created_at",
	"updatedAt":     "users.updated_at",
	"totalPosts":    "total_posts",
	"totalComments": "total_comments",
}

// UserRepository defines the storage operations on users.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	FindRow(ctx context.Context, id int64) (*UserRow, error)
	List(ctx context.Context, q pagination.Query) ([]UserRow, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64, c UserChanges) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}
