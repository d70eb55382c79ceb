// Package testutil builds throwaway sqlite databases with the production
// schema for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/infrastructure/postgres"
)

// NewDB returns a migrated sqlite database that lives in the test's temp dir.
// Foreign keys are enforced so cascades behave like postgres.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "blog.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), postgres.GormConfig(nil))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Post{}, &entity.Comment{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func SeedUser(t testing.TB, db *gorm.DB, email, name string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Name: name, Password: "not-a-real-hash"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func SeedPost(t testing.TB, db *gorm.DB, authorID int64, title string) *entity.Post {
	t.Helper()
	p := &entity.Post{Title: title, Subtitle: "sub " + title, Content: "content of " + title, AuthorID: authorID}
	require.NoError(t, db.Create(p).Error)
	return p
}

func SeedComment(t testing.TB, db *gorm.DB, authorID, postID int64, content string) *entity.Comment {
	t.Helper()
	c := &entity.Comment{Content: content, AuthorID: authorID, PostID: postID}
	require.NoError(t, db.Create(c).Error)
	return c
}
