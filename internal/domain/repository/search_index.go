package repository

import (
	"context"
	"io"
	"time"
)

// PostDocument is what gets stored in the full-text index.
type PostDocument struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PostSearchIndex is a secondary index; the database stays the source of
// truth and Search only returns ids.
type PostSearchIndex interface {
	Index(ctx context.Context, doc PostDocument) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, size int) ([]int64, error)
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}
