package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

func TestGCSImageStore_Unconfigured(t *testing.T) {
	s := NewGCSImageStore(nil, "bucket")
	_, err := s.Put(context.Background(), "posts/1/a.png", "image/png", strings.NewReader("x"))
	assert.EqualError(t, err, "gcs not configured")
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/blog-images/posts/1/a.png", helpers.PublicURL("blog-images", "posts/1/a.png"))
}
