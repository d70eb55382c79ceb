package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

func TestMapPost(t *testing.T) {
	name := "Jane"
	now := time.Now()
	v, err := application.MapPost(repository.PostRow{ID: 7, Title: "t", AuthorID: 3, AuthorName: &name, TotalComments: 4, CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "Jane", v.AuthorName)
	assert.EqualValues(t, 4, v.TotalComments)
	assert.Equal(t, now, v.CreatedAt)

	_, err = application.MapPost(repository.PostRow{ID: 8})
	assert.ErrorIs(t, err, errs.ErrDanglingReference)
	var dr *errs.DanglingReferenceError
	require.ErrorAs(t, err, &dr)
	assert.Equal(t, "author", dr.Relation)
	assert.EqualValues(t, 8, dr.ID)
}

func TestMapComment(t *testing.T) {
	name, title := "Jane", "Post"
	v, err := application.MapComment(repository.CommentRow{ID: 1, Content: "c", AuthorName: &name, PostTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, "Post", v.PostTitle)

	_, err = application.MapComment(repository.CommentRow{ID: 2, PostTitle: &title})
	var dr *errs.DanglingReferenceError
	require.ErrorAs(t, err, &dr)
	assert.Equal(t, "author", dr.Relation)

	_, err = application.MapComment(repository.CommentRow{ID: 3, AuthorName: &name})
	require.ErrorAs(t, err, &dr)
	assert.Equal(t, "post", dr.Relation)
}

func TestMapUser(t *testing.T) {
	v := application.MapUser(repository.UserRow{ID: 1, Email: "a@b.c", Name: "A", IsAdmin: true, TotalPosts: 2, TotalComments: 5})
	assert.Equal(t, application.UserView{ID: 1, Email: "a@b.c", Name: "A", IsAdmin: true, TotalPosts: 2, TotalComments: 5}, v)
}
