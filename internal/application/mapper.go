package application

import (
	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

// MapUser flattens a user row. Counts come straight from the query.
func MapUser(r repository.UserRow) UserView {
	return UserView{
		ID:            r.ID,
		Email:         r.Email,
		Name:          r.Name,
		IsAdmin:       r.IsAdmin,
		TotalPosts:    r.TotalPosts,
		TotalComments: r.TotalComments,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// MapPost fails when the author join came back empty.
func MapPost(r repository.PostRow) (PostView, error) {
	if r.AuthorName == nil {
		return PostView{}, &errs.DanglingReferenceError{Entity: "post", ID: r.ID, Relation: "author"}
	}
	return PostView{
		ID:            r.ID,
		Title:         r.Title,
		Subtitle:      r.Subtitle,
		Content:       r.Content,
		ImageURL:      r.ImageURL,
		Published:     r.Published,
		AuthorID:      r.AuthorID,
		AuthorName:    *r.AuthorName,
		TotalComments: r.TotalComments,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

// MapComment fails when either the author or the post join came back empty.
func MapComment(r repository.CommentRow) (CommentView, error) {
	if r.AuthorName == nil {
		return CommentView{}, &errs.DanglingReferenceError{Entity: "comment", ID: r.ID, Relation: "author"}
	}
	if r.PostTitle == nil {
		return CommentView{}, &errs.DanglingReferenceError{Entity: "comment", ID: r.ID, Relation: "post"}
	}
	return CommentView{
		ID:         r.ID,
		Content:    r.Content,
		AuthorID:   r.AuthorID,
		AuthorName: *r.AuthorName,
		PostID:     r.PostID,
		PostTitle:  *r.PostTitle,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

// mapComments drops PostTitle, which is redundant when comments hang off a post.
func mapComments(rows []repository.CommentRow) ([]CommentView, error) {
	out := make([]CommentView, 0, len(rows))
	for _, r := range rows {
		v, err := MapComment(r)
		if err != nil {
			return nil, err
		}
		v.PostTitle = ""
		out = append(out, v)
	}
	return out, nil
}

func mapUserOK(r repository.UserRow) (UserView, error) { return MapUser(r), nil }

func postDocument(v PostView) repository.PostDocument {
	return repository.PostDocument{
		ID:         v.ID,
		Title:      v.Title,
		Subtitle:   v.Subtitle,
		Content:    v.Content,
		AuthorID:   v.AuthorID,
		AuthorName: v.AuthorName,
		Published:  v.Published,
		CreatedAt:  v.CreatedAt,
	}
}
