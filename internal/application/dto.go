package application

import "time"

// UserView is the public shape of a user. It never carries the password.
type UserView struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	IsAdmin       bool      `json:"isAdmin"`
	TotalPosts    int64     `json:"totalPosts"`
	TotalComments int64     `json:"totalComments"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type PostView struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle"`
	Content       string    `json:"content"`
	ImageURL      *string   `json:"imageUrl"`
	Published     bool      `json:"published"`
	AuthorID      int64     `json:"authorId"`
	AuthorName    string    `json:"authorName"`
	TotalComments int64     `json:"totalComments"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PostDetail is a single post with its comments inlined.
type PostDetail struct {
	PostView
	Comments []CommentView `json:"comments"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	PostID     int64     `json:"postId"`
	PostTitle  string    `json:"postTitle,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *UserView `json:"user"`
}

type Statistics struct {
	Uptime        float64 `json:"uptime"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalPosts    int64   `json:"totalPosts"`
	TotalComments int64   `json:"totalComments"`
}
