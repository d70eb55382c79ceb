package application_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-blog-api/internal/testutil"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

// bcrypt.MinCost keeps the suite fast.
const testBcryptCost = 4

type services struct {
	db       *gorm.DB
	users    *application.UserService
	auth     *application.AuthService
	posts    *application.PostService
	comments *application.CommentService
	stats    *application.StatsService
	mail     *recordingPublisher
}

func newServices(t *testing.T) *services {
	t.Helper()
	db := testutil.NewDB(t)
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)

	mail := &recordingPublisher{}
	users := application.NewUserService(userRepo, nil, testBcryptCost)
	auth := application.NewAuthService(users, helpers.NewJWTManager("test-secret", time.Hour, "test"), mail, nil, "Blog", "http://blog.test/")
	comments := application.NewCommentService(commentRepo, postRepo, userRepo, nil)
	comments.Mail = mail

	return &services{
		db:       db,
		users:    users,
		auth:     auth,
		posts:    application.NewPostService(postRepo, commentRepo, userRepo, nil),
		comments: comments,
		stats:    application.NewStatsService(postgres.NewStatsRepository(db), time.Now().Add(-time.Minute)),
		mail:     mail,
	}
}

func (s *services) mustUser(t *testing.T, email, name string, admin bool) *entity.User {
	t.Helper()
	v, err := s.users.Create(context.Background(), application.CreateUserInput{
		Email: email, Name: name, Password: "password123", IsAdmin: admin,
	})
	require.NoError(t, err)
	u, err := s.users.FindByEmail(context.Background(), v.Email)
	require.NoError(t, err)
	return u
}

func (s *services) mustPost(t *testing.T, author *entity.User, title string) *application.PostView {
	t.Helper()
	v, err := s.posts.Create(context.Background(), author, application.CreatePostInput{
		Title: title, Subtitle: "about " + title, Content: "body of " + title,
	})
	require.NoError(t, err)
	return v
}

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

type fakeIndex struct {
	mu   sync.Mutex
	docs map[int64]repository.PostDocument
	hits []int64
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[int64]repository.PostDocument{}} }

func (f *fakeIndex) Index(_ context.Context, doc repository.PostDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int) ([]int64, error) {
	return f.hits, nil
}

type fakeImages struct {
	paths []string
}

func (f *fakeImages) Put(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.paths = append(f.paths, objectPath)
	return "https://images.test/" + objectPath, nil
}
