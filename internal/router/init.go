package router

import (
	"time"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/container"
	"github.com/oksasatya/go-blog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-blog-api/internal/infrastructure/search"
	"github.com/oksasatya/go-blog-api/internal/infrastructure/storage"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/internal/router/modules"
)

// Services is the application layer wired against one container.
type Services struct {
	Users    *application.UserService
	Auth     *application.AuthService
	Posts    *application.PostService
	Comments *application.CommentService
	Stats    *application.StatsService
	Mail     application.EmailPublisher
}

func BuildServices(c *container.Container) *Services {
	cfg := c.Config
	userRepo := postgres.NewUserRepository(c.DB)
	postRepo := postgres.NewPostRepository(c.DB)
	commentRepo := postgres.NewCommentRepository(c.DB)

	// A nil *RabbitPublisher must not end up inside the interface.
	var mail application.EmailPublisher
	if c.Rabbit != nil && cfg.MailSendEnabled {
		mail = c.Rabbit
	}

	users := application.NewUserService(userRepo, c.Logger, cfg.BcryptCost)
	posts := application.NewPostService(postRepo, commentRepo, userRepo, c.Logger)
	if c.ES != nil {
		posts.Index = search.NewPostIndex(c.ES, cfg.ESPostsIndex)
	}
	if c.GCS != nil && cfg.GCSBucket != "" {
		posts.Images = storage.NewGCSImageStore(c.GCS, cfg.GCSBucket)
	}
	comments := application.NewCommentService(commentRepo, postRepo, userRepo, c.Logger)
	comments.Mail = mail

	return &Services{
		Users:    users,
		Auth:     application.NewAuthService(users, c.JWT, mail, c.Logger, cfg.SiteName, cfg.SiteURL),
		Posts:    posts,
		Comments: comments,
		Stats:    application.NewStatsService(postgres.NewStatsRepository(c.DB), c.StartedAt),
		Mail:     mail,
	}
}

// InitModules builds every feature module from the container and adds it to
// the registry. Call once at startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) *Services {
	cfg := c.Config
	svc := BuildServices(c)
	perPage := cfg.DefaultItemsPerPage

	guard := modules.Guard{
		Auth:  middleware.Auth(c.JWT, svc.Users),
		Limit: middleware.RateLimit(c.Redis, cfg.RateLimitAPIPerMin, time.Minute, middleware.KeyByUser(), nil),
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, c.Logger), c.Redis, cfg.RateLimitAuthPerMin))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(svc.Stats, c.Logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, svc.Posts, svc.Comments, c.Logger, perPage), guard))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(svc.Posts, svc.Comments, c.Logger, perPage), guard))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(svc.Comments, c.Logger, perPage), guard))
	r.Add(modules.NewEmailModule(handlers.NewEmailHandler(svc.Mail, cfg.MailSendEnabled, c.Logger), guard))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
	return svc
}
