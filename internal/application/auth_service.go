package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
	"github.com/oksasatya/go-blog-api/pkg/mailer"
)

// ErrInvalidCredentials is deliberately vague about which half was wrong.
var ErrInvalidCredentials = errs.Invalid("", "invalid credentials")

// EmailPublisher queues an email job; *helpers.RabbitPublisher satisfies it.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type AuthService struct {
	Users    *UserService
	JWT      *helpers.JWTManager
	Mail     EmailPublisher
	Logger   *logrus.Logger
	SiteName string
	SiteURL  string
}

func NewAuthService(users *UserService, jwt *helpers.JWTManager, mail EmailPublisher, logger *logrus.Logger, siteName, siteURL string) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Mail: mail, Logger: logger, SiteName: siteName, SiteURL: siteURL}
}

func (s *AuthService) log() *logrus.Entry { return componentLogger(s.Logger, "auth_service") }

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		s.log().WithField("user_id", u.ID).Warn("login with wrong password")
		return nil, ErrInvalidCredentials
	}
	view, err := s.Users.FindOne(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return s.issue(view)
}

// Register checks the confirmation before anything touches storage.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Password != in.ConfirmPassword {
		return nil, errs.Invalid("confirmPassword", "passwords do not match")
	}
	view, err := s.Users.Create(ctx, CreateUserInput{Email: in.Email, Name: in.Name, Password: in.Password})
	if err != nil {
		return nil, err
	}
	s.sendWelcome(ctx, view)
	return s.issue(view)
}

func (s *AuthService) issue(u *UserView) (*AuthResult, error) {
	token, exp, err := s.JWT.GenerateToken(u.Email)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// sendWelcome is best effort; a broker outage must not fail registration.
func (s *AuthService) sendWelcome(ctx context.Context, u *UserView) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"Name":     u.Name,
			"SiteName": s.SiteName,
			"SiteURL":  strings.TrimRight(s.SiteURL, "/"),
			"Year":     time.Now().Year(),
		},
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Mail.PublishJSON(c, job); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}
