package application

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/internal/domain/pagination"
	repo "github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
	"github.com/oksasatya/go-blog-api/pkg/validation"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 20
	minNameLen     = 2
	maxNameLen     = 20
)

type UserService struct {
	Repo       repo.UserRepository
	Logger     *logrus.Logger
	BcryptCost int
}

func NewUserService(repo repo.UserRepository, logger *logrus.Logger, bcryptCost int) *UserService {
	return &UserService{Repo: repo, Logger: logger, BcryptCost: bcryptCost}
}

func (s *UserService) log() *logrus.Entry { return componentLogger(s.Logger, "user_service") }

type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	IsAdmin  bool
}

type UpdateUserInput struct {
	Email           *string
	Name            *string
	IsAdmin         *bool
	Password        *string
	ConfirmPassword *string
}

func validateEmail(email string) error {
	if email == "" {
		return errs.Invalid("email", "is required")
	}
	if !validation.IsEmail(email) {
		return errs.Invalid("email", "must be a valid email")
	}
	return nil
}

func validateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < minNameLen || n > maxNameLen {
		return errs.Invalid("name", "must be between 2 and 20 characters")
	}
	return nil
}

func validatePassword(pw string) error {
	n := utf8.RuneCountInString(pw)
	if n < minPasswordLen || n > maxPasswordLen {
		return errs.Invalid("password", "must be between 8 and 20 characters")
	}
	return nil
}

func canModify(actor *entity.User, ownerID int64) bool {
	return actor != nil && (actor.IsAdmin || actor.ID == ownerID)
}

// Create stores a new user. A taken email yields *errs.ConflictError.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*UserView, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, &errs.ConflictError{Field: "email", Value: in.Email}
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: in.Email, Name: strings.TrimSpace(in.Name), Password: hash, IsAdmin: in.IsAdmin}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log().WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user created")
	return s.FindOne(ctx, u.ID)
}

// Update patches only the supplied fields. The password goes through its own
// repository call and is applied before the remaining fields.
func (s *UserService) Update(ctx context.Context, actor *entity.User, id int64, in UpdateUserInput) (*UserView, error) {
	if !canModify(actor, id) {
		return nil, errs.Forbidden("only admins can update other users")
	}
	if in.IsAdmin != nil && !actor.IsAdmin {
		return nil, errs.Forbidden("only admins can change admin status")
	}

	changes := repo.UserChanges{IsAdmin: in.IsAdmin}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		changes.Email = &email
	}
	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(*in.Name)
		changes.Name = &name
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		if in.ConfirmPassword == nil || *in.ConfirmPassword != *in.Password {
			return nil, errs.Invalid("confirmPassword", "passwords do not match")
		}
	}

	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if changes.Email != nil && *changes.Email != current.Email {
		if _, err := s.Repo.GetByEmail(ctx, *changes.Email); err == nil {
			return nil, &errs.ConflictError{Field: "email", Value: *changes.Email}
		} else if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password, s.BcryptCost)
		if err != nil {
			return nil, err
		}
		if err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
		s.log().WithField("user_id", id).Info("password updated")
	}
	if !changes.Empty() {
		if err := s.Repo.Update(ctx, id, changes); err != nil {
			return nil, err
		}
	}
	return s.FindOne(ctx, id)
}

func (s *UserService) Remove(ctx context.Context, actor *entity.User, id int64) error {
	if !canModify(actor, id) {
		return errs.Forbidden("only admins can delete other users")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log().WithFields(logrus.Fields{"user_id": id, "by": actor.ID}).Info("user deleted")
	return nil
}

func (s *UserService) FindOne(ctx context.Context, id int64) (*UserView, error) {
	row, err := s.Repo.FindRow(ctx, id)
	if err != nil {
		return nil, err
	}
	v := MapUser(*row)
	return &v, nil
}

func (s *UserService) FindAll(ctx context.Context, p pagination.Params) (*pagination.Page[UserView], error) {
	page, err := pagination.Paginate(ctx, p, repo.UserSortFields, s.Repo.List, s.Repo.Count)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, mapUserOK)
}

// FindByEmail returns the full record, used by the auth guard.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}
