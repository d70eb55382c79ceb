package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/internal/domain/pagination"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUserService_CreateThenFindOne(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	created, err := s.users.Create(ctx, application.CreateUserInput{Email: "Ana@Example.com", Name: "Ana", Password: "password123"})
	require.NoError(t, err)

	got, err := s.users.FindOne(ctx, created.ID)
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "Ana", got.Name)
	assert.False(t, got.IsAdmin)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
	assert.Zero(t, got.TotalPosts)
}

func TestUserService_PasswordIsHashed(t *testing.T) {
	s := newServices(t)
	u := s.mustUser(t, "hash@example.com", "Hash", false)

	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "password123"))
}

func TestUserService_DuplicateEmailIsConflict(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	in := application.CreateUserInput{Email: "dup@example.com", Name: "Dup", Password: "password123"}

	_, err := s.users.Create(ctx, in)
	require.NoError(t, err)
	_, err = s.users.Create(ctx, in)

	var ce *errs.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "dup@example.com", ce.Value)
}

func TestUserService_CreateValidation(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	cases := []application.CreateUserInput{
		{Email: "", Name: "Name", Password: "password123"},
		{Email: "not-an-email", Name: "Name", Password: "password123"},
		{Email: "Bob <bob@example.com>", Name: "Name", Password: "password123"},
		{Email: "a@example.com", Name: "N", Password: "password123"},
		{Email: "a@example.com", Name: "Name", Password: "short"},
		{Email: "a@example.com", Name: "Name", Password: "waytoolongpassword123"},
	}
	for _, in := range cases {
		_, err := s.users.Create(ctx, in)
		assert.ErrorIs(t, err, errs.ErrValidation, "%+v", in)
	}
	_, err := s.users.FindByEmail(ctx, "bob <bob@example.com>")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserService_PasswordOnlyUpdateKeepsOtherFields(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := s.mustUser(t, "pw@example.com", "Pw", true)

	_, err := s.users.Update(ctx, u, u.ID, application.UpdateUserInput{
		Password:        strPtr("newpassword1"),
		ConfirmPassword: strPtr("newpassword1"),
	})
	require.NoError(t, err)

	after, err := s.users.FindByEmail(ctx, "pw@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.Email, after.Email)
	assert.Equal(t, u.Name, after.Name)
	assert.Equal(t, u.IsAdmin, after.IsAdmin)
	assert.True(t, helpers.CompareHashAndPassword(after.Password, "newpassword1"))
}

func TestUserService_PasswordUpdateNeedsConfirmation(t *testing.T) {
	s := newServices(t)
	u := s.mustUser(t, "cf@example.com", "Cf", false)

	_, err := s.users.Update(context.Background(), u, u.ID, application.UpdateUserInput{
		Password:        strPtr("newpassword1"),
		ConfirmPassword: strPtr("different12"),
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	after, err := s.users.FindByEmail(context.Background(), "cf@example.com")
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(after.Password, "password123"))
}

func TestUserService_PartialUpdate(t *testing.T) {
	s := newServices(t)
	u := s.mustUser(t, "part@example.com", "Part", false)

	v, err := s.users.Update(context.Background(), u, u.ID, application.UpdateUserInput{Name: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", v.Name)
	assert.Equal(t, "part@example.com", v.Email)
	assert.True(t, !v.UpdatedAt.Before(v.CreatedAt))
}

func TestUserService_UpdateAuthorization(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	alice := s.mustUser(t, "alice@example.com", "Alice", false)
	bob := s.mustUser(t, "bob@example.com", "Bob", false)
	admin := s.mustUser(t, "root@example.com", "Root", true)

	_, err := s.users.Update(ctx, alice, bob.ID, application.UpdateUserInput{Name: strPtr("Hacked")})
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = s.users.Update(ctx, alice, alice.ID, application.UpdateUserInput{IsAdmin: boolPtr(true)})
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	v, err := s.users.Update(ctx, admin, bob.ID, application.UpdateUserInput{IsAdmin: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, v.IsAdmin)
}

func TestUserService_UpdateEmailConflict(t *testing.T) {
	s := newServices(t)
	s.mustUser(t, "taken@example.com", "Taken", false)
	u := s.mustUser(t, "mine@example.com", "Mine", false)

	_, err := s.users.Update(context.Background(), u, u.ID, application.UpdateUserInput{Email: strPtr("taken@example.com")})
	assert.ErrorIs(t, err, errs.ErrConflict)

	v, err := s.users.Update(context.Background(), u, u.ID, application.UpdateUserInput{Email: strPtr("mine@example.com")})
	require.NoError(t, err, "keeping the same email is not a conflict")
	assert.Equal(t, "mine@example.com", v.Email)
}

func TestUserService_UpdateRejectsDisplayNameEmail(t *testing.T) {
	s := newServices(t)
	u := s.mustUser(t, "plain@example.com", "Plain", false)

	_, err := s.users.Update(context.Background(), u, u.ID, application.UpdateUserInput{Email: strPtr("Plain <plain@example.com>")})
	assert.ErrorIs(t, err, errs.ErrValidation)

	got, err := s.users.FindOne(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "plain@example.com", got.Email)
}

func TestUserService_RemoveTwice(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	admin := s.mustUser(t, "admin@example.com", "Admin", true)
	u := s.mustUser(t, "bye@example.com", "Bye", false)

	require.NoError(t, s.users.Remove(ctx, admin, u.ID))
	assert.ErrorIs(t, s.users.Remove(ctx, admin, u.ID), errs.ErrNotFound)
	assert.ErrorIs(t, s.users.Remove(ctx, admin, u.ID), errs.ErrNotFound)

	_, err := s.users.FindOne(ctx, u.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserService_RemoveOtherUserForbidden(t *testing.T) {
	s := newServices(t)
	a := s.mustUser(t, "a@example.com", "Aa", false)
	b := s.mustUser(t, "b@example.com", "Bb", false)

	assert.ErrorIs(t, s.users.Remove(context.Background(), a, b.ID), errs.ErrUnauthorized)
	assert.ErrorIs(t, s.users.Remove(context.Background(), nil, b.ID), errs.ErrUnauthorized)
}

func TestUserService_FindAllWithCounts(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	writer := s.mustUser(t, "w@example.com", "Writer", false)
	s.mustUser(t, "r@example.com", "Reader", false)
	s.mustPost(t, writer, "one")
	s.mustPost(t, writer, "two")

	page, err := s.users.FindAll(ctx, pagination.Params{Page: 1, ItemsPerPage: 1})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "Writer", page.Data[0].Name)
	assert.EqualValues(t, 2, page.Data[0].TotalPosts)

	_, err = s.users.FindAll(ctx, pagination.Params{OrderBy: "password"})
	assert.ErrorIs(t, err, errs.ErrInvalidField)
}
