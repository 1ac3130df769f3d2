package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/internal/domains/user/repository"
	"bookcatalog-backend/internal/shared/apperr"
	"bookcatalog-backend/pkg/hasher"
	"bookcatalog-backend/pkg/jwt"
)

type failingIssuer struct{}

func (failingIssuer) Issue(jwt.Payload) (string, error) { return "", errors.New("signing key unavailable") }

func newTestService(t *testing.T) (user.Service, *jwt.Manager) {
	t.Helper()
	manager := jwt.NewManager("test-secret", time.Hour)
	return NewUserService(repository.NewMemoryRepository(), hasher.NewBcrypt(4), manager), manager
}

func TestUserService_SignupAndSignin(t *testing.T) {
	ctx := context.Background()
	svc, manager := newTestService(t)

	created, err := svc.Signup(ctx, user.SignupRequest{Email: "Ada@Example.com ", FirstName: "Ada", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.Equal(t, "Ada", created.FirstName)

	res, err := svc.Signin(ctx, user.SigninRequest{Email: "ada@example.com", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)

	payload, err := manager.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), payload.Sub)
	assert.Equal(t, "ada@example.com", payload.Email)
	assert.Equal(t, "Ada", payload.FirstName)

	profile, err := svc.GetProfile(ctx, payload.Sub)
	require.NoError(t, err)
	assert.Equal(t, *created, *profile)
}

func TestUserService_Signup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Signup(ctx, user.SignupRequest{Email: "ada@example.com", FirstName: "Ada", Password: "one"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, user.SignupRequest{Email: "ADA@example.com", FirstName: "Other", Password: "two"})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	assert.Equal(t, 409, apperr.Resolve(err).Status)
}

func TestUserService_Signup_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name  string
		req   user.SignupRequest
		field string
	}{
		{"bad email", user.SignupRequest{Email: "not-an-email", FirstName: "Ada", Password: "x"}, "email"},
		{"missing first name", user.SignupRequest{Email: "ada@example.com", Password: "x"}, "firstName"},
		{"blank first name", user.SignupRequest{Email: "ada@example.com", FirstName: "   ", Password: "x"}, "firstName"},
		{"missing password", user.SignupRequest{Email: "ada@example.com", FirstName: "Ada"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.req)
			var vErr *apperr.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, tt.field)
		})
	}
}

func TestUserService_Signin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Signup(ctx, user.SignupRequest{Email: "ada@example.com", FirstName: "Ada", Password: "right"})
	require.NoError(t, err)

	_, wrongPassword := svc.Signin(ctx, user.SigninRequest{Email: "ada@example.com", Password: "wrong"})
	_, unknownEmail := svc.Signin(ctx, user.SigninRequest{Email: "nobody@example.com", Password: "right"})

	assert.ErrorIs(t, wrongPassword, user.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, user.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, 401, apperr.Resolve(unknownEmail).Status)
}

func TestUserService_Signin_IssuerFailure(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryRepository(), hasher.NewBcrypt(4), failingIssuer{})

	_, err := svc.Signup(ctx, user.SignupRequest{Email: "ada@example.com", FirstName: "Ada", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Signin(ctx, user.SigninRequest{Email: "ada@example.com", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, 500, apperr.Resolve(err).Status)
}

func TestUserService_GetProfile(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProfile(context.Background(), "")
	var vErr *apperr.ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.GetProfile(context.Background(), "abc")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
