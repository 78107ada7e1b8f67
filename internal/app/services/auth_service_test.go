package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecampus/backend/internal/app/models"
	"github.com/ecampus/backend/internal/app/models/dto"
	"github.com/ecampus/backend/internal/app/repositories"
	"github.com/ecampus/backend/internal/pkg/apperrors"
	"github.com/ecampus/backend/internal/pkg/auth"
)

type fakeTokens struct {
	byToken map[string]*repositories.RefreshToken
}

func (f *fakeTokens) Store(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	f.byToken[token] = &repositories.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (f *fakeTokens) Get(_ context.Context, token string) (*repositories.RefreshToken, error) {
	stored, ok := f.byToken[token]
	if !ok || stored.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrTokenNotFound
	}
	return stored, nil
}

func (f *fakeTokens) Delete(_ context.Context, token string) error {
	delete(f.byToken, token)
	return nil
}

func newAuthFixture() (AuthService, *fakeUsers, *fakeTokens) {
	users := &fakeUsers{byID: map[int64]*models.User{}}
	tokens := &fakeTokens{byToken: map[string]*repositories.RefreshToken{}}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	return NewAuthService(users, tokens, jwtService), users, tokens
}

func registerReq() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:             "jdoe",
		Email:                "jdoe@example.com",
		FirstName:            "John",
		LastName:             "Doe",
		Password:             "s3cr3tpass1",
		PasswordConfirmation: "s3cr3tpass1",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	tokens, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// password is stored hashed
	u, err := users.GetByUsernameOrEmail(ctx, "jdoe")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cr3tpass1", u.Password)

	_, err = svc.Login(ctx, &dto.LoginRequest{UsernameOrEmail: "jdoe", Password: "s3cr3tpass1"})
	assert.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{UsernameOrEmail: "jdoe@example.com", Password: "s3cr3tpass1"})
	assert.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{UsernameOrEmail: "jdoe", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{UsernameOrEmail: "ghost", Password: "s3cr3tpass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	req := registerReq()
	req.Password = "onlyletters"
	req.PasswordConfirmation = req.Password

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	issued, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, issued.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, issued.RefreshToken, refreshed.RefreshToken)

	// the used token is gone
	_, ok := tokens.byToken[issued.RefreshToken]
	assert.False(t, ok)

	_, err = svc.RefreshToken(ctx, issued.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
