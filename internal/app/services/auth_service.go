package services

import (
	"context"
	"fmt"

	"github.com/ecampus/backend/internal/app/models"
	"github.com/ecampus/backend/internal/app/models/dto"
	"github.com/ecampus/backend/internal/pkg/apperrors"
	"github.com/ecampus/backend/internal/pkg/auth"
	"github.com/ecampus/backend/internal/pkg/logger"
	"github.com/ecampus/backend/internal/pkg/validation"
)

// AuthService handles registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
}

type authService struct {
	users      UserStore
	tokens     TokenStore
	jwtService *auth.JWTService
}

func NewAuthService(users UserStore, tokens TokenStore, jwtService *auth.JWTService) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", created.ID).Str("username", created.Username).Msg("User registered")

	return s.issueTokens(ctx, created)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByUsernameOrEmail(ctx, req.UsernameOrEmail)
	if err != nil {
		// do not reveal whether the account exists
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	// single-use: rotate the refresh token on every exchange
	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		logger.Warn().Err(err).Msg("Failed to delete used refresh token")
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	access, refresh, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokens.Store(ctx, user.ID, refresh, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}
