package services

import (
	"context"
	"mime/multipart"

	"github.com/ecampus/backend/internal/app/models/dto"
	"github.com/ecampus/backend/internal/pkg/apperrors"
	"github.com/ecampus/backend/internal/pkg/logger"
)

// UserService manages the authenticated user's own profile.
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdateProfilePhoto(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.ProfileResponse, error)
}

type userService struct {
	users   UserStore
	storage FileStorage
}

func NewUserService(users UserStore, storage FileStorage) UserService {
	return &userService{users: users, storage: storage}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UserResponse: dto.NewUserResponse(user),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Email != nil {
		taken, err := s.users.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		fields["email"] = *req.Email
	}

	if len(fields) == 0 {
		return s.GetProfile(ctx, userID)
	}

	user, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UserResponse: dto.NewUserResponse(user),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}, nil
}

func (s *userService) UpdateProfilePhoto(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.ProfileResponse, error) {
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.SaveImage(file)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, userID, map[string]interface{}{"profile_photo_url": url})
	if err != nil {
		return nil, err
	}

	if current.ProfilePhotoURL != nil {
		if err := s.storage.Delete(*current.ProfilePhotoURL); err != nil {
			logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to remove previous profile photo")
		}
	}

	return &dto.ProfileResponse{
		UserResponse: dto.NewUserResponse(user),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}, nil
}
