package dto

import (
	"time"

	"github.com/ecampus/backend/internal/app/models"
)

// UserResponse is the public representation of a user
type UserResponse struct {
	ID              int64   `json:"id" example:"1"`
	Username        string  `json:"username" example:"jdoe"`
	Email           string  `json:"email" example:"jdoe@example.com"`
	FirstName       string  `json:"firstName" example:"John"`
	LastName        string  `json:"lastName" example:"Doe"`
	IsStaff         bool    `json:"isStaff" example:"false"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty"`
}

// UpdateProfileRequest is the payload for partial profile updates
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"lastName,omitempty" binding:"omitempty,max=150"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
}

// ProfileResponse is the authenticated user's own profile
type ProfileResponse struct {
	UserResponse
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse maps a user model to its public representation
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		IsStaff:         u.IsStaff,
		ProfilePhotoURL: u.ProfilePhotoURL,
	}
}

// NewUserResponses maps a slice of user models
func NewUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
