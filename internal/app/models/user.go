package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID              int64     `json:"id" db:"id" example:"1"`
	Username        string    `json:"username" db:"username" example:"jdoe"`
	Email           string    `json:"email" db:"email" example:"jdoe@example.com"`
	Password        string    `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName       string    `json:"firstName" db:"first_name" example:"John"`
	LastName        string    `json:"lastName" db:"last_name" example:"Doe"`
	IsStaff         bool      `json:"isStaff" db:"is_staff" example:"false"`
	ProfilePhotoURL *string   `json:"profilePhotoUrl,omitempty" db:"profile_photo_url"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
