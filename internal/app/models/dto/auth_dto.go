package dto

// RegisterRequest is the payload for creating a new user account
type RegisterRequest struct {
	Username             string `json:"username" binding:"required,min=3,max=150" example:"jdoe"`
	Email                string `json:"email" binding:"required,email" example:"jdoe@example.com"`
	FirstName            string `json:"firstName" binding:"required,max=150" example:"John"`
	LastName             string `json:"lastName" binding:"required,max=150" example:"Doe"`
	Password             string `json:"password" binding:"required,min=8,max=128" example:"s3cr3tpass"`
	PasswordConfirmation string `json:"passwordConfirmation" binding:"required,eqfield=Password" example:"s3cr3tpass"`
}

// LoginRequest authenticates by username or email plus password
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required" example:"jdoe"`
	Password        string `json:"password" binding:"required" example:"s3cr3tpass"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}
