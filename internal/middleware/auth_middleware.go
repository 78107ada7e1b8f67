package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/ecampus/backend/internal/app/auth"
	"github.com/ecampus/backend/internal/app/models/dto"
	"github.com/ecampus/backend/internal/pkg/apperrors"
	"github.com/ecampus/backend/internal/pkg/auth"
)

const (
	ctxUserIDKey  = "userID"
	ctxEmailKey   = "email"
	ctxIsStaffKey = "isStaff"
)

// AuthMiddleware validates bearer tokens and exposes the authenticated
// principal to handlers.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth rejects requests without a valid access token.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				code = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(code, "Authentication failed").
				WithDetails(details).
				WithSeverity(dto.ErrorSeverityError)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxEmailKey, claims.Email)
		c.Set(ctxIsStaffKey, claims.IsStaff)

		c.Next()
	}
}

// GetPrincipal builds the caller's principal from what JWTAuth stored on
// the request context. Requests that skipped authentication yield the
// anonymous principal.
func GetPrincipal(c *gin.Context) appauth.Principal {
	userID, ok := c.Get(ctxUserIDKey)
	if !ok {
		return appauth.Anonymous()
	}

	id, ok := userID.(int64)
	if !ok {
		return appauth.Anonymous()
	}

	isStaff, _ := c.Get(ctxIsStaffKey)
	staff, _ := isStaff.(bool)

	return appauth.Principal{
		UserID:        id,
		IsStaff:       staff,
		Authenticated: true,
	}
}
