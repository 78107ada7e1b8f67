package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecampus/backend/internal/app/models/dto"
	"github.com/ecampus/backend/internal/app/services"
	"github.com/ecampus/backend/internal/middleware"
)

// UserController serves the authenticated user's profile.
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetProfile returns the caller's profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	p := middleware.GetPrincipal(ctx)

	profile, err := c.userService.GetProfile(ctx.Request.Context(), p.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfile applies a partial update to the caller's profile
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /users/me [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	p := middleware.GetPrincipal(ctx)

	profile, err := c.userService.UpdateProfile(ctx.Request.Context(), p.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfilePhoto replaces the caller's profile photo
// @Summary Upload profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Unsupported image format"
// @Router /users/me/photo [put]
func (c *UserController) UpdateProfilePhoto(ctx *gin.Context) {
	file, err := ctx.FormFile("photo")
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	p := middleware.GetPrincipal(ctx)

	profile, err := c.userService.UpdateProfilePhoto(ctx.Request.Context(), p.UserID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}
