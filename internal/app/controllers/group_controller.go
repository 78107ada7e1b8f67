package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecampus/backend/internal/app/models/dto"
	"github.com/ecampus/backend/internal/app/services"
	"github.com/ecampus/backend/internal/middleware"
	"github.com/ecampus/backend/internal/pkg/helpers"
)

// GroupController handles group CRUD and joining by invite code.
type GroupController struct {
	groupService services.GroupService
	logger       zerolog.Logger
}

func NewGroupController(groupService services.GroupService, logger zerolog.Logger) *GroupController {
	return &GroupController{
		groupService: groupService,
		logger:       logger,
	}
}

// List returns the groups the caller belongs to
// @Summary List own groups
// @Description Returns only groups the caller is a member of
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.GroupListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /groups [get]
func (c *GroupController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	p := middleware.GetPrincipal(ctx)

	groups, err := c.groupService.List(ctx.Request.Context(), p, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(groups))
}

// Create creates a group owned by the caller
// @Summary Create a group
// @Description Creates a group, generates its join code and enrolls the owner. Staff only.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGroupRequest true "Group payload"
// @Success 201 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Join code already taken"
// @Router /groups [post]
func (c *GroupController) Create(ctx *gin.Context) {
	var req dto.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	p := middleware.GetPrincipal(ctx)

	group, err := c.groupService.Create(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(group))
}

// Join adds the caller to a group by invite code
// @Summary Join a group
// @Description Joins the group matching the invite code. Re-joining is a no-op.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param join_code query string true "Invite code"
// @Success 200 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 404 {object} dto.ErrorResponse "Unknown invite code"
// @Router /groups/join [get]
func (c *GroupController) Join(ctx *gin.Context) {
	code := ctx.Query("join_code")
	if code == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing query parameter").
			WithField("join_code").
			WithDetails("query parameter is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	p := middleware.GetPrincipal(ctx)

	group, err := c.groupService.Join(ctx.Request.Context(), p, code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(group))
}

// Get returns one group
// @Summary Get a group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /groups/{groupId} [get]
func (c *GroupController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	p := middleware.GetPrincipal(ctx)

	group, err := c.groupService.Get(ctx.Request.Context(), p, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(group))
}

// Update modifies a group's name or description
// @Summary Update a group
// @Description Owner only. The join code cannot be changed.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupId path int true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /groups/{groupId} [patch]
func (c *GroupController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	p := middleware.GetPrincipal(ctx)

	group, err := c.groupService.Update(ctx.Request.Context(), p, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(group))
}

// Delete removes a group and everything beneath it
// @Summary Delete a group
// @Description Owner only. Topics, comments and votes beneath the group are removed with it.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param groupId path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /groups/{groupId} [delete]
func (c *GroupController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	p := middleware.GetPrincipal(ctx)

	if err := c.groupService.Delete(ctx.Request.Context(), p, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Detail: "Group deleted"}))
}
