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

// TopicController handles topic CRUD and voting.
type TopicController struct {
	topicService services.TopicService
	logger       zerolog.Logger
}

func NewTopicController(topicService services.TopicService, logger zerolog.Logger) *TopicController {
	return &TopicController{
		topicService: topicService,
		logger:       logger,
	}
}

// List returns the topics of a group
// @Summary List topics in a group
// @Description Requires membership in the group named by the required group parameter
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param group query int true "Group ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.TopicListResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing group parameter"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /topics [get]
func (c *TopicController) List(ctx *gin.Context) {
	groupID, ok := parseRequiredQueryID(ctx, "group")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	p := middleware.GetPrincipal(ctx)

	topics, err := c.topicService.List(ctx.Request.Context(), p, groupID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(topics))
}

// Create opens a topic in a group
// @Summary Create a topic
// @Description Requires membership in the target group
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTopicRequest true "Topic payload"
// @Success 201 {object} dto.APIResponse{data=dto.TopicResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /topics [post]
func (c *TopicController) Create(ctx *gin.Context) {
	var req dto.CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	p := middleware.GetPrincipal(ctx)

	topic, err := c.topicService.Create(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(topic))
}

// Get returns one topic with its score
// @Summary Get a topic
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Success 200 {object} dto.APIResponse{data=dto.TopicResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /topics/{topicId} [get]
func (c *TopicController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "topicId")
	if !ok {
		return
	}

	p := middleware.GetPrincipal(ctx)

	topic, err := c.topicService.Get(ctx.Request.Context(), p, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(topic))
}

// Update edits a topic
// @Summary Update a topic
// @Description Author or group owner only. The owning group cannot change.
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Param request body dto.UpdateTopicRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.TopicResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /topics/{topicId} [patch]
func (c *TopicController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "topicId")
	if !ok {
		return
	}

	var req dto.UpdateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	p := middleware.GetPrincipal(ctx)

	topic, err := c.topicService.Update(ctx.Request.Context(), p, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(topic))
}

// Delete removes a topic
// @Summary Delete a topic
// @Description Author or group owner only
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /topics/{topicId} [delete]
func (c *TopicController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "topicId")
	if !ok {
		return
	}

	p := middleware.GetPrincipal(ctx)

	if err := c.topicService.Delete(ctx.Request.Context(), p, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Detail: "Topic deleted"}))
}

// Vote casts a vote on a topic
// @Summary Vote on a topic
// @Description Records an upvote (activity=true) or downvote (activity=false)
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param topicId path int true "Topic ID"
// @Param request body dto.VoteRequest true "Vote payload"
// @Success 201 {object} dto.APIResponse{data=dto.TopicResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /topics/{topicId}/activities [post]
func (c *TopicController) Vote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "topicId")
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	p := middleware.GetPrincipal(ctx)

	topic, err := c.topicService.Vote(ctx.Request.Context(), p, id, *req.Activity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(topic))
}
