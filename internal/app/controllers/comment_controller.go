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

// CommentController handles comment CRUD and voting.
type CommentController struct {
	commentService services.CommentService
	logger         zerolog.Logger
}

func NewCommentController(commentService services.CommentService, logger zerolog.Logger) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger,
	}
}

// List returns the comments of a topic
// @Summary List comments on a topic
// @Description Requires membership in the group of the topic named by the required topic parameter
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param topic query int true "Topic ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CommentListResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing topic parameter"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /comments [get]
func (c *CommentController) List(ctx *gin.Context) {
	topicID, ok := parseRequiredQueryID(ctx, "topic")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	p := middleware.GetPrincipal(ctx)

	comments, err := c.commentService.List(ctx.Request.Context(), p, topicID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// Create posts a comment under a topic
// @Summary Create a comment
// @Description Requires membership in the topic's group
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCommentRequest true "Comment payload"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /comments [post]
func (c *CommentController) Create(ctx *gin.Context) {
	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	p := middleware.GetPrincipal(ctx)

	comment, err := c.commentService.Create(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// Get returns one comment with its score
// @Summary Get a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /comments/{commentId} [get]
func (c *CommentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "commentId")
	if !ok {
		return
	}

	p := middleware.GetPrincipal(ctx)

	comment, err := c.commentService.Get(ctx.Request.Context(), p, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comment))
}

// Update edits a comment's text
// @Summary Update a comment
// @Description Commenter or group owner only
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Param request body dto.UpdateCommentRequest true "New text"
// @Success 200 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /comments/{commentId} [patch]
func (c *CommentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "commentId")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	p := middleware.GetPrincipal(ctx)

	comment, err := c.commentService.Update(ctx.Request.Context(), p, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comment))
}

// Delete removes a comment
// @Summary Delete a comment
// @Description Commenter or group owner only
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /comments/{commentId} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "commentId")
	if !ok {
		return
	}

	p := middleware.GetPrincipal(ctx)

	if err := c.commentService.Delete(ctx.Request.Context(), p, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Detail: "Comment deleted"}))
}

// Vote casts a vote on a comment
// @Summary Vote on a comment
// @Description Records an upvote (activity=true) or downvote (activity=false)
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Param request body dto.VoteRequest true "Vote payload"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /comments/{commentId}/activities [post]
func (c *CommentController) Vote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "commentId")
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	p := middleware.GetPrincipal(ctx)

	comment, err := c.commentService.Vote(ctx.Request.Context(), p, id, *req.Activity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}
