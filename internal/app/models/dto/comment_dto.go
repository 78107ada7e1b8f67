package dto

import (
	"time"

	"github.com/ecampus/backend/internal/app/models"
)

// CreateCommentRequest is the payload for commenting on a topic
type CreateCommentRequest struct {
	Text    string `json:"text" binding:"required"`
	TopicID int64  `json:"topic" binding:"required" example:"1"`
}

// UpdateCommentRequest is the payload for editing a comment
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse is the serialized form of a comment
type CommentResponse struct {
	ID        int64        `json:"id" example:"1"`
	Text      string       `json:"text"`
	User      UserResponse `json:"user"`
	TopicID   int64        `json:"topic" example:"1"`
	Score     int64        `json:"score" example:"-1"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// CommentListResponse is a paginated list of comments
type CommentListResponse struct {
	Comments       []CommentResponse `json:"comments"`
	PaginationInfo PaginationInfo    `json:"pagination"`
}

// VoteRequest casts an upvote (true) or downvote (false)
type VoteRequest struct {
	Activity *bool `json:"activity" binding:"required" example:"true"`
}

// NewCommentResponse maps a comment with its author and vote score
func NewCommentResponse(c *models.Comment, score int64) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		TopicID:   c.TopicID,
		Score:     score,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if c.User != nil {
		resp.User = NewUserResponse(c.User)
	}

	return resp
}
