package dto

import (
	"time"

	"github.com/ecampus/backend/internal/app/models"
)

// CreateTopicRequest is the payload for creating a topic in a group
type CreateTopicRequest struct {
	Title       string `json:"title" binding:"required,max=255" example:"Homework 3 hints"`
	Description string `json:"description" binding:"required"`
	GroupID     int64  `json:"group" binding:"required" example:"1"`
}

// UpdateTopicRequest is the payload for updating a topic. The owning group
// cannot be changed after creation.
type UpdateTopicRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

// TopicResponse is the serialized form of a topic
type TopicResponse struct {
	ID          int64        `json:"id" example:"1"`
	Title       string       `json:"title" example:"Homework 3 hints"`
	Description string       `json:"description"`
	Author      UserResponse `json:"author"`
	GroupID     int64        `json:"group" example:"1"`
	Score       int64        `json:"score" example:"3"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TopicListResponse is a paginated list of topics
type TopicListResponse struct {
	Topics         []TopicResponse `json:"topics"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// NewTopicResponse maps a topic with its author and vote score
func NewTopicResponse(t *models.Topic, score int64) TopicResponse {
	resp := TopicResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		GroupID:     t.GroupID,
		Score:       score,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	if t.Author != nil {
		resp.Author = NewUserResponse(t.Author)
	}

	return resp
}
