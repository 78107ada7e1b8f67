package dto

import (
	"time"

	"github.com/ecampus/backend/internal/app/models"
)

// CreateGroupRequest is the payload for creating a group
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=255" example:"Algorithms Study Group"`
	Description string `json:"description" binding:"required" example:"Weekly problem sessions"`
}

// UpdateGroupRequest is the payload for updating a group. The join code is
// immutable and deliberately absent here.
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

// GroupResponse is the serialized form of a group. JoinCode is only
// populated when the requester owns the group.
type GroupResponse struct {
	ID          int64          `json:"id" example:"1"`
	Name        string         `json:"name" example:"Algorithms Study Group"`
	Description string         `json:"description" example:"Weekly problem sessions"`
	Owner       UserResponse   `json:"owner"`
	Members     []UserResponse `json:"members"`
	JoinCode    string         `json:"joinCode,omitempty" example:"a1B2c3D4"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// GroupListResponse is a paginated list of groups
type GroupListResponse struct {
	Groups         []GroupResponse `json:"groups"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// NewGroupResponse maps a group with its relations, hiding the join code
// from everyone but the owner.
func NewGroupResponse(g *models.Group, requesterID int64) GroupResponse {
	resp := GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Members:     NewUserResponses(g.Members),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}

	if g.Owner != nil {
		resp.Owner = NewUserResponse(g.Owner)
	}

	if g.OwnerID == requesterID {
		resp.JoinCode = g.JoinCode
	}

	return resp
}
