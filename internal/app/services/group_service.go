package services

import (
	"context"
	"fmt"

	"github.com/ecampus/backend/internal/app/auth"
	"github.com/ecampus/backend/internal/app/models"
	"github.com/ecampus/backend/internal/app/models/dto"
	"github.com/ecampus/backend/internal/pkg/helpers"
	"github.com/ecampus/backend/internal/pkg/joincode"
	"github.com/ecampus/backend/internal/pkg/logger"
)

// GroupService implements group CRUD plus joining by invite code. Listing
// is scoped to the requester's memberships; the join code is immutable and
// only ever serialized for the owner.
type GroupService interface {
	List(ctx context.Context, p auth.Principal, page, size int) (*dto.GroupListResponse, error)
	Create(ctx context.Context, p auth.Principal, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	Get(ctx context.Context, p auth.Principal, id int64) (*dto.GroupResponse, error)
	Update(ctx context.Context, p auth.Principal, id int64, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	Delete(ctx context.Context, p auth.Principal, id int64) error
	Join(ctx context.Context, p auth.Principal, code string) (*dto.GroupResponse, error)
}

type groupService struct {
	groups   GroupStore
	members  MemberStore
	users    UserStore
	resolver *auth.Resolver
}

func NewGroupService(groups GroupStore, members MemberStore, users UserStore, resolver *auth.Resolver) GroupService {
	return &groupService{
		groups:   groups,
		members:  members,
		users:    users,
		resolver: resolver,
	}
}

func (s *groupService) List(ctx context.Context, p auth.Principal, page, size int) (*dto.GroupListResponse, error) {
	if err := s.resolver.CheckGroup(p, auth.ActionList, nil); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	groups, total, err := s.groups.ListByMember(ctx, p.UserID, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		if err := s.hydrate(ctx, g); err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewGroupResponse(g, p.UserID))
	}

	return &dto.GroupListResponse{
		Groups:         responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

func (s *groupService) Create(ctx context.Context, p auth.Principal, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	if err := s.resolver.CheckGroup(p, auth.ActionCreate, nil); err != nil {
		return nil, err
	}

	code, err := joincode.Generate(ctx, s.groups.JoinCodeExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate join code: %w", err)
	}

	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     p.UserID,
		JoinCode:    code,
	}

	created, err := s.groups.CreateWithOwner(ctx, group)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("groupId", created.ID).Int64("ownerId", p.UserID).Msg("Group created")

	if err := s.hydrate(ctx, created); err != nil {
		return nil, err
	}

	resp := dto.NewGroupResponse(created, p.UserID)
	return &resp, nil
}

func (s *groupService) Get(ctx context.Context, p auth.Principal, id int64) (*dto.GroupResponse, error) {
	if err := s.resolver.CheckGroup(p, auth.ActionRetrieve, nil); err != nil {
		return nil, err
	}

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.CheckGroup(p, auth.ActionRetrieve, group); err != nil {
		return nil, err
	}

	if err := s.hydrate(ctx, group); err != nil {
		return nil, err
	}

	resp := dto.NewGroupResponse(group, p.UserID)
	return &resp, nil
}

func (s *groupService) Update(ctx context.Context, p auth.Principal, id int64, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	if err := s.resolver.CheckGroup(p, auth.ActionUpdate, nil); err != nil {
		return nil, err
	}

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.CheckGroup(p, auth.ActionUpdate, group); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if len(fields) > 0 {
		group, err = s.groups.Update(ctx, id, fields)
		if err != nil {
			return nil, err
		}
	}

	if err := s.hydrate(ctx, group); err != nil {
		return nil, err
	}

	resp := dto.NewGroupResponse(group, p.UserID)
	return &resp, nil
}

func (s *groupService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	if err := s.resolver.CheckGroup(p, auth.ActionDelete, nil); err != nil {
		return err
	}

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.resolver.CheckGroup(p, auth.ActionDelete, group); err != nil {
		return err
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("groupId", id).Int64("userId", p.UserID).Msg("Group deleted")
	return nil
}

// Join adds the requester to the group identified by an invite code.
// Joining a group the user already belongs to is a no-op.
func (s *groupService) Join(ctx context.Context, p auth.Principal, code string) (*dto.GroupResponse, error) {
	if err := s.resolver.CheckGroup(p, auth.ActionList, nil); err != nil {
		return nil, err
	}

	group, err := s.groups.GetByJoinCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.members.Add(ctx, group.ID, p.UserID); err != nil {
		return nil, err
	}

	logger.Info().Int64("groupId", group.ID).Int64("userId", p.UserID).Msg("User joined group")

	if err := s.hydrate(ctx, group); err != nil {
		return nil, err
	}

	resp := dto.NewGroupResponse(group, p.UserID)
	return &resp, nil
}

// hydrate fills the owner and member relations used by the serializer.
func (s *groupService) hydrate(ctx context.Context, g *models.Group) error {
	owner, err := s.users.GetByID(ctx, g.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to load group owner: %w", err)
	}
	g.Owner = owner

	members, err := s.members.GetMembers(ctx, g.ID)
	if err != nil {
		return fmt.Errorf("failed to load group members: %w", err)
	}
	g.Members = members
	return nil
}
