package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecampus/backend/internal/app/models"
	"github.com/ecampus/backend/internal/pkg/apperrors"
)

// GroupStore is the slice of the group repository the resolver needs.
type GroupStore interface {
	GetByID(ctx context.Context, id int64) (*models.Group, error)
}

// MembershipStore answers exact-match membership queries.
type MembershipStore interface {
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
}

// TopicStore is the slice of the topic repository the resolver needs.
type TopicStore interface {
	GetByID(ctx context.Context, id int64) (*models.Topic, error)
}

// Resolver loads the context a permission rule needs, exactly once per
// request, then evaluates the rule and maps the decision to an application
// error. Loaded parents are returned so callers never re-query them.
type Resolver struct {
	groups  GroupStore
	members MembershipStore
	topics  TopicStore
}

// NewResolver creates a Resolver over the given stores.
func NewResolver(groups GroupStore, members MembershipStore, topics TopicStore) *Resolver {
	return &Resolver{
		groups:  groups,
		members: members,
		topics:  topics,
	}
}

// DecisionError maps a deny decision onto the error taxonomy. Allow maps
// to nil.
func DecisionError(d Decision) error {
	switch d {
	case DecisionAllow:
		return nil
	case DecisionNotFound:
		return apperrors.ErrResourceNotFound
	default:
		return apperrors.ErrPermissionDenied
	}
}

// CheckGroup runs pre-check and, for object-level actions, the owner rule
// against an already loaded group.
func (r *Resolver) CheckGroup(p Principal, action Action, g *models.Group) error {
	if d := GroupPrecheck(p, action); d != DecisionAllow {
		return DecisionError(d)
	}

	if g == nil {
		return nil
	}

	return DecisionError(GroupObject(p, action, g))
}

// CheckTopicParent evaluates the topic pre-check for list/create against
// the group named in the request, returning the group when it was allowed
// to load.
func (r *Resolver) CheckTopicParent(ctx context.Context, p Principal, action Action, groupID int64) (*models.Group, error) {
	tc := TopicContext{}

	group, err := r.groups.GetByID(ctx, groupID)
	switch {
	case err == nil:
		tc.GroupFound = true
	case errors.Is(err, apperrors.ErrResourceNotFound):
		// leave GroupFound false; the rule turns this into NotFound
	default:
		return nil, fmt.Errorf("failed to load group %d: %w", groupID, err)
	}

	if tc.GroupFound && p.Authenticated {
		tc.IsMember, err = r.members.IsMember(ctx, groupID, p.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
	}

	if d := TopicPrecheck(p, action, tc); d != DecisionAllow {
		return nil, DecisionError(d)
	}

	return group, nil
}

// CheckTopicObject evaluates the object-level rule for a loaded topic.
func (r *Resolver) CheckTopicObject(ctx context.Context, p Principal, action Action, topic *models.Topic) error {
	group, err := r.groups.GetByID(ctx, topic.GroupID)
	if err != nil {
		return fmt.Errorf("failed to load group %d: %w", topic.GroupID, err)
	}

	oc := TopicObjectContext{
		AuthorID:     topic.AuthorID,
		GroupOwnerID: group.OwnerID,
	}

	if p.Authenticated {
		oc.IsMember, err = r.members.IsMember(ctx, topic.GroupID, p.UserID)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
	}

	return DecisionError(TopicObject(p, action, oc))
}

// CheckCommentParent evaluates the comment pre-check for list/create
// against the topic named in the request, returning the topic when it was
// allowed to load.
func (r *Resolver) CheckCommentParent(ctx context.Context, p Principal, action Action, topicID int64) (*models.Topic, error) {
	cc := CommentContext{}

	topic, err := r.topics.GetByID(ctx, topicID)
	switch {
	case err == nil:
		cc.TopicFound = true
	case errors.Is(err, apperrors.ErrResourceNotFound):
	default:
		return nil, fmt.Errorf("failed to load topic %d: %w", topicID, err)
	}

	if cc.TopicFound && p.Authenticated {
		cc.IsMember, err = r.members.IsMember(ctx, topic.GroupID, p.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
	}

	if d := CommentPrecheck(p, action, cc); d != DecisionAllow {
		return nil, DecisionError(d)
	}

	return topic, nil
}

// CheckCommentObject evaluates the object-level rule for a loaded comment.
func (r *Resolver) CheckCommentObject(ctx context.Context, p Principal, action Action, comment *models.Comment) error {
	topic, err := r.topics.GetByID(ctx, comment.TopicID)
	if err != nil {
		return fmt.Errorf("failed to load topic %d: %w", comment.TopicID, err)
	}

	group, err := r.groups.GetByID(ctx, topic.GroupID)
	if err != nil {
		return fmt.Errorf("failed to load group %d: %w", topic.GroupID, err)
	}

	oc := CommentObjectContext{
		CommenterID:  comment.UserID,
		GroupOwnerID: group.OwnerID,
	}

	if p.Authenticated {
		oc.IsMember, err = r.members.IsMember(ctx, topic.GroupID, p.UserID)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
	}

	return DecisionError(CommentObject(p, action, oc))
}
