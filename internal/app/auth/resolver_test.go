package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecampus/backend/internal/app/models"
	"github.com/ecampus/backend/internal/pkg/apperrors"
)

type fakeGroupStore struct {
	groups map[int64]*models.Group
}

func (s *fakeGroupStore) GetByID(_ context.Context, id int64) (*models.Group, error) {
	g, ok := s.groups[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("group not found")
	}
	return g, nil
}

type fakeMembershipStore struct {
	members map[int64][]int64
}

func (s *fakeMembershipStore) IsMember(_ context.Context, groupID, userID int64) (bool, error) {
	for _, id := range s.members[groupID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTopicStore struct {
	topics map[int64]*models.Topic
}

func (s *fakeTopicStore) GetByID(_ context.Context, id int64) (*models.Topic, error) {
	t, ok := s.topics[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("topic not found")
	}
	return t, nil
}

func newTestResolver() *Resolver {
	groups := &fakeGroupStore{groups: map[int64]*models.Group{
		10: {ID: 10, OwnerID: 1, Name: "algorithms"},
	}}
	members := &fakeMembershipStore{members: map[int64][]int64{
		10: {1, 2},
	}}
	topics := &fakeTopicStore{topics: map[int64]*models.Topic{
		100: {ID: 100, GroupID: 10, AuthorID: 2},
	}}
	return NewResolver(groups, members, topics)
}

func TestDecisionError(t *testing.T) {
	assert.NoError(t, DecisionError(DecisionAllow))
	assert.ErrorIs(t, DecisionError(DecisionNotFound), apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, DecisionError(DecisionForbidden), apperrors.ErrPermissionDenied)
}

func TestCheckTopicParent(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()

	t.Run("member is allowed and gets the group back", func(t *testing.T) {
		g, err := r.CheckTopicParent(ctx, member(2), ActionCreate, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), g.ID)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		_, err := r.CheckTopicParent(ctx, member(3), ActionList, 10)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown group is not found", func(t *testing.T) {
		_, err := r.CheckTopicParent(ctx, member(2), ActionList, 99)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("unknown group is not found for outsiders too", func(t *testing.T) {
		_, err := r.CheckTopicParent(ctx, member(3), ActionList, 99)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}

func TestCheckTopicObject(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()
	topic := &models.Topic{ID: 100, GroupID: 10, AuthorID: 2}

	t.Run("member may read", func(t *testing.T) {
		assert.NoError(t, r.CheckTopicObject(ctx, member(1), ActionRetrieve, topic))
	})

	t.Run("non-member may not read", func(t *testing.T) {
		err := r.CheckTopicObject(ctx, member(3), ActionRetrieve, topic)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("author may mutate", func(t *testing.T) {
		assert.NoError(t, r.CheckTopicObject(ctx, member(2), ActionDelete, topic))
	})

	t.Run("group owner may mutate", func(t *testing.T) {
		assert.NoError(t, r.CheckTopicObject(ctx, member(1), ActionUpdate, topic))
	})
}

func TestCheckCommentParent(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()

	t.Run("member of the topic's group is allowed", func(t *testing.T) {
		topic, err := r.CheckCommentParent(ctx, member(1), ActionCreate, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(100), topic.ID)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		_, err := r.CheckCommentParent(ctx, member(3), ActionList, 100)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown topic is not found", func(t *testing.T) {
		_, err := r.CheckCommentParent(ctx, member(1), ActionList, 999)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}

func TestCheckCommentObject(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()
	comment := &models.Comment{ID: 1000, TopicID: 100, UserID: 2}

	t.Run("member may read", func(t *testing.T) {
		assert.NoError(t, r.CheckCommentObject(ctx, member(1), ActionRetrieve, comment))
	})

	t.Run("commenter may mutate", func(t *testing.T) {
		assert.NoError(t, r.CheckCommentObject(ctx, member(2), ActionUpdate, comment))
	})

	t.Run("group owner may mutate", func(t *testing.T) {
		assert.NoError(t, r.CheckCommentObject(ctx, member(1), ActionDelete, comment))
	})

	t.Run("other member may not mutate", func(t *testing.T) {
		// 3 is not even a member, use a member who is neither commenter nor owner
		err := r.CheckCommentObject(ctx, member(3), ActionUpdate, comment)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}
