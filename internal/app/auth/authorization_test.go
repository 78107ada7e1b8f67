package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecampus/backend/internal/app/models"
)

func member(id int64) Principal {
	return Principal{UserID: id, Authenticated: true}
}

func staff(id int64) Principal {
	return Principal{UserID: id, IsStaff: true, Authenticated: true}
}

func TestGroupPrecheck(t *testing.T) {
	tests := []struct {
		name   string
		p      Principal
		action Action
		want   Decision
	}{
		{"anonymous cannot list", Anonymous(), ActionList, DecisionForbidden},
		{"anonymous cannot retrieve", Anonymous(), ActionRetrieve, DecisionForbidden},
		{"authenticated can list", member(1), ActionList, DecisionAllow},
		{"authenticated can retrieve", member(1), ActionRetrieve, DecisionAllow},
		{"non-staff cannot create", member(1), ActionCreate, DecisionForbidden},
		{"staff can create", staff(1), ActionCreate, DecisionAllow},
		{"non-staff cannot update", member(1), ActionUpdate, DecisionForbidden},
		{"non-staff cannot delete", member(1), ActionDelete, DecisionForbidden},
		{"staff passes delete precheck", staff(1), ActionDelete, DecisionAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupPrecheck(tt.p, tt.action))
		})
	}
}

func TestGroupObject(t *testing.T) {
	g := &models.Group{ID: 10, OwnerID: 1}

	tests := []struct {
		name   string
		p      Principal
		action Action
		want   Decision
	}{
		{"any authenticated user may read", member(2), ActionRetrieve, DecisionAllow},
		{"owner may update", staff(1), ActionUpdate, DecisionAllow},
		{"owner may delete", staff(1), ActionDelete, DecisionAllow},
		{"other staff may not update", staff(2), ActionUpdate, DecisionForbidden},
		{"other staff may not delete", staff(2), ActionDelete, DecisionForbidden},
		{"anonymous may not read", Anonymous(), ActionRetrieve, DecisionForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupObject(tt.p, tt.action, g))
		})
	}
}

func TestTopicPrecheck(t *testing.T) {
	found := TopicContext{GroupFound: true, IsMember: true}
	outsider := TopicContext{GroupFound: true, IsMember: false}
	missing := TopicContext{GroupFound: false}

	tests := []struct {
		name   string
		p      Principal
		action Action
		ctx    TopicContext
		want   Decision
	}{
		{"member may list", member(1), ActionList, found, DecisionAllow},
		{"member may create", member(1), ActionCreate, found, DecisionAllow},
		{"non-member may not list", member(1), ActionList, outsider, DecisionForbidden},
		{"non-member may not create", member(1), ActionCreate, outsider, DecisionForbidden},
		{"missing group maps to not found on list", member(1), ActionList, missing, DecisionNotFound},
		{"missing group maps to not found on create", member(1), ActionCreate, missing, DecisionNotFound},
		{"missing group maps to not found even for anonymous", Anonymous(), ActionList, missing, DecisionNotFound},
		{"object actions defer to the object rule", Anonymous(), ActionDelete, missing, DecisionAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopicPrecheck(tt.p, tt.action, tt.ctx))
		})
	}
}

// Listing and creating share one predicate: whoever can read a group's
// topics can also post into it, and vice versa.
func TestTopicPrecheckReadWriteSymmetry(t *testing.T) {
	contexts := []TopicContext{
		{GroupFound: true, IsMember: true},
		{GroupFound: true, IsMember: false},
		{GroupFound: false},
	}
	principals := []Principal{Anonymous(), member(1), staff(2)}

	for _, ctx := range contexts {
		for _, p := range principals {
			assert.Equal(t,
				TopicPrecheck(p, ActionList, ctx),
				TopicPrecheck(p, ActionCreate, ctx),
			)
		}
	}
}

func TestTopicObject(t *testing.T) {
	// topic authored by 2 in a group owned by 1
	ctx := func(isMember bool) TopicObjectContext {
		return TopicObjectContext{AuthorID: 2, GroupOwnerID: 1, IsMember: isMember}
	}

	tests := []struct {
		name   string
		p      Principal
		action Action
		ctx    TopicObjectContext
		want   Decision
	}{
		{"member may read", member(3), ActionRetrieve, ctx(true), DecisionAllow},
		{"non-member may not read", member(3), ActionRetrieve, ctx(false), DecisionForbidden},
		{"author may update", member(2), ActionUpdate, ctx(true), DecisionAllow},
		{"author may delete", member(2), ActionDelete, ctx(true), DecisionAllow},
		{"group owner may update", staff(1), ActionUpdate, ctx(true), DecisionAllow},
		{"group owner may delete", staff(1), ActionDelete, ctx(true), DecisionAllow},
		{"other member may not update", member(3), ActionUpdate, ctx(true), DecisionForbidden},
		{"other member may not delete", member(3), ActionDelete, ctx(true), DecisionForbidden},
		{"anonymous may not read", Anonymous(), ActionRetrieve, ctx(false), DecisionForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopicObject(tt.p, tt.action, tt.ctx))
		})
	}
}

func TestCommentPrecheck(t *testing.T) {
	found := CommentContext{TopicFound: true, IsMember: true}
	outsider := CommentContext{TopicFound: true, IsMember: false}
	missing := CommentContext{TopicFound: false}

	tests := []struct {
		name   string
		p      Principal
		action Action
		ctx    CommentContext
		want   Decision
	}{
		{"member may list", member(1), ActionList, found, DecisionAllow},
		{"member may create", member(1), ActionCreate, found, DecisionAllow},
		{"non-member may not list", member(1), ActionList, outsider, DecisionForbidden},
		{"missing topic maps to not found", member(1), ActionCreate, missing, DecisionNotFound},
		{"object actions defer to the object rule", Anonymous(), ActionUpdate, missing, DecisionAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommentPrecheck(tt.p, tt.action, tt.ctx))
		})
	}
}

func TestCommentObject(t *testing.T) {
	// comment written by 2 in a group owned by 1
	ctx := func(isMember bool) CommentObjectContext {
		return CommentObjectContext{CommenterID: 2, GroupOwnerID: 1, IsMember: isMember}
	}

	tests := []struct {
		name   string
		p      Principal
		action Action
		ctx    CommentObjectContext
		want   Decision
	}{
		{"member may read", member(3), ActionRetrieve, ctx(true), DecisionAllow},
		{"non-member may not read", member(3), ActionRetrieve, ctx(false), DecisionForbidden},
		{"commenter may update", member(2), ActionUpdate, ctx(true), DecisionAllow},
		{"commenter may delete", member(2), ActionDelete, ctx(true), DecisionAllow},
		{"group owner may delete", staff(1), ActionDelete, ctx(true), DecisionAllow},
		{"other member may not update", member(3), ActionUpdate, ctx(true), DecisionForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommentObject(tt.p, tt.action, tt.ctx))
		})
	}
}
