// Package auth contains the permission rules for groups, topics and
// comments. The rules are pure functions over a Principal, an Action and a
// context resolved up front, so they can be evaluated without any transport
// or storage dependency. Resolver loads the context and maps decisions back
// to application errors.
package auth

import "github.com/ecampus/backend/internal/app/models"

// Action is the operation being attempted on a resource.
type Action int

const (
	ActionList Action = iota
	ActionCreate
	ActionRetrieve
	ActionUpdate
	ActionDelete
)

// Safe reports whether the action is read-only.
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRetrieve
}

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionCreate:
		return "create"
	case ActionRetrieve:
		return "retrieve"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Principal is the identity making a request. The zero value is anonymous.
type Principal struct {
	UserID        int64
	IsStaff       bool
	Authenticated bool
}

// Anonymous returns the unauthenticated principal.
func Anonymous() Principal {
	return Principal{}
}

// Decision is the outcome of a permission check. Forbidden is deliberately
// uniform: callers never learn which rule failed. NotFound is reserved for
// parents that cannot be resolved, and for objects the principal may not
// know exist.
type Decision int

const (
	DecisionForbidden Decision = iota
	DecisionAllow
	DecisionNotFound
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionNotFound:
		return "not found"
	}
	return "forbidden"
}

func allowIf(ok bool) Decision {
	if ok {
		return DecisionAllow
	}
	return DecisionForbidden
}

// --- Group rules ---

// GroupPrecheck is the coarse check run before any group object is loaded.
// Safe actions need authentication; creating or mutating groups is gated on
// the staff flag.
func GroupPrecheck(p Principal, action Action) Decision {
	if action.Safe() {
		return allowIf(p.Authenticated)
	}
	return allowIf(p.Authenticated && p.IsStaff)
}

// GroupObject is the object-level check against a loaded group. Only the
// owner may update or delete it.
func GroupObject(p Principal, action Action, g *models.Group) Decision {
	if action.Safe() {
		return allowIf(p.Authenticated)
	}
	return allowIf(p.Authenticated && p.UserID == g.OwnerID)
}

// --- Topic rules ---

// TopicContext carries what the topic pre-check needs to know about the
// group named in the request.
type TopicContext struct {
	// GroupFound reports whether the referenced group exists.
	GroupFound bool
	// IsMember reports whether the principal belongs to that group.
	IsMember bool
}

// TopicPrecheck guards list and create, which both name a group. The
// membership-and-authentication predicate applies to safe and unsafe
// methods alike; the symmetry is intentional. Other actions defer entirely
// to the object-level check.
func TopicPrecheck(p Principal, action Action, ctx TopicContext) Decision {
	if action != ActionList && action != ActionCreate {
		return DecisionAllow
	}

	if !ctx.GroupFound {
		return DecisionNotFound
	}

	return allowIf(ctx.IsMember && p.Authenticated)
}

// TopicObjectContext carries the resolved relations of a loaded topic.
type TopicObjectContext struct {
	AuthorID     int64
	GroupOwnerID int64
	// IsMember reports whether the principal belongs to the topic's group.
	IsMember bool
}

// TopicObject is the object-level check for a loaded topic. Reading needs
// membership; writing needs authorship or group ownership.
func TopicObject(p Principal, action Action, ctx TopicObjectContext) Decision {
	if action.Safe() {
		return allowIf(p.Authenticated && ctx.IsMember)
	}
	return allowIf(p.Authenticated && (p.UserID == ctx.AuthorID || p.UserID == ctx.GroupOwnerID))
}

// --- Comment rules ---

// CommentContext carries what the comment pre-check needs to know about the
// topic named in the request.
type CommentContext struct {
	// TopicFound reports whether the referenced topic exists.
	TopicFound bool
	// IsMember reports whether the principal belongs to the topic's group.
	IsMember bool
}

// CommentPrecheck guards list and create, which both name a topic.
func CommentPrecheck(p Principal, action Action, ctx CommentContext) Decision {
	if action != ActionList && action != ActionCreate {
		return DecisionAllow
	}

	if !ctx.TopicFound {
		return DecisionNotFound
	}

	return allowIf(p.Authenticated && ctx.IsMember)
}

// CommentObjectContext carries the resolved relations of a loaded comment.
type CommentObjectContext struct {
	CommenterID  int64
	GroupOwnerID int64
	// IsMember reports whether the principal belongs to the comment's
	// topic's group.
	IsMember bool
}

// CommentObject is the object-level check for a loaded comment.
func CommentObject(p Principal, action Action, ctx CommentObjectContext) Decision {
	if action.Safe() {
		return allowIf(p.Authenticated && ctx.IsMember)
	}
	return allowIf(p.Authenticated && (p.UserID == ctx.CommenterID || p.UserID == ctx.GroupOwnerID))
}
