package models

import "time"

// Group represents a community users join via an invite code. The owner is
// always a member; creation inserts both rows in one transaction.
type Group struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	OwnerID     int64     `json:"ownerId" db:"owner_id"`
	JoinCode    string    `json:"joinCode" db:"join_code"` // 8 chars, unique, immutable
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Owner   *User   `json:"owner,omitempty"`
	Members []*User `json:"members,omitempty"`
}

// GroupMember represents a user's membership in a group
type GroupMember struct {
	ID       int64     `json:"id" db:"id"`
	GroupID  int64     `json:"groupId" db:"group_id"`
	UserID   int64     `json:"userId" db:"user_id"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
