package models

import "time"

// Topic represents a discussion thread inside a group. The author is a
// member at creation time but is not required to remain one.
type Topic struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	AuthorID    int64     `json:"authorId" db:"author_id"`
	GroupID     int64     `json:"groupId" db:"group_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author *User  `json:"author,omitempty"`
	Group  *Group `json:"group,omitempty"`
}
