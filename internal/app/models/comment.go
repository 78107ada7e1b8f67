package models

import "time"

// Comment represents a reply posted under a topic
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	UserID    int64     `json:"userId" db:"user_id"`
	TopicID   int64     `json:"topicId" db:"topic_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	User  *User  `json:"user,omitempty"`
	Topic *Topic `json:"topic,omitempty"`
}
