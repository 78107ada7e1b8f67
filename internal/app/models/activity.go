package models

import "time"

// Activity flag values: true is an upvote, false is a downvote. A target's
// score is count(upvotes) minus count(downvotes). Nothing deduplicates votes
// per (user, target).

// TopicActivity represents a single vote cast on a topic
type TopicActivity struct {
	ID        int64     `json:"id" db:"id"`
	Activity  bool      `json:"activity" db:"activity"`
	TopicID   int64     `json:"topicId" db:"topic_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CommentActivity represents a single vote cast on a comment
type CommentActivity struct {
	ID        int64     `json:"id" db:"id"`
	Activity  bool      `json:"activity" db:"activity"`
	CommentID int64     `json:"commentId" db:"comment_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
