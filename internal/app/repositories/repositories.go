package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles all data access objects for dependency wiring
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	GroupRepository       *GroupRepository
	GroupMemberRepository *GroupMemberRepository
	TopicRepository       *TopicRepository
	CommentRepository     *CommentRepository
	ActivityRepository    *ActivityRepository
}

// NewRepositories creates the full repository set over one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		GroupRepository:       NewGroupRepository(db),
		GroupMemberRepository: NewGroupMemberRepository(db),
		TopicRepository:       NewTopicRepository(db),
		CommentRepository:     NewCommentRepository(db),
		ActivityRepository:    NewActivityRepository(db),
	}
}
