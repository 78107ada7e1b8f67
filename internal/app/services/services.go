package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/ecampus/backend/internal/app/auth"
	"github.com/ecampus/backend/internal/app/models"
	"github.com/ecampus/backend/internal/app/repositories"
	authpkg "github.com/ecampus/backend/internal/pkg/auth"
)

// Store interfaces are declared here, on the consumer side, so services can
// be tested against in-memory fakes. The concrete repositories satisfy them.

type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, value string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.User, error)
}

type TokenStore interface {
	Store(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	Get(ctx context.Context, token string) (*repositories.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}

type GroupStore interface {
	JoinCodeExists(ctx context.Context, code string) (bool, error)
	CreateWithOwner(ctx context.Context, group *models.Group) (*models.Group, error)
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	GetByJoinCode(ctx context.Context, code string) (*models.Group, error)
	ListByMember(ctx context.Context, userID int64, offset uint64, limit int) ([]*models.Group, int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Group, error)
	Delete(ctx context.Context, id int64) error
}

type MemberStore interface {
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	Add(ctx context.Context, groupID, userID int64) error
	GetMembers(ctx context.Context, groupID int64) ([]*models.User, error)
}

type TopicStore interface {
	Create(ctx context.Context, topic *models.Topic) (*models.Topic, error)
	GetByID(ctx context.Context, id int64) (*models.Topic, error)
	ListByGroup(ctx context.Context, groupID int64, offset uint64, limit int) ([]*models.Topic, int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Topic, error)
	Delete(ctx context.Context, id int64) error
}

type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByTopic(ctx context.Context, topicID int64, offset uint64, limit int) ([]*models.Comment, int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type ActivityStore interface {
	CreateTopicActivity(ctx context.Context, a *models.TopicActivity) error
	CreateCommentActivity(ctx context.Context, a *models.CommentActivity) error
	TopicScore(ctx context.Context, topicID int64) (int64, error)
	CommentScore(ctx context.Context, commentID int64) (int64, error)
	TopicScores(ctx context.Context, topicIDs []int64) (map[int64]int64, error)
	CommentScores(ctx context.Context, commentIDs []int64) (map[int64]int64, error)
}

// FileStorage abstracts where uploaded profile photos live.
type FileStorage interface {
	SaveImage(file *multipart.FileHeader) (string, error)
	Delete(url string) error
}

// Services bundles every application service for dependency injection.
type Services struct {
	Auth    AuthService
	User    UserService
	Group   GroupService
	Topic   TopicService
	Comment CommentService
}

// NewServices wires the services over the concrete repositories.
func NewServices(repos *repositories.Repositories, jwtService *authpkg.JWTService, storage FileStorage) *Services {
	resolver := auth.NewResolver(repos.GroupRepository, repos.GroupMemberRepository, repos.TopicRepository)

	return &Services{
		Auth:    NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		User:    NewUserService(repos.UserRepository, storage),
		Group:   NewGroupService(repos.GroupRepository, repos.GroupMemberRepository, repos.UserRepository, resolver),
		Topic:   NewTopicService(repos.TopicRepository, repos.ActivityRepository, repos.UserRepository, resolver),
		Comment: NewCommentService(repos.CommentRepository, repos.ActivityRepository, repos.UserRepository, resolver),
	}
}
