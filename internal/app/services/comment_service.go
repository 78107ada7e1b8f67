package services

import (
	"context"
	"fmt"

	"github.com/ecampus/backend/internal/app/auth"
	"github.com/ecampus/backend/internal/app/models"
	"github.com/ecampus/backend/internal/app/models/dto"
	"github.com/ecampus/backend/internal/pkg/helpers"
	"github.com/ecampus/backend/internal/pkg/logger"
)

// CommentService implements comment CRUD and voting under a topic.
type CommentService interface {
	List(ctx context.Context, p auth.Principal, topicID int64, page, size int) (*dto.CommentListResponse, error)
	Create(ctx context.Context, p auth.Principal, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Get(ctx context.Context, p auth.Principal, id int64) (*dto.CommentResponse, error)
	Update(ctx context.Context, p auth.Principal, id int64, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, p auth.Principal, id int64) error
	Vote(ctx context.Context, p auth.Principal, id int64, upvote bool) (*dto.CommentResponse, error)
}

type commentService struct {
	comments   CommentStore
	activities ActivityStore
	users      UserStore
	resolver   *auth.Resolver
}

func NewCommentService(comments CommentStore, activities ActivityStore, users UserStore, resolver *auth.Resolver) CommentService {
	return &commentService{
		comments:   comments,
		activities: activities,
		users:      users,
		resolver:   resolver,
	}
}

func (s *commentService) List(ctx context.Context, p auth.Principal, topicID int64, page, size int) (*dto.CommentListResponse, error) {
	if _, err := s.resolver.CheckCommentParent(ctx, p, auth.ActionList, topicID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	comments, total, err := s.comments.ListByTopic(ctx, topicID, offset, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	scores, err := s.activities.CommentScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	commenters := map[int64]*models.User{}
	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		if err := s.loadUser(ctx, c, commenters); err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewCommentResponse(c, scores[c.ID]))
	}

	return &dto.CommentListResponse{
		Comments:       responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

func (s *commentService) Create(ctx context.Context, p auth.Principal, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.resolver.CheckCommentParent(ctx, p, auth.ActionCreate, req.TopicID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:    req.Text,
		UserID:  p.UserID,
		TopicID: req.TopicID,
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("commentId", created.ID).Int64("topicId", req.TopicID).Msg("Comment created")

	return s.respond(ctx, created)
}

func (s *commentService) Get(ctx context.Context, p auth.Principal, id int64) (*dto.CommentResponse, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.CheckCommentObject(ctx, p, auth.ActionRetrieve, comment); err != nil {
		return nil, err
	}

	return s.respond(ctx, comment)
}

func (s *commentService) Update(ctx context.Context, p auth.Principal, id int64, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.CheckCommentObject(ctx, p, auth.ActionUpdate, comment); err != nil {
		return nil, err
	}

	comment, err = s.comments.Update(ctx, id, map[string]interface{}{"text": req.Text})
	if err != nil {
		return nil, err
	}

	return s.respond(ctx, comment)
}

func (s *commentService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.resolver.CheckCommentObject(ctx, p, auth.ActionDelete, comment); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("commentId", id).Int64("userId", p.UserID).Msg("Comment deleted")
	return nil
}

// Vote records an up or down vote on a comment. Anyone who can read the
// comment may vote, and repeat votes accumulate.
func (s *commentService) Vote(ctx context.Context, p auth.Principal, id int64, upvote bool) (*dto.CommentResponse, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.CheckCommentObject(ctx, p, auth.ActionRetrieve, comment); err != nil {
		return nil, err
	}

	activity := &models.CommentActivity{
		CommentID: id,
		UserID:    p.UserID,
		Activity:  upvote,
	}
	if err := s.activities.CreateCommentActivity(ctx, activity); err != nil {
		return nil, err
	}

	return s.respond(ctx, comment)
}

func (s *commentService) respond(ctx context.Context, comment *models.Comment) (*dto.CommentResponse, error) {
	if err := s.loadUser(ctx, comment, nil); err != nil {
		return nil, err
	}

	score, err := s.activities.CommentScore(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewCommentResponse(comment, score)
	return &resp, nil
}

func (s *commentService) loadUser(ctx context.Context, comment *models.Comment, cache map[int64]*models.User) error {
	if cache != nil {
		if u, ok := cache[comment.UserID]; ok {
			comment.User = u
			return nil
		}
	}

	user, err := s.users.GetByID(ctx, comment.UserID)
	if err != nil {
		return fmt.Errorf("failed to load comment author: %w", err)
	}
	comment.User = user
	if cache != nil {
		cache[comment.UserID] = user
	}
	return nil
}
