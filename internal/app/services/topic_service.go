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

// TopicService implements topic CRUD and voting. Every operation is gated
// by membership in the topic's group.
type TopicService interface {
	List(ctx context.Context, p auth.Principal, groupID int64, page, size int) (*dto.TopicListResponse, error)
	Create(ctx context.Context, p auth.Principal, req *dto.CreateTopicRequest) (*dto.TopicResponse, error)
	Get(ctx context.Context, p auth.Principal, id int64) (*dto.TopicResponse, error)
	Update(ctx context.Context, p auth.Principal, id int64, req *dto.UpdateTopicRequest) (*dto.TopicResponse, error)
	Delete(ctx context.Context, p auth.Principal, id int64) error
	Vote(ctx context.Context, p auth.Principal, id int64, upvote bool) (*dto.TopicResponse, error)
}

type topicService struct {
	topics     TopicStore
	activities ActivityStore
	users      UserStore
	resolver   *auth.Resolver
}

func NewTopicService(topics TopicStore, activities ActivityStore, users UserStore, resolver *auth.Resolver) TopicService {
	return &topicService{
		topics:     topics,
		activities: activities,
		users:      users,
		resolver:   resolver,
	}
}

func (s *topicService) List(ctx context.Context, p auth.Principal, groupID int64, page, size int) (*dto.TopicListResponse, error) {
	if _, err := s.resolver.CheckTopicParent(ctx, p, auth.ActionList, groupID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	topics, total, err := s.topics.ListByGroup(ctx, groupID, offset, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}
	scores, err := s.activities.TopicScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	authors := map[int64]*models.User{}
	responses := make([]dto.TopicResponse, 0, len(topics))
	for _, t := range topics {
		if err := s.loadAuthor(ctx, t, authors); err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewTopicResponse(t, scores[t.ID]))
	}

	return &dto.TopicListResponse{
		Topics:         responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

func (s *topicService) Create(ctx context.Context, p auth.Principal, req *dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	if _, err := s.resolver.CheckTopicParent(ctx, p, auth.ActionCreate, req.GroupID); err != nil {
		return nil, err
	}

	topic := &models.Topic{
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    p.UserID,
		GroupID:     req.GroupID,
	}

	created, err := s.topics.Create(ctx, topic)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("topicId", created.ID).Int64("groupId", req.GroupID).Msg("Topic created")

	return s.respond(ctx, created)
}

func (s *topicService) Get(ctx context.Context, p auth.Principal, id int64) (*dto.TopicResponse, error) {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.CheckTopicObject(ctx, p, auth.ActionRetrieve, topic); err != nil {
		return nil, err
	}

	return s.respond(ctx, topic)
}

func (s *topicService) Update(ctx context.Context, p auth.Principal, id int64, req *dto.UpdateTopicRequest) (*dto.TopicResponse, error) {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.CheckTopicObject(ctx, p, auth.ActionUpdate, topic); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if len(fields) > 0 {
		topic, err = s.topics.Update(ctx, id, fields)
		if err != nil {
			return nil, err
		}
	}

	return s.respond(ctx, topic)
}

func (s *topicService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.resolver.CheckTopicObject(ctx, p, auth.ActionDelete, topic); err != nil {
		return err
	}

	if err := s.topics.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("topicId", id).Int64("userId", p.UserID).Msg("Topic deleted")
	return nil
}

// Vote records an up or down vote on a topic. Visibility is the only gate:
// any member who can read the topic may vote, and repeat votes accumulate.
func (s *topicService) Vote(ctx context.Context, p auth.Principal, id int64, upvote bool) (*dto.TopicResponse, error) {
	topic, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.CheckTopicObject(ctx, p, auth.ActionRetrieve, topic); err != nil {
		return nil, err
	}

	activity := &models.TopicActivity{
		TopicID:  id,
		UserID:   p.UserID,
		Activity: upvote,
	}
	if err := s.activities.CreateTopicActivity(ctx, activity); err != nil {
		return nil, err
	}

	return s.respond(ctx, topic)
}

func (s *topicService) respond(ctx context.Context, topic *models.Topic) (*dto.TopicResponse, error) {
	if err := s.loadAuthor(ctx, topic, nil); err != nil {
		return nil, err
	}

	score, err := s.activities.TopicScore(ctx, topic.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewTopicResponse(topic, score)
	return &resp, nil
}

func (s *topicService) loadAuthor(ctx context.Context, topic *models.Topic, cache map[int64]*models.User) error {
	if cache != nil {
		if u, ok := cache[topic.AuthorID]; ok {
			topic.Author = u
			return nil
		}
	}

	author, err := s.users.GetByID(ctx, topic.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to load topic author: %w", err)
	}
	topic.Author = author
	if cache != nil {
		cache[topic.AuthorID] = author
	}
	return nil
}
