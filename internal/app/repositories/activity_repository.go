package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecampus/backend/internal/app/models"
)

// ActivityRepository handles database operations for topic and comment
// votes. There is intentionally no uniqueness per (user, target): the same
// user may vote any number of times, matching the original behavior.
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// CreateTopicActivity records a vote on a topic
func (r *ActivityRepository) CreateTopicActivity(ctx context.Context, a *models.TopicActivity) error {
	sql, args, err := squirrel.Insert("topic_activities").
		Columns("activity", "topic_id", "user_id").
		Values(a.Activity, a.TopicID, a.UserID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// CreateCommentActivity records a vote on a comment
func (r *ActivityRepository) CreateCommentActivity(ctx context.Context, a *models.CommentActivity) error {
	sql, args, err := squirrel.Insert("comment_activities").
		Columns("activity", "comment_id", "user_id").
		Values(a.Activity, a.CommentID, a.UserID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// TopicScore computes upvotes minus downvotes for one topic
func (r *ActivityRepository) TopicScore(ctx context.Context, topicID int64) (int64, error) {
	return r.score(ctx, "topic_activities", "topic_id", topicID)
}

// CommentScore computes upvotes minus downvotes for one comment
func (r *ActivityRepository) CommentScore(ctx context.Context, commentID int64) (int64, error) {
	return r.score(ctx, "comment_activities", "comment_id", commentID)
}

func (r *ActivityRepository) score(ctx context.Context, table, column string, id int64) (int64, error) {
	sql, args, err := squirrel.Select("COALESCE(SUM(CASE WHEN activity THEN 1 ELSE -1 END), 0)").
		From(table).
		Where(squirrel.Eq{column: id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var score int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&score); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return score, nil
}

// TopicScores computes scores for several topics at once
func (r *ActivityRepository) TopicScores(ctx context.Context, topicIDs []int64) (map[int64]int64, error) {
	return r.scores(ctx, "topic_activities", "topic_id", topicIDs)
}

// CommentScores computes scores for several comments at once
func (r *ActivityRepository) CommentScores(ctx context.Context, commentIDs []int64) (map[int64]int64, error) {
	return r.scores(ctx, "comment_activities", "comment_id", commentIDs)
}

func (r *ActivityRepository) scores(ctx context.Context, table, column string, ids []int64) (map[int64]int64, error) {
	scores := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return scores, nil
	}

	sql, args, err := squirrel.Select(column, "SUM(CASE WHEN activity THEN 1 ELSE -1 END)").
		From(table).
		Where(squirrel.Eq{column: ids}).
		GroupBy(column).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, score int64
		if err := rows.Scan(&id, &score); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		scores[id] = score
	}

	return scores, rows.Err()
}
