package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecampus/backend/internal/app/models"
	"github.com/ecampus/backend/internal/pkg/apperrors"
)

const topicColumns = "id, title, description, author_id, group_id, created_at, updated_at"

// TopicRepository handles database operations for topics
type TopicRepository struct {
	db *pgxpool.Pool
}

// NewTopicRepository creates a new TopicRepository
func NewTopicRepository(db *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{db: db}
}

func scanTopic(row pgx.Row) (*models.Topic, error) {
	var t models.Topic
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.AuthorID,
		&t.GroupID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("topic not found")
		}
		return nil, fmt.Errorf("error scanning topic row: %w", err)
	}
	return &t, nil
}

// Create inserts a new topic
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	sql, args, err := squirrel.Insert("topics").
		Columns("title", "description", "author_id", "group_id").
		Values(topic.Title, topic.Description, topic.AuthorID, topic.GroupID).
		Suffix("RETURNING " + topicColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanTopic(r.db.QueryRow(ctx, sql, args...))
}

// GetByID retrieves a topic by ID
func (r *TopicRepository) GetByID(ctx context.Context, id int64) (*models.Topic, error) {
	sql, args, err := squirrel.Select(topicColumns).
		From("topics").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanTopic(r.db.QueryRow(ctx, sql, args...))
}

// ListByGroup retrieves the topics of one group, most recently updated
// first
func (r *TopicRepository) ListByGroup(ctx context.Context, groupID int64, offset uint64, limit int) ([]*models.Topic, int64, error) {
	query := squirrel.Select(
		"id", "title", "description", "author_id", "group_id",
		"created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("topics").
		Where("group_id = ?", groupID).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var topics []*models.Topic
	var total int64
	for rows.Next() {
		var t models.Topic
		err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.AuthorID,
			&t.GroupID,
			&t.CreatedAt,
			&t.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		topics = append(topics, &t)
	}

	return topics, total, rows.Err()
}

// Update applies a partial update to a topic
func (r *TopicRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Topic, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	query := squirrel.Update("topics").
		Where("id = ?", id).
		Suffix("RETURNING " + topicColumns).
		PlaceholderFormat(squirrel.Dollar).
		Set("updated_at", squirrel.Expr("NOW()"))

	for column, value := range fields {
		query = query.Set(column, value)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanTopic(r.db.QueryRow(ctx, sql, args...))
}

// Delete removes a topic; comments and activities cascade through the
// schema's foreign keys.
func (r *TopicRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("topics").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("topic not found")
	}

	return nil
}
