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

const commentColumns = "id, text, user_id, topic_id, created_at, updated_at"

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID,
		&c.Text,
		&c.UserID,
		&c.TopicID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("comment not found")
		}
		return nil, fmt.Errorf("error scanning comment row: %w", err)
	}
	return &c, nil
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	sql, args, err := squirrel.Insert("comments").
		Columns("text", "user_id", "topic_id").
		Values(comment.Text, comment.UserID, comment.TopicID).
		Suffix("RETURNING " + commentColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanComment(r.db.QueryRow(ctx, sql, args...))
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	sql, args, err := squirrel.Select(commentColumns).
		From("comments").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanComment(r.db.QueryRow(ctx, sql, args...))
}

// ListByTopic retrieves the comments of one topic, most recently updated
// first
func (r *CommentRepository) ListByTopic(ctx context.Context, topicID int64, offset uint64, limit int) ([]*models.Comment, int64, error) {
	query := squirrel.Select(
		"id", "text", "user_id", "topic_id", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("comments").
		Where("topic_id = ?", topicID).
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

	var comments []*models.Comment
	var total int64
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(
			&c.ID,
			&c.Text,
			&c.UserID,
			&c.TopicID,
			&c.CreatedAt,
			&c.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		comments = append(comments, &c)
	}

	return comments, total, rows.Err()
}

// Update applies a partial update to a comment
func (r *CommentRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Comment, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	query := squirrel.Update("comments").
		Where("id = ?", id).
		Suffix("RETURNING " + commentColumns).
		PlaceholderFormat(squirrel.Dollar).
		Set("updated_at", squirrel.Expr("NOW()"))

	for column, value := range fields {
		query = query.Set(column, value)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanComment(r.db.QueryRow(ctx, sql, args...))
}

// Delete removes a comment; its activities cascade.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("comments").
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
		return apperrors.NewResourceNotFoundError("comment not found")
	}

	return nil
}
