package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecampus/backend/internal/app/models"
	"github.com/ecampus/backend/internal/db"
	"github.com/ecampus/backend/internal/pkg/apperrors"
	"github.com/ecampus/backend/internal/pkg/dberrors"
)

const groupColumns = "id, name, description, owner_id, join_code, created_at, updated_at"

// GroupRepository handles database operations for groups
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

func scanGroup(row pgx.Row) (*models.Group, error) {
	var g models.Group
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.OwnerID,
		&g.JoinCode,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("group not found")
		}
		return nil, fmt.Errorf("error scanning group row: %w", err)
	}
	return &g, nil
}

// JoinCodeExists reports whether any group already holds this join code
func (r *GroupRepository) JoinCodeExists(ctx context.Context, code string) (bool, error) {
	sql, args, err := squirrel.Select("1").
		From("groups").
		Where("join_code = ?", code).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// CreateWithOwner inserts the group and enrolls its owner as a member in a
// single transaction, so the group is never observable without its owner in
// the member set. A join-code collision that survived the generator's
// pre-check comes back as a Conflict.
func (r *GroupRepository) CreateWithOwner(ctx context.Context, group *models.Group) (*models.Group, error) {
	var created *models.Group

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Insert("groups").
			Columns("name", "description", "owner_id", "join_code").
			Values(group.Name, group.Description, group.OwnerID, group.JoinCode).
			Suffix("RETURNING " + groupColumns).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		created, err = scanGroup(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "groups_join_code_key") {
				return apperrors.NewConflictError("join code already taken")
			}
			return err
		}

		sql, args, err = squirrel.Insert("group_members").
			Columns("group_id", "user_id").
			Values(created.ID, created.OwnerID).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error enrolling owner as member: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	sql, args, err := squirrel.Select(groupColumns).
		From("groups").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanGroup(r.db.QueryRow(ctx, sql, args...))
}

// GetByJoinCode retrieves a group by its join code
func (r *GroupRepository) GetByJoinCode(ctx context.Context, code string) (*models.Group, error) {
	sql, args, err := squirrel.Select(groupColumns).
		From("groups").
		Where("join_code = ?", code).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanGroup(r.db.QueryRow(ctx, sql, args...))
}

// ListByMember retrieves the groups the user belongs to, most recently
// updated first. This is the query scope that restricts group listings to
// the principal's own groups.
func (r *GroupRepository) ListByMember(ctx context.Context, userID int64, offset uint64, limit int) ([]*models.Group, int64, error) {
	query := squirrel.Select(
		"g.id", "g.name", "g.description", "g.owner_id", "g.join_code",
		"g.created_at", "g.updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("groups g").
		Join("group_members gm ON gm.group_id = g.id").
		Where("gm.user_id = ?", userID).
		OrderBy("g.updated_at DESC").
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

	var groups []*models.Group
	var total int64
	for rows.Next() {
		var g models.Group
		err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.Description,
			&g.OwnerID,
			&g.JoinCode,
			&g.CreatedAt,
			&g.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		groups = append(groups, &g)
	}

	return groups, total, rows.Err()
}

// Update applies a partial update. The join_code column is never part of
// the update set; the code is immutable once assigned.
func (r *GroupRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*models.Group, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	query := squirrel.Update("groups").
		Where("id = ?", id).
		Suffix("RETURNING " + groupColumns).
		PlaceholderFormat(squirrel.Dollar).
		Set("updated_at", squirrel.Expr("NOW()"))

	for column, value := range fields {
		query = query.Set(column, value)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanGroup(r.db.QueryRow(ctx, sql, args...))
}

// Delete removes a group. Topics, comments and activities underneath it go
// with it through the ON DELETE CASCADE foreign keys declared in the schema.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("groups").
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
		return apperrors.NewResourceNotFoundError("group not found")
	}

	return nil
}
