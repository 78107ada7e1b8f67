package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecampus/backend/internal/app/models"
)

// GroupMemberRepository handles database operations for group memberships
type GroupMemberRepository struct {
	db *pgxpool.Pool
}

// NewGroupMemberRepository creates a new GroupMemberRepository
func NewGroupMemberRepository(db *pgxpool.Pool) *GroupMemberRepository {
	return &GroupMemberRepository{db: db}
}

// IsMember checks whether the user belongs to the group. Exact-match
// existence check, nothing derived.
func (r *GroupMemberRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	sql, args, err := squirrel.Select("1").
		From("group_members").
		Where("group_id = ? AND user_id = ?", groupID, userID).
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

// Add enrolls the user into the group. Re-adding an existing member is a
// no-op thanks to ON CONFLICT DO NOTHING over the (group_id, user_id)
// uniqueness, which is what makes joining idempotent.
func (r *GroupMemberRepository) Add(ctx context.Context, groupID, userID int64) error {
	sql, args, err := squirrel.Insert("group_members").
		Columns("group_id", "user_id").
		Values(groupID, userID).
		Suffix("ON CONFLICT (group_id, user_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetMembers retrieves the users belonging to a group, in join order
func (r *GroupMemberRepository) GetMembers(ctx context.Context, groupID int64) ([]*models.User, error) {
	query := squirrel.Select(
		"u.id", "u.username", "u.email", "u.password", "u.first_name",
		"u.last_name", "u.is_staff", "u.profile_photo_url", "u.created_at", "u.updated_at",
	).
		From("group_members gm").
		Join("users u ON u.id = gm.user_id").
		Where("gm.group_id = ?", groupID).
		OrderBy("gm.joined_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var members []*models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.Password,
			&u.FirstName,
			&u.LastName,
			&u.IsStaff,
			&u.ProfilePhotoURL,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		members = append(members, &u)
	}

	return members, rows.Err()
}
