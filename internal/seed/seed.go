package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ecampus/backend/internal/pkg/auth"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@ecampus.local"
	defaultAdminPassword = "ChangeMe123"
)

// CreateDefaultData seeds the initial staff account when none exists.
// Staff membership is what allows creating groups.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var exists bool
	err := db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE is_staff = TRUE)`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for staff users: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (username, email, password, first_name, last_name, is_staff)
		VALUES ($1, $2, $3, 'Default', 'Admin', TRUE)
		ON CONFLICT (username) DO NOTHING`,
		defaultAdminUsername, defaultAdminEmail, hashed)
	if err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}

	lgr.Warn().
		Str("username", defaultAdminUsername).
		Msg("Seeded default staff account, change its password immediately")
	return nil
}
