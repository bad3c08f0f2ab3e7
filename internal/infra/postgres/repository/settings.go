package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/stepquiz-bot/internal/infra/postgres"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository provides access to user settings data in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository with the provided database pool.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create creates default settings for a user.
func (r *SettingsRepository) Create(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO user_settings (user_id, current_course, created_at, updated_at)
		VALUES ($1, NULL, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, current_course, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings entities.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.CurrentCourse,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// UpdateCurrentCourse updates the selected course.
func (r *SettingsRepository) UpdateCurrentCourse(ctx context.Context, userID int64, courseCode string) error {
	query := `
		UPDATE user_settings
		SET current_course = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	tag, err := r.db.Exec(ctx, query, userID, courseCode)
	if err != nil {
		return fmt.Errorf("update current course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
