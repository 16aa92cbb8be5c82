package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pirxey/timetrack-api/internal/database"
	"github.com/pirxey/timetrack-api/internal/models"
)

// settingsRepo is the concrete implementation of SettingsRepository
type settingsRepo struct {
	db *database.DB
}

// NewSettingsRepo creates a new user settings repository
func NewSettingsRepo(db *database.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

// GetByUserID retrieves the settings row for a user
func (r *settingsRepo) GetByUserID(ctx context.Context, userID string) (*models.UserSettings, error) {
	query := `
		SELECT id, user_id, default_project_id, default_tag_ids, default_duration_minutes,
			default_start_time, theme
		FROM user_settings WHERE user_id = $1
	`
	var settings models.UserSettings
	var defaultProjectID sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.ID, &settings.UserID, &defaultProjectID,
		pq.Array(&settings.DefaultTagIDs), &settings.DefaultDurationMinutes,
		&settings.DefaultStartTime, &settings.Theme,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if defaultProjectID.Valid {
		settings.DefaultProjectID = &defaultProjectID.String
	}
	return &settings, nil
}

// Upsert creates or replaces the settings row for a user
func (r *settingsRepo) Upsert(ctx context.Context, settings *models.UserSettings) error {
	query := `
		INSERT INTO user_settings (id, user_id, default_project_id, default_tag_ids,
			default_duration_minutes, default_start_time, theme)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			default_project_id = EXCLUDED.default_project_id,
			default_tag_ids = EXCLUDED.default_tag_ids,
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			default_start_time = EXCLUDED.default_start_time,
			theme = EXCLUDED.theme
	`
	_, err := r.db.ExecContext(ctx, query,
		settings.ID, settings.UserID, settings.DefaultProjectID,
		pq.Array(settings.DefaultTagIDs), settings.DefaultDurationMinutes,
		settings.DefaultStartTime, settings.Theme,
	)
	return err
}
