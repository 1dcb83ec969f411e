package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

func (r *SettingsRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserSettings, error) {
	query := `SELECT user_id, initial_prompt, followup_prompt, updated_at FROM user_settings WHERE user_id = $1`

	var s entity.UserSettings
	var initial, followup sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&s.UserID, &initial, &followup, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	s.InitialPrompt = initial.String
	s.FollowupPrompt = followup.String
	return &s, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, s *entity.UserSettings) error {
	query := `
		INSERT INTO user_settings (user_id, initial_prompt, followup_prompt, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET initial_prompt = EXCLUDED.initial_prompt,
		              followup_prompt = EXCLUDED.followup_prompt,
		              updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query, s.UserID, nullString(s.InitialPrompt), nullString(s.FollowupPrompt))
	return err
}
