package database

import (
	"context"
	"database/sql"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type AdTemplateRepository struct {
	DB *sql.DB
}

func NewAdTemplateRepository(db *sql.DB) *AdTemplateRepository {
	return &AdTemplateRepository{DB: db}
}

func (r *AdTemplateRepository) Create(ctx context.Context, t *entity.AdTemplate) error {
	query := `
		INSERT INTO ad_templates (
			id, user_id, service, city, tone,
			headline, body, facebook_caption, nextdoor_caption, instagram_caption,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		t.ID, t.UserID, t.Service, t.City, t.Tone,
		t.Headline, t.Body, t.FacebookCaption, t.NextdoorCaption, t.InstagramCaption,
		t.CreatedAt,
	)
	return err
}

func (r *AdTemplateRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.AdTemplate, error) {
	query := `
		SELECT id, user_id, service, city, tone,
		       headline, body, facebook_caption, nextdoor_caption, instagram_caption,
		       created_at
		FROM ad_templates
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*entity.AdTemplate
	for rows.Next() {
		var t entity.AdTemplate
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Service, &t.City, &t.Tone,
			&t.Headline, &t.Body, &t.FacebookCaption, &t.NextdoorCaption, &t.InstagramCaption,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}
	return templates, rows.Err()
}
