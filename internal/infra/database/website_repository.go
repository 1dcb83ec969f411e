package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type WebsiteRepository struct {
	DB *sql.DB
}

func NewWebsiteRepository(db *sql.DB) *WebsiteRepository {
	return &WebsiteRepository{DB: db}
}

const settingsSelect = `
	SELECT user_id, slug, published, site_title, tagline,
	       primary_color, secondary_color, font_family, updated_at
	FROM website_settings
`

func (r *WebsiteRepository) FindSettingsBySlug(ctx context.Context, slug string) (*entity.WebsiteSettings, error) {
	return r.scanSettings(r.DB.QueryRowContext(ctx, settingsSelect+` WHERE slug = $1`, slug))
}

func (r *WebsiteRepository) FindSettingsByUserID(ctx context.Context, userID string) (*entity.WebsiteSettings, error) {
	return r.scanSettings(r.DB.QueryRowContext(ctx, settingsSelect+` WHERE user_id = $1`, userID))
}

func (r *WebsiteRepository) UpsertSettings(ctx context.Context, s *entity.WebsiteSettings) error {
	query := `
		INSERT INTO website_settings (user_id, slug, published, site_title, tagline,
		                              primary_color, secondary_color, font_family, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET slug = EXCLUDED.slug, published = EXCLUDED.published,
		              site_title = EXCLUDED.site_title, tagline = EXCLUDED.tagline,
		              primary_color = EXCLUDED.primary_color,
		              secondary_color = EXCLUDED.secondary_color,
		              font_family = EXCLUDED.font_family, updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.UserID, s.Slug, s.Published, s.SiteTitle, nullString(s.Tagline),
		nullString(s.PrimaryColor), nullString(s.SecondaryColor), nullString(s.FontFamily),
	)
	return err
}

const pageSelect = `
	SELECT id, user_id, slug, title, content, content_format, sort_index, is_homepage, updated_at
	FROM website_pages
`

func (r *WebsiteRepository) FindHomepage(ctx context.Context, userID string) (*entity.WebsitePage, error) {
	return r.scanPage(r.DB.QueryRowContext(ctx, pageSelect+` WHERE user_id = $1 AND is_homepage`, userID))
}

func (r *WebsiteRepository) FindPageBySlug(ctx context.Context, userID, slug string) (*entity.WebsitePage, error) {
	return r.scanPage(r.DB.QueryRowContext(ctx, pageSelect+` WHERE user_id = $1 AND slug = $2`, userID, slug))
}

func (r *WebsiteRepository) FindPagesByUserID(ctx context.Context, userID string) ([]*entity.WebsitePage, error) {
	rows, err := r.DB.QueryContext(ctx, pageSelect+` WHERE user_id = $1 ORDER BY sort_index`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*entity.WebsitePage
	for rows.Next() {
		var p entity.WebsitePage
		if err := rows.Scan(&p.ID, &p.UserID, &p.Slug, &p.Title, &p.Content, &p.ContentFormat,
			&p.SortIndex, &p.IsHomepage, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, &p)
	}
	return pages, rows.Err()
}

func (r *WebsiteRepository) UpsertPage(ctx context.Context, p *entity.WebsitePage) error {
	query := `
		INSERT INTO website_pages (id, user_id, slug, title, content, content_format,
		                           sort_index, is_homepage, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (user_id, slug)
		DO UPDATE SET title = EXCLUDED.title, content = EXCLUDED.content,
		              content_format = EXCLUDED.content_format,
		              sort_index = EXCLUDED.sort_index,
		              is_homepage = EXCLUDED.is_homepage, updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.UserID, p.Slug, p.Title, p.Content, p.ContentFormat, p.SortIndex, p.IsHomepage,
	)
	return err
}

func (r *WebsiteRepository) scanSettings(row *sql.Row) (*entity.WebsiteSettings, error) {
	var s entity.WebsiteSettings
	var tagline, primary, secondary, font sql.NullString
	err := row.Scan(&s.UserID, &s.Slug, &s.Published, &s.SiteTitle, &tagline,
		&primary, &secondary, &font, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSiteNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Tagline = tagline.String
	s.PrimaryColor = primary.String
	s.SecondaryColor = secondary.String
	s.FontFamily = font.String
	return &s, nil
}

func (r *WebsiteRepository) scanPage(row *sql.Row) (*entity.WebsitePage, error) {
	var p entity.WebsitePage
	err := row.Scan(&p.ID, &p.UserID, &p.Slug, &p.Title, &p.Content, &p.ContentFormat,
		&p.SortIndex, &p.IsHomepage, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
