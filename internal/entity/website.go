package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ContentFormatHTML = "html"
	ContentFormatText = "text"
)

// WebsiteSettings is the per-user published-site config. The slug is the
// public address: /site/{slug}.
type WebsiteSettings struct {
	UserID         string    `json:"user_id"`
	Slug           string    `json:"slug"`
	Published      bool      `json:"published"`
	SiteTitle      string    `json:"site_title"`
	Tagline        string    `json:"tagline,omitempty"`
	PrimaryColor   string    `json:"primary_color,omitempty"`
	SecondaryColor string    `json:"secondary_color,omitempty"`
	FontFamily     string    `json:"font_family,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// WebsitePage holds stored rich content. HTML content arrives pre-sanitized
// from the editor; text content gets newline-to-paragraph conversion at
// render time. Exactly one page per site carries the homepage flag.
type WebsitePage struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ContentFormat string    `json:"content_format"`
	SortIndex     int       `json:"sort_index"`
	IsHomepage    bool      `json:"is_homepage"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewWebsitePage(userID, slug, title, content, format string, sortIndex int, homepage bool) *WebsitePage {
	if format == "" {
		format = ContentFormatText
	}
	return &WebsitePage{
		ID:            uuid.New().String(),
		UserID:        userID,
		Slug:          slug,
		Title:         title,
		Content:       content,
		ContentFormat: format,
		SortIndex:     sortIndex,
		IsHomepage:    homepage,
		UpdatedAt:     time.Now(),
	}
}

type WebsiteRepositoryInterface interface {
	FindSettingsBySlug(ctx context.Context, slug string) (*WebsiteSettings, error)
	FindSettingsByUserID(ctx context.Context, userID string) (*WebsiteSettings, error)
	UpsertSettings(ctx context.Context, s *WebsiteSettings) error
	FindHomepage(ctx context.Context, userID string) (*WebsitePage, error)
	FindPageBySlug(ctx context.Context, userID, slug string) (*WebsitePage, error)
	FindPagesByUserID(ctx context.Context, userID string) ([]*WebsitePage, error)
	UpsertPage(ctx context.Context, p *WebsitePage) error
}
