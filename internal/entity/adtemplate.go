package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AdTemplate is a generated marketing-copy bundle keyed by (service, city).
// Immutable once created; calling the generator twice for the same pair
// simply produces a second row.
type AdTemplate struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Service string `json:"service"`
	City    string `json:"city"`
	Tone    string `json:"tone,omitempty"`

	Headline         string `json:"headline"`
	Body             string `json:"body"`
	FacebookCaption  string `json:"facebook_caption"`
	NextdoorCaption  string `json:"nextdoor_caption"`
	InstagramCaption string `json:"instagram_caption"`

	CreatedAt time.Time `json:"created_at"`
}

func NewAdTemplate(userID, service, city, tone string) *AdTemplate {
	return &AdTemplate{
		ID:        uuid.New().String(),
		UserID:    userID,
		Service:   service,
		City:      city,
		Tone:      tone,
		CreatedAt: time.Now(),
	}
}

type AdTemplateRepositoryInterface interface {
	Create(ctx context.Context, t *AdTemplate) error
	FindByUserID(ctx context.Context, userID string) ([]*AdTemplate, error)
}
