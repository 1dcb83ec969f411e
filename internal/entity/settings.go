package entity

import (
	"context"
	"time"
)

// Default prompt templates used when the user never customized theirs.
// {trade}, {service} and {name} are substituted at generation time.
const (
	DefaultInitialPrompt = "Write a short, friendly first reply from a {trade} professional " +
		"to a new customer inquiry about {service}. Address the customer as {name}, thank them " +
		"for reaching out, and offer to schedule a visit or provide a quote."
	DefaultFollowupPrompt = "Write a brief, polite follow-up message continuing the conversation " +
		"below. Keep the tone helpful and avoid pressure."
)

// UserSettings holds per-user prompt templates for the lead-message generator.
type UserSettings struct {
	UserID         string    `json:"user_id"`
	InitialPrompt  string    `json:"initial_prompt,omitempty"`
	FollowupPrompt string    `json:"followup_prompt,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SettingsRepositoryInterface interface {
	FindByUserID(ctx context.Context, userID string) (*UserSettings, error)
	Upsert(ctx context.Context, s *UserSettings) error
}
