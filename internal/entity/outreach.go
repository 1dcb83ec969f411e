package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	OutreachStatusPending   = "pending"
	OutreachStatusSent      = "sent"
	OutreachStatusResponded = "responded"
	OutreachStatusFailed    = "failed"
)

// OutreachTarget is a cold-outreach contact. The batch generator mutates its
// status and stores the last generated message.
type OutreachTarget struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	Status      string    `json:"status"`
	LastMessage string    `json:"last_message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewOutreachTarget(userID, name, email, company string) (*OutreachTarget, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}

	return &OutreachTarget{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Company:   company,
		Status:    OutreachStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

type OutreachRepositoryInterface interface {
	Create(ctx context.Context, t *OutreachTarget) error
	FindByUserID(ctx context.Context, userID string) ([]*OutreachTarget, error)
	FindByUserAndEmail(ctx context.Context, userID, email string) (*OutreachTarget, error)
	UpdateStatus(ctx context.Context, id, status, lastMessage string) error
}
