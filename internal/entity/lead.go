package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusCompleted = "completed"
	LeadStatusLost      = "lost"
)

// Message roles inside a lead conversation.
const (
	MessageRoleAI    = "ai"
	MessageRoleOwner = "owner"
	MessageRoleLead  = "lead"
)

// Lead is an inbound inquiry captured from the public site or entered by the
// owner. It owns an ordered conversation of LeadMessages.
type Lead struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	ServiceRequested string    `json:"service_requested,omitempty"`
	Message          string    `json:"message,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type LeadMessage struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewLead(userID, name, email, phone, serviceRequested, message string) (*Lead, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}

	return &Lead{
		ID:               uuid.New().String(),
		UserID:           userID,
		Name:             name,
		Email:            email,
		Phone:            phone,
		ServiceRequested: serviceRequested,
		Message:          message,
		Status:           LeadStatusNew,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}, nil
}

func NewLeadMessage(leadID, role, content string) *LeadMessage {
	return &LeadMessage{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByUserID(ctx context.Context, userID string) ([]*Lead, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type LeadMessageRepositoryInterface interface {
	Create(ctx context.Context, msg *LeadMessage) error
	FindByLeadID(ctx context.Context, leadID string) ([]*LeadMessage, error)
}
