package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service is a user-owned price-list entry. Never hard-deleted: the Active
// flag soft-deactivates it so old invoices keep their references.
type Service struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Unit        string    `json:"unit,omitempty"` // flat, hourly, per_sqft...
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewService(userID, name, description string, priceCents int64, unit string) (*Service, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	if priceCents < 0 {
		return nil, errors.New("price_cents must not be negative")
	}

	return &Service{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
		Unit:        unit,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

type ServiceRepositoryInterface interface {
	Create(ctx context.Context, s *Service) error
	FindByUserID(ctx context.Context, userID string) ([]*Service, error)
	Update(ctx context.Context, s *Service) error
	Deactivate(ctx context.Context, id, userID string) error
}
