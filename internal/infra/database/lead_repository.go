package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, user_id, name, email, phone, service_requested, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.UserID, lead.Name, lead.Email,
		nullString(lead.Phone), nullString(lead.ServiceRequested), nullString(lead.Message),
		lead.Status, lead.CreatedAt, lead.UpdatedAt,
	)
	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, user_id, name, email, phone, service_requested, message, status, created_at, updated_at
		FROM leads WHERE id = $1
	`
	var lead entity.Lead
	var phone, service, message sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&lead.ID, &lead.UserID, &lead.Name, &lead.Email,
		&phone, &service, &message, &lead.Status, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	lead.Phone = phone.String
	lead.ServiceRequested = service.String
	lead.Message = message.String
	return &lead, nil
}

func (r *LeadRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Lead, error) {
	query := `
		SELECT id, user_id, name, email, phone, service_requested, message, status, created_at, updated_at
		FROM leads WHERE user_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		var lead entity.Lead
		var phone, service, message sql.NullString
		if err := rows.Scan(
			&lead.ID, &lead.UserID, &lead.Name, &lead.Email,
			&phone, &service, &message, &lead.Status, &lead.CreatedAt, &lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lead.Phone = phone.String
		lead.ServiceRequested = service.String
		lead.Message = message.String
		leads = append(leads, &lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE leads SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
