package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type OutreachRepository struct {
	DB *sql.DB
}

func NewOutreachRepository(db *sql.DB) *OutreachRepository {
	return &OutreachRepository{DB: db}
}

func (r *OutreachRepository) Create(ctx context.Context, t *entity.OutreachTarget) error {
	query := `
		INSERT INTO outreach_targets (id, user_id, name, email, company, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		t.ID, t.UserID, t.Name, t.Email, nullString(t.Company), t.Status, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *OutreachRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.OutreachTarget, error) {
	query := `
		SELECT id, user_id, name, email, company, status, last_message, created_at, updated_at
		FROM outreach_targets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []*entity.OutreachTarget
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

func (r *OutreachRepository) FindByUserAndEmail(ctx context.Context, userID, email string) (*entity.OutreachTarget, error) {
	query := `
		SELECT id, user_id, name, email, company, status, last_message, created_at, updated_at
		FROM outreach_targets
		WHERE user_id = $1 AND email = $2
	`
	row := r.DB.QueryRowContext(ctx, query, userID, email)

	var t entity.OutreachTarget
	var company, lastMessage sql.NullString
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Email, &company, &t.Status, &lastMessage, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrTargetNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Company = company.String
	t.LastMessage = lastMessage.String
	return &t, nil
}

func (r *OutreachRepository) UpdateStatus(ctx context.Context, id, status, lastMessage string) error {
	query := `
		UPDATE outreach_targets
		SET status = $2, last_message = COALESCE(NULLIF($3, ''), last_message), updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, status, lastMessage)
	return err
}

func scanTarget(rows *sql.Rows) (*entity.OutreachTarget, error) {
	var t entity.OutreachTarget
	var company, lastMessage sql.NullString
	if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Email, &company, &t.Status, &lastMessage, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Company = company.String
	t.LastMessage = lastMessage.String
	return &t, nil
}
