package database

import (
	"context"
	"database/sql"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type LeadMessageRepository struct {
	DB *sql.DB
}

func NewLeadMessageRepository(db *sql.DB) *LeadMessageRepository {
	return &LeadMessageRepository{DB: db}
}

func (r *LeadMessageRepository) Create(ctx context.Context, msg *entity.LeadMessage) error {
	query := `
		INSERT INTO lead_messages (id, lead_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, msg.ID, msg.LeadID, msg.Role, msg.Content, msg.CreatedAt)
	return err
}

// FindByLeadID returns the conversation in creation order; the followup
// prompt builder depends on that ordering.
func (r *LeadMessageRepository) FindByLeadID(ctx context.Context, leadID string) ([]*entity.LeadMessage, error) {
	query := `
		SELECT id, lead_id, role, content, created_at
		FROM lead_messages
		WHERE lead_id = $1
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*entity.LeadMessage
	for rows.Next() {
		var msg entity.LeadMessage
		if err := rows.Scan(&msg.ID, &msg.LeadID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}
