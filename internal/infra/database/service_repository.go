package database

import (
	"context"
	"database/sql"

	"github.com/tradestack/tradestack-api/internal/entity"
)

type ServiceRepository struct {
	DB *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (id, user_id, name, description, price_cents, unit, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.ID, s.UserID, s.Name, s.Description, s.PriceCents, s.Unit, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *ServiceRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Service, error) {
	query := `
		SELECT id, user_id, name, description, price_cents, unit, active, created_at, updated_at
		FROM services
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.PriceCents, &s.Unit, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, &s)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services
		SET name = $3, description = $4, price_cents = $5, unit = $6, active = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.DB.ExecContext(ctx, query, s.ID, s.UserID, s.Name, s.Description, s.PriceCents, s.Unit, s.Active)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) Deactivate(ctx context.Context, id, userID string) error {
	query := `UPDATE services SET active = FALSE, updated_at = NOW() WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrServiceNotFound
	}
	return nil
}
