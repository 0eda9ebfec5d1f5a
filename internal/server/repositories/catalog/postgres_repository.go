package catalog

import (
	"context"
	"fmt"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/pgerr"
)

const serviceColumns = `id, salon_id, name, price, duration_minutes, active, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanService(row dbx.Scanner) (*models.SalonService, error) {
	var s models.SalonService
	err := row.Scan(&s.ID, &s.SalonID, &s.Name, &s.Price, &s.DurationMinutes, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.SalonService) (*models.SalonService, error) {
	query :=
		`INSERT INTO salon_services (salon_id, name, price, duration_minutes, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, s.SalonID, s.Name, s.Price, s.DurationMinutes, s.Active).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return s, nil
}

func (r *PostgresRepository) Get(ctx context.Context, salonID, id string) (*models.SalonService, error) {
	query := `SELECT ` + serviceColumns + ` FROM salon_services WHERE salon_id = $1 AND id = $2`

	s, err := scanService(r.db.QueryRowContext(ctx, query, salonID, id))
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context, salonID string, activeOnly bool) ([]*models.SalonService, error) {
	query := `SELECT ` + serviceColumns + ` FROM salon_services
		 WHERE salon_id = $1 AND (NOT $2 OR active)
		 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, salonID, activeOnly)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.SalonService, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, pgerr.Map(err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.SalonService) (*models.SalonService, error) {
	query :=
		`UPDATE salon_services
		 SET name = $3, price = $4, duration_minutes = $5, active = $6, updated_at = now()
		 WHERE salon_id = $1 AND id = $2
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, s.SalonID, s.ID, s.Name, s.Price, s.DurationMinutes, s.Active).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, salonID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM salon_services WHERE salon_id = $1 AND id = $2`, salonID, id)
	if err != nil {
		return pgerr.Map(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
