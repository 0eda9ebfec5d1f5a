package staff

import (
	"context"
	"fmt"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/pgerr"
)

const staffColumns = `id, salon_id, name, phone, role, commission_rate, active, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanStaff(row dbx.Scanner) (*models.Staff, error) {
	var s models.Staff
	err := row.Scan(&s.ID, &s.SalonID, &s.Name, &s.Phone, &s.Role, &s.CommissionRate, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Staff) (*models.Staff, error) {
	query :=
		`INSERT INTO staff (salon_id, name, phone, role, commission_rate, active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, s.SalonID, s.Name, s.Phone, s.Role, s.CommissionRate, s.Active).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return s, nil
}

func (r *PostgresRepository) Get(ctx context.Context, salonID, id string) (*models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE salon_id = $1 AND id = $2`

	s, err := scanStaff(r.db.QueryRowContext(ctx, query, salonID, id))
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context, salonID string, activeOnly bool) ([]*models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff
		 WHERE salon_id = $1 AND (NOT $2 OR active)
		 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, salonID, activeOnly)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
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

func (r *PostgresRepository) Update(ctx context.Context, s *models.Staff) (*models.Staff, error) {
	query :=
		`UPDATE staff
		 SET name = $3, phone = $4, role = $5, commission_rate = $6, active = $7, updated_at = now()
		 WHERE salon_id = $1 AND id = $2
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, s.SalonID, s.ID, s.Name, s.Phone, s.Role, s.CommissionRate, s.Active).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return s, nil
}

// Delete removes a staff member. Staff referenced by appointments or
// attendance cannot be removed; deactivate them instead.
func (r *PostgresRepository) Delete(ctx context.Context, salonID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE salon_id = $1 AND id = $2`, salonID, id)
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
