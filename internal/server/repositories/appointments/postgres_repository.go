package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/pgerr"
)

const appointmentColumns = `id, salon_id, customer_id, staff_id, service_id, starts_at, ends_at,
		status, notes, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAppointment(row dbx.Scanner) (*models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(&a.ID, &a.SalonID, &a.CustomerID, &a.StaffID, &a.ServiceID, &a.StartsAt, &a.EndsAt,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error) {
	query :=
		`INSERT INTO appointments (salon_id, customer_id, staff_id, service_id, starts_at, ends_at, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		a.SalonID, a.CustomerID, a.StaffID, a.ServiceID, a.StartsAt, a.EndsAt, a.Status, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return a, nil
}

func (r *PostgresRepository) Get(ctx context.Context, salonID, id string) (*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE salon_id = $1 AND id = $2`

	a, err := scanAppointment(r.db.QueryRowContext(ctx, query, salonID, id))
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context, salonID string, f models.AppointmentFilter) ([]*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		 WHERE salon_id = $1 AND starts_at >= $2 AND starts_at < $3 AND ($4 = '' OR staff_id::text = $4)
		 ORDER BY starts_at`

	rows, err := r.db.QueryContext(ctx, query, salonID, f.From, f.To, f.StaffID)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, pgerr.Map(err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return result, nil
}

func (r *PostgresRepository) LockStaff(ctx context.Context, salonID, staffID string) error {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM staff WHERE salon_id = $1 AND id = $2 FOR UPDATE`, salonID, staffID,
	).Scan(&id)
	if err != nil {
		return pgerr.Map(err)
	}
	return nil
}

func (r *PostgresRepository) HasOverlap(ctx context.Context, salonID, staffID string, startsAt, endsAt time.Time, excludeID string) (bool, error) {
	query :=
		`SELECT EXISTS (
		     SELECT 1 FROM appointments
		     WHERE salon_id = $1 AND staff_id = $2
		       AND status <> 'cancelled'
		       AND starts_at < $4 AND ends_at > $3
		       AND ($5 = '' OR id::text <> $5)
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, salonID, staffID, startsAt, endsAt, excludeID).Scan(&exists); err != nil {
		return false, pgerr.Map(err)
	}
	return exists, nil
}

func (r *PostgresRepository) Reschedule(ctx context.Context, salonID, id string, startsAt, endsAt time.Time) error {
	return r.exec(ctx,
		`UPDATE appointments SET starts_at = $3, ends_at = $4, updated_at = now()
		 WHERE salon_id = $1 AND id = $2`,
		salonID, id, startsAt, endsAt)
}

func (r *PostgresRepository) SetStatus(ctx context.Context, salonID, id, status string) error {
	return r.exec(ctx,
		`UPDATE appointments SET status = $3, updated_at = now() WHERE salon_id = $1 AND id = $2`,
		salonID, id, status)
}

func (r *PostgresRepository) CountBetween(ctx context.Context, salonID string, from, to time.Time) (int, error) {
	query :=
		`SELECT count(*) FROM appointments
		 WHERE salon_id = $1 AND starts_at >= $2 AND starts_at < $3 AND status <> 'cancelled'`

	var n int
	if err := r.db.QueryRowContext(ctx, query, salonID, from, to).Scan(&n); err != nil {
		return 0, pgerr.Map(err)
	}
	return n, nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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
