package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, a *models.Attendance) (*models.Attendance, error) {
	query :=
		`INSERT INTO attendance (salon_id, staff_id, work_date, status, check_in, check_out)
		 VALUES ($1, $2, $3::date, $4, NULLIF($5, '')::time, NULLIF($6, '')::time)
		 ON CONFLICT (staff_id, work_date) DO UPDATE
		 SET status = EXCLUDED.status, check_in = EXCLUDED.check_in,
		     check_out = EXCLUDED.check_out, updated_at = now()
		 WHERE attendance.salon_id = EXCLUDED.salon_id
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		a.SalonID, a.StaffID, a.WorkDate, a.Status, a.CheckIn, a.CheckOut,
	).Scan(&a.ID)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context, salonID string, from, to time.Time) ([]*models.Attendance, error) {
	query :=
		`SELECT id, salon_id, staff_id, work_date, status,
		        to_char(check_in, 'HH24:MI'), to_char(check_out, 'HH24:MI')
		 FROM attendance
		 WHERE salon_id = $1 AND work_date BETWEEN $2::date AND $3::date
		 ORDER BY work_date, staff_id`

	rows, err := r.db.QueryContext(ctx, query, salonID, from, to)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.Attendance, 0)
	for rows.Next() {
		var (
			a       models.Attendance
			in, out sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.SalonID, &a.StaffID, &a.WorkDate, &a.Status, &in, &out); err != nil {
			return nil, pgerr.Map(err)
		}
		a.CheckIn, a.CheckOut = in.String, out.String
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return result, nil
}

func (r *PostgresRepository) Summary(ctx context.Context, salonID string, from, to time.Time) ([]*models.AttendanceSummary, error) {
	query :=
		`SELECT staff_id,
		        count(*) FILTER (WHERE status = 'present'),
		        count(*) FILTER (WHERE status = 'absent'),
		        count(*) FILTER (WHERE status = 'half_day'),
		        count(*) FILTER (WHERE status = 'leave')
		 FROM attendance
		 WHERE salon_id = $1 AND work_date BETWEEN $2::date AND $3::date
		 GROUP BY staff_id
		 ORDER BY staff_id`

	rows, err := r.db.QueryContext(ctx, query, salonID, from, to)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.AttendanceSummary, 0)
	for rows.Next() {
		var s models.AttendanceSummary
		if err := rows.Scan(&s.StaffID, &s.Present, &s.Absent, &s.HalfDay, &s.Leave); err != nil {
			return nil, pgerr.Map(err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return result, nil
}
