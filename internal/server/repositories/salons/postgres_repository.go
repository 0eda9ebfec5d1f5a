package salons

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/pgerr"
)

const salonColumns = `id, name, email, phone, activation_key_hash, status, plan,
		subscription_expires_at, attendance_locked_until, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanSalon(row dbx.Scanner) (*models.Salon, error) {
	var (
		s       models.Salon
		expires sql.NullTime
		locked  sql.NullTime
	)
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.ActivationKeyHash, &s.Status, &s.Plan,
		&expires, &locked, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if expires.Valid {
		t := expires.Time
		s.SubscriptionExpiresAt = &t
	}
	if locked.Valid {
		t := locked.Time
		s.AttendanceLockedUntil = &t
	}
	return &s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, salon *models.Salon) (*models.Salon, error) {
	query :=
		`INSERT INTO salons (name, email, phone, activation_key_hash, status, plan)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		salon.Name, salon.Email, salon.Phone, salon.ActivationKeyHash, salon.Status, salon.Plan,
	).Scan(&salon.ID, &salon.CreatedAt, &salon.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return salon, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Salon, error) {
	query := `SELECT ` + salonColumns + ` FROM salons WHERE id = $1`

	s, err := scanSalon(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return s, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Salon, error) {
	query := `SELECT ` + salonColumns + ` FROM salons WHERE lower(email) = lower($1)`

	s, err := scanSalon(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Salon, error) {
	query := `SELECT ` + salonColumns + ` FROM salons ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.Salon, 0)
	for rows.Next() {
		s, err := scanSalon(rows)
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

// exec runs an UPDATE that must touch exactly one salon.
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

func (r *PostgresRepository) SetStatus(ctx context.Context, id, status string) error {
	return r.exec(ctx, `UPDATE salons SET status = $2, updated_at = now() WHERE id = $1`, id, status)
}

func (r *PostgresRepository) SetActivationKeyHash(ctx context.Context, id, hash string) error {
	return r.exec(ctx, `UPDATE salons SET activation_key_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
}

func (r *PostgresRepository) SetSubscription(ctx context.Context, id, plan string, expiresAt time.Time) error {
	return r.exec(ctx,
		`UPDATE salons SET plan = $2, subscription_expires_at = $3, updated_at = now() WHERE id = $1`,
		id, plan, expiresAt)
}

func (r *PostgresRepository) AttendanceWatermark(ctx context.Context, id string) (*time.Time, error) {
	query := `SELECT attendance_locked_until FROM salons WHERE id = $1 FOR SHARE`

	var watermark sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&watermark); err != nil {
		return nil, pgerr.Map(err)
	}
	if !watermark.Valid {
		return nil, nil
	}
	return &watermark.Time, nil
}

func (r *PostgresRepository) LockAttendance(ctx context.Context, id string, until time.Time) (time.Time, error) {
	query :=
		`UPDATE salons
		 SET attendance_locked_until = GREATEST(COALESCE(attendance_locked_until, $2::date), $2::date),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING attendance_locked_until`

	var watermark time.Time
	if err := r.db.QueryRowContext(ctx, query, id, until).Scan(&watermark); err != nil {
		return time.Time{}, pgerr.Map(err)
	}
	return watermark, nil
}

func (r *PostgresRepository) LockAttendanceAll(ctx context.Context, until time.Time) (int64, error) {
	query :=
		`UPDATE salons
		 SET attendance_locked_until = $1::date, updated_at = now()
		 WHERE attendance_locked_until IS NULL OR attendance_locked_until < $1::date`

	res, err := r.db.ExecContext(ctx, query, until)
	if err != nil {
		return 0, pgerr.Map(err)
	}
	return res.RowsAffected()
}
