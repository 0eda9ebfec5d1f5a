package payments

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

const paymentColumns = `id, salon_id, plan, amount, currency, gateway_order_id, gateway_payment_id,
		status, created_at, paid_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPayment(row dbx.Scanner) (*models.Payment, error) {
	var (
		p      models.Payment
		paidAt sql.NullTime
	)
	err := row.Scan(&p.ID, &p.SalonID, &p.Plan, &p.Amount, &p.Currency, &p.GatewayOrderID, &p.GatewayPaymentID,
		&p.Status, &p.CreatedAt, &paidAt)
	if err != nil {
		return nil, err
	}
	if paidAt.Valid {
		t := paidAt.Time
		p.PaidAt = &t
	}
	return &p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	query :=
		`INSERT INTO payments (salon_id, plan, amount, currency, gateway_order_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, p.SalonID, p.Plan, p.Amount, p.Currency, p.GatewayOrderID, p.Status).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByOrderID(ctx context.Context, orderID string, forUpdate bool) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE gateway_order_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, orderID))
	if err != nil {
		return nil, pgerr.Map(err)
	}
	return p, nil
}

func (r *PostgresRepository) MarkPaid(ctx context.Context, id, gatewayPaymentID string, paidAt time.Time) error {
	return r.exec(ctx,
		`UPDATE payments SET status = 'paid', gateway_payment_id = $2, paid_at = $3 WHERE id = $1`,
		id, gatewayPaymentID, paidAt)
}

// MarkFailed never downgrades a paid payment.
func (r *PostgresRepository) MarkFailed(ctx context.Context, id, gatewayPaymentID string) error {
	return r.exec(ctx,
		`UPDATE payments SET status = 'failed', gateway_payment_id = $2 WHERE id = $1 AND status <> 'paid'`,
		id, gatewayPaymentID)
}

func (r *PostgresRepository) ListBySalon(ctx context.Context, salonID string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE salon_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, salonID)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, pgerr.Map(err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return result, nil
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
