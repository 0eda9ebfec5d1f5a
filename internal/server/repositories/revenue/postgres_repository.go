package revenue

import (
	"context"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/pgerr"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// AggregateDay upserts one row per salon with paid invoices on day and drops
// rows of salons that no longer have any, e.g. after every invoice was voided.
func (r *PostgresRepository) AggregateDay(ctx context.Context, day, from, to time.Time) (int64, error) {
	query :=
		`WITH totals AS (
		     SELECT salon_id, count(*) AS invoice_count,
		            COALESCE(sum(subtotal), 0) AS gross, COALESCE(sum(discount), 0) AS discount,
		            COALESCE(sum(tax), 0) AS tax, COALESCE(sum(total), 0) AS net,
		            COALESCE(sum(total) FILTER (WHERE payment_method = 'cash'), 0) AS cash,
		            COALESCE(sum(total) FILTER (WHERE payment_method = 'card'), 0) AS card,
		            COALESCE(sum(total) FILTER (WHERE payment_method = 'upi'), 0) AS upi
		     FROM invoices
		     WHERE status = 'paid' AND created_at >= $2 AND created_at < $3
		     GROUP BY salon_id
		 ), stale AS (
		     DELETE FROM daily_revenue d
		     WHERE d.day = $1::date
		       AND NOT EXISTS (SELECT 1 FROM totals t WHERE t.salon_id = d.salon_id)
		 )
		 INSERT INTO daily_revenue (salon_id, day, invoice_count, gross, discount, tax, net, cash, card, upi)
		 SELECT salon_id, $1::date, invoice_count, gross, discount, tax, net, cash, card, upi
		 FROM totals
		 ON CONFLICT (salon_id, day) DO UPDATE
		 SET invoice_count = EXCLUDED.invoice_count, gross = EXCLUDED.gross, discount = EXCLUDED.discount,
		     tax = EXCLUDED.tax, net = EXCLUDED.net, cash = EXCLUDED.cash, card = EXCLUDED.card,
		     upi = EXCLUDED.upi, computed_at = now()`

	res, err := r.db.ExecContext(ctx, query, day, from, to)
	if err != nil {
		return 0, pgerr.Map(err)
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) List(ctx context.Context, salonID string, from, to time.Time) ([]*models.DailyRevenue, error) {
	query :=
		`SELECT salon_id, day, invoice_count, gross, discount, tax, net, cash, card, upi
		 FROM daily_revenue
		 WHERE salon_id = $1 AND day BETWEEN $2::date AND $3::date
		 ORDER BY day`

	rows, err := r.db.QueryContext(ctx, query, salonID, from, to)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.DailyRevenue, 0)
	for rows.Next() {
		var d models.DailyRevenue
		err := rows.Scan(&d.SalonID, &d.Day, &d.InvoiceCount, &d.Gross, &d.Discount, &d.Tax, &d.Net,
			&d.Cash, &d.Card, &d.UPI)
		if err != nil {
			return nil, pgerr.Map(err)
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return result, nil
}

func (r *PostgresRepository) Live(ctx context.Context, salonID string, from, to time.Time) (int, decimal.Decimal, error) {
	query :=
		`SELECT count(*), COALESCE(sum(total), 0)
		 FROM invoices
		 WHERE salon_id = $1 AND status = 'paid' AND created_at >= $2 AND created_at < $3`

	var (
		n     int
		total decimal.Decimal
	)
	if err := r.db.QueryRowContext(ctx, query, salonID, from, to).Scan(&n, &total); err != nil {
		return 0, decimal.Zero, pgerr.Map(err)
	}
	return n, total, nil
}
