package invoices

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/pgerr"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `id, salon_id, invoice_number, customer_id, appointment_id, idempotency_key,
		subtotal, discount, tax_rate, tax, total, payment_method, status, void_reason, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// procPayload is the jsonb document create_invoice_atomic reads.
type procPayload struct {
	SalonID        string          `json:"salon_id"`
	CustomerID     string          `json:"customer_id,omitempty"`
	AppointmentID  string          `json:"appointment_id,omitempty"`
	IdempotencyKey string          `json:"idempotency_key"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	PaymentMethod  string          `json:"payment_method"`
	Lines          []procLine      `json:"lines"`
}

type procLine struct {
	Kind        string          `json:"kind"`
	RefID       string          `json:"ref_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

func newProcPayload(inv *models.Invoice) procPayload {
	p := procPayload{
		SalonID:        inv.SalonID,
		CustomerID:     inv.CustomerID,
		AppointmentID:  inv.AppointmentID,
		IdempotencyKey: inv.IdempotencyKey,
		Subtotal:       inv.Subtotal,
		Discount:       inv.Discount,
		TaxRate:        inv.TaxRate,
		Tax:            inv.Tax,
		Total:          inv.Total,
		PaymentMethod:  inv.PaymentMethod,
		Lines:          make([]procLine, 0, len(inv.Lines)),
	}
	for _, l := range inv.Lines {
		p.Lines = append(p.Lines, procLine{
			Kind:        l.Kind,
			RefID:       l.RefID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
		})
	}
	return p
}

func (r *PostgresRepository) CreateAtomic(ctx context.Context, inv *models.Invoice) (string, error) {
	payload, err := json.Marshal(newProcPayload(inv))
	if err != nil {
		return "", fmt.Errorf("marshal invoice: %w", err)
	}

	var id string
	if err := r.db.QueryRowContext(ctx, `SELECT create_invoice_atomic($1::jsonb)`, string(payload)).Scan(&id); err != nil {
		return "", pgerr.Map(err)
	}
	return id, nil
}

func scanInvoice(row dbx.Scanner) (*models.Invoice, error) {
	var (
		inv         models.Invoice
		customer    sql.NullString
		appointment sql.NullString
	)
	err := row.Scan(&inv.ID, &inv.SalonID, &inv.Number, &customer, &appointment, &inv.IdempotencyKey,
		&inv.Subtotal, &inv.Discount, &inv.TaxRate, &inv.Tax, &inv.Total, &inv.PaymentMethod,
		&inv.Status, &inv.VoidReason, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	inv.CustomerID = customer.String
	inv.AppointmentID = appointment.String
	return &inv, nil
}

func (r *PostgresRepository) Get(ctx context.Context, salonID, id string) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE salon_id = $1 AND id = $2`

	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, salonID, id))
	if err != nil {
		return nil, pgerr.Map(err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, ref_id, description, quantity, unit_price, amount
		 FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`, inv.ID)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	inv.Lines = make([]models.InvoiceLine, 0)
	for rows.Next() {
		var l models.InvoiceLine
		if err := rows.Scan(&l.Kind, &l.RefID, &l.Description, &l.Quantity, &l.UnitPrice, &l.Amount); err != nil {
			return nil, pgerr.Map(err)
		}
		inv.Lines = append(inv.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return inv, nil
}

// List returns invoice headers created in [from, to), newest first.
func (r *PostgresRepository) List(ctx context.Context, salonID string, from, to time.Time) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		 WHERE salon_id = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY invoice_number DESC`

	rows, err := r.db.QueryContext(ctx, query, salonID, from, to)
	if err != nil {
		return nil, pgerr.Map(err)
	}
	defer rows.Close()

	result := make([]*models.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, pgerr.Map(err)
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Map(err)
	}
	return result, nil
}

func (r *PostgresRepository) Void(ctx context.Context, salonID, id, reason string) error {
	if _, err := r.db.ExecContext(ctx, `SELECT void_invoice($1, $2, $3)`, salonID, id, reason); err != nil {
		return pgerr.Map(err)
	}
	return nil
}
