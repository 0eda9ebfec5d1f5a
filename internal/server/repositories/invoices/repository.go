package invoices

import (
	"context"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
)

type Repository interface {
	// CreateAtomic hands the invoice to create_invoice_atomic and returns the
	// id of the stored invoice. A repeated idempotency key yields the id of
	// the invoice created the first time.
	CreateAtomic(ctx context.Context, inv *models.Invoice) (string, error)
	Get(ctx context.Context, salonID, id string) (*models.Invoice, error)
	List(ctx context.Context, salonID string, from, to time.Time) ([]*models.Invoice, error)
	Void(ctx context.Context, salonID, id, reason string) error
}
