package payments

import (
	"context"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Payment) (*models.Payment, error)
	// GetByOrderID locks the row when forUpdate is set.
	GetByOrderID(ctx context.Context, orderID string, forUpdate bool) (*models.Payment, error)
	MarkPaid(ctx context.Context, id, gatewayPaymentID string, paidAt time.Time) error
	MarkFailed(ctx context.Context, id, gatewayPaymentID string) error
	ListBySalon(ctx context.Context, salonID string) ([]*models.Payment, error)
}
