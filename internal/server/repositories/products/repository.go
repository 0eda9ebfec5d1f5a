package products

import (
	"context"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Get(ctx context.Context, salonID, id string) (*models.Product, error)
	List(ctx context.Context, salonID string) ([]*models.Product, error)
	// Update changes catalogue fields only; stock is owned by the stock procedures.
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Purchase(ctx context.Context, salonID, productID string, qty int, unitCost decimal.Decimal, supplier string) (int, error)
	Adjust(ctx context.Context, salonID, productID string, delta int, reason string) (int, error)
	Movements(ctx context.Context, salonID, productID string, limit int) ([]*models.StockMovement, error)
	LowStock(ctx context.Context, salonID string) ([]*models.Product, error)
	CountLowStock(ctx context.Context, salonID string) (int, error)
}
