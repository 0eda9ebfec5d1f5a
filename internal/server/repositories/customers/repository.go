package customers

import (
	"context"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	Get(ctx context.Context, salonID, id string) (*models.Customer, error)
	List(ctx context.Context, salonID string, f models.ListFilter) ([]*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, salonID, id string) error
	Count(ctx context.Context, salonID string) (int, error)
}
