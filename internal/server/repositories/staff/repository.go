package staff

import (
	"context"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Staff) (*models.Staff, error)
	Get(ctx context.Context, salonID, id string) (*models.Staff, error)
	List(ctx context.Context, salonID string, activeOnly bool) ([]*models.Staff, error)
	Update(ctx context.Context, s *models.Staff) (*models.Staff, error)
	Delete(ctx context.Context, salonID, id string) error
}
