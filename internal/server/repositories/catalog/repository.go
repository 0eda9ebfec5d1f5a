// Package catalog stores the salon's menu of services.
package catalog

import (
	"context"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.SalonService) (*models.SalonService, error)
	Get(ctx context.Context, salonID, id string) (*models.SalonService, error)
	List(ctx context.Context, salonID string, activeOnly bool) ([]*models.SalonService, error)
	Update(ctx context.Context, s *models.SalonService) (*models.SalonService, error)
	Delete(ctx context.Context, salonID, id string) error
}
