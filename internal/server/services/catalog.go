package services

import (
	"context"
	"database/sql"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// Bounds for a bookable service, in minutes.
const (
	minServiceDuration = 5
	maxServiceDuration = 480
)

// CatalogService manages the salon's menu of services.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

type ServiceInput struct {
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
	Active          bool
}

func (in ServiceInput) clean() (*models.SalonService, error) {
	name, err := CleanName("name", in.Name, maxNameLen)
	if err != nil {
		return nil, err
	}
	if err := nonNegative("price", in.Price); err != nil {
		return nil, err
	}
	if in.DurationMinutes < minServiceDuration || in.DurationMinutes > maxServiceDuration {
		return nil, invalid("durationMinutes must be between %d and %d", minServiceDuration, maxServiceDuration)
	}
	return &models.SalonService{
		Name:            name,
		Price:           in.Price.Round(2),
		DurationMinutes: in.DurationMinutes,
		Active:          in.Active,
	}, nil
}

func (s *CatalogService) List(ctx context.Context, salonID string, activeOnly bool) ([]*models.SalonService, error) {
	return s.repomanager.Catalog(s.db).List(ctx, salonID, activeOnly)
}

func (s *CatalogService) Get(ctx context.Context, salonID, id string) (*models.SalonService, error) {
	return s.repomanager.Catalog(s.db).Get(ctx, salonID, id)
}

func (s *CatalogService) Create(ctx context.Context, salonID string, in ServiceInput) (*models.SalonService, error) {
	svc, err := in.clean()
	if err != nil {
		return nil, err
	}
	svc.SalonID = salonID
	return s.repomanager.Catalog(s.db).Create(ctx, svc)
}

func (s *CatalogService) Update(ctx context.Context, salonID, id string, in ServiceInput) (*models.SalonService, error) {
	svc, err := in.clean()
	if err != nil {
		return nil, err
	}
	svc.SalonID, svc.ID = salonID, id
	return s.repomanager.Catalog(s.db).Update(ctx, svc)
}

func (s *CatalogService) Delete(ctx context.Context, salonID, id string) error {
	return s.repomanager.Catalog(s.db).Delete(ctx, salonID, id)
}
