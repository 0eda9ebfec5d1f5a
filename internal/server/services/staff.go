package services

import (
	"context"
	"database/sql"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

var maxCommission = decimal.NewFromInt(100)

type StaffService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStaffService(db *sql.DB, m repomanager.RepositoryManager) *StaffService {
	return &StaffService{db: db, repomanager: m}
}

type StaffInput struct {
	Name           string
	Phone          string
	Role           string
	CommissionRate decimal.Decimal
	Active         bool
}

func (in StaffInput) clean() (*models.Staff, error) {
	name, err := CleanName("name", in.Name, maxNameLen)
	if err != nil {
		return nil, err
	}
	phone := ""
	if in.Phone != "" {
		if phone, err = NormalizePhone(in.Phone); err != nil {
			return nil, err
		}
	}
	if err := oneOf("role", in.Role,
		models.StaffStylist, models.StaffManager, models.StaffReceptionist, models.StaffAssistant); err != nil {
		return nil, err
	}
	if in.CommissionRate.IsNegative() || in.CommissionRate.GreaterThan(maxCommission) {
		return nil, invalid("commissionRate must be between 0 and 100")
	}
	return &models.Staff{
		Name:           name,
		Phone:          phone,
		Role:           in.Role,
		CommissionRate: in.CommissionRate.Round(2),
		Active:         in.Active,
	}, nil
}

func (s *StaffService) List(ctx context.Context, salonID string, activeOnly bool) ([]*models.Staff, error) {
	return s.repomanager.Staff(s.db).List(ctx, salonID, activeOnly)
}

func (s *StaffService) Get(ctx context.Context, salonID, id string) (*models.Staff, error) {
	return s.repomanager.Staff(s.db).Get(ctx, salonID, id)
}

func (s *StaffService) Create(ctx context.Context, salonID string, in StaffInput) (*models.Staff, error) {
	st, err := in.clean()
	if err != nil {
		return nil, err
	}
	st.SalonID = salonID
	return s.repomanager.Staff(s.db).Create(ctx, st)
}

func (s *StaffService) Update(ctx context.Context, salonID, id string, in StaffInput) (*models.Staff, error) {
	st, err := in.clean()
	if err != nil {
		return nil, err
	}
	st.SalonID, st.ID = salonID, id
	return s.repomanager.Staff(s.db).Update(ctx, st)
}

func (s *StaffService) Delete(ctx context.Context, salonID, id string) error {
	return s.repomanager.Staff(s.db).Delete(ctx, salonID, id)
}
