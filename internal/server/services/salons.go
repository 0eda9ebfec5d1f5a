package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/server/auth"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
)

// SalonAdminService provisions tenants. Only the platform admin reaches it.
type SalonAdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSalonAdminService(db *sql.DB, m repomanager.RepositoryManager) *SalonAdminService {
	return &SalonAdminService{db: db, repomanager: m}
}

// NewSalonInput describes a salon to provision. ActivationKey may be empty,
// in which case a random key is generated.
type NewSalonInput struct {
	Name          string
	Email         string
	Phone         string
	Plan          string
	ActivationKey string
}

// Create stores the salon with a bcrypt-hashed key and returns the plaintext
// key. It is never retrievable afterwards.
func (s *SalonAdminService) Create(ctx context.Context, in NewSalonInput) (*models.Salon, string, error) {
	name, err := CleanName("name", in.Name, maxNameLen)
	if err != nil {
		return nil, "", err
	}
	email, err := NormalizeEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if email == "" {
		return nil, "", invalid("email is required")
	}
	phone := ""
	if in.Phone != "" {
		if phone, err = NormalizePhone(in.Phone); err != nil {
			return nil, "", err
		}
	}
	plan := in.Plan
	if plan == "" {
		plan = models.PlanTrial
	}
	if err := oneOf("plan", plan, models.PlanTrial, models.PlanMonthly, models.PlanYearly); err != nil {
		return nil, "", err
	}

	key, hash, err := s.newKey(in.ActivationKey)
	if err != nil {
		return nil, "", err
	}

	salon, err := s.repomanager.Salons(s.db).Create(ctx, &models.Salon{
		Name:              name,
		Email:             email,
		Phone:             phone,
		ActivationKeyHash: hash,
		Status:            models.SalonActive,
		Plan:              plan,
	})
	if err != nil {
		return nil, "", fmt.Errorf("error creating salon: %w", err)
	}
	return salon, key, nil
}

func (s *SalonAdminService) List(ctx context.Context) ([]*models.Salon, error) {
	return s.repomanager.Salons(s.db).List(ctx)
}

func (s *SalonAdminService) Get(ctx context.Context, id string) (*models.Salon, error) {
	return s.repomanager.Salons(s.db).GetByID(ctx, id)
}

func (s *SalonAdminService) SetStatus(ctx context.Context, id, status string) error {
	if err := oneOf("status", status, models.SalonActive, models.SalonSuspended); err != nil {
		return err
	}
	return s.repomanager.Salons(s.db).SetStatus(ctx, id, status)
}

// RotateKey replaces the activation key; existing sessions stay valid until
// they expire.
func (s *SalonAdminService) RotateKey(ctx context.Context, id, custom string) (string, error) {
	key, hash, err := s.newKey(custom)
	if err != nil {
		return "", err
	}
	if err := s.repomanager.Salons(s.db).SetActivationKeyHash(ctx, id, hash); err != nil {
		return "", err
	}
	return key, nil
}

func (s *SalonAdminService) newKey(custom string) (string, string, error) {
	// login upper-cases what the user types
	key := strings.ToUpper(strings.TrimSpace(custom))
	if key == "" {
		var err error
		if key, err = common.NewActivationKey(); err != nil {
			return "", "", common.ErrorInternal
		}
	} else if len(key) < 12 {
		return "", "", invalid("activation key must be at least 12 characters")
	}
	hash, err := auth.HashSecret(key)
	if err != nil {
		return "", "", common.ErrorInternal
	}
	return key, hash, nil
}
