package services

import (
	"context"
	"database/sql"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type CustomerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCustomerService(db *sql.DB, m repomanager.RepositoryManager) *CustomerService {
	return &CustomerService{db: db, repomanager: m}
}

type CustomerInput struct {
	Name  string
	Phone string
	Email string
	Notes string
}

func (in CustomerInput) clean() (*models.Customer, error) {
	name, err := CleanName("name", in.Name, maxNameLen)
	if err != nil {
		return nil, err
	}
	phone, err := NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}
	email, err := NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	notes, err := CleanText("notes", in.Notes, maxNotesLen)
	if err != nil {
		return nil, err
	}
	return &models.Customer{Name: name, Phone: phone, Email: email, Notes: notes}, nil
}

// List clamps paging to sane bounds.
func (s *CustomerService) List(ctx context.Context, salonID string, f models.ListFilter) ([]*models.Customer, error) {
	q, err := CleanText("q", f.Query, maxShortLen)
	if err != nil {
		return nil, err
	}
	f.Query = q
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repomanager.Customers(s.db).List(ctx, salonID, f)
}

func (s *CustomerService) Get(ctx context.Context, salonID, id string) (*models.Customer, error) {
	return s.repomanager.Customers(s.db).Get(ctx, salonID, id)
}

// Create fails with ErrorAlreadyExists when the phone is already on file.
func (s *CustomerService) Create(ctx context.Context, salonID string, in CustomerInput) (*models.Customer, error) {
	c, err := in.clean()
	if err != nil {
		return nil, err
	}
	c.SalonID = salonID
	return s.repomanager.Customers(s.db).Create(ctx, c)
}

func (s *CustomerService) Update(ctx context.Context, salonID, id string, in CustomerInput) (*models.Customer, error) {
	c, err := in.clean()
	if err != nil {
		return nil, err
	}
	c.SalonID, c.ID = salonID, id
	return s.repomanager.Customers(s.db).Update(ctx, c)
}

func (s *CustomerService) Delete(ctx context.Context, salonID, id string) error {
	return s.repomanager.Customers(s.db).Delete(ctx, salonID, id)
}
