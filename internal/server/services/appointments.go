package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
)

// maxListRange bounds calendar queries.
const maxListRange = 62 * 24 * time.Hour

// AppointmentService books and transitions appointments. Staff overlap is
// checked under a row lock on the staff member.
type AppointmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAppointmentService(db *sql.DB, m repomanager.RepositoryManager) *AppointmentService {
	return &AppointmentService{db: db, repomanager: m}
}

type AppointmentInput struct {
	CustomerID string
	StaffID    string
	ServiceID  string
	StartsAt   time.Time
	Notes      string
}

func (s *AppointmentService) Create(ctx context.Context, salonID string, in AppointmentInput) (*models.Appointment, error) {
	if in.CustomerID == "" || in.StaffID == "" || in.ServiceID == "" {
		return nil, invalid("customerId, staffId and serviceId are required")
	}
	if in.StartsAt.IsZero() {
		return nil, invalid("startsAt is required")
	}
	notes, err := CleanText("notes", in.Notes, maxNotesLen)
	if err != nil {
		return nil, err
	}

	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Appointment, error) {
		if _, err := s.repomanager.Customers(tx).Get(ctx, salonID, in.CustomerID); err != nil {
			return nil, refErr("customer", err)
		}
		member, err := s.repomanager.Staff(tx).Get(ctx, salonID, in.StaffID)
		if err != nil {
			return nil, refErr("staff", err)
		}
		if !member.Active {
			return nil, invalid("staff member is inactive")
		}
		svc, err := s.repomanager.Catalog(tx).Get(ctx, salonID, in.ServiceID)
		if err != nil {
			return nil, refErr("service", err)
		}
		if !svc.Active {
			return nil, invalid("service is inactive")
		}

		start := in.StartsAt.UTC()
		end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)
		if err := s.ensureFree(ctx, tx, salonID, in.StaffID, start, end, ""); err != nil {
			return nil, err
		}

		return s.repomanager.Appointments(tx).Create(ctx, &models.Appointment{
			SalonID:    salonID,
			CustomerID: in.CustomerID,
			StaffID:    in.StaffID,
			ServiceID:  in.ServiceID,
			StartsAt:   start,
			EndsAt:     end,
			Status:     models.AppointmentScheduled,
			Notes:      notes,
		})
	})
}

func (s *AppointmentService) Get(ctx context.Context, salonID, id string) (*models.Appointment, error) {
	return s.repomanager.Appointments(s.db).Get(ctx, salonID, id)
}

// List returns appointments starting in [from, to).
func (s *AppointmentService) List(ctx context.Context, salonID string, from, to time.Time, staffID string) ([]*models.Appointment, error) {
	if !to.After(from) {
		return nil, invalid("to must be after from")
	}
	if to.Sub(from) > maxListRange {
		return nil, invalid("range must not exceed 62 days")
	}
	return s.repomanager.Appointments(s.db).List(ctx, salonID, models.AppointmentFilter{From: from, To: to, StaffID: staffID})
}

// Reschedule moves a scheduled appointment, keeping its service duration.
func (s *AppointmentService) Reschedule(ctx context.Context, salonID, id string, startsAt time.Time) (*models.Appointment, error) {
	if startsAt.IsZero() {
		return nil, invalid("startsAt is required")
	}
	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Appointment, error) {
		repo := s.repomanager.Appointments(tx)
		a, err := repo.Get(ctx, salonID, id)
		if err != nil {
			return nil, err
		}
		if a.Status != models.AppointmentScheduled {
			return nil, fmt.Errorf("%w: appointment is %s", common.ErrorConflict, a.Status)
		}

		start := startsAt.UTC()
		end := start.Add(a.EndsAt.Sub(a.StartsAt))
		if err := s.ensureFree(ctx, tx, salonID, a.StaffID, start, end, a.ID); err != nil {
			return nil, err
		}
		if err := repo.Reschedule(ctx, salonID, id, start, end); err != nil {
			return nil, err
		}
		a.StartsAt, a.EndsAt = start, end
		return a, nil
	})
}

// SetStatus moves a scheduled appointment to a terminal status. Terminal
// appointments cannot change again.
func (s *AppointmentService) SetStatus(ctx context.Context, salonID, id, status string) (*models.Appointment, error) {
	if err := oneOf("status", status,
		models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow); err != nil {
		return nil, err
	}
	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Appointment, error) {
		repo := s.repomanager.Appointments(tx)
		a, err := repo.Get(ctx, salonID, id)
		if err != nil {
			return nil, err
		}
		if a.Status != models.AppointmentScheduled {
			return nil, fmt.Errorf("%w: appointment is already %s", common.ErrorConflict, a.Status)
		}
		if err := repo.SetStatus(ctx, salonID, id, status); err != nil {
			return nil, err
		}
		a.Status = status
		return a, nil
	})
}

func (s *AppointmentService) ensureFree(ctx context.Context, tx dbx.DBTX, salonID, staffID string, start, end time.Time, excludeID string) error {
	repo := s.repomanager.Appointments(tx)
	if err := repo.LockStaff(ctx, salonID, staffID); err != nil {
		return refErr("staff", err)
	}
	busy, err := repo.HasOverlap(ctx, salonID, staffID, start, end, excludeID)
	if err != nil {
		return err
	}
	if busy {
		return fmt.Errorf("%w: staff member already has an appointment at that time", common.ErrorConflict)
	}
	return nil
}

// refErr turns a missing referenced row into a validation error.
func refErr(what string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return invalid("%s not found", what)
	}
	return err
}
