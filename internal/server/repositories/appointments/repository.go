package appointments

import (
	"context"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Appointment) (*models.Appointment, error)
	Get(ctx context.Context, salonID, id string) (*models.Appointment, error)
	List(ctx context.Context, salonID string, f models.AppointmentFilter) ([]*models.Appointment, error)
	// LockStaff takes a row lock on the staff member so concurrent bookings
	// for the same person serialise. Must run inside a transaction.
	LockStaff(ctx context.Context, salonID, staffID string) error
	// HasOverlap reports whether another non-cancelled appointment of the
	// staff member intersects [startsAt, endsAt). excludeID may be empty.
	HasOverlap(ctx context.Context, salonID, staffID string, startsAt, endsAt time.Time, excludeID string) (bool, error)
	Reschedule(ctx context.Context, salonID, id string, startsAt, endsAt time.Time) error
	SetStatus(ctx context.Context, salonID, id, status string) error
	CountBetween(ctx context.Context, salonID string, from, to time.Time) (int, error)
}
