package attendance

import (
	"context"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
)

type Repository interface {
	// Upsert writes the record for (staff, day), replacing an earlier mark.
	Upsert(ctx context.Context, a *models.Attendance) (*models.Attendance, error)
	// List returns records with work_date in [from, to].
	List(ctx context.Context, salonID string, from, to time.Time) ([]*models.Attendance, error)
	Summary(ctx context.Context, salonID string, from, to time.Time) ([]*models.AttendanceSummary, error)
}
