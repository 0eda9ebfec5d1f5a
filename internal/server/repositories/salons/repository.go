// Package salons declares the tenant repository contract.
package salons

import (
	"context"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, salon *models.Salon) (*models.Salon, error)
	GetByID(ctx context.Context, id string) (*models.Salon, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.Salon, error)
	List(ctx context.Context) ([]*models.Salon, error)
	SetStatus(ctx context.Context, id, status string) error
	SetActivationKeyHash(ctx context.Context, id, hash string) error
	SetSubscription(ctx context.Context, id, plan string, expiresAt time.Time) error
	// AttendanceWatermark reads the salon's lock watermark FOR SHARE, so a
	// concurrent LockAttendance waits until the caller's transaction ends.
	// It must run inside a transaction; nil means nothing is locked.
	AttendanceWatermark(ctx context.Context, id string) (*time.Time, error)
	// LockAttendance moves the salon's lock watermark to until, never backwards,
	// and returns the resulting watermark.
	LockAttendance(ctx context.Context, id string, until time.Time) (time.Time, error)
	// LockAttendanceAll applies LockAttendance to every salon.
	LockAttendanceAll(ctx context.Context, until time.Time) (int64, error)
}
