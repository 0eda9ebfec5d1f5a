package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/dbx"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
)

const clockLayout = "15:04"

// AttendanceService records daily attendance. Calendar dates are carried as
// UTC midnights of the salon's local day so that ::date casts are stable.
type AttendanceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	loc         *time.Location
	now         func() time.Time
}

func NewAttendanceService(db *sql.DB, m repomanager.RepositoryManager, loc *time.Location) *AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{db: db, repomanager: m, loc: loc, now: time.Now}
}

type AttendanceInput struct {
	StaffID  string
	Date     string
	Status   string
	CheckIn  string
	CheckOut string
}

// civilDate returns the UTC midnight of t's calendar day in loc.
func civilDate(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *AttendanceService) today() time.Time {
	return civilDate(s.now(), s.loc)
}

// Mark creates or replaces the record for a staff member and day. Days before
// the salon's lock watermark are read only.
func (s *AttendanceService) Mark(ctx context.Context, salonID string, in AttendanceInput) (*models.Attendance, error) {
	day, err := ParseDate(in.Date, time.UTC)
	if err != nil {
		return nil, err
	}
	if day.After(s.today()) {
		return nil, invalid("attendance cannot be marked for a future date")
	}
	if err := oneOf("status", in.Status,
		models.AttendancePresent, models.AttendanceAbsent, models.AttendanceHalfDay, models.AttendanceLeave); err != nil {
		return nil, err
	}
	checkIn, checkOut, err := checkTimes(in.Status, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	// The watermark read holds a share lock on the salon row until commit, so
	// a Lock landing meanwhile waits for this write instead of racing it.
	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Attendance, error) {
		watermark, err := s.repomanager.Salons(tx).AttendanceWatermark(ctx, salonID)
		if err != nil {
			return nil, err
		}
		if watermark != nil && day.Before(*watermark) {
			return nil, common.ErrAttendanceLocked
		}
		if _, err := s.repomanager.Staff(tx).Get(ctx, salonID, in.StaffID); err != nil {
			return nil, refErr("staff", err)
		}

		return s.repomanager.Attendance(tx).Upsert(ctx, &models.Attendance{
			SalonID:  salonID,
			StaffID:  in.StaffID,
			WorkDate: day,
			Status:   in.Status,
			CheckIn:  checkIn,
			CheckOut: checkOut,
		})
	})
}

func checkTimes(status, in, out string) (string, string, error) {
	if status == models.AttendanceAbsent || status == models.AttendanceLeave {
		if in != "" || out != "" {
			return "", "", invalid("check-in and check-out are only allowed when present")
		}
		return "", "", nil
	}
	if in == "" {
		if out != "" {
			return "", "", invalid("checkOut requires checkIn")
		}
		return "", "", nil
	}
	ti, err := time.Parse(clockLayout, in)
	if err != nil {
		return "", "", invalid("checkIn must be HH:MM")
	}
	if out == "" {
		return in, "", nil
	}
	to, err := time.Parse(clockLayout, out)
	if err != nil {
		return "", "", invalid("checkOut must be HH:MM")
	}
	if !to.After(ti) {
		return "", "", invalid("checkOut must be after checkIn")
	}
	return in, out, nil
}

// Lock freezes every day before until. The watermark never moves back; the
// effective watermark is returned.
func (s *AttendanceService) Lock(ctx context.Context, salonID string, until string) (time.Time, error) {
	day, err := ParseDate(until, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if day.After(s.today()) {
		return time.Time{}, invalid("cannot lock future dates")
	}
	return s.repomanager.Salons(s.db).LockAttendance(ctx, salonID, day)
}

// LockAll is run nightly: it locks every salon up to the day before
// yesterday, leaving yesterday and today editable.
func (s *AttendanceService) LockAll(ctx context.Context) (int64, error) {
	return s.repomanager.Salons(s.db).LockAttendanceAll(ctx, s.today().AddDate(0, 0, -1))
}

// List returns records dated within [from, to], both inclusive.
func (s *AttendanceService) List(ctx context.Context, salonID, from, to string) ([]*models.Attendance, error) {
	f, t, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Attendance(s.db).List(ctx, salonID, f, t)
}

// MonthlySummary counts statuses per staff member for a "YYYY-MM" month.
func (s *AttendanceService) MonthlySummary(ctx context.Context, salonID, month string) ([]*models.AttendanceSummary, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, invalid("month must be YYYY-MM")
	}
	last := first.AddDate(0, 1, -1)
	return s.repomanager.Attendance(s.db).Summary(ctx, salonID, first, last)
}

func dateRange(from, to string) (time.Time, time.Time, error) {
	f, err := ParseDate(from, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := ParseDate(to, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if t.Before(f) {
		return time.Time{}, time.Time{}, invalid("to must not be before from")
	}
	if t.Sub(f) > maxListRange {
		return time.Time{}, time.Time{}, invalid("range must not exceed 62 days")
	}
	return f, t, nil
}
