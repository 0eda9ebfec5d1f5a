package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
)

// ReportService serves revenue reports and the dashboard snapshot, and runs
// the nightly revenue roll-up. Days are salon-local days in loc.
type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	loc         *time.Location
	now         func() time.Time
}

func NewReportService(db *sql.DB, m repomanager.RepositoryManager, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{db: db, repomanager: m, loc: loc, now: time.Now}
}

// localDay returns the instant bounds [from, to) of the local day of date.
func (s *ReportService) localDay(date time.Time) (time.Time, time.Time) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	return from, from.AddDate(0, 0, 1)
}

// AggregateDay rolls up one calendar day for every salon.
func (s *ReportService) AggregateDay(ctx context.Context, day time.Time) (int64, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	from, to := s.localDay(day)
	return s.repomanager.Revenue(s.db).AggregateDay(ctx, day, from, to)
}

// AggregatePreviousDay is the nightly job body.
func (s *ReportService) AggregatePreviousDay(ctx context.Context) (int64, error) {
	return s.AggregateDay(ctx, civilDate(s.now(), s.loc).AddDate(0, 0, -1))
}

// Revenue returns the aggregated rows for days in [from, to].
func (s *ReportService) Revenue(ctx context.Context, salonID, from, to string) ([]*models.DailyRevenue, error) {
	f, t, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Revenue(s.db).List(ctx, salonID, f, t)
}

// Dashboard reads today's figures live; daily_revenue only covers past days.
func (s *ReportService) Dashboard(ctx context.Context, salonID string) (*models.Dashboard, error) {
	from := dayStart(s.now(), s.loc)
	to := from.AddDate(0, 0, 1)

	appts, err := s.repomanager.Appointments(s.db).CountBetween(ctx, salonID, from, to)
	if err != nil {
		return nil, err
	}
	count, total, err := s.repomanager.Revenue(s.db).Live(ctx, salonID, from, to)
	if err != nil {
		return nil, err
	}
	low, err := s.repomanager.Products(s.db).CountLowStock(ctx, salonID)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		AppointmentsToday: appts,
		RevenueToday:      total,
		InvoicesToday:     count,
		LowStockProducts:  low,
	}, nil
}
