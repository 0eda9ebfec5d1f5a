package revenue

import (
	"context"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// AggregateDay rolls the paid invoices created in [from, to) up into one
	// daily_revenue row per salon labelled day. Returns the rows written.
	AggregateDay(ctx context.Context, day, from, to time.Time) (int64, error)
	List(ctx context.Context, salonID string, from, to time.Time) ([]*models.DailyRevenue, error)
	// Live sums paid invoices in [from, to) without touching daily_revenue.
	Live(ctx context.Context, salonID string, from, to time.Time) (count int, total decimal.Decimal, err error)
}
