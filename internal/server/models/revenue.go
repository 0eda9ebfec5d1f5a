package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRevenue is the nightly aggregate of one salon's non-void invoices.
type DailyRevenue struct {
	SalonID      string
	Day          time.Time
	InvoiceCount int
	Gross        decimal.Decimal
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	Net          decimal.Decimal
	Cash         decimal.Decimal
	Card         decimal.Decimal
	UPI          decimal.Decimal
}

// Dashboard is the "today" snapshot shown on the landing page.
type Dashboard struct {
	AppointmentsToday int
	RevenueToday      decimal.Decimal
	InvoicesToday     int
	LowStockProducts  int
}
