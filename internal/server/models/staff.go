package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff roles.
const (
	StaffStylist      = "stylist"
	StaffManager      = "manager"
	StaffReceptionist = "receptionist"
	StaffAssistant    = "assistant"
)

type Staff struct {
	ID             string
	SalonID        string
	Name           string
	Phone          string
	Role           string
	CommissionRate decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
