package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalonService is an entry of the salon's service menu (haircut, facial...).
type SalonService struct {
	ID              string
	SalonID         string
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
