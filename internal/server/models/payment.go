package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription plans.
const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
	PlanTrial   = "trial"
)

// Payment statuses.
const (
	PaymentCreated = "created"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Payment tracks one subscription order on the hosted gateway.
type Payment struct {
	ID               string
	SalonID          string
	Plan             string
	Amount           decimal.Decimal
	Currency         string
	GatewayOrderID   string
	GatewayPaymentID string
	Status           string
	CreatedAt        time.Time
	PaidAt           *time.Time
}

// Subscription is the read model returned to the salon.
type Subscription struct {
	Plan      string
	Status    string
	ExpiresAt *time.Time
}
