package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice line kinds.
const (
	LineService = "service"
	LineProduct = "product"
)

// Payment methods accepted at the counter.
const (
	PayCash = "cash"
	PayCard = "card"
	PayUPI  = "upi"
)

// Invoice statuses.
const (
	InvoicePaid = "paid"
	InvoiceVoid = "void"
)

type Invoice struct {
	ID             string
	SalonID        string
	Number         int64
	CustomerID     string
	AppointmentID  string
	IdempotencyKey string
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	TaxRate        decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	PaymentMethod  string
	Status         string
	VoidReason     string
	CreatedAt      time.Time
	Lines          []InvoiceLine
}

type InvoiceLine struct {
	Kind        string
	RefID       string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}
