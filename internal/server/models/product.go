package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string
	SalonID      string
	Name         string
	SKU          string
	UnitPrice    decimal.Decimal
	Stock        int
	ReorderLevel int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockMovement is a ledger row written by the stock procedures.
type StockMovement struct {
	ID        int64
	ProductID string
	Delta     int
	Kind      string
	UnitCost  decimal.NullDecimal
	Reference string
	Note      string
	CreatedAt time.Time
}
