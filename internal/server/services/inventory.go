package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

const (
	defaultMovements = 100
	maxStockDelta    = 100000
)

// InventoryService manages the product list. Stock levels only move through
// the purchase and adjustment procedures.
type InventoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewInventoryService(db *sql.DB, m repomanager.RepositoryManager) *InventoryService {
	return &InventoryService{db: db, repomanager: m}
}

type ProductInput struct {
	Name         string
	SKU          string
	UnitPrice    decimal.Decimal
	ReorderLevel int
}

func (in ProductInput) clean() (*models.Product, error) {
	name, err := CleanName("name", in.Name, maxNameLen)
	if err != nil {
		return nil, err
	}
	sku, err := CleanText("sku", strings.ToUpper(in.SKU), maxShortLen)
	if err != nil {
		return nil, err
	}
	if err := nonNegative("unitPrice", in.UnitPrice); err != nil {
		return nil, err
	}
	if in.ReorderLevel < 0 {
		return nil, invalid("reorderLevel must not be negative")
	}
	return &models.Product{
		Name:         name,
		SKU:          sku,
		UnitPrice:    in.UnitPrice.Round(2),
		ReorderLevel: in.ReorderLevel,
	}, nil
}

func (s *InventoryService) List(ctx context.Context, salonID string) ([]*models.Product, error) {
	return s.repomanager.Products(s.db).List(ctx, salonID)
}

func (s *InventoryService) Get(ctx context.Context, salonID, id string) (*models.Product, error) {
	return s.repomanager.Products(s.db).Get(ctx, salonID, id)
}

// Create adds a product with zero stock; use Purchase to bring stock in.
func (s *InventoryService) Create(ctx context.Context, salonID string, in ProductInput) (*models.Product, error) {
	p, err := in.clean()
	if err != nil {
		return nil, err
	}
	p.SalonID = salonID
	return s.repomanager.Products(s.db).Create(ctx, p)
}

func (s *InventoryService) Update(ctx context.Context, salonID, id string, in ProductInput) (*models.Product, error) {
	p, err := in.clean()
	if err != nil {
		return nil, err
	}
	p.SalonID, p.ID = salonID, id
	return s.repomanager.Products(s.db).Update(ctx, p)
}

// Purchase records a supplier delivery and returns the new stock level.
func (s *InventoryService) Purchase(ctx context.Context, salonID, productID string, qty int, unitCost decimal.Decimal, supplier string) (int, error) {
	if qty <= 0 || qty > maxStockDelta {
		return 0, invalid("quantity must be between 1 and %d", maxStockDelta)
	}
	if err := nonNegative("unitCost", unitCost); err != nil {
		return 0, err
	}
	supplier, err := CleanText("supplier", supplier, maxNameLen)
	if err != nil {
		return 0, err
	}
	return s.repomanager.Products(s.db).Purchase(ctx, salonID, productID, qty, unitCost.Round(2), supplier)
}

// Adjust applies a signed correction (breakage, count mismatch). Stock never
// goes below zero; the procedure reports ErrInsufficientStock instead.
func (s *InventoryService) Adjust(ctx context.Context, salonID, productID string, delta int, reason string) (int, error) {
	if delta == 0 || delta > maxStockDelta || delta < -maxStockDelta {
		return 0, invalid("delta must be non-zero and within %d", maxStockDelta)
	}
	reason, err := CleanName("reason", reason, maxNameLen)
	if err != nil {
		return 0, err
	}
	return s.repomanager.Products(s.db).Adjust(ctx, salonID, productID, delta, reason)
}

func (s *InventoryService) Movements(ctx context.Context, salonID, productID string, limit int) ([]*models.StockMovement, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultMovements
	}
	return s.repomanager.Products(s.db).Movements(ctx, salonID, productID, limit)
}

func (s *InventoryService) LowStock(ctx context.Context, salonID string) ([]*models.Product, error) {
	return s.repomanager.Products(s.db).LowStock(ctx, salonID)
}
