package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxInvoiceLines = 100
	maxLineQuantity = 1000
)

var hundred = decimal.NewFromInt(100)

// BillingService prepares invoices and hands them to create_invoice_atomic,
// which owns numbering, stock decrements and idempotency.
type BillingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBillingService(db *sql.DB, m repomanager.RepositoryManager) *BillingService {
	return &BillingService{db: db, repomanager: m}
}

type InvoiceLineInput struct {
	Kind     string
	RefID    string
	Quantity int
	// UnitPrice overrides the catalogue price when set.
	UnitPrice *decimal.Decimal
}

type InvoiceInput struct {
	CustomerID     string
	AppointmentID  string
	PaymentMethod  string
	IdempotencyKey string
	Discount       decimal.Decimal
	TaxRate        decimal.Decimal
	Lines          []InvoiceLineInput
}

// ComputeTotals fills line amounts and the invoice totals, rounding every
// amount to 2 places:
//
//	subtotal = sum(qty * price)
//	tax      = (subtotal - discount) * rate / 100
//	total    = subtotal - discount + tax
func ComputeTotals(inv *models.Invoice) error {
	if len(inv.Lines) == 0 {
		return invalid("invoice needs at least one line")
	}
	if err := nonNegative("discount", inv.Discount); err != nil {
		return err
	}
	if inv.TaxRate.IsNegative() || inv.TaxRate.GreaterThan(hundred) {
		return invalid("taxRate must be between 0 and 100")
	}

	subtotal := decimal.Zero
	for i := range inv.Lines {
		l := &inv.Lines[i]
		if l.Quantity <= 0 || l.Quantity > maxLineQuantity {
			return invalid("quantity must be between 1 and %d", maxLineQuantity)
		}
		if err := nonNegative("unitPrice", l.UnitPrice); err != nil {
			return err
		}
		l.UnitPrice = l.UnitPrice.Round(2)
		l.Amount = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
		subtotal = subtotal.Add(l.Amount)
	}

	discount := inv.Discount.Round(2)
	if discount.GreaterThan(subtotal) {
		return invalid("discount must not exceed subtotal")
	}
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(inv.TaxRate).Div(hundred).Round(2)

	inv.Subtotal = subtotal
	inv.Discount = discount
	inv.Tax = tax
	inv.Total = taxable.Add(tax)
	return nil
}

// CreateInvoice resolves line descriptions and prices, computes totals and
// stores the invoice atomically. Replaying the same idempotency key returns
// the invoice stored the first time.
func (s *BillingService) CreateInvoice(ctx context.Context, salonID string, in InvoiceInput) (*models.Invoice, error) {
	if err := oneOf("paymentMethod", in.PaymentMethod, models.PayCash, models.PayCard, models.PayUPI); err != nil {
		return nil, err
	}
	if len(in.Lines) > maxInvoiceLines {
		return nil, invalid("invoice must have at most %d lines", maxInvoiceLines)
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	} else if len(key) > maxShortLen {
		return nil, invalid("idempotencyKey must be at most %d characters", maxShortLen)
	}

	if in.CustomerID != "" {
		if _, err := s.repomanager.Customers(s.db).Get(ctx, salonID, in.CustomerID); err != nil {
			return nil, refErr("customer", err)
		}
	}
	if in.AppointmentID != "" {
		if _, err := s.repomanager.Appointments(s.db).Get(ctx, salonID, in.AppointmentID); err != nil {
			return nil, refErr("appointment", err)
		}
	}

	inv := &models.Invoice{
		SalonID:        salonID,
		CustomerID:     in.CustomerID,
		AppointmentID:  in.AppointmentID,
		IdempotencyKey: key,
		Discount:       in.Discount,
		TaxRate:        in.TaxRate,
		PaymentMethod:  in.PaymentMethod,
	}
	for _, li := range in.Lines {
		line, err := s.resolveLine(ctx, salonID, li)
		if err != nil {
			return nil, err
		}
		inv.Lines = append(inv.Lines, line)
	}

	if err := ComputeTotals(inv); err != nil {
		return nil, err
	}

	repo := s.repomanager.Invoices(s.db)
	id, err := repo.CreateAtomic(ctx, inv)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, salonID, id)
}

func (s *BillingService) resolveLine(ctx context.Context, salonID string, in InvoiceLineInput) (models.InvoiceLine, error) {
	line := models.InvoiceLine{Kind: in.Kind, RefID: in.RefID, Quantity: in.Quantity}
	if in.RefID == "" {
		return line, invalid("line refId is required")
	}

	switch in.Kind {
	case models.LineService:
		svc, err := s.repomanager.Catalog(s.db).Get(ctx, salonID, in.RefID)
		if err != nil {
			return line, refErr("service", err)
		}
		line.Description, line.UnitPrice = svc.Name, svc.Price
	case models.LineProduct:
		p, err := s.repomanager.Products(s.db).Get(ctx, salonID, in.RefID)
		if err != nil {
			return line, refErr("product", err)
		}
		line.Description, line.UnitPrice = p.Name, p.UnitPrice
	default:
		return line, invalid("line kind must be one of %s, %s", models.LineService, models.LineProduct)
	}

	if in.UnitPrice != nil {
		line.UnitPrice = *in.UnitPrice
	}
	return line, nil
}

func (s *BillingService) Get(ctx context.Context, salonID, id string) (*models.Invoice, error) {
	return s.repomanager.Invoices(s.db).Get(ctx, salonID, id)
}

// List returns invoices created in [from, to).
func (s *BillingService) List(ctx context.Context, salonID string, from, to time.Time) ([]*models.Invoice, error) {
	if !to.After(from) {
		return nil, invalid("to must be after from")
	}
	if to.Sub(from) > maxListRange {
		return nil, invalid("range must not exceed 62 days")
	}
	return s.repomanager.Invoices(s.db).List(ctx, salonID, from, to)
}

// Void cancels an invoice and returns its products to stock.
func (s *BillingService) Void(ctx context.Context, salonID, id, reason string) (*models.Invoice, error) {
	reason, err := CleanName("reason", reason, maxNameLen)
	if err != nil {
		return nil, err
	}
	repo := s.repomanager.Invoices(s.db)
	if err := repo.Void(ctx, salonID, id, reason); err != nil {
		return nil, err
	}
	return repo.Get(ctx, salonID, id)
}
