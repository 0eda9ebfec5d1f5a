package services

import (
	"context"
	"testing"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		inv      models.Invoice
		wantErr  error
		subtotal string
		tax      string
		total    string
	}{
		{
			name: "discount and tax",
			inv: models.Invoice{
				Discount: money("50"),
				TaxRate:  money("18"),
				Lines: []models.InvoiceLine{
					{Quantity: 2, UnitPrice: money("250")},
					{Quantity: 1, UnitPrice: money("199.99")},
				},
			},
			subtotal: "699.99", tax: "117.00", total: "766.99",
		},
		{
			name: "no tax",
			inv: models.Invoice{
				Lines: []models.InvoiceLine{{Quantity: 3, UnitPrice: money("33.333")}},
			},
			subtotal: "99.99", tax: "0.00", total: "99.99",
		},
		{
			name: "discount equal to subtotal",
			inv: models.Invoice{
				Discount: money("100"),
				TaxRate:  money("5"),
				Lines:    []models.InvoiceLine{{Quantity: 1, UnitPrice: money("100")}},
			},
			subtotal: "100.00", tax: "0.00", total: "0.00",
		},
		{
			name:    "discount above subtotal",
			inv:     models.Invoice{Discount: money("101"), Lines: []models.InvoiceLine{{Quantity: 1, UnitPrice: money("100")}}},
			wantErr: common.ErrorValidation,
		},
		{
			name:    "no lines",
			inv:     models.Invoice{},
			wantErr: common.ErrorValidation,
		},
		{
			name:    "zero quantity",
			inv:     models.Invoice{Lines: []models.InvoiceLine{{Quantity: 0, UnitPrice: money("1")}}},
			wantErr: common.ErrorValidation,
		},
		{
			name:    "negative price",
			inv:     models.Invoice{Lines: []models.InvoiceLine{{Quantity: 1, UnitPrice: money("-1")}}},
			wantErr: common.ErrorValidation,
		},
		{
			name:    "tax rate above 100",
			inv:     models.Invoice{TaxRate: money("101"), Lines: []models.InvoiceLine{{Quantity: 1, UnitPrice: money("1")}}},
			wantErr: common.ErrorValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.inv
			err := ComputeTotals(&inv)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.subtotal, inv.Subtotal.StringFixed(2))
			assert.Equal(t, tt.tax, inv.Tax.StringFixed(2))
			assert.Equal(t, tt.total, inv.Total.StringFixed(2))
		})
	}
}

func billingRepos() *fakeRepoManager {
	return &fakeRepoManager{
		customers: &fakeCustomers{getOut: &models.Customer{ID: "c-1", SalonID: "s-1"}},
		catalog: newFakeCatalog(
			&models.SalonService{ID: "sv-1", SalonID: "s-1", Name: "Haircut", Price: money("300"), Active: true},
		),
		products: newFakeProducts(
			&models.Product{ID: "p-1", SalonID: "s-1", Name: "Shampoo", UnitPrice: money("150.50")},
		),
		appointments: newFakeAppointments(),
		invoices:     &fakeInvoices{},
	}
}

func TestBillingService_CreateInvoice(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := billingRepos()
	s := NewBillingService(db, rm)

	override := money("250")
	inv, err := s.CreateInvoice(context.Background(), "s-1", InvoiceInput{
		CustomerID:    "c-1",
		PaymentMethod: models.PayUPI,
		TaxRate:       money("10"),
		Lines: []InvoiceLineInput{
			{Kind: models.LineService, RefID: "sv-1", Quantity: 1, UnitPrice: &override},
			{Kind: models.LineProduct, RefID: "p-1", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "inv-1", inv.ID)
	assert.Equal(t, int64(1), inv.Number)

	sent := rm.invoices.sent
	require.NotNil(t, sent)
	assert.Equal(t, "s-1", sent.SalonID)
	_, perr := uuid.Parse(sent.IdempotencyKey)
	assert.NoError(t, perr, "generated idempotency key should be a uuid")
	assert.Equal(t, "Haircut", sent.Lines[0].Description)
	assert.Equal(t, "250.00", sent.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, "Shampoo", sent.Lines[1].Description)
	assert.Equal(t, "301.00", sent.Lines[1].Amount.StringFixed(2))
	assert.Equal(t, "551.00", sent.Subtotal.StringFixed(2))
	assert.Equal(t, "606.10", sent.Total.StringFixed(2))
}

func TestBillingService_CreateInvoice_KeepsClientKey(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := billingRepos()

	_, err := NewBillingService(db, rm).CreateInvoice(context.Background(), "s-1", InvoiceInput{
		PaymentMethod:  models.PayCash,
		IdempotencyKey: " till-7-0042 ",
		Lines:          []InvoiceLineInput{{Kind: models.LineService, RefID: "sv-1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "till-7-0042", rm.invoices.sent.IdempotencyKey)
}

func TestBillingService_CreateInvoice_Rejects(t *testing.T) {
	line := []InvoiceLineInput{{Kind: models.LineService, RefID: "sv-1", Quantity: 1}}
	cases := map[string]InvoiceInput{
		"payment method":   {PaymentMethod: "cheque", Lines: line},
		"unknown customer": {PaymentMethod: models.PayCash, CustomerID: "c-x", Lines: line},
		"unknown product":  {PaymentMethod: models.PayCash, Lines: []InvoiceLineInput{{Kind: models.LineProduct, RefID: "p-x", Quantity: 1}}},
		"line kind":        {PaymentMethod: models.PayCash, Lines: []InvoiceLineInput{{Kind: "gift", RefID: "sv-1", Quantity: 1}}},
		"no lines":         {PaymentMethod: models.PayCash},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			db, _ := newSQLMockDB(t)
			rm := billingRepos()
			_, err := NewBillingService(db, rm).CreateInvoice(context.Background(), "s-1", in)
			assert.ErrorIs(t, err, common.ErrorValidation)
			assert.Nil(t, rm.invoices.sent)
		})
	}
}

func TestBillingService_CreateInvoice_InsufficientStock(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := billingRepos()
	rm.invoices.createErr = common.ErrInsufficientStock

	_, err := NewBillingService(db, rm).CreateInvoice(context.Background(), "s-1", InvoiceInput{
		PaymentMethod: models.PayCard,
		Lines:         []InvoiceLineInput{{Kind: models.LineProduct, RefID: "p-1", Quantity: 99}},
	})
	assert.ErrorIs(t, err, common.ErrInsufficientStock)
}

func TestBillingService_Void(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{invoices: &fakeInvoices{stored: &models.Invoice{ID: "inv-1", Status: models.InvoiceVoid}}}
	s := NewBillingService(db, rm)

	_, err := s.Void(context.Background(), "s-1", "inv-1", "   ")
	assert.ErrorIs(t, err, common.ErrorValidation)

	inv, err := s.Void(context.Background(), "s-1", "inv-1", "  wrong   customer ")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceVoid, inv.Status)
	assert.Equal(t, "wrong customer", rm.invoices.voided)

	rm.invoices.voidErr = common.ErrorConflict
	_, err = s.Void(context.Background(), "s-1", "inv-1", "again")
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestBillingService_List_Range(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := NewBillingService(db, &fakeRepoManager{invoices: &fakeInvoices{}})
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.List(context.Background(), "s-1", from, from.AddDate(0, 0, 7))
	require.NoError(t, err)
	_, err = s.List(context.Background(), "s-1", from, from.AddDate(-1, 0, 0))
	assert.ErrorIs(t, err, common.ErrorValidation)
}
